package request

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/studiowebux/diffreq/internal/types"
	"github.com/studiowebux/diffreq/internal/value"
)

// Resolve merges overrides into a copy of the profile and encodes the body for
// the resolved content type. It does no I/O and never mutates the profile.
func Resolve(p *types.RequestProfile, args types.ExtraArgs) (*types.ResolvedRequest, error) {
	method := Method(p.Method)

	base, err := parseAbsoluteURL(p.URL)
	if err != nil {
		return nil, err
	}

	// Query
	query := value.Object(nil)
	if p.Params != nil {
		if !p.Params.IsObject() {
			return nil, fmt.Errorf("%w, got %s", types.ErrParamsShape, p.Params.Kind())
		}
		query = p.Params.Clone()
	}
	for _, q := range args.Query {
		if err := query.Set(q.Key, value.ParseScalar(q.Value)); err != nil {
			return nil, err
		}
	}

	// Headers
	headers := p.Headers.Clone()
	for _, h := range args.Headers {
		if !validToken(h.Key) {
			return nil, fmt.Errorf("%w: invalid header name %q", types.ErrOverrideParse, h.Key)
		}
		headers.Set(h.Key, h.Value)
	}

	// Body
	body := value.Null()
	hasBody := p.Body != nil
	if hasBody {
		body = p.Body.Clone()
	}
	if len(args.Body) > 0 {
		if !hasBody || body.IsNull() {
			body = value.Object(nil)
			hasBody = true
		}
		if !body.IsObject() {
			return nil, fmt.Errorf("%w: body overrides need an object body, got %s", types.ErrBodyShape, body.Kind())
		}
		for _, b := range args.Body {
			if err := body.Set(b.Key, value.ParseScalar(b.Value)); err != nil {
				return nil, err
			}
		}
	}

	// Content type defaults after merging so a header override can still pick it
	if _, ok := headers.Get("Content-Type"); !ok {
		headers.Set("Content-Type", DefaultContentType)
	}
	contentType, _ := headers.Get("Content-Type")
	mediaType := MediaType(contentType)

	bodyText, err := EncodeBody(mediaType, body, hasBody)
	if err != nil {
		return nil, err
	}

	if query.Len() > 0 {
		rawQuery, err := encodeQuery(base.Query(), query)
		if err != nil {
			return nil, err
		}
		base.RawQuery = rawQuery
	}

	httpHeaders := make(http.Header, len(headers))
	for _, name := range headers.Names() {
		httpHeaders.Set(name, headers[name])
	}

	return &types.ResolvedRequest{
		Method:      method,
		URL:         base.String(),
		Query:       query,
		Headers:     httpHeaders,
		Body:        bodyText,
		ContentType: mediaType,
	}, nil
}

// EncodeBody serializes a body for the given media type. present is false
// when the profile has no body and no body override, which encodes as "".
func EncodeBody(mediaType string, body value.Value, present bool) (string, error) {
	switch EncodingFor(mediaType) {
	case EncodingJSON:
		if !present {
			return "", nil
		}
		if !body.IsObject() {
			return "", fmt.Errorf("%w: %s body must be an object, got %s", types.ErrBodyShape, mediaType, body.Kind())
		}
		return body.Compact(), nil

	case EncodingForm:
		if !present {
			return "", nil
		}
		if !body.IsObject() {
			return "", fmt.Errorf("%w: %s body must be an object, got %s", types.ErrBodyShape, mediaType, body.Kind())
		}
		form := url.Values{}
		for _, key := range body.Keys() {
			field, _ := body.Get(key)
			text, err := field.Text()
			if err != nil {
				return "", fmt.Errorf("%w: form field %q: %v", types.ErrBodyShape, key, err)
			}
			form.Set(key, text)
		}
		return form.Encode(), nil

	case EncodingOpaque:
		if !present {
			return "", nil
		}
		s, ok := body.AsString()
		if !ok {
			return "", fmt.Errorf("%w: %s body must be a string, got %s", types.ErrBodyShape, mediaType, body.Kind())
		}
		return s, nil

	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedContentType, mediaType)
	}
}

// encodeQuery adds the merged params to the query already present in the URL.
// Arrays become repeated keys.
func encodeQuery(q url.Values, query value.Value) (string, error) {
	for _, key := range query.Keys() {
		field, _ := query.Get(key)
		switch field.Kind() {
		case value.KindArray:
			q.Del(key)
			for _, item := range field.Items() {
				text, err := item.Text()
				if err != nil {
					return "", fmt.Errorf("%w: query param %q: %v", types.ErrParamsShape, key, err)
				}
				q.Add(key, text)
			}
		case value.KindObject:
			return "", fmt.Errorf("%w: query param %q cannot be an object", types.ErrParamsShape, key)
		default:
			text, err := field.Text()
			if err != nil {
				return "", err
			}
			q.Set(key, text)
		}
	}
	return q.Encode(), nil
}

// Method upper-cases a profile method, defaulting to GET
func Method(m string) string {
	m = strings.ToUpper(strings.TrimSpace(m))
	if m == "" {
		return types.DefaultMethod
	}
	return m
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: url is required", types.ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q must use http or https", types.ErrInvalidURL, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", types.ErrInvalidURL, raw)
	}
	return u, nil
}

// validToken reports whether s is a non-empty RFC 7230 token
func validToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0:
		default:
			return false
		}
	}
	return true
}
