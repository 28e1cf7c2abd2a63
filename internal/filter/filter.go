package filter

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/studiowebux/diffreq/internal/request"
	"github.com/studiowebux/diffreq/internal/types"
	"github.com/studiowebux/diffreq/internal/value"
)

const crlf = "\r\n"

// Canonical renders a response as the stable text both sides of a diff are
// compared on:
//
//	<proto> <status code> <status text>\r\n
//	<header-name>: <value>\r\n
//	\r\n
//	<body>
//
// Header names are lower-cased and sorted, one line per value, and names listed
// in spec.SkipHeaders are left out (exact match). A JSON body must be an object;
// its top-level spec.SkipBody keys are dropped and it is pretty-printed with
// sorted keys. Other bodies pass through unchanged.
func Canonical(resp *types.Response, spec types.ResponseProfile) (string, error) {
	body, err := canonicalBody(resp, spec.SkipBody)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(statusLine(resp))
	b.WriteString(crlf)

	skip := make(map[string]bool, len(spec.SkipHeaders))
	for _, name := range spec.SkipHeaders {
		skip[name] = true
	}
	for _, h := range sortedHeaders(resp.Headers) {
		if skip[h.name] {
			continue
		}
		for _, v := range h.values {
			b.WriteString(h.name)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString(crlf)
		}
	}

	b.WriteString(crlf)
	b.WriteString(body)
	return b.String(), nil
}

func statusLine(resp *types.Response) string {
	proto := resp.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	text := resp.StatusText
	if text == "" {
		text = http.StatusText(resp.Status)
	}
	return strings.TrimSpace(fmt.Sprintf("%s %d %s", proto, resp.Status, text))
}

type headerLines struct {
	name   string
	values []string
}

// sortedHeaders groups header values under their lower-cased name
func sortedHeaders(h http.Header) []headerLines {
	byName := make(map[string][]string, len(h))
	for key, values := range h {
		name := strings.ToLower(key)
		byName[name] = append(byName[name], values...)
	}

	out := make([]headerLines, 0, len(byName))
	for name, values := range byName {
		out = append(out, headerLines{name: name, values: values})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func canonicalBody(resp *types.Response, skipBody []string) (string, error) {
	if !utf8.Valid(resp.Body) {
		return "", fmt.Errorf("%w: body is not valid UTF-8", types.ErrResponseDecode)
	}

	mediaType := request.MediaType(resp.Headers.Get("Content-Type"))
	if request.EncodingFor(mediaType) != request.EncodingJSON || len(resp.Body) == 0 {
		return string(resp.Body), nil
	}

	body, err := value.ParseJSON(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrResponseDecode, err)
	}
	if !body.IsObject() {
		return "", fmt.Errorf("%w: got %s", types.ErrUnsupportedJSONShape, body.Kind())
	}
	for _, key := range skipBody {
		body.Delete(key)
	}
	return body.Pretty(), nil
}

// ParseCanonical reads text produced by Canonical back into a Response.
// Lower-cased header names come back in canonical form.
func ParseCanonical(text string) (*types.Response, error) {
	head, body, found := strings.Cut(text, crlf+crlf)
	if !found {
		return nil, fmt.Errorf("%w: missing header terminator", types.ErrResponseDecode)
	}

	lines := strings.Split(head, crlf)
	proto, rest, ok := strings.Cut(lines[0], " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return nil, fmt.Errorf("%w: malformed status line %q", types.ErrResponseDecode, lines[0])
	}
	code, statusText, _ := strings.Cut(rest, " ")
	status, err := strconv.Atoi(code)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed status code %q", types.ErrResponseDecode, code)
	}

	headers := make(http.Header)
	for _, line := range lines[1:] {
		name, v, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: malformed header line %q", types.ErrResponseDecode, line)
		}
		headers.Add(name, v)
	}

	return &types.Response{
		Proto:        proto,
		Status:       status,
		StatusText:   statusText,
		Headers:      headers,
		Body:         []byte(body),
		ResponseSize: len(body),
	}, nil
}
