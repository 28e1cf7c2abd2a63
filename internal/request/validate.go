package request

import (
	"fmt"

	"github.com/studiowebux/diffreq/internal/types"
)

// Validate checks a profile once at load time, before anything is sent
func Validate(p *types.RequestProfile) error {
	if !validToken(Method(p.Method)) {
		return fmt.Errorf("%w: invalid method %q", types.ErrProfileValidation, p.Method)
	}

	if _, err := parseAbsoluteURL(p.URL); err != nil {
		return err
	}

	contentType, ok := p.Headers.Get("Content-Type")
	if !ok {
		contentType = DefaultContentType
	}
	mediaType := MediaType(contentType)

	if p.Body != nil {
		switch EncodingFor(mediaType) {
		case EncodingJSON, EncodingForm:
			if !p.Body.IsObject() {
				return fmt.Errorf("%w: body must be an object for %s, got %s", types.ErrBodyShape, mediaType, p.Body.Kind())
			}
		default:
			if !p.Body.IsString() {
				return fmt.Errorf("%w: body must be a string for %s, got %s", types.ErrBodyShape, mediaType, p.Body.Kind())
			}
		}
	}

	if p.Params != nil && !p.Params.IsObject() {
		return fmt.Errorf("%w, got %s", types.ErrParamsShape, p.Params.Kind())
	}

	return nil
}

// ValidateDiff validates both requests of a diff profile
func ValidateDiff(p *types.DiffProfile) error {
	if err := Validate(&p.Req1); err != nil {
		return fmt.Errorf("req1: %w", err)
	}
	if err := Validate(&p.Req2); err != nil {
		return fmt.Errorf("req2: %w", err)
	}
	return nil
}
