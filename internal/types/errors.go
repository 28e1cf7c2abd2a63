package types

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers match with errors.Is / errors.As.
var (
	ErrConfigParse            = errors.New("config parse error")
	ErrProfileValidation      = errors.New("profile validation error")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrOverrideParse          = errors.New("invalid override")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrNetwork                = errors.New("network error")
	ErrResponseDecode         = errors.New("response decode error")
	ErrDiffRender             = errors.New("diff render error")

	// Validation details
	ErrBodyShape   = fmt.Errorf("%w: body has the wrong shape", ErrProfileValidation)
	ErrParamsShape = fmt.Errorf("%w: params must be an object", ErrProfileValidation)
	ErrInvalidURL  = fmt.Errorf("%w: invalid url", ErrProfileValidation)

	// ErrUnsupportedJSONShape is returned when a JSON response body is not an object
	ErrUnsupportedJSONShape = fmt.Errorf("%w: json body is not an object", ErrResponseDecode)
)

// StatusError reports a response whose status is outside 2xx/3xx
type StatusError struct {
	Status     int
	StatusText string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %s", ErrNetwork, e.URL, e.StatusText)
}

// Is makes a StatusError match ErrNetwork
func (e *StatusError) Is(target error) bool {
	return target == ErrNetwork
}

// SideError tags a failure with the request of the pair that caused it
type SideError struct {
	Side string // req1 or req2
	Err  error
}

func (e *SideError) Error() string {
	return fmt.Sprintf("%s: %v", e.Side, e.Err)
}

func (e *SideError) Unwrap() error { return e.Err }

// NotFoundError is returned when a profile name is missing from a config
type NotFoundError struct {
	Profile     string
	Source      string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("profile %q not found in config %s", e.Profile, e.Source)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestions[0])
	}
	return msg
}

// Is makes a NotFoundError match ErrProfileNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProfileNotFound
}
