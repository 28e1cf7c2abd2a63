package types

import (
	"net/http"

	"github.com/studiowebux/diffreq/internal/value"
)

// DefaultMethod is used when a profile omits `method`
const DefaultMethod = http.MethodGet

// RequestProfile describes one HTTP request template
type RequestProfile struct {
	Method  string       `json:"method,omitempty" yaml:"method,omitempty"`
	URL     string       `json:"url" yaml:"url"`
	Params  *value.Value `json:"params,omitempty" yaml:"params,omitempty"`
	Headers Headers      `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body    *value.Value `json:"body,omitempty" yaml:"body,omitempty"`
}

// ResponseProfile lists what to leave out of a response before diffing
type ResponseProfile struct {
	SkipHeaders []string `json:"skip_headers,omitempty" yaml:"skip_headers,omitempty"`
	SkipBody    []string `json:"skip_body,omitempty" yaml:"skip_body,omitempty"`
}

// IsZero reports whether nothing is skipped
func (r ResponseProfile) IsZero() bool {
	return len(r.SkipHeaders) == 0 && len(r.SkipBody) == 0
}

// DiffProfile pairs two requests with the filter applied to both responses
type DiffProfile struct {
	Req1 RequestProfile  `json:"req1" yaml:"req1"`
	Req2 RequestProfile  `json:"req2" yaml:"req2"`
	Res  ResponseProfile `json:"res,omitempty" yaml:"res,omitempty"`
}

// KeyValType tells which part of a request an override targets
type KeyValType int

const (
	KeyValQuery KeyValType = iota
	KeyValHeader
	KeyValBody
)

func (t KeyValType) String() string {
	switch t {
	case KeyValQuery:
		return "query"
	case KeyValHeader:
		return "header"
	case KeyValBody:
		return "body"
	default:
		return "unknown"
	}
}

// KeyVal is one parsed override argument. Value is always the raw text.
type KeyVal struct {
	Type  KeyValType
	Key   string
	Value string
}

// Pair is an override key and its raw value
type Pair struct {
	Key   string
	Value string
}

// ExtraArgs groups overrides by target, keeping command-line order
type ExtraArgs struct {
	Query   []Pair
	Headers []Pair
	Body    []Pair
}

// NewExtraArgs splits a list of overrides by target
func NewExtraArgs(args []KeyVal) ExtraArgs {
	var extra ExtraArgs
	for _, arg := range args {
		p := Pair{Key: arg.Key, Value: arg.Value}
		switch arg.Type {
		case KeyValQuery:
			extra.Query = append(extra.Query, p)
		case KeyValHeader:
			extra.Headers = append(extra.Headers, p)
		case KeyValBody:
			extra.Body = append(extra.Body, p)
		}
	}
	return extra
}

// IsEmpty reports whether no override was supplied
func (e ExtraArgs) IsEmpty() bool {
	return len(e.Query) == 0 && len(e.Headers) == 0 && len(e.Body) == 0
}

// ResolvedRequest is a profile after overrides were merged and the body encoded
type ResolvedRequest struct {
	Method      string
	URL         string // includes the encoded query string
	Query       value.Value
	Headers     http.Header
	Body        string
	ContentType string // media type used to encode Body, parameters stripped
}

// Response contains the captured HTTP response
type Response struct {
	Proto        string      `json:"proto"`
	Status       int         `json:"status"`
	StatusText   string      `json:"statusText"`
	Headers      http.Header `json:"headers"`
	Body         []byte      `json:"-"`
	Duration     int64       `json:"duration"`     // milliseconds
	RequestSize  int         `json:"requestSize"`  // bytes
	ResponseSize int         `json:"responseSize"` // bytes
}
