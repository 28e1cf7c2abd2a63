package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHeadersUnmarshalYAML(t *testing.T) {
	doc := `
url: https://example.com
headers:
  content-type: text/plain
  X-Num: 1
  Content-Type: application/json
`
	var p RequestProfile
	require.NoError(t, yaml.Unmarshal([]byte(doc), &p))

	assert.Equal(t, Headers{"Content-Type": "application/json", "X-Num": "1"}, p.Headers)

	v, ok := p.Headers.Get("content-TYPE")
	assert.True(t, ok)
	assert.Equal(t, "application/json", v)
}

func TestHeadersRejectNestedValues(t *testing.T) {
	doc := `
url: https://example.com
headers:
  X-List: [a, b]
`
	var p RequestProfile
	assert.Error(t, yaml.Unmarshal([]byte(doc), &p))
}

func TestHeadersCloneIsIndependent(t *testing.T) {
	h := Headers{}
	h.Set("x-a", "1")
	cp := h.Clone()
	cp.Set("X-A", "2")

	assert.Equal(t, "1", h["X-A"])
	assert.Equal(t, []string{"X-A"}, cp.Names())
}

func TestNewExtraArgs(t *testing.T) {
	extra := NewExtraArgs([]KeyVal{
		{Type: KeyValQuery, Key: "a", Value: "1"},
		{Type: KeyValHeader, Key: "X-Trace", Value: "abc"},
		{Type: KeyValBody, Key: "name", Value: "bob"},
		{Type: KeyValQuery, Key: "a", Value: "2"},
	})

	assert.Equal(t, []Pair{{"a", "1"}, {"a", "2"}}, extra.Query)
	assert.Equal(t, []Pair{{"X-Trace", "abc"}}, extra.Headers)
	assert.Equal(t, []Pair{{"name", "bob"}}, extra.Body)
	assert.False(t, extra.IsEmpty())
	assert.True(t, ExtraArgs{}.IsEmpty())
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"body shape is validation", ErrBodyShape, ErrProfileValidation},
		{"params shape is validation", ErrParamsShape, ErrProfileValidation},
		{"json shape is decode", ErrUnsupportedJSONShape, ErrResponseDecode},
		{"status is network", &StatusError{Status: 500, StatusText: "500 Internal Server Error"}, ErrNetwork},
		{"not found", &NotFoundError{Profile: "x", Source: "xdiff.yml"}, ErrProfileNotFound},
		{"side error unwraps", &SideError{Side: "req2", Err: fmt.Errorf("boom: %w", ErrNetwork)}, ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.target))
		})
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Profile: "todo", Source: "./xdiff.yml", Suggestions: []string{"todos"}}
	assert.Equal(t, `profile "todo" not found in config ./xdiff.yml (did you mean "todos"?)`, err.Error())
}

func TestDiffProfileYAMLOmitsEmptyFilter(t *testing.T) {
	p := DiffProfile{
		Req1: RequestProfile{URL: "https://a.example.com"},
		Req2: RequestProfile{URL: "https://b.example.com"},
	}
	out, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "res:")
}
