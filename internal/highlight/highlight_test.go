package highlight

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestHighlight(t *testing.T) {
	tests := []struct {
		lang   Language
		source string
	}{
		{YAML, "todo:\n  url: https://api.example.com\n  params:\n    limit: 10\n"},
		{JSON, "{\n  \"id\": 1,\n  \"ok\": true\n}"},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			out, err := Highlight(tt.source, tt.lang)
			require.NoError(t, err)
			assert.Contains(t, out, "\x1b[")
			// lexers may append a final newline
			assert.Equal(t, strings.TrimRight(tt.source, "\n"), strings.TrimRight(ansi.ReplaceAllString(out, ""), "\n"))
		})
	}
}

func TestMaybe(t *testing.T) {
	assert.Equal(t, "a: 1\n", Maybe("a: 1\n", YAML, false))
	assert.NotEqual(t, "a: 1\n", Maybe("a: 1\n", YAML, true))
}

func TestForContentType(t *testing.T) {
	lang, ok := ForContentType("application/json")
	assert.True(t, ok)
	assert.Equal(t, JSON, lang)

	lang, ok = ForContentType("application/problem+json")
	assert.True(t, ok)
	assert.Equal(t, JSON, lang)

	lang, ok = ForContentType("text/yaml")
	assert.True(t, ok)
	assert.Equal(t, YAML, lang)

	_, ok = ForContentType("text/html")
	assert.False(t, ok)
}
