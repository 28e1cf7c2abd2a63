package request

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/diffreq/internal/types"
	"github.com/studiowebux/diffreq/internal/value"
)

func mustProfile(t *testing.T, doc string) *types.RequestProfile {
	t.Helper()
	var p types.RequestProfile
	require.NoError(t, yaml.Unmarshal([]byte(doc), &p))
	return &p
}

func TestResolveQueryOverrideOnEmptyParams(t *testing.T) {
	p := mustProfile(t, `url: https://api.example.com/todos`)

	resolved, err := Resolve(p, types.ExtraArgs{Query: []types.Pair{{Key: "limit", Value: "10"}}})
	require.NoError(t, err)

	assert.Equal(t, `{"limit":10}`, resolved.Query.Compact())
	limit, _ := resolved.Query.Get("limit")
	assert.Equal(t, value.KindNumber, limit.Kind())
	assert.Equal(t, "https://api.example.com/todos?limit=10", resolved.URL)
}

func TestResolveOverridePrecedence(t *testing.T) {
	p := mustProfile(t, `
method: post
url: https://api.example.com/users
params:
  page: 1
  q: old
headers:
  Authorization: Bearer old
body:
  name: alice
  age: 30
`)
	args := types.ExtraArgs{
		Query:   []types.Pair{{Key: "q", Value: "new"}, {Key: "page", Value: "2"}, {Key: "page", Value: "3"}},
		Headers: []types.Pair{{Key: "authorization", Value: "Bearer new"}},
		Body:    []types.Pair{{Key: "age", Value: "31"}, {Key: "admin", Value: "true"}},
	}

	resolved, err := Resolve(p, args)
	require.NoError(t, err)

	assert.Equal(t, "POST", resolved.Method)
	assert.Equal(t, `{"page":3,"q":"new"}`, resolved.Query.Compact())
	assert.Equal(t, "Bearer new", resolved.Headers.Get("Authorization"))
	assert.Len(t, resolved.Headers.Values("Authorization"), 1)
	assert.Equal(t, `{"admin":true,"age":31,"name":"alice"}`, resolved.Body)

	// the profile itself is untouched
	page, _ := p.Params.Get("page")
	assert.Equal(t, "1", page.Compact())
	assert.Equal(t, "Bearer old", p.Headers["Authorization"])
	_, hasAdmin := p.Body.Get("admin")
	assert.False(t, hasAdmin)
}

func TestResolveIsDeterministic(t *testing.T) {
	p := mustProfile(t, `
url: https://api.example.com/x?keep=1
params: {b: 2, a: 1, list: [1, 2]}
body: {z: 1, y: {n: [true, null]}}
`)
	args := types.ExtraArgs{
		Query: []types.Pair{{Key: "c", Value: "3"}},
		Body:  []types.Pair{{Key: "x", Value: "s"}},
	}

	first, err := Resolve(p, args)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Resolve(p, args)
		require.NoError(t, err)
		assert.Equal(t, first.URL, again.URL)
		assert.Equal(t, first.Body, again.Body)
		assert.Equal(t, first.Headers, again.Headers)
		assert.True(t, value.Equal(first.Query, again.Query))
	}
	assert.Equal(t, "https://api.example.com/x?a=1&b=2&c=3&keep=1&list=1&list=2", first.URL)
}

func TestResolveJSONBodyRoundTrip(t *testing.T) {
	p := mustProfile(t, `
url: https://api.example.com/x
headers:
  Content-Type: application/json; charset=utf-8
body:
  id: 1
  name: "a \"quoted\" <name>"
  tags: [x, y]
  nested: {deep: {n: 1.5, nil: null}}
`)
	resolved, err := Resolve(p, types.ExtraArgs{})
	require.NoError(t, err)
	assert.Equal(t, "application/json", resolved.ContentType)

	parsed, err := value.ParseJSON([]byte(resolved.Body))
	require.NoError(t, err)
	assert.True(t, value.Equal(*p.Body, parsed))
}

func TestResolveHeaderOverrideAddsHeader(t *testing.T) {
	p := mustProfile(t, `url: https://api.example.com/x`)

	resolved, err := Resolve(p, types.ExtraArgs{Headers: []types.Pair{{Key: "X-Trace", Value: "abc"}}})
	require.NoError(t, err)

	assert.Equal(t, "abc", resolved.Headers.Get("X-Trace"))
	assert.Equal(t, "application/json", resolved.Headers.Get("Content-Type"))
	assert.Empty(t, resolved.Body)
}

func TestResolveContentTypeDefaultsAfterMerge(t *testing.T) {
	p := mustProfile(t, `
url: https://api.example.com/x
body: {a: 1}
`)
	resolved, err := Resolve(p, types.ExtraArgs{
		Headers: []types.Pair{{Key: "content-type", Value: "application/x-www-form-urlencoded"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", resolved.ContentType)
	assert.Equal(t, "a=1", resolved.Body)
}

func TestResolveBodyEncodings(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		args     types.ExtraArgs
		wantBody string
		wantErr  error
	}{
		{
			name: "form",
			doc: `
url: https://x.example.com
headers: {Content-Type: application/x-www-form-urlencoded}
body: {name: a b, n: 1, ok: true, empty: null}
`,
			wantBody: "empty=&n=1&name=a+b&ok=true",
		},
		{
			name: "multipart is form encoded",
			doc: `
url: https://x.example.com
headers: {Content-Type: multipart/form-data}
body: {k: v&w}
`,
			wantBody: "k=v%26w",
		},
		{
			name: "form rejects nested values",
			doc: `
url: https://x.example.com
headers: {Content-Type: application/x-www-form-urlencoded}
body: {list: [1, 2]}
`,
			wantErr: types.ErrBodyShape,
		},
		{
			name: "text verbatim",
			doc: `
url: https://x.example.com
headers: {Content-Type: text/plain; charset=utf-8}
body: "hello {not json}"
`,
			wantBody: "hello {not json}",
		},
		{
			name: "body override on text body",
			doc: `
url: https://x.example.com
headers: {Content-Type: text/plain}
body: "hello"
`,
			args:    types.ExtraArgs{Body: []types.Pair{{Key: "k", Value: "v"}}},
			wantErr: types.ErrBodyShape,
		},
		{
			name:     "body override creates object",
			doc:      `url: https://x.example.com`,
			args:     types.ExtraArgs{Body: []types.Pair{{Key: "n", Value: "1"}, {Key: "s", Value: "x"}}},
			wantBody: `{"n":1,"s":"x"}`,
		},
		{
			name: "unsupported content type",
			doc: `
url: https://x.example.com
headers: {Content-Type: application/protobuf}
`,
			wantErr: types.ErrUnsupportedContentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := Resolve(mustProfile(t, tt.doc), tt.args)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, resolved.Body)
		})
	}
}

func TestResolveRejectsBadHeaderOverride(t *testing.T) {
	p := mustProfile(t, `url: https://x.example.com`)
	_, err := Resolve(p, types.ExtraArgs{Headers: []types.Pair{{Key: "bad header", Value: "v"}}})
	assert.ErrorIs(t, err, types.ErrOverrideParse)
}

func TestResolveQueryArraysAndObjects(t *testing.T) {
	p := mustProfile(t, `
url: https://x.example.com/p?ids=9
params: {ids: [1, 2]}
`)
	resolved, err := Resolve(p, types.ExtraArgs{})
	require.NoError(t, err)
	u, err := url.Parse(resolved.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, u.Query()["ids"])

	p = mustProfile(t, `
url: https://x.example.com/p
params: {filter: {a: 1}}
`)
	_, err = Resolve(p, types.ExtraArgs{})
	assert.ErrorIs(t, err, types.ErrParamsShape)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"minimal", `url: https://x.example.com`, nil},
		{"json object body", "url: https://x.example.com\nbody: {a: 1}", nil},
		{"json array body", "url: https://x.example.com\nbody: [1, 2]", types.ErrBodyShape},
		{"explicit json array body", "url: https://x.example.com\nheaders: {Content-Type: application/json}\nbody: [1]", types.ErrProfileValidation},
		{"form string body", "url: https://x.example.com\nheaders: {Content-Type: application/x-www-form-urlencoded}\nbody: a=1", types.ErrBodyShape},
		{"text string body", "url: https://x.example.com\nheaders: {Content-Type: text/plain}\nbody: hi", nil},
		{"text object body", "url: https://x.example.com\nheaders: {Content-Type: text/plain}\nbody: {a: 1}", types.ErrBodyShape},
		{"params list", "url: https://x.example.com\nparams: [1]", types.ErrParamsShape},
		{"relative url", "url: /todos", types.ErrInvalidURL},
		{"missing url", "method: GET", types.ErrInvalidURL},
		{"ftp url", "url: ftp://x.example.com", types.ErrInvalidURL},
		{"bad method", "method: 'GE T'\nurl: https://x.example.com", types.ErrProfileValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(mustProfile(t, tt.doc))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, types.ErrProfileValidation)
		})
	}
}

func TestValidateDiffNamesSide(t *testing.T) {
	var p types.DiffProfile
	require.NoError(t, yaml.Unmarshal([]byte(`
req1: {url: "https://a.example.com"}
req2: {url: "https://b.example.com", body: [1]}
`), &p))

	err := ValidateDiff(&p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "req2:")
	assert.ErrorIs(t, err, types.ErrBodyShape)
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "application/json", MediaType("Application/JSON; charset=utf-8"))
	assert.Equal(t, "text/plain", MediaType(" text/plain "))
	assert.Equal(t, EncodingOpaque, EncodingFor("text/csv"))
	assert.Equal(t, EncodingUnsupported, EncodingFor("image/png"))
}

func TestFromURL(t *testing.T) {
	p, err := FromURL("https://api.example.com/todos?a=1&b=x&c=true&d=1&d=2")
	require.NoError(t, err)

	assert.Equal(t, "GET", p.Method)
	assert.Equal(t, "https://api.example.com/todos", p.URL)
	require.NotNil(t, p.Params)
	assert.Equal(t, `{"a":1,"b":"x","c":true,"d":[1,2]}`, p.Params.Compact())
	assert.NoError(t, Validate(p))

	p, err = FromURL("https://api.example.com/todos")
	require.NoError(t, err)
	assert.Nil(t, p.Params)

	_, err = FromURL("not a url")
	assert.Error(t, err)
}
