package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseScalar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind Kind
		text string
	}{
		{"integer", "10", KindNumber, "10"},
		{"negative float", "-1.5", KindNumber, "-1.5"},
		{"exponent", "2e10", KindNumber, "2e10"},
		{"true", "true", KindBool, "true"},
		{"false", "false", KindBool, "false"},
		{"plain word", "abc", KindString, "abc"},
		{"leading zero stays text", "007", KindString, "007"},
		{"hex stays text", "0x10", KindString, "0x10"},
		{"capitalised bool stays text", "True", KindString, "True"},
		{"empty", "", KindString, ""},
		{"nan stays text", "NaN", KindString, "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseScalar(tt.raw)
			assert.Equal(t, tt.kind, v.Kind())
			text, err := v.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestCompactSortsKeys(t *testing.T) {
	v := Object(map[string]Value{
		"b":    Int(2),
		"a":    String("x"),
		"list": Array(Bool(true), Null()),
	})
	assert.Equal(t, `{"a":"x","b":2,"list":[true,null]}`, v.Compact())
}

func TestPretty(t *testing.T) {
	v := Object(map[string]Value{
		"id":    Int(1),
		"tags":  Array(String("a")),
		"empty": Object(nil),
	})
	want := "{\n  \"empty\": {},\n  \"id\": 1,\n  \"tags\": [\n    \"a\"\n  ]\n}"
	assert.Equal(t, want, v.Pretty())
}

func TestQuotedStringsAreNotHTMLEscaped(t *testing.T) {
	v := String("<a href=\"x\">&\n\x01")
	assert.Equal(t, `"<a href=\"x\">&\n\u0001"`, v.Compact())
}

func TestEncodeStrings(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"html kept", String("a < b && c > d"), `"a < b && c > d"`},
		{"short escapes", String("\"\\\n\r\t\b\f"), `"\"\\\n\r\t\b\f"`},
		{"control", String("\x1f"), `"\u001f"`},
		{"invalid utf-8", String("a\xffb"), `"a\ufffdb"`},
		{"unicode", String("héllo"), `"héllo"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Compact())
			data, err := tt.in.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEncodeKeepsNumberLiterals(t *testing.T) {
	for _, lit := range []string{"1.50", "-0", "1e3", "12345678901234567890123", "2.5E-7"} {
		v, err := Number(lit)
		require.NoError(t, err)
		assert.Equal(t, lit, v.Compact())
		assert.Equal(t, "["+lit+"]", Array(v).Compact())
	}
}

func TestEncodeEmptyContainers(t *testing.T) {
	assert.Equal(t, "[]", Array().Compact())
	assert.Equal(t, "{}", Object(nil).Pretty())
	assert.Equal(t, `{"a":[],"b":{}}`, Object(map[string]Value{"a": Array(), "b": Object(nil)}).Compact())
}

func TestMarshalJSONInvalidNumber(t *testing.T) {
	v := Value{kind: KindNumber, s: "NaN"}
	_, err := v.MarshalJSON()
	assert.Error(t, err)
	assert.Empty(t, v.Compact())
}

func TestJSONRoundTrip(t *testing.T) {
	docs := []string{
		`{"id":1,"name":"a","nested":{"x":[1,2.5,"s",null,false]}}`,
		`[]`,
		`"plain"`,
		`12345678901234567890`,
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			v, err := ParseJSON([]byte(doc))
			require.NoError(t, err)

			again, err := ParseJSON([]byte(v.Compact()))
			require.NoError(t, err)
			assert.True(t, Equal(v, again), "round trip changed %s into %s", v, again)
		})
	}
}

func TestParseJSONKeepsNumberLiterals(t *testing.T) {
	v, err := ParseJSON([]byte(`{"big":12345678901234567890,"f":1.50}`))
	require.NoError(t, err)

	big, _ := v.Get("big")
	lit, ok := big.NumberLiteral()
	require.True(t, ok)
	assert.Equal(t, "12345678901234567890", lit)

	f, _ := v.Get("f")
	lit, _ = f.NumberLiteral()
	assert.Equal(t, "1.50", lit)
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	one, err := Number("1.0")
	require.NoError(t, err)

	assert.True(t, Equal(Int(1), one))
	assert.False(t, Equal(Int(1), String("1")))
	assert.True(t, Equal(
		Object(map[string]Value{"a": Int(1), "b": Int(2)}),
		Object(map[string]Value{"b": Int(2), "a": Int(1)}),
	))
	assert.False(t, Equal(Array(Int(1), Int(2)), Array(Int(2), Int(1))))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Object(map[string]Value{"inner": Object(map[string]Value{"a": Int(1)})})
	cp := orig.Clone()

	inner, _ := cp.Get("inner")
	require.NoError(t, inner.Set("a", Int(2)))

	origInner, _ := orig.Get("inner")
	a, _ := origInner.Get("a")
	assert.Equal(t, "1", a.Compact())
}

func TestSetOnNonObject(t *testing.T) {
	err := String("x").Set("k", Int(1))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestTextRejectsContainers(t *testing.T) {
	_, err := Array().Text()
	assert.Error(t, err)
	_, err = Object(nil).Text()
	assert.Error(t, err)

	text, err := Null().Text()
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFloat(t *testing.T) {
	v, err := Float(0.5)
	require.NoError(t, err)
	assert.Equal(t, "0.5", v.Compact())

	_, err = Float(math.NaN())
	assert.Error(t, err)
	_, err = Float(math.Inf(1))
	assert.Error(t, err)
}

func TestUnmarshalYAML(t *testing.T) {
	doc := `
id: 1
ratio: 0.25
hex: 0x10
name: alice
when: 2024-01-02
on: true
nothing: null
list: [1, "two"]
nested:
  k: v
`
	var v Value
	require.NoError(t, yaml.Unmarshal([]byte(doc), &v))
	require.True(t, v.IsObject())

	assert.Equal(t,
		`{"hex":16,"id":1,"list":[1,"two"],"name":"alice","nested":{"k":"v"},"nothing":null,"on":true,"ratio":0.25,"when":"2024-01-02"}`,
		v.Compact())
}

func TestMarshalYAML(t *testing.T) {
	v := Object(map[string]Value{
		"b": Array(Int(1), String("2")),
		"a": Bool(true),
	})
	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a: true\n")

	var back Value
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.True(t, Equal(v, back))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "null", Null().Kind().String())
}
