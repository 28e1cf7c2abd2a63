package value

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrNotObject is returned when an object operation is applied to another kind
var ErrNotObject = errors.New("value is not an object")

// numberPattern matches a JSON number literal
var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Value is a JSON-like tagged union used for query params, bodies and filtering.
// The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the literal text of a number
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value
func Null() Value { return Value{} }

// Bool wraps a boolean
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String wraps a string
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int wraps an integer
func Int(n int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(n, 10)} }

// Float wraps a float. NaN and infinities have no JSON form and yield an error.
func Float(f float64) (Value, error) {
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if !numberPattern.MatchString(lit) {
		return Value{}, fmt.Errorf("invalid number %v", f)
	}
	return Value{kind: KindNumber, s: lit}, nil
}

// Number wraps a JSON number literal, keeping its exact text
func Number(literal string) (Value, error) {
	if !IsNumberLiteral(literal) {
		return Value{}, fmt.Errorf("invalid number literal %q", literal)
	}
	return Value{kind: KindNumber, s: literal}, nil
}

// Array builds an array from the given items
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

// Object builds an object. A nil map yields an empty object.
func Object(fields map[string]Value) Value {
	obj := make(map[string]Value, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// IsNumberLiteral reports whether s is a valid JSON number
func IsNumberLiteral(s string) bool {
	return numberPattern.MatchString(s)
}

// ParseScalar converts raw command-line text into a Value: a JSON number literal
// becomes a Number, "true"/"false" a Bool, anything else a String.
func ParseScalar(raw string) Value {
	if IsNumberLiteral(raw) {
		return Value{kind: KindNumber, s: raw}
	}
	switch raw {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(raw)
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool  { return v.kind == KindArray }
func (v Value) IsScalar() bool { return v.kind != KindArray && v.kind != KindObject }

// IsZero reports whether v is Null, which lets `omitempty` drop it
func (v Value) IsZero() bool { return v.kind == KindNull }

// AsBool returns the boolean and whether v is a Bool
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsString returns the string and whether v is a String
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// NumberLiteral returns the number text and whether v is a Number
func (v Value) NumberLiteral() (string, bool) {
	return v.s, v.kind == KindNumber
}

// Float64 returns the numeric value of a Number
func (v Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	return f, err == nil
}

// Items returns the elements of an Array (nil for other kinds)
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Len returns the number of elements of an Array or fields of an Object
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Keys returns the object keys in sorted order
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get looks up a field of an Object
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	field, ok := v.obj[key]
	return field, ok
}

// Set inserts or replaces a field. Objects share their backing map, so call
// Clone first when the original must stay untouched.
func (v Value) Set(key string, field Value) error {
	if v.kind != KindObject {
		return fmt.Errorf("%w: cannot set %q on %s", ErrNotObject, key, v.kind)
	}
	v.obj[key] = field
	return nil
}

// Delete removes a field and reports whether it was present
func (v Value) Delete(key string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj[key]
	delete(v.obj, key)
	return ok
}

// Clone returns a deep copy
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		arr := make([]Value, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: arr}
	case KindObject:
		obj := make(map[string]Value, len(v.obj))
		for k, field := range v.obj {
			obj[k] = field.Clone()
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return v
	}
}

// Text renders a scalar the way it appears in a query string or form body.
// Null renders as the empty string.
func (v Value) Text() (string, error) {
	switch v.kind {
	case KindNull:
		return "", nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindNumber, KindString:
		return v.s, nil
	case KindArray, KindObject:
		return "", fmt.Errorf("%s has no scalar text form", v.kind)
	default:
		return "", fmt.Errorf("unknown kind %s", v.kind)
	}
}

// String renders v as compact JSON
func (v Value) String() string {
	return v.Compact()
}

// Equal reports structural equality. Object field order never matters and
// numbers compare by value when their literals differ.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindNumber:
		if a.s == b.s {
			return true
		}
		fa, okA := a.Float64()
		fb, okB := b.Float64()
		return okA && okB && fa == fb
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
