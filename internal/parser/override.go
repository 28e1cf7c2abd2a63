package parser

import (
	"fmt"
	"strings"

	"github.com/studiowebux/diffreq/internal/types"
)

// ParseOverride parses one command-line override:
//
//	key=value    query parameter (key starts with a letter)
//	%key=value   header
//	#key=value   body field
//
// Key and value are trimmed. The value is kept as raw text.
func ParseOverride(s string) (types.KeyVal, error) {
	rawKey, rawValue, ok := strings.Cut(s, "=")
	if !ok {
		return types.KeyVal{}, fmt.Errorf("%w: %q must be key=value", types.ErrOverrideParse, s)
	}
	key := strings.TrimSpace(rawKey)
	val := strings.TrimSpace(rawValue)

	if key == "" {
		return types.KeyVal{}, fmt.Errorf("%w: %q has an empty key", types.ErrOverrideParse, s)
	}

	var kv types.KeyVal
	switch c := key[0]; {
	case c == '%':
		kv = types.KeyVal{Type: types.KeyValHeader, Key: key[1:], Value: val}
	case c == '#':
		kv = types.KeyVal{Type: types.KeyValBody, Key: key[1:], Value: val}
	case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		kv = types.KeyVal{Type: types.KeyValQuery, Key: key, Value: val}
	default:
		return types.KeyVal{}, fmt.Errorf("%w: %q must start with a letter, %% or #", types.ErrOverrideParse, s)
	}

	if kv.Key == "" {
		return types.KeyVal{}, fmt.Errorf("%w: %q has an empty %s key", types.ErrOverrideParse, s, kv.Type)
	}
	return kv, nil
}

// ParseOverrides parses every override and groups them by target
func ParseOverrides(args []string) (types.ExtraArgs, error) {
	kvs := make([]types.KeyVal, 0, len(args))
	for _, arg := range args {
		kv, err := ParseOverride(arg)
		if err != nil {
			return types.ExtraArgs{}, err
		}
		kvs = append(kvs, kv)
	}
	return types.NewExtraArgs(kvs), nil
}
