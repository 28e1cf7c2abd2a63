package request

import (
	"sort"

	"github.com/studiowebux/diffreq/internal/types"
	"github.com/studiowebux/diffreq/internal/value"
)

// FromURL builds a GET profile from a URL. Query pairs move into params with
// their values scalar-parsed; a key repeated in the query becomes an array.
func FromURL(raw string) (*types.RequestProfile, error) {
	u, err := parseAbsoluteURL(raw)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	u.RawQuery = ""
	u.ForceQuery = false

	profile := &types.RequestProfile{
		Method: types.DefaultMethod,
		URL:    u.String(),
	}
	if len(q) == 0 {
		return profile, nil
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := value.Object(nil)
	for _, k := range keys {
		vals := q[k]
		if len(vals) == 1 {
			_ = params.Set(k, value.ParseScalar(vals[0]))
			continue
		}
		items := make([]value.Value, len(vals))
		for i, v := range vals {
			items[i] = value.ParseScalar(v)
		}
		_ = params.Set(k, value.Array(items...))
	}
	profile.Params = &params
	return profile, nil
}
