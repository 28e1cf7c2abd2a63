package types

import (
	"fmt"
	"net/http"
	"sort"

	"gopkg.in/yaml.v3"
)

// Headers maps canonical header names to a single value
type Headers map[string]string

// Get looks a header up case-insensitively
func (h Headers) Get(name string) (string, bool) {
	v, ok := h[http.CanonicalHeaderKey(name)]
	return v, ok
}

// Set stores a header under its canonical name, replacing any previous value
func (h Headers) Set(name, v string) {
	h[http.CanonicalHeaderKey(name)] = v
}

// Clone returns an independent copy
func (h Headers) Clone() Headers {
	cp := make(Headers, len(h))
	for k, v := range h {
		cp[k] = v
	}
	return cp
}

// Names returns the header names in sorted order
func (h Headers) Names() []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// UnmarshalYAML reads the mapping in document order so that two spellings of
// the same header resolve to the last one written
func (h *Headers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*h = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: headers must be a mapping of name to value", node.Line)
	}

	out := make(Headers, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: header %q must have a scalar value", key.Line, key.Value)
		}
		out.Set(key.Value, val.Value)
	}
	*h = out
	return nil
}
