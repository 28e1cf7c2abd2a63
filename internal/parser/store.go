package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/diffreq/internal/request"
	"github.com/studiowebux/diffreq/internal/types"
)

// maxSuggestions caps the "did you mean" list of a NotFoundError
const maxSuggestions = 3

// Store holds the named profiles of one config document. It is read-only
// after loading and safe for concurrent use.
type Store[P any] struct {
	source   string
	profiles map[string]P
}

// Load reads a config file and validates every profile in it
func Load[P any](path string, validate func(*P) error) (*Store[P], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", types.ErrConfigParse, path, err)
	}
	return Parse(path, data, validate)
}

// Parse decodes a config document. source names the document in errors, and
// a .json or .jsonc source is run through a JSONC decoder first so comments
// and trailing commas are accepted. Profiles are validated in name order; the
// first failure is returned as `profile "<name>": <cause>`.
func Parse[P any](source string, data []byte, validate func(*P) error) (*Store[P], error) {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	profiles := map[string]P{}
	if err := dec.Decode(&profiles); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrConfigParse, source, err)
	}

	store := &Store[P]{source: source, profiles: profiles}
	if validate != nil {
		for _, name := range store.Names() {
			p := profiles[name]
			if err := validate(&p); err != nil {
				return nil, fmt.Errorf("profile %q: %w", name, err)
			}
		}
	}
	return store, nil
}

// LoadDiffConfig loads a document of diff profiles
func LoadDiffConfig(path string) (*Store[types.DiffProfile], error) {
	return Load(path, request.ValidateDiff)
}

// LoadRequestConfig loads a document of single-request profiles
func LoadRequestConfig(path string) (*Store[types.RequestProfile], error) {
	return Load(path, request.Validate)
}

// Source is the path or name the store was loaded from
func (s *Store[P]) Source() string {
	return s.source
}

// Get returns a copy of the named profile. A missing name yields a
// *types.NotFoundError with close matches as suggestions.
func (s *Store[P]) Get(name string) (*P, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, &types.NotFoundError{
			Profile:     name,
			Source:      s.source,
			Suggestions: s.suggest(name),
		}
	}
	return &p, nil
}

// Names returns the profile names in sorted order
func (s *Store[P]) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of profiles
func (s *Store[P]) Len() int {
	return len(s.profiles)
}

func (s *Store[P]) suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, s.Names())
	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

// Marshal renders one named profile as a YAML document, the shape Load reads back
func Marshal[P any](name string, profile P) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]P{name: profile}); err != nil {
		return nil, fmt.Errorf("failed to encode profile %q: %w", name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode profile %q: %w", name, err)
	}
	return buf.Bytes(), nil
}
