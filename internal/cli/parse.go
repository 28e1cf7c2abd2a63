package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/studiowebux/diffreq/internal/highlight"
	"github.com/studiowebux/diffreq/internal/parser"
	"github.com/studiowebux/diffreq/internal/request"
	"github.com/studiowebux/diffreq/internal/types"
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

// ParseDiffOptions contains options for generating a diff profile from two URLs
type ParseDiffOptions struct {
	*Common
	URL1        string
	URL2        string
	Profile     string
	SkipHeaders []string
	Copy        bool
	// Prompter asks for missing values; nil means flags must supply them
	Prompter Prompter
}

// ParseDiff builds a diff profile from two URLs and writes it as YAML. When
// no skip headers are given and a prompter is set, the first URL is probed so
// the user can pick headers to skip from its response.
func ParseDiff(ctx context.Context, opts ParseDiffOptions, w io.Writer) error {
	url1, err := ask(opts.Prompter, opts.URL1, "url1", "First URL", "https://staging.example.com/todos/1?a=1", validateURL)
	if err != nil {
		return err
	}
	url2, err := ask(opts.Prompter, opts.URL2, "url2", "Second URL", "https://api.example.com/todos/1?a=1", validateURL)
	if err != nil {
		return err
	}
	name, err := ask(opts.Prompter, opts.Profile, "profile", "Profile name", "todo", validateName)
	if err != nil {
		return err
	}

	req1, err := request.FromURL(url1)
	if err != nil {
		return err
	}
	req2, err := request.FromURL(url2)
	if err != nil {
		return err
	}

	skip := opts.SkipHeaders
	if len(skip) == 0 && opts.Prompter != nil {
		names, err := probeHeaders(ctx, opts.Common, req1)
		if err != nil {
			return err
		}
		skip, err = opts.Prompter.PickHeaders("Select response headers to skip", names)
		if err != nil {
			return err
		}
	}

	profile := types.DiffProfile{
		Req1: *req1,
		Req2: *req2,
		Res:  types.ResponseProfile{SkipHeaders: normalizeHeaders(skip)},
	}
	return emitProfile(opts.Common, name, profile, opts.Copy, w)
}

// ParseRequestOptions contains options for generating a request profile from a URL
type ParseRequestOptions struct {
	*Common
	URL      string
	Profile  string
	Copy     bool
	Prompter Prompter
}

// ParseRequest builds a request profile from a URL and writes it as YAML
func ParseRequest(ctx context.Context, opts ParseRequestOptions, w io.Writer) error {
	raw, err := ask(opts.Prompter, opts.URL, "url", "URL", "https://api.example.com/todos/1?a=1", validateURL)
	if err != nil {
		return err
	}
	name, err := ask(opts.Prompter, opts.Profile, "profile", "Profile name", "todo", validateName)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	profile, err := request.FromURL(raw)
	if err != nil {
		return err
	}
	return emitProfile(opts.Common, name, *profile, opts.Copy, w)
}

// ask returns current when set, otherwise prompts for the value
func ask(p Prompter, current, flag, title, placeholder string, validate func(string) error) (string, error) {
	if current != "" {
		if err := validate(current); err != nil {
			return "", fmt.Errorf("--%s: %w", flag, err)
		}
		return current, nil
	}
	if p == nil {
		return "", fmt.Errorf("--%s is required", flag)
	}
	return p.Input(title, placeholder, validate)
}

func validateURL(s string) error {
	_, err := request.FromURL(strings.TrimSpace(s))
	return err
}

func validateName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.ContainsAny(s, " \t:") {
		return fmt.Errorf("profile name %q cannot contain spaces or colons", s)
	}
	return nil
}

// probeHeaders sends req once and returns its response header names,
// lower-cased and sorted
func probeHeaders(ctx context.Context, c *Common, req *types.RequestProfile) ([]string, error) {
	r, err := c.runner(io.Discard)
	if err != nil {
		return nil, err
	}
	capture, err := r.Send(ctx, req, types.ExtraArgs{})
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", req.URL, err)
	}
	return headerNames(capture.Response.Headers), nil
}

func headerNames(h http.Header) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, strings.ToLower(k))
	}
	sort.Strings(names)
	return names
}

func normalizeHeaders(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func emitProfile[P any](c *Common, name string, profile P, copyOut bool, w io.Writer) error {
	data, err := parser.Marshal(name, profile)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, highlight.Maybe(string(data), highlight.YAML, c.Color)); err != nil {
		return err
	}

	if copyOut {
		if err := copyToClipboard(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		c.logger().Info("profile copied to clipboard", "profile", name)
	}
	return nil
}
