package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/diffreq/internal/config"
	"github.com/studiowebux/diffreq/internal/diff"
	"github.com/studiowebux/diffreq/internal/executor"
	"github.com/studiowebux/diffreq/internal/filter"
	"github.com/studiowebux/diffreq/internal/highlight"
	"github.com/studiowebux/diffreq/internal/logging"
	"github.com/studiowebux/diffreq/internal/parser"
	"github.com/studiowebux/diffreq/internal/request"
	"github.com/studiowebux/diffreq/internal/runner"
	"github.com/studiowebux/diffreq/internal/types"
	"github.com/studiowebux/diffreq/internal/value"
)

// Output formats for a single request
const (
	OutputText = "text"
	OutputBody = "body"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Common holds what every command needs: resolved settings, a logger and
// whether stdout gets colors
type Common struct {
	Config *config.Config
	Logger *slog.Logger
	Color  bool
}

// Setup loads settings from the env file and environment, lets apply
// override them from flags, and builds the logger
func Setup(envFile, defaultConfigPath string, apply func(*config.Config) error) (*Common, error) {
	cfg, err := config.Load(envFile, defaultConfigPath)
	if err != nil {
		return nil, err
	}
	if apply != nil {
		if err := apply(cfg); err != nil {
			return nil, err
		}
	}
	return &Common{
		Config: cfg,
		Logger: logging.New(cfg.Logging()),
		Color:  cfg.UseColor(os.Stdout),
	}, nil
}

// WithInterrupt returns a context cancelled on Ctrl+C
func WithInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt)
}

func (c *Common) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Nop()
	}
	return c.Logger
}

func (c *Common) runner(w io.Writer) (*runner.Runner, error) {
	client, err := executor.NewClient(c.Config.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to configure HTTP client: %w", err)
	}
	return &runner.Runner{
		Client:   client,
		Renderer: newRenderer(w, c.Color),
		Logger:   c.logger(),
	}, nil
}

func newRenderer(w io.Writer, color bool) diff.Renderer {
	if !color {
		return diff.Plain{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return diff.NewTerminal(r)
}

// getProfile looks name up, listing the available profiles when it is empty
func getProfile[P any](store *parser.Store[P], name string) (*P, error) {
	if name == "" {
		if store.Len() == 0 {
			return nil, fmt.Errorf("no profiles defined in %s", store.Source())
		}
		return nil, fmt.Errorf("a profile is required (-p), available in %s: %s",
			store.Source(), strings.Join(store.Names(), ", "))
	}
	return store.Get(name)
}

// validateQueries rejects malformed JMESPath before any request is sent
func validateQueries(filterExpr, query string) error {
	if filterExpr != "" && !filter.IsValidJMESPath(filterExpr) {
		return fmt.Errorf("invalid --filter expression %q", filterExpr)
	}
	if query != "" && !filter.IsShellCommand(query) && !filter.IsValidJMESPath(query) {
		return fmt.Errorf("invalid --query expression %q (want JMESPath or $(command))", query)
	}
	return nil
}

// DiffOptions contains options for diffing a profile
type DiffOptions struct {
	*Common
	Profile   string
	ExtraArgs []string // override strings from -e
}

// RunDiff loads the diff config, sends both requests of the profile and
// writes their diff to w. Nothing is written when the responses match.
func RunDiff(ctx context.Context, opts DiffOptions, w io.Writer) error {
	args, err := parser.ParseOverrides(opts.ExtraArgs)
	if err != nil {
		return err
	}

	store, err := parser.LoadDiffConfig(opts.Config.ConfigPath)
	if err != nil {
		return err
	}
	profile, err := getProfile(store, opts.Profile)
	if err != nil {
		return err
	}

	r, err := opts.runner(w)
	if err != nil {
		return err
	}
	out, err := r.Diff(ctx, profile, args)
	if err != nil {
		return fmt.Errorf("profile %q: %w", opts.Profile, err)
	}
	if out == "" {
		opts.logger().Info("responses are identical", "profile", opts.Profile)
		return nil
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("%w: %w", types.ErrDiffRender, err)
	}
	return nil
}

// RequestOptions contains options for playing back a request profile
type RequestOptions struct {
	*Common
	Profile   string
	ExtraArgs []string
	Output    string // text, body, json, yaml
	Full      bool   // show request line and headers
	Filter    string // JMESPath filter expression
	Query     string // JMESPath query or $(shell command)
}

// RunRequest loads the request config, sends the profile and writes the response
func RunRequest(ctx context.Context, opts RequestOptions, w io.Writer) error {
	args, err := parser.ParseOverrides(opts.ExtraArgs)
	if err != nil {
		return err
	}
	if err := validateQueries(opts.Filter, opts.Query); err != nil {
		return err
	}

	store, err := parser.LoadRequestConfig(opts.Config.ConfigPath)
	if err != nil {
		return err
	}
	profile, err := getProfile(store, opts.Profile)
	if err != nil {
		return err
	}

	r, err := opts.runner(w)
	if err != nil {
		return err
	}
	capture, err := r.Send(ctx, profile, args)
	if err != nil {
		return fmt.Errorf("profile %q: %w", opts.Profile, err)
	}

	body := displayBody(capture.Response)
	if opts.Filter != "" || opts.Query != "" {
		filtered, err := filter.Apply(ctx, body, opts.Filter, opts.Query)
		if err != nil {
			opts.logger().Warn("filter/query error", "error", err)
		} else {
			body = filtered
		}
	}

	output, err := formatOutput(capture, body, opts)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = io.WriteString(w, output)
	return err
}

// displayBody pretty-prints JSON bodies and leaves anything else as is
func displayBody(resp *types.Response) string {
	mediaType := request.MediaType(resp.Headers.Get("Content-Type"))
	if lang, ok := highlight.ForContentType(mediaType); ok && lang == highlight.JSON {
		if v, err := value.ParseJSON(resp.Body); err == nil {
			return v.Pretty()
		}
	}
	return string(resp.Body)
}

// responseView is the serialized form of a response for json/yaml output
type responseView struct {
	Method       string            `json:"method" yaml:"method"`
	URL          string            `json:"url" yaml:"url"`
	Status       int               `json:"status" yaml:"status"`
	StatusText   string            `json:"statusText" yaml:"statusText"`
	Headers      map[string]string `json:"headers" yaml:"headers"`
	Body         string            `json:"body" yaml:"body"`
	Duration     int64             `json:"duration" yaml:"duration"`
	RequestSize  int               `json:"requestSize" yaml:"requestSize"`
	ResponseSize int               `json:"responseSize" yaml:"responseSize"`
}

// formatOutput formats the result based on the output format
func formatOutput(capture *runner.Capture, body string, opts RequestOptions) (string, error) {
	resp := capture.Response

	switch opts.Output {
	case OutputJSON, OutputYAML:
		view := responseView{
			Method:       capture.Request.Method,
			URL:          capture.Request.URL,
			Status:       resp.Status,
			StatusText:   resp.StatusText,
			Headers:      make(map[string]string, len(resp.Headers)),
			Body:         body,
			Duration:     resp.Duration,
			RequestSize:  resp.RequestSize,
			ResponseSize: resp.ResponseSize,
		}
		for key, values := range resp.Headers {
			view.Headers[key] = strings.Join(values, ", ")
		}
		if opts.Output == OutputYAML {
			data, err := yaml.Marshal(view)
			if err != nil {
				return "", err
			}
			return string(data), nil
		}
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case OutputBody:
		return ensureNewline(body), nil

	case OutputText, "":
		styles := newStyles(opts.Color)
		var sb strings.Builder

		if opts.Full {
			sb.WriteString(styles.faint.Render(capture.Request.Method + " " + capture.Request.URL))
			sb.WriteString("\n")
		}

		sb.WriteString(styles.status(resp.Status).Render(fmt.Sprintf("%s %d %s", resp.Proto, resp.Status, resp.StatusText)))
		sb.WriteString("\n")
		sb.WriteString(styles.faint.Render(fmt.Sprintf("Duration: %s | Size: %s",
			executor.FormatDuration(resp.Duration),
			executor.FormatSize(resp.ResponseSize))))
		sb.WriteString("\n")

		if opts.Full && len(resp.Headers) > 0 {
			sb.WriteString("\nHeaders:\n")
			for _, key := range sortedKeys(resp.Headers) {
				for _, v := range resp.Headers[key] {
					sb.WriteString(fmt.Sprintf("  %s: %s\n", styles.header.Render(key), v))
				}
			}
		}

		if body != "" {
			sb.WriteString("\n")
			if lang, ok := highlight.ForContentType(request.MediaType(resp.Headers.Get("Content-Type"))); ok {
				body = highlight.Maybe(body, lang, opts.Color)
			}
			sb.WriteString(ensureNewline(body))
		}
		return sb.String(), nil

	default:
		return "", fmt.Errorf("unknown output format %q (want text, body, json or yaml)", opts.Output)
	}
}

type outputStyles struct {
	faint, header, ok, redirect, failed lipgloss.Style
}

func newStyles(color bool) outputStyles {
	r := lipgloss.NewRenderer(io.Discard)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return outputStyles{
		faint:    r.NewStyle().Faint(true),
		header:   r.NewStyle().Foreground(lipgloss.Color("6")),
		ok:       r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		redirect: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		failed:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (s outputStyles) status(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return s.ok
	case code >= 400:
		return s.failed
	default:
		return s.redirect
	}
}

func sortedKeys(h http.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
