// Package runner drives a diff run: both requests of a diff profile are
// resolved, sent and filtered concurrently, then the canonical texts are diffed.
package runner

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/diffreq/internal/diff"
	"github.com/studiowebux/diffreq/internal/executor"
	"github.com/studiowebux/diffreq/internal/filter"
	"github.com/studiowebux/diffreq/internal/logging"
	"github.com/studiowebux/diffreq/internal/request"
	"github.com/studiowebux/diffreq/internal/types"
)

// Runner executes requests and diffs. The zero value is usable: it sends
// through http.DefaultClient, renders with diff.Plain and logs nothing.
type Runner struct {
	Client   *http.Client
	Renderer diff.Renderer
	Logger   *slog.Logger
}

// Capture is one request as sent and its response
type Capture struct {
	Request  *types.ResolvedRequest
	Response *types.Response
}

// Send resolves a request profile with the overrides and sends it
func (r *Runner) Send(ctx context.Context, profile *types.RequestProfile, args types.ExtraArgs) (*Capture, error) {
	resolved, err := request.Resolve(profile, args)
	if err != nil {
		return nil, err
	}

	resp, err := executor.Execute(ctx, r.Client, resolved)
	if err != nil {
		r.logger().Debug("request failed", "method", resolved.Method, "url", resolved.URL, "error", err)
		return nil, err
	}

	r.logger().Debug("request sent",
		"method", resolved.Method,
		"url", resolved.URL,
		"status", resp.Status,
		"duration", executor.FormatDuration(resp.Duration),
		"size", executor.FormatSize(resp.ResponseSize),
	)
	return &Capture{Request: resolved, Response: resp}, nil
}

// Canonical sends a request and returns its filtered canonical text
func (r *Runner) Canonical(ctx context.Context, profile *types.RequestProfile, args types.ExtraArgs, spec types.ResponseProfile) (string, error) {
	capture, err := r.Send(ctx, profile, args)
	if err != nil {
		return "", err
	}
	return filter.Canonical(capture.Response, spec)
}

// Diff sends req1 and req2 of the profile concurrently, filters both
// responses with the profile's res spec and renders their diff. The first
// failure cancels the other request and is returned as a *types.SideError;
// no partial diff is produced. Identical responses yield "".
func (r *Runner) Diff(ctx context.Context, profile *types.DiffProfile, args types.ExtraArgs) (string, error) {
	runID := uuid.NewString()
	logger := r.logger().With("run_id", runID)
	scoped := &Runner{Client: r.Client, Renderer: r.Renderer, Logger: logger}
	if !args.IsEmpty() {
		logger.Debug("overrides applied to both requests",
			"query", len(args.Query), "headers", len(args.Headers), "body", len(args.Body))
	}

	sides := []struct {
		name    string
		profile *types.RequestProfile
	}{
		{"req1", &profile.Req1},
		{"req2", &profile.Req2},
	}
	texts := make([]string, len(sides))

	g, gctx := errgroup.WithContext(ctx)
	for i, side := range sides {
		g.Go(func() error {
			text, err := scoped.Canonical(gctx, side.profile, args, profile.Res)
			if err != nil {
				return &types.SideError{Side: side.name, Err: err}
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("diff run failed", "error", err)
		return "", err
	}

	out := diff.Text(texts[0], texts[1], r.renderer())
	logger.Info("diff run complete", "changed", out != "")
	return out, nil
}

func (r *Runner) renderer() diff.Renderer {
	if r.Renderer == nil {
		return diff.Plain{}
	}
	return r.Renderer
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}
