/*
Package executor sends resolved requests over HTTP and captures the responses.

# Overview

The executor package is the only place that touches the network:
  - Execute sends a types.ResolvedRequest and returns a types.Response
  - NewClient builds the *http.Client shared by a run (timeout, TLS/mTLS)
  - FormatDuration and FormatSize render response metadata for display

Request merging and body encoding happen earlier, in package request. The
executor sends the method, URL, headers and body text exactly as resolved.

# Timeouts and Cancellation

Timeouts are owned by the client built with NewClient (30s by default). The
context passed to Execute cancels an in-flight request; when one side of a
diff fails, the orchestrator cancels the other through that context.

# TLS Configuration

TLS support includes:
  - Custom CA certificates
  - Client certificates (mTLS)
  - InsecureSkipVerify for development

# Error Handling

Errors are categorized as:
  - Network errors (connection failures, timeouts, cancellation) wrap types.ErrNetwork
  - Statuses outside 2xx/3xx return *types.StatusError, which also matches types.ErrNetwork

The underlying cause stays in the chain, so errors.Is(err, context.DeadlineExceeded)
still works.

# Example Usage

	client, err := executor.NewClient(executor.ClientOptions{Timeout: 10 * time.Second})
	if err != nil {
		return err
	}

	resolved, err := request.Resolve(profile, args)
	if err != nil {
		return err
	}

	resp, err := executor.Execute(ctx, client, resolved)
	if err != nil {
		return err
	}

	fmt.Printf("%d %s (%s, %s)\n", resp.Status, resp.StatusText,
		executor.FormatDuration(resp.Duration), executor.FormatSize(resp.ResponseSize))

# Thread Safety

Execute is safe to call concurrently with the same client.
*/
package executor
