package executor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/studiowebux/diffreq/internal/types"
)

// DefaultTimeout bounds a whole request when ClientOptions leaves it unset
const DefaultTimeout = 30 * time.Second

// ClientOptions configures the HTTP client shared by every request of a run
type ClientOptions struct {
	Timeout            time.Duration
	CAFile             string // PEM bundle used to verify servers
	CertFile           string // client certificate for mTLS
	KeyFile            string
	InsecureSkipVerify bool
}

// Execute sends a resolved request and captures the response. Transport
// failures wrap types.ErrNetwork; a status outside 2xx/3xx is a *types.StatusError.
func Execute(ctx context.Context, client *http.Client, req *types.ResolvedRequest) (*types.Response, error) {
	if client == nil {
		client = http.DefaultClient
	}
	startTime := time.Now()

	var bodyReader io.Reader
	requestSize := 0
	if req.Body != "" {
		bodyReader = strings.NewReader(req.Body)
		requestSize = len(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", types.ErrNetwork, err)
	}
	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	duration := time.Since(startTime).Milliseconds()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", types.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, &types.StatusError{
			Status:     resp.StatusCode,
			StatusText: resp.Status,
			URL:        req.URL,
		}
	}

	return &types.Response{
		Proto:        resp.Proto,
		Status:       resp.StatusCode,
		StatusText:   statusText(resp),
		Headers:      resp.Header,
		Body:         bodyBytes,
		Duration:     duration,
		RequestSize:  requestSize,
		ResponseSize: len(bodyBytes),
	}, nil
}

// statusText strips the numeric code from resp.Status ("200 OK" -> "OK")
func statusText(resp *http.Response) string {
	code := fmt.Sprintf("%d", resp.StatusCode)
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// NewClient creates an HTTP client with a timeout and optional TLS/mTLS configuration
func NewClient(opts ClientOptions) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if opts.InsecureSkipVerify || opts.CAFile != "" || opts.CertFile != "" {
		tlsCfg := &tls.Config{
			InsecureSkipVerify: opts.InsecureSkipVerify,
		}

		// Load client certificate if provided (for mTLS)
		if opts.CertFile != "" {
			if opts.KeyFile == "" {
				return nil, fmt.Errorf("client certificate %s needs a key file", opts.CertFile)
			}
			cert, err := tls.LoadX509KeyPair(opts.CertFile, opts.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load client certificate: %w", err)
			}
			tlsCfg.Certificates = []tls.Certificate{cert}
		}

		// Load CA certificate if provided (for server verification)
		if opts.CAFile != "" {
			caCert, err := os.ReadFile(opts.CAFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read CA certificate: %w", err)
			}
			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM(caCert) {
				return nil, fmt.Errorf("failed to parse CA certificate")
			}
			tlsCfg.RootCAs = caCertPool
		}

		transport.TLSClientConfig = tlsCfg
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}
