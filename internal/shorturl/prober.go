package shorturl

import (
	"context"
	"net/http"
	"time"
)

// URLProber checks that a target URL is alive before it is shortened.
type URLProber interface {
	// Probe returns nil when the URL responds, ErrNotReachable otherwise.
	Probe(ctx context.Context, target string) error
}

// HTTPProber probes URLs with a HEAD request, falling back to GET when the
// target rejects HEAD.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with the given per-probe timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, target string) error {
	if err := p.request(ctx, http.MethodHead, target); err == nil {
		return nil
	}

	return p.request(ctx, http.MethodGet, target)
}

func (p *HTTPProber) request(ctx context.Context, method, target string) error {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return ErrNotReachable
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return ErrNotReachable
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return ErrNotReachable
	}

	return nil
}

// NoopProber accepts every URL without probing. Used when liveness checking
// is disabled.
type NoopProber struct{}

func (NoopProber) Probe(_ context.Context, _ string) error {
	return nil
}
