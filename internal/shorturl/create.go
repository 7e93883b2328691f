package shorturl

import (
	"context"
	"net/url"
	"time"
)

// IDGenerator mints unique short URL identifiers.
type IDGenerator func() string

// SafetyChecker decides whether a target URL is safe to link to.
type SafetyChecker interface {
	IsSafe(ctx context.Context, target string) (bool, error)
}

// AlwaysSafe is a SafetyChecker that accepts every URL.
type AlwaysSafe struct{}

func (AlwaysSafe) IsSafe(_ context.Context, _ string) (bool, error) {
	return true, nil
}

// CreateInput carries the data needed to shorten a URL.
type CreateInput struct {
	URL     string
	IP      string
	Sponsor string
}

// CreateResult is the outcome of a successful shortening.
type CreateResult struct {
	ID   ID
	Safe bool
}

// Creator is the use case that shortens URLs.
type Creator struct {
	store      Repository
	prober     URLProber
	safety     SafetyChecker
	generateID IDGenerator
	mode       int
}

// NewCreator creates the shorten use case.
func NewCreator(store Repository, prober URLProber, safety SafetyChecker, generator IDGenerator, mode int) *Creator {
	return &Creator{
		store:      store,
		prober:     prober,
		safety:     safety,
		generateID: generator,
		mode:       mode,
	}
}

// Create validates and probes the target URL, then persists a new short URL.
// It returns ErrInvalidURL for malformed input and ErrNotReachable when the
// target fails the liveness probe.
func (c *Creator) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if err := validateURL(input.URL); err != nil {
		return nil, err
	}

	if err := c.prober.Probe(ctx, input.URL); err != nil {
		return nil, err
	}

	safe, err := c.safety.IsSafe(ctx, input.URL)
	if err != nil {
		return nil, err
	}

	link := &ShortURL{
		ID:        ID(c.generateID()),
		Target:    input.URL,
		Sponsor:   input.Sponsor,
		Mode:      c.mode,
		Safe:      safe,
		CreatedAt: time.Now(),
	}

	if err := c.store.Save(ctx, link); err != nil {
		return nil, err
	}

	return &CreateResult{ID: link.ID, Safe: link.Safe}, nil
}

// validateURL requires an absolute http or https URL with a host.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
