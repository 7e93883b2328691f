package shorturl

import (
	"context"
	"time"
)

// Info is the usage metadata reported for a short URL.
type Info struct {
	Clicks  int64
	Created time.Time
	Target  string
}

// InfoResolver is the use case that reports short URL metadata.
type InfoResolver struct {
	store  Repository
	clicks ClickStore
}

// NewInfoResolver creates the info use case.
func NewInfoResolver(store Repository, clicks ClickStore) *InfoResolver {
	return &InfoResolver{store: store, clicks: clicks}
}

// Info resolves usage metadata for an identifier. It returns ErrNotFound for
// unknown ids.
func (r *InfoResolver) Info(ctx context.Context, id ID) (*Info, error) {
	link, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clicks, err := r.clicks.CountClicks(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Info{
		Clicks:  clicks,
		Created: link.CreatedAt,
		Target:  link.Target,
	}, nil
}
