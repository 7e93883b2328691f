package shorturl

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidURL indicates the submitted URL is not a well-formed http(s) URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrNotFound indicates no short URL exists for the given identifier.
	ErrNotFound = errors.New("short url not found")

	// ErrNotReachable indicates the target URL failed the liveness probe.
	ErrNotReachable = errors.New("url not reachable")
)

// ID represents a short URL identifier.
type ID string

// ShortURL represents a shortened URL entity.
type ShortURL struct {
	ID        ID
	Target    string
	Sponsor   string // empty when the link has no sponsor
	Mode      int    // HTTP status used for the redirect (301/302/307)
	Safe      bool
	CreatedAt time.Time
}

// Click represents a single recorded access to a short URL.
type Click struct {
	ID        ID
	ClientIP  string
	ClickedAt time.Time
}

// Repository defines storage operations for short URLs.
type Repository interface {
	Save(ctx context.Context, link *ShortURL) error
	GetByID(ctx context.Context, id ID) (*ShortURL, error)
}

// ClickStore defines storage operations for click events.
type ClickStore interface {
	SaveClick(ctx context.Context, click *Click) error
	CountClicks(ctx context.Context, id ID) (int64, error)
}
