package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thdgm/urlshortener/internal/shorturl"
)

// PostgresStore is a PostgreSQL implementation of shorturl.Repository and
// shorturl.ClickStore.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, link *shorturl.ShortURL) error {
	query := `
		INSERT INTO short_urls (id, target, sponsor, mode, safe, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		string(link.ID),
		link.Target,
		nullableString(link.Sponsor),
		link.Mode,
		link.Safe,
		link.CreatedAt,
	)

	return err
}

func (p *PostgresStore) GetByID(ctx context.Context, id shorturl.ID) (*shorturl.ShortURL, error) {
	query := `
		SELECT id, target, sponsor, mode, safe, created_at
		FROM short_urls
		WHERE id = $1
	`

	var link shorturl.ShortURL

	var sponsor *string

	err := p.pool.QueryRow(ctx, query, string(id)).Scan(
		&link.ID,
		&link.Target,
		&sponsor,
		&link.Mode,
		&link.Safe,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shorturl.ErrNotFound
		}

		return nil, err
	}

	if sponsor != nil {
		link.Sponsor = *sponsor
	}

	return &link, nil
}

func (p *PostgresStore) SaveClick(ctx context.Context, click *shorturl.Click) error {
	query := `
		INSERT INTO clicks (link_id, client_ip, clicked_at)
		VALUES ($1, $2, $3)
	`

	_, err := p.pool.Exec(ctx, query,
		string(click.ID),
		click.ClientIP,
		click.ClickedAt,
	)

	return err
}

func (p *PostgresStore) CountClicks(ctx context.Context, id shorturl.ID) (int64, error) {
	query := `
		SELECT count(*)
		FROM clicks
		WHERE link_id = $1
	`

	var count int64

	if err := p.pool.QueryRow(ctx, query, string(id)).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
