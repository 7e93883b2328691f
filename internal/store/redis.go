package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thdgm/urlshortener/internal/shorturl"
)

const (
	linkPrefix     = "link:"
	clickPrefix    = "clicks:"
	clickLogPrefix = "clicklog:"
)

// RedisStore is a Redis implementation of shorturl.Repository and
// shorturl.ClickStore. Links live in a hash per identifier; clicks keep a
// counter plus a capped detail list.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Save(ctx context.Context, link *shorturl.ShortURL) error {
	return r.client.HSet(ctx, linkPrefix+string(link.ID), linkFields(link)).Err()
}

func (r *RedisStore) GetByID(ctx context.Context, id shorturl.ID) (*shorturl.ShortURL, error) {
	fields, err := r.client.HGetAll(ctx, linkPrefix+string(id)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shorturl.ErrNotFound
	}

	return linkFromFields(id, fields), nil
}

func (r *RedisStore) SaveClick(ctx context.Context, click *shorturl.Click) error {
	// Counter and detail list updated atomically
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, clickPrefix+string(click.ID))
	pipe.LPush(ctx, clickLogPrefix+string(click.ID),
		strconv.FormatInt(click.ClickedAt.UnixNano(), 10)+"|"+click.ClientIP)
	pipe.LTrim(ctx, clickLogPrefix+string(click.ID), 0, 999)
	_, err := pipe.Exec(ctx)

	return err
}

func (r *RedisStore) CountClicks(ctx context.Context, id shorturl.ID) (int64, error) {
	count, err := r.client.Get(ctx, clickPrefix+string(id)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return count, nil
}

func linkFields(link *shorturl.ShortURL) map[string]any {
	return map[string]any{
		"target":     link.Target,
		"sponsor":    link.Sponsor,
		"mode":       strconv.Itoa(link.Mode),
		"safe":       strconv.FormatBool(link.Safe),
		"created_at": strconv.FormatInt(link.CreatedAt.UnixNano(), 10),
	}
}

func linkFromFields(id shorturl.ID, fields map[string]string) *shorturl.ShortURL {
	link := &shorturl.ShortURL{
		ID:      id,
		Target:  fields["target"],
		Sponsor: fields["sponsor"],
	}

	if mode, err := strconv.Atoi(fields["mode"]); err == nil {
		link.Mode = mode
	}

	if safe, err := strconv.ParseBool(fields["safe"]); err == nil {
		link.Safe = safe
	}

	if nanos, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		link.CreatedAt = time.Unix(0, nanos)
	}

	return link
}
