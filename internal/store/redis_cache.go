package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thdgm/urlshortener/internal/shorturl"
)

const cachePrefix = "linkcache:"

// RedisCacheRepository wraps a shorturl.Repository with Redis caching for
// reads. Saves are write-through; cache failures fall back to the store.
type RedisCacheRepository struct {
	store  shorturl.Repository
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(store shorturl.Repository, client *redis.Client, ttl time.Duration) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisCacheRepository) Save(ctx context.Context, link *shorturl.ShortURL) error {
	if err := r.store.Save(ctx, link); err != nil {
		return err
	}

	r.cacheLink(ctx, link)

	return nil
}

func (r *RedisCacheRepository) GetByID(ctx context.Context, id shorturl.ID) (*shorturl.ShortURL, error) {
	if link, err := r.getFromCache(ctx, id); err == nil {
		return link, nil
	}

	link, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shorturl.ShortURL) {
	key := cachePrefix + string(link.ID)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, linkFields(link))
	pipe.Expire(ctx, key, r.ttl)
	// Cache write failures are invisible to callers
	_, _ = pipe.Exec(ctx)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, id shorturl.ID) (*shorturl.ShortURL, error) {
	fields, err := r.client.HGetAll(ctx, cachePrefix+string(id)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shorturl.ErrNotFound
	}

	return linkFromFields(id, fields), nil
}
