package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/thdgm/urlshortener/internal/analytics"
	"github.com/thdgm/urlshortener/internal/handlers"
	"github.com/thdgm/urlshortener/internal/messaging"
	"github.com/thdgm/urlshortener/internal/middleware"
	"github.com/thdgm/urlshortener/internal/ratelimit"
	"github.com/thdgm/urlshortener/internal/shorturl"
	"github.com/thdgm/urlshortener/internal/store"
	"go.uber.org/zap"
)

// Options holds the service configuration, parsed by humacli.
type Options struct {
	Port         int    `default:"8888"           help:"Port to listen on"                              short:"p"`
	BaseURL      string `default:""               help:"Public base URL; http://localhost:<port> when empty"`
	CodeLength   int    `default:"8"              help:"Length of generated identifiers"                short:"c"`
	RedirectMode int    `default:"307"            help:"HTTP status used for redirect responses"`
	RedisAddr    string `default:"localhost:6379" help:"Redis server address"                           short:"r"`
	PostgresDSN  string `default:""               help:"Postgres connection string; Redis-only storage when empty"`
	ProbeTimeout int    `default:"3"              help:"Reachability probe timeout in seconds"`
	SkipProbe    bool   `default:"false"          help:"Disable the reachability probe"`
	LogFormat    string `default:"console"        help:"Log format (console or json)"`
}

// PublicBaseURL is the address short URLs are composed against.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool. It is only invoked when
// a Postgres DSN is configured.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// RepositoryPackage provides the link repository and click store. With a
// Postgres DSN the repository is Postgres behind a Redis read cache;
// otherwise both live in Redis.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*store.RedisStore, error) {
		return store.NewRedisStore(do.MustInvoke[*redis.Client](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (shorturl.Repository, error) {
		options := do.MustInvoke[*Options](i)

		if options.PostgresDSN == "" {
			return do.MustInvoke[*store.RedisStore](i), nil
		}

		pool := do.MustInvoke[*pgxpool.Pool](i)
		client := do.MustInvoke[*redis.Client](i)

		return store.NewRedisCacheRepository(store.NewPostgresStore(pool), client, time.Hour), nil
	})

	do.Provide(injector, func(i *do.Injector) (shorturl.ClickStore, error) {
		options := do.MustInvoke[*Options](i)

		if options.PostgresDSN == "" {
			return do.MustInvoke[*store.RedisStore](i), nil
		}

		return store.NewPostgresStore(do.MustInvoke[*pgxpool.Pool](i)), nil
	})
}

// RateLimitPackage provides the request limiter with its default limits.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*ratelimit.Limiter, error) {
		limitStore := store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i))

		return ratelimit.NewLimiter(limitStore, []ratelimit.LimitConfig{
			{Window: time.Minute, Max: 60},
		}), nil
	})
}

// PublisherGroupPackage provides the analytics event publisher over Redis
// streams.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group that persists
// click events and logs created links.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		clicks := do.MustInvoke[shorturl.ClickStore](i)

		subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: "analytics",
		}, watermill.NopLogger{})
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkClicked, analytics.NewClickHandler(clicks), logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicLinkCreated, analytics.NewLinkCreatedHandler(logger), logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the API with all routes registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)

		api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))

		// Request metadata must be extracted before rate limiting keys on it
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.RateLimiter(api, do.MustInvoke[*ratelimit.Limiter](i), logger),
		)

		generator, err := nanoid.Standard(options.CodeLength)
		if err != nil {
			return nil, err
		}

		var prober shorturl.URLProber = shorturl.NewHTTPProber(time.Duration(options.ProbeTimeout) * time.Second)
		if options.SkipProbe {
			prober = shorturl.NoopProber{}
		}

		repo := do.MustInvoke[shorturl.Repository](i)
		clicks := do.MustInvoke[shorturl.ClickStore](i)
		publishers := do.MustInvoke[*messaging.PublisherGroup](i)

		links := handlers.NewLinkHandler(
			shorturl.NewCreator(repo, prober, shorturl.AlwaysSafe{}, generator, options.RedirectMode),
			shorturl.NewRedirector(repo),
			shorturl.NewInfoResolver(repo, clicks),
			options.PublicBaseURL(),
			messaging.NewPublishFunc[analytics.LinkCreatedEvent](publishers.Publisher(), analytics.TopicLinkCreated),
			messaging.NewPublishFunc[analytics.ClickEvent](publishers.Publisher(), analytics.TopicLinkClicked),
			logger,
		)

		health := handlers.NewHealthHandler(
			handlers.NewRedisHealthChecker(do.MustInvoke[*redis.Client](i)),
		)

		handlers.RegisterRoutes(api, links, health)

		return api, nil
	})
}
