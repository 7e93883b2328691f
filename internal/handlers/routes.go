package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/thdgm/urlshortener/internal/ratelimit"
)

// Route patterns. RedirectRoute is shared with RedirectLocation so the
// registered route and the reverse-routed Location can never drift apart.
const (
	RedirectRoute = "/tiny-{id}"
	CreateRoute   = "/api/link"
	InfoRoute     = "/info/{id}"
	HealthRoute   = "/health"
)

// RedirectLocation builds the public short URL for an identifier from the
// base address and the redirect route pattern.
func RedirectLocation(baseURL, id string) string {
	return baseURL + strings.Replace(RedirectRoute, "{id}", id, 1)
}

// RegisterRoutes registers all short URL routes with per-endpoint rate limit
// configuration.
func RegisterRoutes(api huma.API, links *LinkHandler, health *HealthHandler) {
	// Stricter limits for the write path
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          CreateRoute,
		DefaultStatus: http.StatusCreated,
		Summary:       "Create short URL",
		Description:   "Shortens the submitted URL and returns its public short form.",
		Tags:          []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
					{Window: 24 * time.Hour, Max: 500},
				},
			},
		},
	}, links.Shorten)

	// Relaxed limits for the high-traffic redirect path
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        RedirectRoute,
		Summary:     "Redirect to target URL",
		Description: "Redirects to the URL associated with the identifier and records a click.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, links.RedirectTo)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        InfoRoute,
		Summary:     "Short URL info",
		Description: "Reports click count, creation date, and target of a short URL.",
		Tags:        []string{"Links"},
	}, links.LinkInfo)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    HealthRoute,
		Summary: "Health check",
		Tags:    []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, health.Check)
}
