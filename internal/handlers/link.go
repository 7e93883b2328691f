package handlers

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/thdgm/urlshortener/internal/analytics"
	"github.com/thdgm/urlshortener/internal/messaging"
	"github.com/thdgm/urlshortener/internal/shorturl"
	"go.uber.org/zap"
)

// CreateUseCase shortens a URL and reports the identifier plus safety flag.
type CreateUseCase interface {
	Create(ctx context.Context, input shorturl.CreateInput) (*shorturl.CreateResult, error)
}

// RedirectUseCase resolves an identifier to its target and redirect status.
type RedirectUseCase interface {
	Redirect(ctx context.Context, id shorturl.ID) (*shorturl.Redirection, error)
}

// InfoUseCase resolves an identifier to its usage metadata.
type InfoUseCase interface {
	Info(ctx context.Context, id shorturl.ID) (*shorturl.Info, error)
}

// LinkHandler handles short URL operations.
type LinkHandler struct {
	create             CreateUseCase
	redirect           RedirectUseCase
	info               InfoUseCase
	baseURL            string
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishClick       messaging.Publish[analytics.ClickEvent]
	logger             *zap.Logger
}

// NewLinkHandler creates a new link handler with injected use cases.
func NewLinkHandler(
	create CreateUseCase,
	redirect RedirectUseCase,
	info InfoUseCase,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishClick messaging.Publish[analytics.ClickEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		create:             create,
		redirect:           redirect,
		info:               info,
		baseURL:            baseURL,
		publishLinkCreated: publishLinkCreated,
		publishClick:       publishClick,
		logger:             logger,
	}
}

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata for analytics.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

// Shorten creates a short URL from a form-encoded request.
func (h *LinkHandler) Shorten(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	form, err := url.ParseQuery(string(req.RawBody))
	if err != nil {
		return nil, MapError(shorturl.ErrInvalidURL)
	}

	meta := RequestMetaFromContext(ctx)

	result, err := h.create.Create(ctx, shorturl.CreateInput{
		URL:     form.Get("url"),
		IP:      meta.ClientIP,
		Sponsor: form.Get("sponsor"),
	})
	if err != nil {
		return nil, MapError(err)
	}

	event := &analytics.LinkCreatedEvent{
		ID:        string(result.ID),
		Target:    form.Get("url"),
		Sponsor:   form.Get("sponsor"),
		Safe:      result.Safe,
		CreatedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	shortURL := RedirectLocation(h.baseURL, string(result.ID))

	resp := &CreateLinkResponse{}
	resp.Location = shortURL
	resp.Body.URL = shortURL
	resp.Body.Properties = map[string]any{"safe": result.Safe}

	return resp, nil
}

// RedirectTo resolves an identifier and responds with the link's redirect.
// The click event is publish-and-forget: its outcome never changes the
// redirect response.
func (h *LinkHandler) RedirectTo(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	redirection, err := h.redirect.Redirect(ctx, shorturl.ID(req.ID))
	if err != nil {
		return nil, MapError(err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.ClickEvent{
		EventID:   uuid.NewString(),
		ID:        req.ID,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		ClickedAt: time.Now(),
	}

	if err := h.publishClick(event); err != nil {
		h.logger.Error("failed to publish click event",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{
		Status: redirection.Mode,
	}
	resp.Location = redirection.Target

	return resp, nil
}

// LinkInfo reports usage metadata for an identifier.
func (h *LinkHandler) LinkInfo(ctx context.Context, req *InfoRequest) (*InfoResponse, error) {
	info, err := h.info.Info(ctx, shorturl.ID(req.ID))
	if err != nil {
		return nil, MapError(err)
	}

	resp := &InfoResponse{}
	resp.Body.NumClicks = info.Clicks
	resp.Body.CreationDate = info.Created.Format(time.RFC3339)
	resp.Body.TargetURI = info.Target

	return resp, nil
}
