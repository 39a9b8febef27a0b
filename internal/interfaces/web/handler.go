package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/riskibarqy/player-scout/internal/platform/session"
	"github.com/riskibarqy/player-scout/internal/usecase"
)

var errPanicRecovered = errors.New("panic recovered")

type Handler struct {
	players       *usecase.PlayerSearchService
	sessions      *session.Manager
	credentials   session.Credentials
	renderer      *Renderer
	logger        *logging.Logger
	validator     *validator.Validate
	secureCookies bool
}

type HandlerConfig struct {
	Players       *usecase.PlayerSearchService
	Sessions      *session.Manager
	Credentials   session.Credentials
	Renderer      *Renderer
	Logger        *logging.Logger
	SecureCookies bool
}

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if cfg.Players == nil {
		return nil, errors.New("player search service is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if len(cfg.Credentials) == 0 {
		return nil, errors.New("at least one credential is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		players:       cfg.Players,
		sessions:      cfg.Sessions,
		credentials:   cfg.Credentials,
		renderer:      cfg.Renderer,
		logger:        logger,
		validator:     validator.New(),
		secureCookies: cfg.SecureCookies,
	}, nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) meta(w http.ResponseWriter, r *http.Request, title string) pageMeta {
	meta := pageMeta{
		Title: title,
		Flash: popFlash(w, r),
	}
	if claims, ok := sessionFromContext(r.Context()); ok {
		meta.Username = claims.Username()
	}
	return meta
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, page string, data any) {
	if err := h.renderer.Render(ctx, w, status, page, data); err != nil {
		h.logger.ErrorContext(ctx, "render page failed", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderError shows the error page for err with the status it maps to.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := mapError(err)
	h.render(r.Context(), w, mapped.HTTPStatus, pageError, errorView{
		pageMeta: h.meta(w, r, "Erro"),
		Status:   mapped.HTTPStatus,
		Message:  mapped.PageMessage,
	})
}
