package web

import (
	"io/fs"
	"net/http"

	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/riskibarqy/player-scout/internal/platform/session"
)

type RouterConfig struct {
	Sessions           *session.Manager
	Logger             *logging.Logger
	Metrics            http.Handler
	CORSAllowedOrigins []string
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.Metrics)
	registerPublicRoutes(mux, handler, cfg.CORSAllowedOrigins)
	registerSessionRoutes(mux, handler, cfg.Sessions, logger)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, handler, mux)))
}

func recoverPanic(logger *logging.Logger, handler *Handler, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "web.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				handler.renderError(w, r.WithContext(ctx), errPanicRecovered)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
