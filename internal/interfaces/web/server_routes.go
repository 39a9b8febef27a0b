package web

import (
	"net/http"

	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/riskibarqy/player-scout/internal/platform/session"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /static/", staticHandler())
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, corsAllowedOrigins []string) {
	mux.HandleFunc("GET /login", handler.LoginPage)
	mux.HandleFunc("POST /login", handler.Login)
	mux.HandleFunc("GET /logout", handler.Logout)

	registerCORSRoute(mux, "/api/clubs", corsAllowedOrigins, handler.ListClubNames)
	registerCORSRoute(mux, "/api/clubs/{serie}", corsAllowedOrigins, handler.ListClubNames)
	registerCORSRoute(mux, "/api/series", corsAllowedOrigins, handler.ListSeries)
}

// registerCORSRoute serves GET on path and answers its preflight.
func registerCORSRoute(mux *http.ServeMux, path string, corsAllowedOrigins []string, fn http.HandlerFunc) {
	h := CORS(corsAllowedOrigins, fn)
	mux.Handle("GET "+path, h)
	mux.Handle("OPTIONS "+path, h)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler, sessions *session.Manager, logger *logging.Logger) {
	mux.Handle("GET /{$}", RequireSession(sessions, logger, http.HandlerFunc(handler.ListPlayers)))
	mux.Handle("GET /player/{playerID}", RequireSession(sessions, logger, http.HandlerFunc(handler.PlayerProfile)))
}
