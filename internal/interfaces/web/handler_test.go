package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/player-scout/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/player-scout/internal/platform/logging"
	"github.com/riskibarqy/player-scout/internal/platform/session"
	"github.com/riskibarqy/player-scout/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router   http.Handler
	sessions *session.Manager
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	now := func() time.Time { return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC) }
	logger := logging.NewNop()
	source := memory.NewPlayerSource(memory.SeedPlayers(), memory.SeedStats())
	players := usecase.NewPlayerSearchService(source, logger, usecase.WithClock(now))

	sessions, err := session.NewManager(session.Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	renderer, err := NewRenderer(now)
	require.NoError(t, err)

	handler, err := NewHandler(HandlerConfig{
		Players:     players,
		Sessions:    sessions,
		Credentials: session.Credentials{"admin": "s3cret"},
		Renderer:    renderer,
		Logger:      logger,
	})
	require.NoError(t, err)

	return testServer{
		router:   NewRouter(handler, RouterConfig{Sessions: sessions, Logger: logger}),
		sessions: sessions,
	}
}

func (s testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s testServer) authed(t *testing.T, method, target string) *http.Request {
	t.Helper()
	token, expiresAt, err := s.sessions.Issue("admin")
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(s.sessions.Cookie(token, expiresAt))
	return req
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRouter_ListingRequiresSession(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_ProfileRejectsForgedCookie(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/player/1", nil)
	req.AddCookie(&http.Cookie{Name: srv.sessions.CookieName(), Value: "not-a-token"})
	rec := srv.do(t, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_LoginPage(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `name="username"`)
}

func TestRouter_LoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, loginRequest("admin", "wrong"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Usuário ou senha incorretos!")
	assert.Nil(t, findCookie(rec, srv.sessions.CookieName()))
}

func TestRouter_LoginRejectsEmptyForm(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, loginRequest("", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Informe usuário e senha.")
}

func TestRouter_LoginThenListing(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, loginRequest("admin", "s3cret"))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	sessionCookie := findCookie(rec, srv.sessions.CookieName())
	require.NotNil(t, sessionCookie)
	flash := findCookie(rec, flashCookieName)
	require.NotNil(t, flash)
	assert.Equal(t, "login_ok", flash.Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie)
	req.AddCookie(flash)
	page := srv.do(t, req)

	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Login realizado com sucesso!")
	assert.Contains(t, body, "Gabriel Barbosa")
	assert.Contains(t, body, "Série A")
	assert.Contains(t, body, "Outras Séries")
	assert.Contains(t, body, "admin")
}

func TestRouter_ListingAppliesFilters(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/?search_name=Hulk"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Hulk")
	assert.NotContains(t, body, "Yuri Alberto")
	assert.Contains(t, body, "1 jogadores encontrados")
}

func TestRouter_ListingEmptyResult(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/?search_name=Ningu%C3%A9m"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhum jogador encontrado")
}

func TestRouter_ListingToleratesMalformedNumbers(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/?age_min=abc&page=x&contract_end=soon"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Gabriel Barbosa")
}

func TestRouter_ListingRejectsOutOfRangeAge(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/?age_max=999"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Parâmetros de busca inválidos")
}

func TestRouter_PlayerProfile(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/player/2"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Pedro")
	assert.Contains(t, body, "goals")
	assert.Contains(t, body, "31/12/2027")
}

func TestRouter_PlayerProfileWithoutStats(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/player/3"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Estatísticas indisponíveis")
}

func TestRouter_PlayerProfileNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/player/999"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jogador não encontrado")
}

func TestRouter_ClubNamesIsPublicJSON(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/api/clubs/S%C3%A9rie%20B", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var names []string
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"Coritiba", "Goiás", "Novorizontino", "Sport Recife"}, names)
}

func TestRouter_ClubNamesUnknownSerie(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/api/clubs/Premier", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_Logout(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, srv.authed(t, http.MethodGet, "/logout"))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cleared := findCookie(rec, srv.sessions.CookieName())
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	flash := findCookie(rec, flashCookieName)
	require.NotNil(t, flash)
	assert.Equal(t, "logout_ok", flash.Value)
}

func TestRouter_SystemRoutes(t *testing.T) {
	srv := newTestServer(t)

	health := srv.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"ok"`)

	script := srv.do(t, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
	assert.Equal(t, http.StatusOK, script.Code)

	metrics := srv.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, metrics.Code)
}
