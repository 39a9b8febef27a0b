package web

import (
	"net/http"
	"strings"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.LoginPage")
	defer span.End()

	h.render(ctx, w, http.StatusOK, pageLogin, loginView{pageMeta: h.meta(w, r, "Login")})
}

// Login checks the submitted pair and starts a session. A failed attempt
// re-renders the form with a message instead of redirecting.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Login")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		h.logger.WarnContext(ctx, "parse login form failed", "error", err)
	}
	form := loginForm{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
	}

	view := loginView{
		pageMeta:     h.meta(w, r, "Login"),
		FormUsername: form.Username,
	}
	if err := h.validator.Struct(form); err != nil {
		view.Error = "Informe usuário e senha."
		h.render(ctx, w, http.StatusOK, pageLogin, view)
		return
	}
	if !h.credentials.Verify(form.Username, form.Password) {
		h.logger.InfoContext(ctx, "login rejected", "username", form.Username, "remote_addr", r.RemoteAddr)
		view.Error = flashMessages["login_fail"].Message
		h.render(ctx, w, http.StatusOK, pageLogin, view)
		return
	}

	token, expiresAt, err := h.sessions.Issue(form.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "issue session failed", "username", form.Username, "error", err)
		h.renderError(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "login succeeded", "username", form.Username)
	http.SetCookie(w, h.sessions.Cookie(token, expiresAt))
	setFlash(w, "login_ok", h.secureCookies)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Logout")
	defer span.End()

	if claims, err := h.sessions.FromRequest(r); err == nil {
		h.logger.InfoContext(ctx, "logout", "username", claims.Username())
	}
	http.SetCookie(w, h.sessions.ClearCookie())
	setFlash(w, "logout_ok", h.secureCookies)
	http.Redirect(w, r, loginPath, http.StatusFound)
}
