package web

import (
	"net/http"
	"time"
)

const flashCookieName = "player_scout_flash"

type flashMessage struct {
	Category string
	Message  string
}

// Flash cookies carry a code, never free text.
var flashMessages = map[string]flashMessage{
	"login_ok":   {Category: "success", Message: "Login realizado com sucesso!"},
	"logout_ok":  {Category: "info", Message: "Logout realizado com sucesso!"},
	"login_fail": {Category: "error", Message: "Usuário ou senha incorretos!"},
}

func setFlash(w http.ResponseWriter, code string, secure bool) {
	if _, ok := flashMessages[code]; !ok {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads the pending flash message and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) *flashMessage {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	msg, ok := flashMessages[cookie.Value]
	if !ok {
		return nil
	}
	return &msg
}
