package web

import (
	"context"

	"github.com/riskibarqy/player-scout/internal/platform/session"
)

type contextKey string

const sessionContextKey contextKey = "web_session"

func withSession(ctx context.Context, claims session.Claims) context.Context {
	return context.WithValue(ctx, sessionContextKey, claims)
}

func sessionFromContext(ctx context.Context) (session.Claims, bool) {
	claims, ok := ctx.Value(sessionContextKey).(session.Claims)
	return claims, ok
}
