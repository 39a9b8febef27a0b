package session

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultCookieName = "player_scout_session"
	issuer            = "player-scout"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// Claims is the signed session payload carried in the session cookie.
type Claims struct {
	LoggedIn bool `json:"logged_in"`
	jwt.RegisteredClaims
}

func (c Claims) Username() string {
	return c.Subject
}

type Config struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
	Now        func() time.Time
}

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Manager{
		secret:     []byte(secret),
		ttl:        cfg.TTL,
		cookieName: cookieName,
		secure:     cfg.Secure,
		now:        now,
	}, nil
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Issue signs a logged-in session for username.
func (m *Manager) Issue(username string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	claims := Claims{
		LoggedIn: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, issuer, expiry and the logged-in flag.
func (m *Manager) Parse(raw string) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, ErrNoSession
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Claims{}, errors.Join(ErrInvalidSession, err)
	}
	if !claims.LoggedIn || claims.Subject == "" {
		return Claims{}, ErrInvalidSession
	}
	return claims, nil
}

// FromRequest reads and verifies the session cookie.
func (m *Manager) FromRequest(r *http.Request) (Claims, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return Claims{}, ErrNoSession
	}
	return m.Parse(cookie.Value)
}

func (m *Manager) Cookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie in the browser.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Credentials holds the accepted username/password pairs.
type Credentials map[string]string

// Verify compares passwords in constant time.
func (c Credentials) Verify(username, password string) bool {
	want, ok := c[username]
	if !ok {
		want = ""
	}
	match := subtle.ConstantTimeCompare([]byte(want), []byte(password)) == 1
	return ok && match
}
