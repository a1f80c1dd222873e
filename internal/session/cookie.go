package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName = "console_session"
	issuer     = "automan-console"
)

var errMissingSecret = errors.New("session: cookie secret is not configured")

// claims is the wire shape of the signed session cookie. The remote bearer
// token rides inside the cookie so that no server-side session state exists.
type claims struct {
	Token    string `json:"tok"`
	FullName string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// CookieStore keeps the session in an HS256-signed HttpOnly cookie.
// Tampered or unparseable cookies read as absent, never as an error.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieStore builds a store signing with the given secret. ttl bounds
// how long a browsing context stays signed in; it does not extend the
// lifetime of the remote token itself.
func NewCookieStore(secret string, ttl time.Duration) (*CookieStore, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errMissingSecret
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &CookieStore{secret: []byte(secret), ttl: ttl}, nil
}

// WithSecure marks the cookie Secure; off by default so local development
// over plain HTTP keeps working.
func (cs *CookieStore) WithSecure(secure bool) *CookieStore {
	cs.secure = secure
	return cs
}

func (cs *CookieStore) Set(w http.ResponseWriter, s Session) error {
	if !s.Valid() {
		return errors.New("session: token and identity are required")
	}
	now := time.Now().UTC()
	c := claims{
		Token:    s.Token,
		FullName: s.Identity.FullName,
		Email:    s.Identity.Email,
		Role:     s.Identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.Identity.FullName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cs.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(cs.secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(cs.ttl.Seconds()),
		HttpOnly: true,
		Secure:   cs.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (cs *CookieStore) Get(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	parsed, err := jwt.ParseWithClaims(cookie.Value, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cs.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return Session{}, false
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return Session{}, false
	}
	s := Session{
		Token: c.Token,
		Identity: Identity{
			FullName: c.FullName,
			Email:    c.Email,
			Role:     c.Role,
		},
	}
	if !s.Valid() {
		return Session{}, false
	}
	return s, true
}

func (cs *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cs.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
