// Package session holds the authenticated administrator context for one
// browsing context: the bearer token issued by the admin API plus the
// identity returned at login. Exactly one session exists per browsing
// context at a time; it survives page reloads but is not shared across
// tabs signed in separately or across devices.
package session

import (
	"context"
	"net/http"
	"strings"
)

// Identity is the administrator record returned by the login endpoint.
type Identity struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session pairs the opaque remote token with the authenticated identity.
type Session struct {
	Token    string
	Identity Identity
}

// Valid reports whether both stored fields are present. A session missing
// either one is treated as absent by the route guard.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && strings.TrimSpace(s.Identity.FullName) != ""
}

// Store persists the session across reloads within one browsing context.
// Implementations never validate the token against the remote service;
// an expired token is only discovered when the admin API rejects a call.
type Store interface {
	Set(w http.ResponseWriter, s Session) error
	Get(r *http.Request) (Session, bool)
	Clear(w http.ResponseWriter)
}

type sessionContextKey struct{}

// ContextWithSession attaches the session to the request context.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, &s)
}

// FromContext extracts the session placed by the route guard.
func FromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	v, ok := ctx.Value(sessionContextKey{}).(*Session)
	if !ok || v == nil {
		return Session{}, false
	}
	return *v, true
}

// TokenFromContext returns the bearer token if a session is attached.
func TokenFromContext(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || s.Token == "" {
		return "", false
	}
	return s.Token, true
}
