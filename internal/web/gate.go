package web

import (
	"sync"
	"time"

	"automan.solutions/console/internal/ids"
)

// Gate suppresses rapid double-submission. Every rendered form embeds a
// one-time token; the handler consumes it before touching the remote
// service, so replaying the same rendered form performs no second call.
type Gate struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	ttl    time.Duration
}

func NewGate() *Gate {
	return &Gate{
		tokens: make(map[string]time.Time),
		ttl:    30 * time.Minute,
	}
}

// Issue mints a token valid for one submission.
func (g *Gate) Issue() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pruneLocked()
	token := ids.New()
	g.tokens[token] = time.Now().Add(g.ttl)
	return token
}

// Consume atomically spends the token. The second consumer of the same
// token gets false.
func (g *Gate) Consume(token string) bool {
	if token == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	deadline, ok := g.tokens[token]
	if !ok {
		return false
	}
	delete(g.tokens, token)
	return time.Now().Before(deadline)
}

// pruneLocked drops expired tokens from forms that were never submitted.
func (g *Gate) pruneLocked() {
	if len(g.tokens) < 1024 {
		return
	}
	now := time.Now()
	for token, deadline := range g.tokens {
		if now.After(deadline) {
			delete(g.tokens, token)
		}
	}
}
