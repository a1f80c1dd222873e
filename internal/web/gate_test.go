package web

import (
	"sync"
	"testing"
)

func TestGateConsumeIsOneShot(t *testing.T) {
	g := NewGate()
	token := g.Issue()

	if !g.Consume(token) {
		t.Fatalf("fresh token must consume")
	}
	if g.Consume(token) {
		t.Fatalf("spent token must not consume twice")
	}
}

func TestGateRejectsUnknownToken(t *testing.T) {
	g := NewGate()
	if g.Consume("") {
		t.Fatalf("empty token must not consume")
	}
	if g.Consume("01ARZ3NDEKTSV4RRFFQ69G5FAV") {
		t.Fatalf("never-issued token must not consume")
	}
}

func TestGateConcurrentConsumersGetOneWinner(t *testing.T) {
	g := NewGate()
	token := g.Issue()

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.Consume(token) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	n := 0
	for range wins {
		n++
	}
	if n != 1 {
		t.Fatalf("expected exactly one winner, got %d", n)
	}
}

func TestGateTokensAreUnique(t *testing.T) {
	g := NewGate()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token := g.Issue()
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = struct{}{}
	}
}
