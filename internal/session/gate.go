package session

import (
	"context"
	"sync"
	"time"
)

// Gate is the two-state (anonymous, admin) machine of an interactive
// client. Logging out runs the registered hooks so callers can drop any
// admin-only state such as an open edit form.
type Gate struct {
	verifier CredentialVerifier
	now      func() time.Time

	mu       sync.Mutex
	current  Session
	onLogout []func()
}

func NewGate(v CredentialVerifier) *Gate {
	return &Gate{verifier: v, now: time.Now}
}

// Login moves the gate to admin when the verifier accepts the pair. On any
// error the gate stays anonymous.
func (g *Gate) Login(ctx context.Context, id, secret string) (Session, error) {
	s, err := Authenticate(ctx, g.verifier, id, secret, g.now())
	if err != nil {
		return Session{}, err
	}

	g.mu.Lock()
	g.current = s
	g.mu.Unlock()
	return s, nil
}

// Logout returns the gate to anonymous. Hooks run only when an admin
// session was actually open.
func (g *Gate) Logout() {
	g.mu.Lock()
	wasAdmin := g.current.Admin
	g.current = Session{}
	hooks := append([]func(){}, g.onLogout...)
	g.mu.Unlock()

	if !wasAdmin {
		return
	}
	for _, fn := range hooks {
		fn()
	}
}

func (g *Gate) Session() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *Gate) IsAdmin() bool {
	return g.Session().Admin
}

func (g *Gate) OnLogout(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onLogout = append(g.onLogout, fn)
}
