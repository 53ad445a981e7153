package identity

import (
	"sync"
	"time"

	"sabor/globals"
	"sabor/middleware"
	"sabor/models"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 12 * time.Hour

// Broker pushes session transitions to observers. Sign-in publishes the new
// session, sign-out publishes nil; observers see every transition. This is
// the only event-driven boundary in the core.
type Broker struct {
	mu      sync.Mutex
	subs    map[int]func(*models.Session)
	next    int
	current *models.Session
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]func(*models.Session))}
}

// Observe registers a callback and immediately delivers the current session
// state. The returned cancel func unsubscribes; no delivery starts after it
// returns.
func (b *Broker) Observe(fn func(*models.Session)) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	current := b.current
	b.mu.Unlock()

	fn(current)

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish records the new session state and notifies every observer.
func (b *Broker) Publish(s *models.Session) {
	b.mu.Lock()
	b.current = s
	fns := make([]func(*models.Session), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

// Current returns the last published session state.
func (b *Broker) Current() *models.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// IssueToken signs a session JWT for a principal.
func IssueToken(kind, credentialID string, now time.Time) (string, error) {
	claims := &middleware.Claims{
		Kind:         kind,
		CredentialID: credentialID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
