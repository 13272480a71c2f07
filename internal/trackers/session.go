// Package trackers holds the per-day health trackers. Each tracker owns its
// state exclusively and persists it through a daysync.Synchronizer once the
// session knows who the user is.
package trackers

import (
	"context"
	"errors"
	"sync"
)

var ErrNotIdentified = errors.New("session has no identity")

type Identity struct {
	UserID uint
	Email  string
	Name   string
}

// Session carries the signed-in identity to every tracker built from it.
type Session struct {
	mu       sync.Mutex
	identity *Identity
	pending  []func(context.Context, Identity)
}

func NewSession() *Session {
	return &Session{}
}

// NewIdentifiedSession returns a session whose identity is already known.
func NewIdentifiedSession(identity Identity) *Session {
	return &Session{identity: &identity}
}

func (session *Session) Identity() (Identity, bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.identity == nil {
		return Identity{}, false
	}
	return *session.identity, true
}

// Identify records the identity and runs every callback waiting for it.
func (session *Session) Identify(ctx context.Context, identity Identity) {
	session.mu.Lock()
	session.identity = &identity
	pending := session.pending
	session.pending = nil
	session.mu.Unlock()

	for _, callback := range pending {
		callback(ctx, identity)
	}
}

// WhenIdentified runs callback once: immediately when the identity is known,
// otherwise when Identify is called.
func (session *Session) WhenIdentified(ctx context.Context, callback func(context.Context, Identity)) {
	session.mu.Lock()
	if session.identity == nil {
		session.pending = append(session.pending, callback)
		session.mu.Unlock()
		return
	}
	identity := *session.identity
	session.mu.Unlock()

	callback(ctx, identity)
}
