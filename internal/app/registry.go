package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// Conn abstracts a live transport connection. Owned by the adapter; the
// adapter must Close() it. TrySend must never block.
type Conn interface {
	ID() string
	TrySend([]byte) error
	Close()
}

// Binding ties a connection to its (room, participant) pair.
type Binding struct {
	RoomID domain.RoomID
	UserID domain.UserID
}

type connEntry struct {
	conn    Conn
	binding *Binding
}

// Registry maps live connections to at most one room binding each and
// exposes the subscriber set of a room. All state here is transient and
// non-authoritative: rebuilt on connect, discarded on disconnect.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*connEntry)}
}

// Register makes a freshly upgraded connection known, not yet bound to any
// room.
func (r *Registry) Register(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[conn.ID()] = &connEntry{conn: conn}
	log.Info().Str("module", "app.registry").Str("conn", conn.ID()).Msg("registered connection")
}

// Bind attaches the connection to a room. A connection holds at most one
// binding; binding while already bound is rejected.
func (r *Registry) Bind(connID string, roomID domain.RoomID, userID domain.UserID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[connID]
	if !ok || e.binding != nil {
		return false
	}
	e.binding = &Binding{RoomID: roomID, UserID: userID}
	log.Info().Str("module", "app.registry").Str("conn", connID).Str("room", string(roomID)).Str("user", string(userID)).Msg("bound connection")
	return true
}

// Unbind clears the room binding but keeps the connection registered.
func (r *Registry) Unbind(connID string) (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[connID]
	if !ok || e.binding == nil {
		return Binding{}, false
	}
	b := *e.binding
	e.binding = nil
	log.Info().Str("module", "app.registry").Str("conn", connID).Str("room", string(b.RoomID)).Msg("unbound connection")
	return b, true
}

// Drop removes the connection entirely, returning whatever binding it held.
func (r *Registry) Drop(connID string) (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[connID]
	if !ok {
		return Binding{}, false
	}
	delete(r.conns, connID)
	log.Info().Str("module", "app.registry").Str("conn", connID).Msg("dropped connection")
	if e.binding == nil {
		return Binding{}, false
	}
	return *e.binding, true
}

// Get returns the live connection, if any.
func (r *Registry) Get(connID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[connID]
	if !ok {
		return nil, false
	}
	return e.conn, true
}

// BindingOf reports the connection's current (room, participant) pair.
func (r *Registry) BindingOf(connID string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[connID]
	if !ok || e.binding == nil {
		return Binding{}, false
	}
	return *e.binding, true
}

// RoomConns is the explicit subscriber set: every connection currently
// bound to the room, minus the excluded connection ids.
func (r *Registry) RoomConns(roomID domain.RoomID, exclude ...string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Conn, 0, len(r.conns))
	for id, e := range r.conns {
		if e.binding == nil || e.binding.RoomID != roomID {
			continue
		}
		skip := false
		for _, x := range exclude {
			if id == x {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, e.conn)
		}
	}
	return out
}
