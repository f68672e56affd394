package app_test

import (
	"fmt"
	"sync"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// seqSource hands out id-1, id-2, ... so tests can predict allocations.
type seqSource struct {
	mu sync.Mutex
	n  int
}

func (s *seqSource) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type roomEvent struct {
	Room    domain.RoomID
	Event   any
	Exclude []string
}

type connEvent struct {
	Conn  string
	Event any
}

// recordingSink captures everything the coordinator emits.
type recordingSink struct {
	mu         sync.Mutex
	roomEvents []roomEvent
	connEvents []connEvent
}

func (s *recordingSink) ToRoom(roomID domain.RoomID, v any, exclude ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomEvents = append(s.roomEvents, roomEvent{Room: roomID, Event: v, Exclude: exclude})
}

func (s *recordingSink) ToConn(connID string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connEvents = append(s.connEvents, connEvent{Conn: connID, Event: v})
}

func (s *recordingSink) roomEventsOfType(eventType string) []roomEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []roomEvent
	for _, e := range s.roomEvents {
		if typeOf(e.Event) == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (s *recordingSink) connEventsOfType(eventType string) []connEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []connEvent
	for _, e := range s.connEvents {
		if typeOf(e.Event) == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (s *recordingSink) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomEvents = nil
	s.connEvents = nil
}

func typeOf(v any) string {
	switch e := v.(type) {
	case app.UserJoinedEvent:
		return e.Type
	case app.HostChangedEvent:
		return e.Type
	case app.UserLeftEvent:
		return e.Type
	case app.RoomClosedEvent:
		return e.Type
	case app.KickedEvent:
		return e.Type
	case app.ParticipantKickedEvent:
		return e.Type
	case app.AudioToggleEvent:
		return e.Type
	case app.VideoToggleEvent:
		return e.Type
	case app.ScreenShareToggleEvent:
		return e.Type
	default:
		return ""
	}
}

// fakeConn implements app.Conn for registry tests.
type fakeConn struct {
	id     string
	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func newFakeConn(id string) *fakeConn { return &fakeConn{id: id} }

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) TrySend(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := make([]byte, len(b))
	copy(buf, b)
	c.sent = append(c.sent, buf)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
