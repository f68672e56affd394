package app

import (
	"sync"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/domain"
)

// keyedMutex serializes mutations per room: operations on different rooms
// never block each other, operations on the same room are totally ordered.
// Entries are reference-counted so idle rooms leave no residue.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[domain.RoomID]*roomLock
}

type roomLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[domain.RoomID]*roomLock)}
}

// lock acquires the room's mutex and returns the matching unlock.
func (k *keyedMutex) lock(id domain.RoomID) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &roomLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
