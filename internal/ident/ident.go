// Package ident is the identity source: globally unique opaque ids for
// rooms, users, connections, and chat messages.
package ident

import "github.com/google/uuid"

// Source produces opaque unique identifiers. It is an interface only so
// tests can substitute a deterministic sequence.
type Source interface {
	NewID() string
}

// UUIDSource is the production source.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }
