package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarshitBamotra/StreamSync-Backend/internal/app"
)

func TestRegistry_BindLifecycle(t *testing.T) {
	reg := app.NewRegistry()
	conn := newFakeConn("c1")
	reg.Register(conn)

	_, bound := reg.BindingOf("c1")
	assert.False(t, bound, "fresh connection has no binding")

	require.True(t, reg.Bind("c1", "room-1", "alice"))
	b, bound := reg.BindingOf("c1")
	require.True(t, bound)
	assert.Equal(t, app.Binding{RoomID: "room-1", UserID: "alice"}, b)

	// At most one room per connection.
	assert.False(t, reg.Bind("c1", "room-2", "alice"))

	b, ok := reg.Unbind("c1")
	require.True(t, ok)
	assert.Equal(t, app.Binding{RoomID: "room-1", UserID: "alice"}, b)

	_, ok = reg.Unbind("c1")
	assert.False(t, ok, "second unbind is a no-op")

	// Still registered, can bind again.
	got, ok := reg.Get("c1")
	require.True(t, ok)
	assert.Equal(t, conn, got)
	assert.True(t, reg.Bind("c1", "room-2", "alice"))
}

func TestRegistry_BindUnknownConn(t *testing.T) {
	reg := app.NewRegistry()
	assert.False(t, reg.Bind("ghost", "room-1", "alice"))
}

func TestRegistry_Drop(t *testing.T) {
	reg := app.NewRegistry()
	reg.Register(newFakeConn("c1"))
	require.True(t, reg.Bind("c1", "room-1", "alice"))

	b, had := reg.Drop("c1")
	require.True(t, had)
	assert.Equal(t, app.Binding{RoomID: "room-1", UserID: "alice"}, b)

	_, ok := reg.Get("c1")
	assert.False(t, ok)

	_, had = reg.Drop("c1")
	assert.False(t, had, "second drop is a no-op")
}

func TestRegistry_RoomConns(t *testing.T) {
	reg := app.NewRegistry()
	for _, id := range []string{"c1", "c2", "c3", "c4"} {
		reg.Register(newFakeConn(id))
	}
	require.True(t, reg.Bind("c1", "room-1", "alice"))
	require.True(t, reg.Bind("c2", "room-1", "bob"))
	require.True(t, reg.Bind("c3", "room-2", "carol"))
	// c4 stays unbound.

	ids := func(conns []app.Conn) []string {
		out := make([]string, 0, len(conns))
		for _, c := range conns {
			out = append(out, c.ID())
		}
		return out
	}

	assert.ElementsMatch(t, []string{"c1", "c2"}, ids(reg.RoomConns("room-1")))
	assert.ElementsMatch(t, []string{"c2"}, ids(reg.RoomConns("room-1", "c1")))
	assert.Empty(t, ids(reg.RoomConns("room-1", "c1", "c2")))
	assert.ElementsMatch(t, []string{"c3"}, ids(reg.RoomConns("room-2")))
}
