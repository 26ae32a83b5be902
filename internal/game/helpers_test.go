package game

import (
	"testing"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()

	w, err := NewWorld(ReferenceRooms())
	if err != nil {
		t.Fatalf("building world: %v", err)
	}
	return w
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	r, err := NewRegistry(newTestWorld(t), ReferenceStartRoom)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return r
}

// assertPresence checks that every player is present in exactly the room it
// references and that no room lists an unknown player.
func assertPresence(t *testing.T, r *Registry) {
	t.Helper()

	for _, ri := range r.world.Rooms() {
		for _, id := range ri.Players() {
			p, ok := r.players[id]
			if !ok {
				t.Errorf("room %q lists unregistered player %q", ri.Id, id)
				continue
			}
			if p.RoomId != ri.Id {
				t.Errorf("room %q lists player %q whose room is %q", ri.Id, id, p.RoomId)
			}
		}
	}

	for id, p := range r.players {
		ri, err := r.world.Room(p.RoomId)
		if err != nil {
			t.Errorf("player %q references missing room %q", id, p.RoomId)
			continue
		}
		if !ri.HasPlayer(id) {
			t.Errorf("player %q missing from presence of room %q", id, p.RoomId)
		}
	}
}
