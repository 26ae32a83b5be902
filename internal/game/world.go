package game

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pixil98/go-monotony/internal/storage"
)

// World is the authoritative set of room instances. The room set is fixed
// once the world is built; any room is reachable from any other by id.
//
// World is not safe for concurrent use. The session driver serialises every
// access.
type World struct {
	rooms map[string]*RoomInstance
	order []string
}

// NewWorld builds a room instance for every room definition in the store.
func NewWorld(rooms storage.Storer[*Room]) (*World, error) {
	w := &World{
		rooms: map[string]*RoomInstance{},
	}

	for _, id := range rooms.Keys() {
		room := rooms.Get(id)
		if room == nil {
			return nil, fmt.Errorf("room %q: definition missing", id)
		}

		for _, c := range room.Containers {
			// Commands are lowercased before lookup, so these can never be opened.
			if c.Name != strings.ToLower(c.Name) {
				slog.Warn("container name is not lowercase and cannot be opened", "room", id, "container", c.Name)
			}
		}

		w.rooms[id] = NewRoomInstance(id, room)
		w.order = append(w.order, id)
	}

	if len(w.order) == 0 {
		return nil, fmt.Errorf("world has no rooms")
	}

	return w, nil
}

// Room returns the room instance with the given id.
func (w *World) Room(id string) (*RoomInstance, error) {
	ri, ok := w.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	return ri, nil
}

// Rooms returns all room instances in world order.
func (w *World) Rooms() []*RoomInstance {
	rooms := make([]*RoomInstance, 0, len(w.order))
	for _, id := range w.order {
		rooms = append(rooms, w.rooms[id])
	}
	return rooms
}

// RoomIds returns all room ids in world order.
func (w *World) RoomIds() []string {
	return append([]string{}, w.order...)
}
