package game

import (
	"fmt"
	"slices"

	"github.com/pixil98/go-errors"
)

// ContainerDef declares a container in a room definition. Fixed, when set,
// replaces whatever the loot spawner put in the container.
type ContainerDef struct {
	Name  string   `json:"name"`
	Fixed []string `json:"fixed,omitempty"`
}

// Room is the static definition of a location.
type Room struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Containers  []ContainerDef `json:"containers,omitempty"`
	Loot        []string       `json:"loot,omitempty"` // item names eligible for random container fill
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}

	seen := map[string]bool{}
	for i, c := range r.Containers {
		if c.Name == "" {
			el.Add(fmt.Errorf("container %d: name is required", i))
			continue
		}
		if seen[c.Name] {
			el.Add(fmt.Errorf("container %q: duplicate name", c.Name))
		}
		seen[c.Name] = true
	}

	if len(r.Containers) > 0 && len(r.Loot) == 0 {
		el.Add(fmt.Errorf("loot is required for a room with containers"))
	}

	return el.Err()
}

// Container is a named item holder owned by a single room instance.
type Container struct {
	Name  string
	Items []string
}

// RoomInstance is the runtime state of a room: who is here and what the
// containers hold.
type RoomInstance struct {
	Id   string
	Room *Room

	players    []string
	containers []*Container
}

// NewRoomInstance creates a room instance with empty containers.
func NewRoomInstance(id string, room *Room) *RoomInstance {
	ri := &RoomInstance{
		Id:         id,
		Room:       room,
		containers: make([]*Container, 0, len(room.Containers)),
	}
	for _, c := range room.Containers {
		ri.containers = append(ri.containers, &Container{Name: c.Name, Items: []string{}})
	}
	return ri
}

// AddPlayer adds a player to the presence set.
func (ri *RoomInstance) AddPlayer(id string) {
	if ri.HasPlayer(id) {
		return
	}
	ri.players = append(ri.players, id)
}

// RemovePlayer removes a player from the presence set. Removing an absent
// player is a no-op.
func (ri *RoomInstance) RemovePlayer(id string) {
	ri.players = slices.DeleteFunc(ri.players, func(p string) bool { return p == id })
}

func (ri *RoomInstance) HasPlayer(id string) bool {
	return slices.Contains(ri.players, id)
}

// Players returns the ids present in the room in arrival order.
func (ri *RoomInstance) Players() []string {
	return append([]string{}, ri.players...)
}

func (ri *RoomInstance) PlayerCount() int {
	return len(ri.players)
}

// Containers returns the room's containers in definition order.
func (ri *RoomInstance) Containers() []*Container {
	return ri.containers
}

// Container returns the container with exactly the given name, or nil.
func (ri *RoomInstance) Container(name string) *Container {
	for _, c := range ri.containers {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (ri *RoomInstance) ContainerNames() []string {
	names := make([]string, 0, len(ri.containers))
	for _, c := range ri.containers {
		names = append(names, c.Name)
	}
	return names
}
