package game

import "fmt"

const StartingHealth = 100

// Player is the state of one connected participant. Id is the connection
// identity.
type Player struct {
	Id        string
	Name      string
	RoomId    string
	Inventory []string
	Health    int
	Cubicle   []string
}

// Registry maps connection identities to players and keeps room presence in
// step with each player's room reference. Presence is only ever changed by
// Register, Move and Unregister.
//
// Registry is not safe for concurrent use.
type Registry struct {
	world     *World
	startRoom *RoomInstance
	players   map[string]*Player
}

// NewRegistry creates an empty registry whose players start in startRoomId.
func NewRegistry(world *World, startRoomId string) (*Registry, error) {
	start, err := world.Room(startRoomId)
	if err != nil {
		return nil, fmt.Errorf("start room: %w", err)
	}

	return &Registry{
		world:     world,
		startRoom: start,
		players:   map[string]*Player{},
	}, nil
}

// World returns the world the registry places players in.
func (r *Registry) World() *World {
	return r.world
}

// StartRoom returns the room new players are placed in.
func (r *Registry) StartRoom() *RoomInstance {
	return r.startRoom
}

// Register creates a player in the start room. Registering an id that is
// already present fails with ErrPlayerExists and changes nothing.
func (r *Registry) Register(id, name string) (*Player, error) {
	if _, exists := r.players[id]; exists {
		return nil, ErrPlayerExists
	}

	p := &Player{
		Id:        id,
		Name:      name,
		RoomId:    r.startRoom.Id,
		Inventory: []string{},
		Health:    StartingHealth,
		Cubicle:   []string{},
	}
	r.players[id] = p
	r.startRoom.AddPlayer(id)

	return p, nil
}

// Lookup returns the player registered under id.
func (r *Registry) Lookup(id string) (*Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// Unregister removes the player and clears its room presence. It reports
// whether a player was removed; unknown ids are a no-op.
func (r *Registry) Unregister(id string) bool {
	p, ok := r.players[id]
	if !ok {
		return false
	}

	if ri, err := r.world.Room(p.RoomId); err == nil {
		ri.RemovePlayer(id)
	}
	delete(r.players, id)

	return true
}

// Move relocates a player to the target room, updating both presence sets
// and the player's room reference together. On error nothing changes.
func (r *Registry) Move(id, roomId string) (*RoomInstance, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	from, err := r.world.Room(p.RoomId)
	if err != nil {
		return nil, err
	}
	to, err := r.world.Room(roomId)
	if err != nil {
		return nil, err
	}

	from.RemovePlayer(id)
	to.AddPlayer(id)
	p.RoomId = to.Id

	return to, nil
}

// Occupants returns the players present in a room in arrival order.
func (r *Registry) Occupants(roomId string) []*Player {
	ri, err := r.world.Room(roomId)
	if err != nil {
		return nil
	}

	var players []*Player
	for _, id := range ri.Players() {
		if p, ok := r.players[id]; ok {
			players = append(players, p)
		}
	}
	return players
}

// Count returns the number of registered players.
func (r *Registry) Count() int {
	return len(r.players)
}

// ForEachPlayer calls fn for each registered player.
func (r *Registry) ForEachPlayer(fn func(*Player)) {
	for _, p := range r.players {
		fn(p)
	}
}
