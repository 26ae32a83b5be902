package game

// RoomView is the wire representation of a room in a state snapshot.
type RoomView struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Players     []string            `json:"players"`
	Containers  map[string][]string `json:"containers"`
}

// PlayerView is the wire representation of a player in a state snapshot.
type PlayerView struct {
	Name      string   `json:"name"`
	Room      string   `json:"room"`
	Inventory []string `json:"inventory"`
	Health    int      `json:"health"`
	Cubicle   []string `json:"cubicle"`
}

// Snapshot is the full rooms and players state sent to a single connection.
type Snapshot struct {
	Rooms   map[string]RoomView   `json:"rooms"`
	Players map[string]PlayerView `json:"players"`
}

// Snapshot copies the current world and player state. The result shares no
// slices with live state.
func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		Rooms:   make(map[string]RoomView, len(r.world.order)),
		Players: make(map[string]PlayerView, len(r.players)),
	}

	for _, ri := range r.world.Rooms() {
		containers := make(map[string][]string, len(ri.containers))
		for _, c := range ri.containers {
			containers[c.Name] = append([]string{}, c.Items...)
		}
		s.Rooms[ri.Id] = RoomView{
			Name:        ri.Room.Name,
			Description: ri.Room.Description,
			Players:     ri.Players(),
			Containers:  containers,
		}
	}

	for id, p := range r.players {
		s.Players[id] = PlayerView{
			Name:      p.Name,
			Room:      p.RoomId,
			Inventory: append([]string{}, p.Inventory...),
			Health:    p.Health,
			Cubicle:   append([]string{}, p.Cubicle...),
		}
	}

	return s
}
