package game

import (
	"github.com/pixil98/go-monotony/internal/storage"
)

const ReferenceStartRoom = "lobby"

// ReferenceRooms returns the built-in office world.
func ReferenceRooms() *storage.MemoryStore[*Room] {
	defs := []struct {
		id   string
		room *Room
	}{
		{"lobby", &Room{
			Name:        "Lobby",
			Description: "The central hub of the office.",
			Containers: []ContainerDef{
				{Name: "first-aid kit", Fixed: []string{"Bandage", "Suture Needle", "Splint", "Tweezers"}},
			},
			Loot: []string{"Bandage", "Suture Needle", "Splint", "Tweezers"},
		}},
		{"janitorsCloset", &Room{
			Name:        "Janitor's Closet",
			Description: "A small, cramped room filled with cleaning supplies.",
			Containers:  []ContainerDef{{Name: "shelves"}},
			Loot:        []string{"Pipe Wrench", "Crowbar", "Bandage"},
		}},
		{"secretaryOffice", &Room{
			Name:        "Secretary's Office",
			Description: "A tidy office with a locked door leading to the director's office.",
			Containers:  []ContainerDef{{Name: "desk"}},
			Loot:        []string{"Pen", "Notebook", "Sticky Note"},
		}},
		{"breakroom", &Room{
			Name:        "Breakroom",
			Description: "A place to relax and have a snack.",
			Containers:  []ContainerDef{{Name: "fridge"}, {Name: "cabinet"}},
			Loot:        []string{"Sandwich", "Coffee Mug", "Napkin"},
		}},
		{"securityRoom", &Room{
			Name:        "Security Room",
			Description: "A locked room with security monitors.",
			Containers:  []ContainerDef{{Name: "locker"}},
			Loot:        []string{"Nightstick", "Bandage", "Tweezers"},
		}},
	}

	store := storage.NewMemoryStore[*Room]()
	for _, d := range defs {
		// The definitions above are valid; a failure here is a programming error.
		if err := store.Add(d.id, d.room); err != nil {
			panic(err)
		}
	}
	return store
}
