package command

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-monotony/internal/game"
	"github.com/pixil98/go-monotony/internal/storage"
)

type WorldConfig struct {
	RoomsPath string  `json:"rooms_path,omitempty"`
	StartRoom string  `json:"start_room,omitempty"`
	LootSeed  *uint64 `json:"loot_seed,omitempty"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.RoomsPath != "" {
		fi, err := os.Stat(c.RoomsPath)
		if err != nil {
			el.Add(fmt.Errorf("rooms_path: invalid path %q: %w", c.RoomsPath, err))
		} else if !fi.IsDir() {
			el.Add(fmt.Errorf("rooms_path: %q is not a directory", c.RoomsPath))
		}
		if c.StartRoom == "" {
			el.Add(fmt.Errorf("start_room is required with rooms_path"))
		}
	}

	return el.Err()
}

func (c *WorldConfig) startRoom() string {
	if c.StartRoom == "" {
		return game.ReferenceStartRoom
	}
	return c.StartRoom
}

func (c *WorldConfig) lootRand() *rand.Rand {
	if c.LootSeed != nil {
		return rand.New(rand.NewPCG(*c.LootSeed, *c.LootSeed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// buildRegistry loads the rooms, fills their containers and returns an empty
// registry over the result.
func (c *WorldConfig) buildRegistry() (*game.Registry, error) {
	var rooms storage.Storer[*game.Room]
	if c.RoomsPath != "" {
		fs, err := storage.NewFileStore[*game.Room](c.RoomsPath)
		if err != nil {
			return nil, fmt.Errorf("loading rooms: %w", err)
		}
		rooms = fs
	} else {
		slog.Info("no rooms_path configured, using the built-in office")
		rooms = game.ReferenceRooms()
	}

	w, err := game.NewWorld(rooms)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	if err := game.SpawnLoot(w, c.lootRand()); err != nil {
		return nil, fmt.Errorf("spawning loot: %w", err)
	}

	r, err := game.NewRegistry(w, c.startRoom())
	if err != nil {
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	return r, nil
}
