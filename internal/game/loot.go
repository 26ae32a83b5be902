package game

import "fmt"

const (
	MinLootCount = 1
	MaxLootCount = 3
)

// Rand is the random source used to spawn loot. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// SpawnLoot fills every container with between MinLootCount and MaxLootCount
// items drawn with replacement from its room's loot table, then applies the
// fixed contents declared on container definitions. Existing contents are
// replaced, so respawning keeps every container within bounds.
func SpawnLoot(w *World, rng Rand) error {
	for _, ri := range w.Rooms() {
		if len(ri.containers) == 0 {
			continue
		}

		table := ri.Room.Loot
		if len(table) == 0 {
			return fmt.Errorf("room %q: %w", ri.Id, ErrEmptyLootTable)
		}

		for _, c := range ri.containers {
			count := MinLootCount + rng.IntN(MaxLootCount-MinLootCount+1)
			c.Items = make([]string, 0, count)
			for range count {
				c.Items = append(c.Items, table[rng.IntN(len(table))])
			}
		}
	}

	// Overrides must land after the random pass.
	for _, ri := range w.Rooms() {
		for _, def := range ri.Room.Containers {
			if len(def.Fixed) == 0 {
				continue
			}
			if c := ri.Container(def.Name); c != nil {
				c.Items = append([]string{}, def.Fixed...)
			}
		}
	}

	return nil
}
