package commands

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-monotony/internal/game"
)

const (
	MsgUnknownCommand = "Unknown command. Please try again."
	MsgEmptyInventory = "Your inventory is empty."
	MsgEmptyCubicle   = "Your cubicle is empty."
	MsgEmptyContainer = "The container is empty."
	MsgAlone          = "No one else is here."
)

// Interpreter executes parsed commands against the registry's world.
type Interpreter struct {
	registry *game.Registry
}

func NewInterpreter(r *game.Registry) *Interpreter {
	return &Interpreter{registry: r}
}

// Exec runs cmd on behalf of p and returns the text to send back to p.
// Incomplete commands produce an empty result.
func (i *Interpreter) Exec(p *game.Player, cmd Command) string {
	switch cmd.Kind {
	case KindViewInventory:
		return "Inventory: " + listOr(p.Inventory, MsgEmptyInventory)
	case KindViewCubicle:
		return "Cubicle: " + listOr(p.Cubicle, MsgEmptyCubicle)
	case KindCheckHealth:
		return fmt.Sprintf("Health: %d", p.Health)
	case KindLookAround:
		return i.look(p)
	case KindOpen:
		return i.open(p, cmd.Target)
	case KindIncomplete:
		return ""
	default:
		return MsgUnknownCommand
	}
}

func (i *Interpreter) look(p *game.Player) string {
	ri, err := i.registry.World().Room(p.RoomId)
	if err != nil {
		return ""
	}

	var others []string
	for _, o := range i.registry.Occupants(ri.Id) {
		if o.Id != p.Id {
			others = append(others, o.Name)
		}
	}

	return fmt.Sprintf("%s: %s\nPlayers here: %s\nContainers: %s",
		ri.Room.Name,
		ri.Room.Description,
		listOr(others, MsgAlone),
		strings.Join(ri.ContainerNames(), ", "),
	)
}

func (i *Interpreter) open(p *game.Player, name string) string {
	ri, err := i.registry.World().Room(p.RoomId)
	if err != nil {
		return ""
	}

	c := ri.Container(name)
	if c == nil {
		return fmt.Sprintf("There is no container named %s here.", name)
	}
	return listOr(c.Items, MsgEmptyContainer)
}

func listOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
