package commands

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies a parsed command.
type Kind int

const (
	KindUnknown    Kind = iota // unrecognised verb, including an empty line
	KindIncomplete             // recognised verb with a missing or unexpected argument
	KindViewInventory
	KindViewCubicle
	KindCheckHealth
	KindLookAround
	KindOpen
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindIncomplete:    "incomplete",
	KindViewInventory: "view_inventory",
	KindViewCubicle:   "view_cubicle",
	KindCheckHealth:   "check_health",
	KindLookAround:    "look_around",
	KindOpen:          "open",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Command is a parsed command line. Target is only set for KindOpen.
type Command struct {
	Kind   Kind
	Target string
}

// Parse lowercases a command line and resolves it to a Command. The verb is
// the first whitespace-separated token. "open" takes the rest of the line,
// joined by single spaces, as the container name.
func Parse(line string) Command {
	fields := strings.Fields(cases.Lower(language.Und).String(line))
	if len(fields) == 0 {
		return Command{Kind: KindUnknown}
	}

	verb, args := fields[0], fields[1:]
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	switch verb {
	case "view":
		switch arg {
		case "inventory":
			return Command{Kind: KindViewInventory}
		case "cubicle":
			return Command{Kind: KindViewCubicle}
		}
		return Command{Kind: KindIncomplete}
	case "health":
		if arg == "check" {
			return Command{Kind: KindCheckHealth}
		}
		return Command{Kind: KindIncomplete}
	case "look":
		if arg == "around" {
			return Command{Kind: KindLookAround}
		}
		return Command{Kind: KindIncomplete}
	case "open":
		return Command{Kind: KindOpen, Target: strings.Join(args, " ")}
	default:
		return Command{Kind: KindUnknown}
	}
}
