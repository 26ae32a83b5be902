package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

type Config struct {
	World     WorldConfig      `json:"world"`
	Session   SessionConfig    `json:"session"`
	Nats      NatsConfig       `json:"nats"`
	Listeners []ListenerConfig `json:"listeners"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}

	ports := map[uint16]int{}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
		if j, ok := ports[l.Port]; ok && l.Port != 0 {
			el.Add(fmt.Errorf("listener %d: port %d already used by listener %d", i, l.Port, j))
		}
		ports[l.Port] = i
	}

	el.Add(c.World.validate())
	el.Add(c.Session.validate())
	el.Add(c.Nats.validate())

	return el.Err()
}
