package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-monotony/internal/driver"
	"github.com/pixil98/go-monotony/internal/game"
	"github.com/pixil98/go-monotony/internal/session"
)

type SessionConfig struct {
	GameName  string `json:"game_name,omitempty"`
	QueueSize int    `json:"queue_size,omitempty"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.QueueSize < 0 {
		el.Add(fmt.Errorf("queue_size must not be negative"))
	}

	return el.Err()
}

func (c *SessionConfig) buildDriver(r *game.Registry, pub session.Publisher) *driver.SessionDriver {
	var copts []session.CoordinatorOpt
	if c.GameName != "" {
		copts = append(copts, session.WithGameName(c.GameName))
	}

	var dopts []driver.SessionDriverOpt
	if c.QueueSize > 0 {
		dopts = append(dopts, driver.WithQueueSize(c.QueueSize))
	}

	return driver.NewSessionDriver(session.NewCoordinator(r, pub, copts...), dopts...)
}
