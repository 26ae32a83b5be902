package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-monotony/internal/listener"
	"github.com/pixil98/go-monotony/internal/messaging"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Build the world and fill its containers
	registry, err := cfg.World.buildRegistry()
	if err != nil {
		return nil, err
	}

	// Setup the message bus
	nats, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	publisher := messaging.NewNatsPublisher(nats)

	// Setup the session driver
	driver := cfg.Session.buildDriver(registry, publisher)

	// Create Listeners
	cm := listener.NewConnectionManager(driver, publisher)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		worker, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = &natsGated{ready: nats.Ready(), worker: worker}
	}

	// Create a worker list
	return service.WorkerList{
		"nats":      nats,
		"driver":    driver,
		"listeners": &listeners,
	}, nil
}

// natsGated holds a listener back until the message bus accepts
// subscriptions, so no connection is accepted that cannot be answered.
type natsGated struct {
	ready  <-chan struct{}
	worker service.Worker
}

func (g *natsGated) Start(ctx context.Context) error {
	select {
	case <-g.ready:
	case <-ctx.Done():
		return nil
	}
	return g.worker.Start(ctx)
}
