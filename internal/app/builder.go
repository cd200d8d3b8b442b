package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/matsim/internal/adapters/config"
	"go.trai.ch/matsim/internal/adapters/logger"
	"go.trai.ch/matsim/internal/adapters/telemetry"
	"go.trai.ch/matsim/internal/core/ports"
)

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app"

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Tracer ports.Tracer
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, log, tracer),
				Logger: log,
				Tracer: tracer,
			}, nil
		},
	})
}
