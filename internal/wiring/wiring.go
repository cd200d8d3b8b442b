// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/matsim/internal/adapters/config"
	_ "go.trai.ch/matsim/internal/adapters/logger"
	_ "go.trai.ch/matsim/internal/adapters/telemetry"
	// Register the app node.
	_ "go.trai.ch/matsim/internal/app"
)
