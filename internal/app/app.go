// Package app implements the application layer for matsim.
package app

import (
	"context"
	"time"

	"go.trai.ch/matsim/internal/adapters/cache"
	"go.trai.ch/matsim/internal/adapters/engines"
	"go.trai.ch/matsim/internal/adapters/matdata"
	"go.trai.ch/matsim/internal/adapters/predictor"
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/matsim/internal/engine/defect"
	"go.trai.ch/matsim/internal/engine/lattice"
	"go.trai.ch/matsim/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic. The simulation stack is
// assembled per invocation from the loaded configuration, so a single App
// serves any workspace the process is pointed at.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// NoCache skips the cache lookup and forces recomputation. The fresh
	// result still replaces the stored entry.
	NoCache bool
}

// Run executes the comprehensive simulation for one material identifier.
func (a *App) Run(ctx context.Context, identifier string, opts RunOptions) (*domain.ComprehensiveResult, error) {
	if identifier == "" {
		return nil, domain.ErrNoIdentifier
	}

	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	orch, err := a.assemble(cfg, opts)
	if err != nil {
		return nil, err
	}

	result, err := orch.Run(ctx, identifier)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSimulationFailed.Error())
	}
	return result, nil
}

// CacheSize returns the total size of the result cache in bytes.
func (a *App) CacheSize(_ context.Context) (int64, error) {
	store, err := a.openStore()
	if err != nil {
		return 0, err
	}
	return store.Size()
}

// CachePurge deletes cache entries older than olderThan; zero deletes all.
func (a *App) CachePurge(_ context.Context, olderThan time.Duration) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	return store.Purge(olderThan)
}

func (a *App) openStore() (ports.ResultCache, error) {
	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cache.NewStore(cfg.Cache.Dir, a.logger)
}

// assemble builds the simulation stack for one run. Engines without a
// configured command stay nil so the orchestrator marks their stages
// skipped instead of dispatching them.
func (a *App) assemble(cfg *domain.Config, opts RunOptions) (*orchestrator.Orchestrator, error) {
	store, err := cache.NewStore(cfg.Cache.Dir, a.logger)
	if err != nil {
		return nil, err
	}

	var resultCache ports.ResultCache = store
	if opts.NoCache {
		resultCache = writeOnlyCache{store}
	}

	provider, err := matdata.NewProvider(cfg.Source, a.logger)
	if err != nil {
		return nil, err
	}

	orchOpts := orchestrator.Options{
		Provider: provider,
		Cache:    resultCache,
		Tracer:   a.tracer,
		Logger:   a.logger,
		Config: orchestrator.Config{
			Parallelism:    cfg.Compute.Parallelism,
			StageTimeout:   cfg.Compute.StageTimeout,
			CacheRetention: cfg.Cache.Retention,
		},
	}

	var forceField *engines.ForceFieldEngine
	if cfg.Engines.ForceField.Configured() {
		forceField = engines.NewForceFieldEngine(cfg.Engines.ForceField, a.logger)
		orchOpts.ForceField = forceField
	}
	if cfg.Engines.Electronic.Configured() {
		orchOpts.Electronic = engines.NewElectronicEngine(cfg.Engines.Electronic, a.logger)
	}
	if cfg.Engines.Imaging.Configured() {
		orchOpts.Imaging = engines.NewImagingEngine(cfg.Engines.Imaging, a.logger)
	}

	orchOpts.Classifier = defect.NewClassifier(
		lattice.NewReference(),
		engines.NewEvaluator(forceField),
		a.logger,
		defect.Config{OccupancyTolerance: cfg.Defects.OccupancyTolerance},
	)

	if len(cfg.Models) > 0 {
		orchOpts.Predictor = predictor.NewRegistry(cfg.Models, a.logger)
	}

	return orchestrator.New(orchOpts), nil
}

// writeOnlyCache reports every lookup as a miss while keeping writes, so a
// forced recomputation still refreshes the stored entry.
type writeOnlyCache struct {
	ports.ResultCache
}

func (writeOnlyCache) Get(string, time.Duration) (*domain.ComprehensiveResult, error) {
	return nil, nil
}
