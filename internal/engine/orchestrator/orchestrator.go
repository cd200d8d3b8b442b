// Package orchestrator runs the comprehensive simulation pipeline: fetch the
// structure, fan the computation stages out over a bounded worker pool, join
// them with per-stage status, run the property predictor over the combined
// outputs and persist the result.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefectClassifier detects lattice defects in a structure. Satisfied by
// defect.Classifier.
type DefectClassifier interface {
	Classify(ctx context.Context, structure *domain.StructureRecord) (*domain.DefectRecord, error)
}

// Config holds the orchestrator's tunable parameters. Zero values fall back
// to the domain defaults.
type Config struct {
	// Parallelism bounds the number of concurrently running stages.
	Parallelism int

	// StageTimeout is the per-stage deadline. A stage still running when it
	// expires is marked timed out; its result is discarded.
	StageTimeout time.Duration

	// CacheRetention is the maximum age of a cache entry handed back without
	// recomputation.
	CacheRetention time.Duration
}

// Options carries the orchestrator's collaborators. Provider, Cache and
// Tracer are required; a nil engine, classifier or predictor marks the
// corresponding stage skipped instead of dispatching it.
type Options struct {
	Provider   ports.StructureProvider
	Cache      ports.ResultCache
	Classifier DefectClassifier
	ForceField ports.ForceFieldEngine
	Electronic ports.ElectronicEngine
	Imaging    ports.ImagingEngine
	Predictor  ports.Predictor
	Tracer     ports.Tracer
	Logger     ports.Logger
	Config     Config
}

// Orchestrator coordinates one comprehensive simulation per identifier.
// Concurrent Run calls for the same identifier are coalesced into a single
// computation; all callers share its result.
type Orchestrator struct {
	provider   ports.StructureProvider
	cache      ports.ResultCache
	classifier DefectClassifier
	forceField ports.ForceFieldEngine
	electronic ports.ElectronicEngine
	imaging    ports.ImagingEngine
	predictor  ports.Predictor
	tracer     ports.Tracer
	logger     ports.Logger
	cfg        Config

	requests singleflight.Group
}

// New creates an Orchestrator from the given collaborators.
func New(opts Options) *Orchestrator {
	cfg := opts.Config
	if cfg.Parallelism < 1 {
		cfg.Parallelism = domain.DefaultParallelism
	}
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = domain.DefaultStageTimeout
	}
	if cfg.CacheRetention <= 0 {
		cfg.CacheRetention = domain.DefaultCacheRetention
	}

	return &Orchestrator{
		provider:   opts.Provider,
		cache:      opts.Cache,
		classifier: opts.Classifier,
		forceField: opts.ForceField,
		electronic: opts.Electronic,
		imaging:    opts.Imaging,
		predictor:  opts.Predictor,
		tracer:     opts.Tracer,
		logger:     opts.Logger,
		cfg:        cfg,
	}
}

// Run produces the comprehensive result for an identifier. A fresh cache
// entry is returned without recomputation. A failed structure fetch is
// terminal and wraps domain.ErrDataUnavailable; stage failures are isolated
// into the per-stage status instead.
func (o *Orchestrator) Run(ctx context.Context, identifier string) (*domain.ComprehensiveResult, error) {
	v, err, _ := o.requests.Do(identifier, func() (any, error) {
		if cached := o.lookupCache(identifier); cached != nil {
			return cached, nil
		}

		structure, err := o.provider.GetStructure(ctx, identifier)
		if err != nil {
			return nil, zerr.With(
				zerr.Wrap(err, domain.ErrDataUnavailable.Error()),
				"identifier", identifier,
			)
		}

		return o.compute(ctx, identifier, structure)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ComprehensiveResult), nil
}

// RunStructure runs the pipeline on a caller-supplied structure, bypassing
// the provider fetch and the cache lookup. The result is still persisted
// under the identifier.
func (o *Orchestrator) RunStructure(
	ctx context.Context,
	identifier string,
	structure *domain.StructureRecord,
) (*domain.ComprehensiveResult, error) {
	v, err, _ := o.requests.Do(identifier, func() (any, error) {
		return o.compute(ctx, identifier, structure)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.ComprehensiveResult), nil
}

func (o *Orchestrator) lookupCache(identifier string) *domain.ComprehensiveResult {
	if o.cache == nil {
		return nil
	}

	cached, err := o.cache.Get(identifier, o.cfg.CacheRetention)
	if err != nil {
		o.warn(fmt.Sprintf("cache lookup for %s failed", identifier), err)
		return nil
	}
	if cached != nil {
		o.info(fmt.Sprintf("cache hit for %s", identifier))
	}
	return cached
}

func (o *Orchestrator) compute(
	ctx context.Context,
	identifier string,
	structure *domain.StructureRecord,
) (*domain.ComprehensiveResult, error) {
	ctx, span := o.tracer.Start(ctx, "simulate "+identifier)
	defer span.End()
	span.SetAttribute("identifier", identifier)
	span.SetAttribute("atoms", structure.Len())

	result := &domain.ComprehensiveResult{
		Identifier: identifier,
		Stages:     make(map[string]domain.StageStatus, 5),
	}

	var mu sync.Mutex
	group := new(errgroup.Group)
	group.SetLimit(o.cfg.Parallelism)

	o.dispatch(ctx, group, result, &mu, domain.StageDefects, o.classifier != nil,
		func(stageCtx context.Context) (applyFunc, error) {
			record, err := o.classifier.Classify(stageCtx, structure)
			if err != nil {
				return nil, err
			}
			return func(r *domain.ComprehensiveResult) { r.Defects = record }, nil
		})

	o.dispatch(ctx, group, result, &mu, domain.StageForceField, o.forceField != nil,
		func(stageCtx context.Context) (applyFunc, error) {
			ff, err := o.forceField.Compute(stageCtx, structure)
			if err != nil {
				return nil, err
			}
			return func(r *domain.ComprehensiveResult) { r.ForceField = ff }, nil
		})

	o.dispatch(ctx, group, result, &mu, domain.StageElectronic, o.electronic != nil,
		func(stageCtx context.Context) (applyFunc, error) {
			es, err := o.electronic.Compute(stageCtx, structure)
			if err != nil {
				return nil, err
			}
			return func(r *domain.ComprehensiveResult) { r.Electronic = es }, nil
		})

	o.dispatch(ctx, group, result, &mu, domain.StageImaging, o.imaging != nil,
		func(stageCtx context.Context) (applyFunc, error) {
			highRes, err := o.imaging.Simulate(stageCtx, structure, ports.ImagingHighResolution)
			if err != nil {
				return nil, err
			}
			scanning, err := o.imaging.Simulate(stageCtx, structure, ports.ImagingScanning)
			if err != nil {
				return nil, err
			}
			imaging := &domain.ImagingResult{HighResolution: highRes, Scanning: scanning}
			return func(r *domain.ComprehensiveResult) { r.Imaging = imaging }, nil
		})

	// Stage closures never return errors; failures land in result.Stages.
	_ = group.Wait()

	o.predict(ctx, identifier, structure, result)
	o.store(identifier, result)

	return result, nil
}

// applyFunc commits a finished stage's output to the shared result. It is
// invoked under the result mutex, and only for stages that beat the deadline:
// a timed-out stage's stray goroutine still finishes, but its output is
// never applied.
type applyFunc func(r *domain.ComprehensiveResult)

type stageOutcome struct {
	apply applyFunc
	err   error
}

// dispatch schedules one stage on the worker pool. The stage function runs
// in its own goroutine so a stage that ignores its context can still be
// marked timed out at the deadline.
func (o *Orchestrator) dispatch(
	ctx context.Context,
	group *errgroup.Group,
	result *domain.ComprehensiveResult,
	mu *sync.Mutex,
	name string,
	configured bool,
	fn func(ctx context.Context) (applyFunc, error),
) {
	if !configured {
		mu.Lock()
		result.Stages[name] = domain.StageStatus{State: domain.StageSkipped}
		mu.Unlock()
		return
	}

	group.Go(func() error {
		stageCtx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
		defer cancel()

		spanCtx, span := o.tracer.Start(stageCtx, name)
		defer span.End()

		done := make(chan stageOutcome, 1)
		go func() {
			apply, err := fn(spanCtx)
			done <- stageOutcome{apply: apply, err: err}
		}()

		var status domain.StageStatus
		var apply applyFunc
		select {
		case outcome := <-done:
			status = stageStatus(outcome.err)
			apply = outcome.apply
		case <-stageCtx.Done():
			status = stageStatus(stageCtx.Err())
		}

		if status.State != domain.StageOK {
			err := errors.New(status.Error)
			span.RecordError(err)
			o.warn(fmt.Sprintf("stage %s did not complete", name), err)
		}

		mu.Lock()
		if apply != nil && status.State == domain.StageOK {
			apply(result)
		}
		result.Stages[name] = status
		mu.Unlock()
		return nil
	})
}

func stageStatus(err error) domain.StageStatus {
	switch {
	case err == nil:
		return domain.StageStatus{State: domain.StageOK}
	case errors.Is(err, context.DeadlineExceeded):
		return domain.StageStatus{State: domain.StageTimedOut, Error: err.Error()}
	default:
		return domain.StageStatus{State: domain.StageFailed, Error: err.Error()}
	}
}

// predict runs after the join so models can consume stage outputs. The
// predictor never fails hard; without one the stage is skipped.
func (o *Orchestrator) predict(
	ctx context.Context,
	identifier string,
	structure *domain.StructureRecord,
	result *domain.ComprehensiveResult,
) {
	if props := o.lookupProperties(ctx, identifier); len(props) > 0 {
		result.Properties = props
	}

	if o.predictor == nil {
		result.Stages[domain.StagePrediction] = domain.StageStatus{State: domain.StageSkipped}
		return
	}

	_, span := o.tracer.Start(ctx, domain.StagePrediction)
	defer span.End()

	result.Predictions = o.predictor.Predict(ctx, structure, stageFeatures(result))
	result.Stages[domain.StagePrediction] = domain.StageStatus{State: domain.StageOK}
}

func (o *Orchestrator) lookupProperties(ctx context.Context, identifier string) map[string]float64 {
	if o.provider == nil {
		return nil
	}

	props, err := o.provider.GetProperties(ctx, identifier)
	if err != nil {
		if !errors.Is(err, domain.ErrPropertiesNotFound) {
			o.warn(fmt.Sprintf("property lookup for %s failed", identifier), err)
		}
		return nil
	}
	return props
}

// stageFeatures derives predictor inputs from completed stage outputs and
// known reference properties.
func stageFeatures(result *domain.ComprehensiveResult) map[string]float64 {
	features := make(map[string]float64, len(result.Properties)+2)
	for name, value := range result.Properties {
		features[name] = value
	}
	if result.ForceField != nil {
		features["total_energy"] = result.ForceField.Energy
	}
	if result.Defects != nil {
		features["defect_concentration"] = result.Defects.Concentration
	}
	return features
}

// store persists the result, partial stages included, so a later run can
// reuse whatever did complete. A write failure degrades to a warning.
func (o *Orchestrator) store(identifier string, result *domain.ComprehensiveResult) {
	if o.cache == nil {
		return
	}
	if err := o.cache.Put(identifier, *result); err != nil {
		o.warn(fmt.Sprintf("failed to cache result for %s", identifier), err)
	}
}

func (o *Orchestrator) info(msg string) {
	if o.logger != nil {
		o.logger.Info(msg)
	}
}

func (o *Orchestrator) warn(msg string, err error) {
	if o.logger != nil {
		o.logger.Warn(fmt.Sprintf("%s: %v", msg, err))
	}
}
