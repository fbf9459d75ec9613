package ga

import (
	"errors"
	"fmt"
	"log/slog"
)

var discardLogger = slog.New(slog.DiscardHandler)

// State is the lifecycle stage of an Engine
type State int

const (
	StateConstructed State = iota
	StateInitialized
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// GenerationReport is handed to observers after every fitness evaluation pass
type GenerationReport struct {
	Generation  int
	Fitness     []float64
	BestFitness float64
	BestValue   float64
	// Final marks the evaluation that follows the last generation
	Final bool
}

// Observer receives a report for every evaluated generation
type Observer interface {
	ObserveGeneration(GenerationReport)
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	logger    *slog.Logger
	observers []Observer
}

// WithLogger sets the logger for per-generation debug traces
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an observer. Observers are called in registration order.
func WithObserver(obs Observer) Option {
	return func(o *engineOptions) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// Engine runs a generational GA over genes of type G
type Engine[G Gene] struct {
	population *Population[G]
	selector   Selector[G]
	crossover  Crossover[G]
	mutator    Mutator[G]
	logger     *slog.Logger
	observers  []Observer
	state      State
}

// NewEngine builds an engine. populationSize must be positive and even.
func NewEngine[G Gene](populationSize int, selector Selector[G], crossover Crossover[G], mutator Mutator[G], opts ...Option) (*Engine[G], error) {
	if selector == nil || crossover == nil || mutator == nil {
		return nil, fmt.Errorf("%w: selector, crossover and mutator are required", ErrInvalidConfig)
	}
	pop, err := NewPopulation[G](populationSize)
	if err != nil {
		return nil, err
	}

	o := engineOptions{logger: discardLogger}
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine[G]{
		population: pop,
		selector:   selector,
		crossover:  crossover,
		mutator:    mutator,
		logger:     o.logger,
		observers:  o.observers,
		state:      StateConstructed,
	}, nil
}

// State returns the current lifecycle stage
func (e *Engine[G]) State() State {
	return e.state
}

// Population returns the engine's population. Callers must not modify it while running.
func (e *Engine[G]) Population() *Population[G] {
	return e.population
}

// Init seeds the population from generator
func (e *Engine[G]) Init(generator Generator[G], rng Rand) error {
	if generator == nil {
		return fmt.Errorf("%w: generator is required", ErrInvalidConfig)
	}
	if e.state == StateRunning {
		return fmt.Errorf("%w: cannot init a running engine", ErrInvalidConfig)
	}
	e.population.Init(generator, rng)
	e.state = StateInitialized
	return nil
}

// Run evolves the population for numGenerations and returns the fitness of
// the best individual in the final population. There is no elitism, so this
// is not necessarily the best fitness ever seen.
func (e *Engine[G]) Run(numGenerations int, fitnessFn FitnessFunc, rng Rand) (float64, error) {
	if e.state != StateInitialized {
		return 0, fmt.Errorf("%w: state is %s", ErrNotInitialized, e.state)
	}
	if numGenerations < 1 {
		return 0, fmt.Errorf("%w: generations %d must be at least 1", ErrInvalidConfig, numGenerations)
	}
	if fitnessFn == nil {
		return 0, fmt.Errorf("%w: fitness function is required", ErrInvalidConfig)
	}

	e.state = StateRunning
	size := e.population.Size()
	parents := make([]Individual[G], size)

	for gen := 0; gen < numGenerations; gen++ {
		e.population.CalculateFitness(fitnessFn)
		if err := e.report(gen, false); err != nil {
			return 0, e.fail(err)
		}

		for j := 0; j < size; j++ {
			p, err := e.selector.Select(e.population, rng)
			if err != nil {
				return 0, e.fail(fmt.Errorf("select slot %d: %w", j, err))
			}
			parents[j] = p
		}

		// children replace their parents' slots
		for j := 0; j < size; j += 2 {
			c1, c2, err := e.crossover.Cross(parents[j], parents[j+1], rng)
			if err != nil {
				return 0, e.fail(fmt.Errorf("cross slots %d,%d: %w", j, j+1, err))
			}
			e.population.Set(j, c1)
			e.population.Set(j+1, c2)
		}

		e.population.Mutate(e.mutator, rng)
	}

	e.population.CalculateFitness(fitnessFn)
	if err := e.report(numGenerations, true); err != nil {
		return 0, e.fail(err)
	}
	best, err := e.population.Best()
	if err != nil {
		return 0, e.fail(err)
	}
	e.state = StateCompleted
	return best.Fitness(), nil
}

// Best returns the best individual of the last evaluation pass
func (e *Engine[G]) Best() (Individual[G], error) {
	if e.state == StateConstructed {
		return Individual[G]{}, ErrNotInitialized
	}
	return e.population.Best()
}

func (e *Engine[G]) report(gen int, final bool) error {
	best, err := e.population.Best()
	if err != nil {
		return err
	}
	e.logger.Debug("generation evaluated",
		"generation", gen,
		"final", final,
		"best_fitness", best.Fitness(),
		"best_value", best.Value())

	if len(e.observers) == 0 {
		return nil
	}
	r := GenerationReport{
		Generation:  gen,
		Fitness:     e.population.Fitness(),
		BestFitness: best.Fitness(),
		BestValue:   best.Value(),
		Final:       final,
	}
	for _, obs := range e.observers {
		obs.ObserveGeneration(r)
	}
	return nil
}

// fail leaves the engine completed; the population is partially evolved and
// must be re-seeded with Init before another run.
func (e *Engine[G]) fail(err error) error {
	e.state = StateCompleted
	e.logger.Error("run aborted", "error", err)
	if errors.Is(err, ErrDomainMismatch) {
		return fmt.Errorf("crossover contract violated: %w", err)
	}
	return err
}
