package runner

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"gaopt/internal/config"
	"gaopt/internal/fitness"
	"gaopt/internal/ga"
	"gaopt/internal/logging"
	"gaopt/internal/metrics"
)

// topN is the number of final individuals kept in a Result
const topN = 5

// Entry is one ranked individual of the final population
type Entry struct {
	Value   float64
	Fitness float64
}

// Result summarises one engine run
type Result struct {
	Run         string
	Encoding    string
	Bits        int
	Generations int
	BestFitness float64
	BestValue   float64
	// Code is set for integer runs only
	Code *uint64
	Top  []Entry
}

// Champion converts the result into its saved form
func (r Result) Champion(seed uint64) logging.Champion {
	return logging.Champion{
		Run:         r.Run,
		Encoding:    r.Encoding,
		Seed:        seed,
		Generations: r.Generations,
		Value:       r.BestValue,
		Fitness:     r.BestFitness,
		Code:        r.Code,
		Bits:        r.Bits,
	}
}

// Runner builds and drives the engines a configuration asks for
type Runner struct {
	cfg       *config.Config
	fn        ga.FitnessFunc
	log       *slog.Logger
	collector *metrics.Collector
}

// New validates cfg and resolves its fitness function. reg may be nil to
// disable metrics.
func New(cfg *config.Config, log *slog.Logger, reg prometheus.Registerer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, err := fitness.Lookup(cfg.Fitness.Name)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &Runner{cfg: cfg, fn: fn, log: log}
	if reg != nil {
		c, err := metrics.NewCollector(reg)
		if err != nil {
			return nil, err
		}
		r.collector = c
	}
	return r, nil
}

// Run executes the integer run then the real run, as enabled, sharing rng
// so the whole session is reproducible from one seed
func (r *Runner) Run(rng ga.Rand) ([]Result, error) {
	var results []Result
	if r.cfg.RunsInteger() {
		res, err := r.runInteger(rng)
		if err != nil {
			return results, fmt.Errorf("integer run: %w", err)
		}
		results = append(results, res)
	}
	if r.cfg.RunsReal() {
		res, err := r.runReal(rng)
		if err != nil {
			return results, fmt.Errorf("real run: %w", err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) domain() ga.Domain {
	return ga.Domain{Min: r.cfg.Domain.Min, Max: r.cfg.Domain.Max}
}

func (r *Runner) runInteger(rng ga.Rand) (Result, error) {
	switch r.cfg.Encoding.Bits {
	case 8:
		return runInteger[uint8](r, rng)
	case 16:
		return runInteger[uint16](r, rng)
	case 32:
		return runInteger[uint32](r, rng)
	case 64:
		return runInteger[uint64](r, rng)
	default:
		return Result{}, fmt.Errorf("%w: unsupported bit width %d", ga.ErrInvalidConfig, r.cfg.Encoding.Bits)
	}
}

func runInteger[U ga.Unsigned](r *Runner, rng ga.Rand) (Result, error) {
	label := config.EncodingInteger
	log := r.log.With("run", label)

	sel, err := ga.NewTournamentSelection[ga.IntegerGene[U]](r.cfg.GA.TournamentK)
	if err != nil {
		return Result{}, err
	}
	mut, err := ga.NewBitInvertMutator[U](r.cfg.GA.MutationRate)
	if err != nil {
		return Result{}, err
	}
	gen, err := ga.NewIntegerGenerator[U](r.domain())
	if err != nil {
		return Result{}, err
	}
	cx := ga.NewOnePointCrossover[U]().WithLogger(log)

	best, top, err := execute[ga.IntegerGene[U]](r, label, rng, gen, sel.WithLogger(log), cx, mut.WithLogger(log))
	if err != nil {
		return Result{}, err
	}
	code := uint64(best.Gene().Code())
	return Result{
		Run:         label,
		Encoding:    label,
		Bits:        ga.BitWidth[U](),
		Generations: r.cfg.Generations,
		BestFitness: best.Fitness(),
		BestValue:   best.Value(),
		Code:        &code,
		Top:         top,
	}, nil
}

func (r *Runner) runReal(rng ga.Rand) (Result, error) {
	label := config.EncodingReal
	log := r.log.With("run", label)

	sel, err := ga.NewTournamentSelection[ga.RealGene](r.cfg.GA.TournamentK)
	if err != nil {
		return Result{}, err
	}
	cx, err := ga.NewBlendCrossover(r.cfg.GA.BlendAlpha)
	if err != nil {
		return Result{}, err
	}
	mut, err := ga.NewGaussianMutator(r.cfg.GA.MutationRate, r.cfg.GA.MutationSigma)
	if err != nil {
		return Result{}, err
	}
	gen, err := ga.NewRealGenerator(r.domain())
	if err != nil {
		return Result{}, err
	}

	best, top, err := execute[ga.RealGene](r, label, rng, gen, sel.WithLogger(log), cx.WithLogger(log), mut.WithLogger(log))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Run:         label,
		Encoding:    label,
		Generations: r.cfg.Generations,
		BestFitness: best.Fitness(),
		BestValue:   best.Value(),
		Top:         top,
	}, nil
}

func execute[G ga.Gene](r *Runner, label string, rng ga.Rand, gen ga.Generator[G], sel ga.Selector[G], cx ga.Crossover[G], mut ga.Mutator[G]) (best ga.Individual[G], top []Entry, err error) {
	runLog, err := logging.NewRunLogger(label,
		labelPath(r.cfg.Logging.CSVPath, label),
		labelPath(r.cfg.Logging.JSONPath, label),
		r.log)
	if err != nil {
		return best, nil, err
	}
	if err := runLog.Init(); err != nil {
		return best, nil, errors.Join(err, runLog.Close())
	}
	defer func() {
		err = errors.Join(err, runLog.Close())
	}()

	opts := []ga.Option{ga.WithLogger(r.log.With("run", label)), ga.WithObserver(runLog)}
	if r.collector != nil {
		opts = append(opts, ga.WithObserver(r.collector.For(label)))
	}

	engine, err := ga.NewEngine(r.cfg.GA.Population, sel, cx, mut, opts...)
	if err != nil {
		return best, nil, err
	}
	if err := engine.Init(gen, rng); err != nil {
		return best, nil, err
	}

	r.log.Info("starting run",
		"run", label,
		"population", r.cfg.GA.Population,
		"generations", r.cfg.Generations,
		"fitness", r.cfg.Fitness.Name)

	if _, err := engine.Run(r.cfg.Generations, r.fn, rng); err != nil {
		return best, nil, err
	}
	best, err = engine.Best()
	if err != nil {
		return best, nil, err
	}
	for _, ind := range engine.Population().TopK(topN) {
		top = append(top, Entry{Value: ind.Value(), Fitness: ind.Fitness()})
	}
	return best, top, nil
}

// labelPath inserts label before the extension: runs/run.csv -> runs/run_integer.csv
func labelPath(path, label string) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + label + ext
}
