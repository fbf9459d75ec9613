package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/stat"

	"gaopt/internal/ga"
)

// Collector exports run progress as Prometheus metrics.
// Use one Collector per registry and call For once per run label.
type Collector struct {
	generations *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	bestFitness *prometheus.GaugeVec
	meanFitness *prometheus.GaugeVec
	bestValue   *prometheus.GaugeVec
}

// NewCollector creates the metric vectors and registers them on reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gaopt_generations_total",
				Help: "Generations completed",
			},
			[]string{"run"},
		),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gaopt_fitness_evaluations_total",
				Help: "Fitness function evaluations",
			},
			[]string{"run"},
		),
		bestFitness: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gaopt_best_fitness",
				Help: "Fitness of the best individual in the latest evaluation",
			},
			[]string{"run"},
		),
		meanFitness: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gaopt_mean_fitness",
				Help: "Mean population fitness in the latest evaluation",
			},
			[]string{"run"},
		),
		bestValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gaopt_best_value",
				Help: "Decoded gene value of the best individual",
			},
			[]string{"run"},
		),
	}

	for _, col := range []prometheus.Collector{c.generations, c.evaluations, c.bestFitness, c.meanFitness, c.bestValue} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// For returns an observer that records under the given run label
func (c *Collector) For(run string) ga.Observer {
	return runObserver{c: c, run: run}
}

type runObserver struct {
	c   *Collector
	run string
}

func (o runObserver) ObserveGeneration(r ga.GenerationReport) {
	o.c.evaluations.WithLabelValues(o.run).Add(float64(len(r.Fitness)))
	// the final report is the post-loop evaluation, not a generation
	if !r.Final {
		o.c.generations.WithLabelValues(o.run).Inc()
	}
	o.c.bestFitness.WithLabelValues(o.run).Set(r.BestFitness)
	o.c.meanFitness.WithLabelValues(o.run).Set(stat.Mean(r.Fitness, nil))
	o.c.bestValue.WithLabelValues(o.run).Set(r.BestValue)
}

// WriteTextfile writes every metric in g to path in the text exposition format
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
