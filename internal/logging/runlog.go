package logging

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"gaopt/internal/ga"
)

// RunLogger writes one CSV row and one JSON line per evaluated generation.
// It implements ga.Observer. Empty paths disable the matching sink.
type RunLogger struct {
	label     string
	csvPath   string
	jsonPath  string
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	log       *slog.Logger
	err       error
}

// GenerationSummary holds per-generation statistics
type GenerationSummary struct {
	Run          string  `json:"run"`
	Generation   int     `json:"generation"`
	BestFitness  float64 `json:"best_fitness"`
	MeanFitness  float64 `json:"mean_fitness"`
	StdFitness   float64 `json:"std_fitness"`
	WorstFitness float64 `json:"worst_fitness"`
	BestValue    float64 `json:"best_value"`
	Final        bool    `json:"final,omitempty"`
}

// NewRunLogger creates a logger for the run named label
func NewRunLogger(label, csvPath, jsonPath string, log *slog.Logger) (*RunLogger, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	for _, p := range []string{csvPath, jsonPath} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, err
		}
	}
	return &RunLogger{
		label:    label,
		csvPath:  csvPath,
		jsonPath: jsonPath,
		log:      log.With("run", label),
	}, nil
}

// Init opens the log files and writes the CSV header
func (l *RunLogger) Init() error {
	var err error

	if l.csvPath != "" {
		l.csvFile, err = os.Create(l.csvPath)
		if err != nil {
			return err
		}
		l.csvWriter = csv.NewWriter(l.csvFile)
		header := []string{
			"run", "generation", "best_fitness", "mean_fitness", "std_fitness",
			"worst_fitness", "best_value", "final",
		}
		if err := l.csvWriter.Write(header); err != nil {
			return err
		}
	}

	if l.jsonPath != "" {
		l.jsonFile, err = os.OpenFile(l.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes all log files. It returns the first write error.
func (l *RunLogger) Close() error {
	errs := []error{l.err}
	if l.csvWriter != nil {
		l.csvWriter.Flush()
		errs = append(errs, l.csvWriter.Error())
	}
	if l.csvFile != nil {
		errs = append(errs, l.csvFile.Close())
	}
	if l.jsonFile != nil {
		errs = append(errs, l.jsonFile.Close())
	}
	return errors.Join(errs...)
}

// Summarize computes the statistics for one report
func Summarize(label string, r ga.GenerationReport) GenerationSummary {
	mean, std := stat.MeanStdDev(r.Fitness, nil)
	worst := r.BestFitness
	for _, f := range r.Fitness {
		if f > worst {
			worst = f
		}
	}
	return GenerationSummary{
		Run:          label,
		Generation:   r.Generation,
		BestFitness:  r.BestFitness,
		MeanFitness:  mean,
		StdFitness:   std,
		WorstFitness: worst,
		BestValue:    r.BestValue,
		Final:        r.Final,
	}
}

// ObserveGeneration logs a generation summary
func (l *RunLogger) ObserveGeneration(r ga.GenerationReport) {
	s := Summarize(l.label, r)

	if l.csvWriter != nil {
		row := []string{
			s.Run,
			strconv.Itoa(s.Generation),
			fmt.Sprintf("%.6f", s.BestFitness),
			fmt.Sprintf("%.6f", s.MeanFitness),
			fmt.Sprintf("%.6f", s.StdFitness),
			fmt.Sprintf("%.6f", s.WorstFitness),
			fmt.Sprintf("%.6f", s.BestValue),
			strconv.FormatBool(s.Final),
		}
		l.keep(l.csvWriter.Write(row))
		l.csvWriter.Flush()
		l.keep(l.csvWriter.Error())
	}

	if l.jsonFile != nil {
		line, err := json.Marshal(s)
		l.keep(err)
		if err == nil {
			_, err = l.jsonFile.Write(append(line, '\n'))
			l.keep(err)
		}
	}

	l.log.Info("generation",
		"gen", s.Generation,
		"best", s.BestFitness,
		"mean", s.MeanFitness,
		"std", s.StdFitness,
		"x", s.BestValue,
		"final", s.Final)
}

func (l *RunLogger) keep(err error) {
	if err != nil && l.err == nil {
		l.err = err
		l.log.Warn("run log write failed", "error", err)
	}
}
