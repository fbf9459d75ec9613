package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Encoding modes
const (
	EncodingInteger = "integer"
	EncodingReal    = "real"
	EncodingBoth    = "both"
)

// Environment variables that override the file
const (
	EnvSeed        = "GAOPT_SEED"
	EnvGenerations = "GAOPT_GENERATIONS"
	EnvLogLevel    = "GAOPT_LOG_LEVEL"
)

// Config is the root configuration structure
type Config struct {
	Seed        uint64         `yaml:"seed"`
	Generations int            `yaml:"generations" validate:"gte=1"`
	GA          GAConfig       `yaml:"ga"`
	Domain      DomainConfig   `yaml:"domain"`
	Encoding    EncodingConfig `yaml:"encoding"`
	Fitness     FitnessConfig  `yaml:"fitness"`
	Logging     LogConfig      `yaml:"logging"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population    int     `yaml:"population" validate:"gt=0,even"`
	TournamentK   int     `yaml:"tournament_k" validate:"gte=1"`
	MutationRate  float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	MutationSigma float64 `yaml:"mutation_sigma" validate:"gte=0"`
	BlendAlpha    float64 `yaml:"blend_alpha" validate:"gte=0"`
}

// DomainConfig bounds the decoded gene value
type DomainConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max" validate:"gtfield=Min"`
}

// EncodingConfig selects which engines run and the integer code width
type EncodingConfig struct {
	Mode string `yaml:"mode" validate:"oneof=integer real both"`
	Bits int    `yaml:"bits" validate:"oneof=8 16 32 64"`
}

// FitnessConfig names the function to minimise
type FitnessConfig struct {
	Name string `yaml:"name" validate:"required"`
}

// LogConfig defines logging and artifact parameters
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	CSVPath     string `yaml:"csv_path"`
	JSONPath    string `yaml:"json_path"`
	ChampionDir string `yaml:"champion_dir"`
	MetricsPath string `yaml:"metrics_path"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file, applies defaults and environment overrides,
// and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// unmarshal over the defaults so explicit zero values survive
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from GAOPT_* environment variables
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvGenerations); ok {
		gens, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvGenerations, err)
		}
		cfg.Generations = gens
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

// Validate checks every field constraint
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RunsInteger reports whether the integer-coded engine is enabled
func (c *Config) RunsInteger() bool {
	return c.Encoding.Mode == EncodingInteger || c.Encoding.Mode == EncodingBoth
}

// RunsReal reports whether the real-coded engine is enabled
func (c *Config) RunsReal() bool {
	return c.Encoding.Mode == EncodingReal || c.Encoding.Mode == EncodingBoth
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if cfg.Generations == 0 {
		cfg.Generations = 20
	}
	if cfg.GA.Population == 0 {
		cfg.GA.Population = 20
	}
	if cfg.GA.TournamentK == 0 {
		cfg.GA.TournamentK = 2
	}
	if cfg.GA.MutationRate == 0 {
		cfg.GA.MutationRate = 0.65
	}
	if cfg.GA.MutationSigma == 0 {
		cfg.GA.MutationSigma = 0.1
	}
	if cfg.GA.BlendAlpha == 0 {
		cfg.GA.BlendAlpha = 0.5
	}
	if cfg.Domain.Min == 0 && cfg.Domain.Max == 0 {
		cfg.Domain.Min = -100
		cfg.Domain.Max = 10
	}
	if cfg.Encoding.Mode == "" {
		cfg.Encoding.Mode = EncodingBoth
	}
	if cfg.Encoding.Bits == 0 {
		cfg.Encoding.Bits = 16
	}
	if cfg.Fitness.Name == "" {
		cfg.Fitness.Name = "square_plus_four"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.CSVPath == "" {
		cfg.Logging.CSVPath = "runs/run.csv"
	}
	if cfg.Logging.JSONPath == "" {
		cfg.Logging.JSONPath = "runs/run.jsonl"
	}
	if cfg.Logging.ChampionDir == "" {
		cfg.Logging.ChampionDir = "artifacts"
	}
}
