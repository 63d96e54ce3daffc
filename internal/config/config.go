package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"traingame/internal/arith"
	"traingame/internal/expr"
	"traingame/internal/shape"
	"traingame/internal/solver"
)

// Config holds all traingame configuration.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// SolverConfig configures the search.
type SolverConfig struct {
	Arithmetic string `yaml:"arithmetic" validate:"oneof=exact rational float float64"`
	Shapes     string `yaml:"shapes" validate:"oneof=legacy complete"`
	Symbols    string `yaml:"symbols" validate:"oneof=unicode ascii"`
	Workers    int    `yaml:"workers" validate:"gte=1,lte=64"`
}

// ServerConfig configures `traingame serve`.
type ServerConfig struct {
	Addr           string `yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout    string `yaml:"read_timeout"`
	WriteTimeout   string `yaml:"write_timeout"`
	EnableMetrics  bool   `yaml:"enable_metrics"`
	MaxRequestBody int64  `yaml:"max_request_body" validate:"gte=0"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

var validate = validator.New()

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Arithmetic: string(arith.Exact),
			Shapes:     "legacy",
			Symbols:    "unicode",
			Workers:    1,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			ReadTimeout:    "5s",
			WriteTimeout:   "10s",
			EnableMetrics:  true,
			MaxRequestBody: 1 << 12,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("TRAINGAME_ARITHMETIC"); v != "" {
		c.Solver.Arithmetic = v
	}
	if v := os.Getenv("TRAINGAME_SHAPES"); v != "" {
		c.Solver.Shapes = v
	}
	if v := os.Getenv("TRAINGAME_SYMBOLS"); v != "" {
		c.Solver.Symbols = v
	}
	if v := os.Getenv("TRAINGAME_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRAINGAME_WORKERS: %w", err)
		}
		c.Solver.Workers = n
	}
	if v := os.Getenv("TRAINGAME_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TRAINGAME_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// GetReadTimeout parses server.read_timeout, defaulting to 5s.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 5*time.Second)
}

// GetWriteTimeout parses server.write_timeout, defaulting to 10s.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 10*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return def
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SymbolStyle maps the configured symbol style.
func (s SolverConfig) SymbolStyle() expr.Symbols {
	if s.Symbols == "ascii" {
		return expr.ASCII
	}
	return expr.Unicode
}

// Options turns the solver section into a plan and solver options.
func (s SolverConfig) Options() (shape.Plan, []solver.Option, error) {
	plan, err := shape.ByName(s.Shapes)
	if err != nil {
		return shape.Plan{}, nil, err
	}
	mode, err := arith.ParseMode(s.Arithmetic)
	if err != nil {
		return shape.Plan{}, nil, err
	}
	return plan, []solver.Option{
		solver.WithArithmetic(mode),
		solver.WithSymbols(s.SymbolStyle()),
		solver.WithWorkers(s.Workers),
	}, nil
}
