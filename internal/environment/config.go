// Package environment loads the runner configuration from TOML files,
// a .env file and NEETCODE_* variables.
package environment

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/programme-lv/neetrunner/internal/xdg"
)

const (
	AppName        = "neetrunner"
	LocalFile      = "neetrunner.toml"
	UserFile       = "config.toml"
	DefaultSubject = "neetrunner.events"
)

type Config struct {
	Paths      Paths      `toml:"paths"`
	Run        Run        `toml:"run"`
	Complexity Complexity `toml:"complexity"`
	Display    Display    `toml:"display"`
	Log        Log        `toml:"log"`
	Publish    Publish    `toml:"publish"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-"`
}

type Paths struct {
	Tests     string `toml:"tests"`
	Solutions string `toml:"solutions"`
}

type Run struct {
	Benchmark     bool   `toml:"benchmark"`
	ProfileMemory bool   `toml:"profile_memory"`
	SaveFailed    bool   `toml:"save_failed"`
	GenerateCount int    `toml:"generate_count"`
	Seed          *int64 `toml:"seed"`
}

type Complexity struct {
	Sizes       []int `toml:"sizes"`
	RunsPerSize int   `toml:"runs_per_size"`
}

type Display struct {
	ASCII     bool `toml:"ascii"`
	DebugTopK int  `toml:"debug_top_k"`
}

type Log struct {
	Level string `toml:"level"`
}

type Publish struct {
	NatsURL     string `toml:"nats_url"`
	NatsSubject string `toml:"nats_subject"`
	SQSQueueURL string `toml:"sqs_queue_url"`
	SQSRegion   string `toml:"sqs_region"`
}

func Default() *Config {
	return &Config{
		Paths:   Paths{Tests: "tests", Solutions: "solutions"},
		Log:     Log{Level: "info"},
		Publish: Publish{NatsSubject: DefaultSubject},
	}
}

// LoadDotEnv loads path (".env" when empty) into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads explicit when set, else ./neetrunner.toml, else the XDG user
// config, then applies NEETCODE_* overrides.
func Load(explicit string) (*Config, error) {
	return load(explicit, os.Getenv, xdg.New())
}

func load(explicit string, getenv func(string) string, dirs *xdg.Dirs) (*Config, error) {
	cfg := Default()

	path, err := locate(explicit, dirs)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
		cfg.Source = path
	}

	applyEnv(cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func locate(explicit string, dirs *xdg.Dirs) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	if st, err := os.Stat(LocalFile); err == nil && !st.IsDir() {
		return LocalFile, nil
	}
	if p, ok := dirs.FindConfig(AppName, UserFile); ok {
		return p, nil
	}
	return "", nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("parse %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set("NEETCODE_TESTS_DIR", &cfg.Paths.Tests)
	set("NEETCODE_SOLUTIONS_DIR", &cfg.Paths.Solutions)
	set("NEETCODE_LOG_LEVEL", &cfg.Log.Level)
	set("NEETCODE_NATS_URL", &cfg.Publish.NatsURL)
	set("NEETCODE_SQS_QUEUE_URL", &cfg.Publish.SQSQueueURL)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Run.GenerateCount < 0 {
		errs = append(errs, fmt.Errorf("run.generate_count must not be negative, got %d", c.Run.GenerateCount))
	}
	if c.Complexity.RunsPerSize < 0 {
		errs = append(errs, fmt.Errorf("complexity.runs_per_size must not be negative, got %d", c.Complexity.RunsPerSize))
	}
	for _, n := range c.Complexity.Sizes {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("complexity.sizes must be positive, got %d", n))
			break
		}
	}
	if c.Display.DebugTopK < 0 {
		errs = append(errs, fmt.Errorf("display.debug_top_k must not be negative, got %d", c.Display.DebugTopK))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
