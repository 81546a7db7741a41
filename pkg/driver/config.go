// Package driver loads what the command line needs before evaluation: the
// slang.yml configuration and program source from disk, stdin or a git
// revision.
package driver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"slang/interpreter-go/pkg/interpreter"
)

// ConfigFileName is looked up from the program's directory upwards.
const ConfigFileName = "slang.yml"

const (
	MinStage     = 1
	MaxStage     = 10
	DefaultStage = 3
)

// Config is the parsed contents of slang.yml. Zero numeric fields mean the
// interpreter default.
type Config struct {
	Path           string
	Stage          int
	Scheduler      string
	Steps          int
	MaxTicks       int
	MaxCallDepth   int
	MaxArrayLength int
	Externals      []string
}

// DefaultConfig is used when no slang.yml is found.
func DefaultConfig() *Config {
	return &Config{Stage: DefaultStage, Scheduler: interpreter.SchedulerAsync}
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := DefaultConfig()
			cfg.Path = absPath
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks up from start looking for slang.yml. It returns "" when
// there is none.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", start, err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ResolveConfig loads the nearest slang.yml above start, or the defaults.
func ResolveConfig(start string, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	path, err := FindConfig(start)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Debug("no config file found", "start", start)
		return DefaultConfig(), nil
	}
	logger.Debug("loading config", "path", path)
	return LoadConfig(path)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if c.Stage < MinStage || c.Stage > MaxStage {
		errs.Issues = append(errs.Issues, fmt.Sprintf("stage must be between %d and %d, got %d", MinStage, MaxStage, c.Stage))
	}
	switch c.Scheduler {
	case interpreter.SchedulerAsync, interpreter.SchedulerPreemptive:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("scheduler must be %q or %q, got %q", interpreter.SchedulerAsync, interpreter.SchedulerPreemptive, c.Scheduler))
	}
	for name, v := range map[string]int{"steps": c.Steps, "max_ticks": c.MaxTicks, "max_call_depth": c.MaxCallDepth, "max_array_length": c.MaxArrayLength} {
		if v < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s must not be negative", name))
		}
	}
	seen := make(map[string]bool, len(c.Externals))
	for i, name := range c.Externals {
		if seen[name] {
			errs.Issues = append(errs.Issues, fmt.Sprintf("externals[%d] repeats %q", i, name))
		}
		seen[name] = true
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Options converts the configuration into interpreter options.
func (c *Config) Options(logger *slog.Logger) interpreter.Options {
	return interpreter.Options{
		Scheduler:      c.Scheduler,
		Steps:          c.Steps,
		MaxTicks:       c.MaxTicks,
		MaxCallDepth:   c.MaxCallDepth,
		MaxArrayLength: c.MaxArrayLength,
		Logger:         logger,
	}
}

type configFile struct {
	Stage          *int       `yaml:"stage"`
	Scheduler      string     `yaml:"scheduler"`
	Steps          int        `yaml:"steps"`
	MaxTicks       int        `yaml:"max_ticks"`
	MaxCallDepth   int        `yaml:"max_call_depth"`
	MaxArrayLength int        `yaml:"max_array_length"`
	Externals      stringList `yaml:"externals"`
}

func (cf configFile) toConfig(path string) *Config {
	cfg := DefaultConfig()
	cfg.Path = path
	if cf.Stage != nil {
		cfg.Stage = *cf.Stage
	}
	if s := strings.TrimSpace(cf.Scheduler); s != "" {
		cfg.Scheduler = strings.ToLower(s)
	}
	cfg.Steps = cf.Steps
	cfg.MaxTicks = cf.MaxTicks
	cfg.MaxCallDepth = cf.MaxCallDepth
	cfg.MaxArrayLength = cf.MaxArrayLength
	cfg.Externals = cf.Externals.Clone()
	return cfg
}

// stringList accepts a single scalar or a sequence.
type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("config: expected string or sequence for list but found %s", value.ShortTag())
	}
}
