package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tiledu/internal/app"
	"github.com/atomicstack/tiledu/internal/layout"
	"github.com/atomicstack/tiledu/internal/scan"
	"github.com/atomicstack/tiledu/internal/terminal"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// File is the configuration file that was read, if any.
	File string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig        = "TILEDU_CONFIG"
	envPath          = "TILEDU_PATH"
	envMinTileWidth  = "TILEDU_MIN_TILE_WIDTH"
	envMinTileHeight = "TILEDU_MIN_TILE_HEIGHT"
	envIdleTick      = "TILEDU_IDLE_TICK"
	envWorkers       = "TILEDU_WORKERS"
	envWidth         = "TILEDU_WIDTH"
	envHeight        = "TILEDU_HEIGHT"
	envProgress      = "TILEDU_PROGRESS"
	envTrace         = "TILEDU_TRACE"
	envLogFile       = "TILEDU_LOG_FILE"

	defaultLogFile = "tiledu.log"
)

// fileConfig mirrors the YAML file. Pointers distinguish absent keys.
type fileConfig struct {
	Path          *string `yaml:"path"`
	MinTileWidth  *int    `yaml:"min_tile_width"`
	MinTileHeight *int    `yaml:"min_tile_height"`
	IdleTick      *string `yaml:"idle_tick"`
	Workers       *int    `yaml:"workers"`
	Width         *int    `yaml:"width"`
	Height        *int    `yaml:"height"`
	Progress      *bool   `yaml:"progress"`
	Trace         *bool   `yaml:"trace"`
	LogFile       *string `yaml:"log_file"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		App: app.Config{
			Root:          ".",
			MinTileWidth:  layout.DefaultConstraints.MinWidth,
			MinTileHeight: layout.DefaultConstraints.MinHeight,
			IdleTick:      terminal.DefaultIdleTick,
			Workers:       scan.DefaultWorkers(),
			ShowProgress:  true,
		},
		Logging: Logging{FilePath: defaultLogFile},
	}
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := NewFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// NewFlagSet declares every command-line option.
func NewFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("tiledu", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	Register(fs)
	return fs
}

// Register adds the options to an existing flag set, such as a cobra
// command's.
func Register(fs *pflag.FlagSet) {
	d := Defaults()
	fs.Int("min-tile-width", d.App.MinTileWidth, "minimum tile width in cells before small entries are grouped")
	fs.Int("min-tile-height", d.App.MinTileHeight, "minimum tile height in rows before small entries are grouped")
	fs.Duration("idle-tick", d.App.IdleTick, "how long to wait for input before an idle tick")
	fs.Int("workers", d.App.Workers, "concurrent directory readers")
	fs.Int("width", 0, "viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "viewport height in rows (0 uses terminal height)")
	fs.Bool("progress", d.App.ShowProgress, "show scan progress on stderr")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", d.Logging.FilePath, "path to the log file")
}

// FromFlags resolves the final configuration from a parsed flag set. The
// first positional argument, if any, is the root path.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	cfg := Defaults()

	file, err := configPath(env)
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		found, err := applyFile(&cfg, file)
		if err != nil {
			return Config{}, err
		}
		if found {
			cfg.File = file
		}
	}

	applyEnv(&cfg, env)
	if err := applyFlags(&cfg, fs); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		cfg.App.Root = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		return Config{}, fmt.Errorf("expected at most one path, got %d", fs.NArg())
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.Flags = map[string]string{
		"path":          cfg.App.Root,
		"minTileWidth":  strconv.Itoa(cfg.App.MinTileWidth),
		"minTileHeight": strconv.Itoa(cfg.App.MinTileHeight),
		"idleTick":      cfg.App.IdleTick.String(),
		"workers":       strconv.Itoa(cfg.App.Workers),
		"width":         strconv.Itoa(cfg.App.Width),
		"height":        strconv.Itoa(cfg.App.Height),
		"progress":      strconv.FormatBool(cfg.App.ShowProgress),
		"trace":         strconv.FormatBool(cfg.Logging.Trace),
		"logFile":       cfg.Logging.FilePath,
	}
	cfg.Args = flagArgs(fs)
	return cfg, nil
}

// flagArgs reconstructs the arguments the user supplied.
func flagArgs(fs *pflag.FlagSet) []string {
	var args []string
	fs.Visit(func(f *pflag.Flag) {
		args = append(args, "--"+f.Name+"="+f.Value.String())
	})
	return append(args, fs.Args()...)
}

func configPath(env map[string]string) (string, error) {
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(env["XDG_CONFIG_HOME"]); v != "" {
		return filepath.Join(v, "tiledu", "config.yaml"), nil
	}
	if v := strings.TrimSpace(env["HOME"]); v != "" {
		return filepath.Join(v, ".config", "tiledu", "config.yaml"), nil
	}
	return "", nil
}

// applyFile overlays the YAML file at path. A missing file is not an error.
func applyFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return false, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Path != nil {
		cfg.App.Root = *fc.Path
	}
	setInt(&cfg.App.MinTileWidth, fc.MinTileWidth)
	setInt(&cfg.App.MinTileHeight, fc.MinTileHeight)
	setInt(&cfg.App.Workers, fc.Workers)
	setInt(&cfg.App.Width, fc.Width)
	setInt(&cfg.App.Height, fc.Height)
	if fc.IdleTick != nil {
		d, err := time.ParseDuration(*fc.IdleTick)
		if err != nil {
			return false, fmt.Errorf("parse config %s: idle_tick: %w", path, err)
		}
		cfg.App.IdleTick = d
	}
	if fc.Progress != nil {
		cfg.App.ShowProgress = *fc.Progress
	}
	if fc.Trace != nil {
		cfg.Logging.Trace = *fc.Trace
	}
	if fc.LogFile != nil {
		cfg.Logging.FilePath = *fc.LogFile
	}
	return true, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyEnv(cfg *Config, env map[string]string) {
	cfg.App.Root = envOrDefault(env, envPath, cfg.App.Root)
	cfg.App.MinTileWidth = envOrInt(env, envMinTileWidth, cfg.App.MinTileWidth)
	cfg.App.MinTileHeight = envOrInt(env, envMinTileHeight, cfg.App.MinTileHeight)
	cfg.App.Workers = envOrInt(env, envWorkers, cfg.App.Workers)
	cfg.App.Width = envOrInt(env, envWidth, cfg.App.Width)
	cfg.App.Height = envOrInt(env, envHeight, cfg.App.Height)
	cfg.App.IdleTick = envOrDuration(env, envIdleTick, cfg.App.IdleTick)
	cfg.App.ShowProgress = envOrBool(env, envProgress, cfg.App.ShowProgress)
	cfg.Logging.Trace = envOrBool(env, envTrace, cfg.Logging.Trace)
	cfg.Logging.FilePath = envOrDefault(env, envLogFile, cfg.Logging.FilePath)
}

// applyFlags copies only flags the user set, so unset flags keep values from
// the file or environment.
func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "min-tile-width":
			cfg.App.MinTileWidth, err = fs.GetInt(f.Name)
		case "min-tile-height":
			cfg.App.MinTileHeight, err = fs.GetInt(f.Name)
		case "idle-tick":
			cfg.App.IdleTick, err = fs.GetDuration(f.Name)
		case "workers":
			cfg.App.Workers, err = fs.GetInt(f.Name)
		case "width":
			cfg.App.Width, err = fs.GetInt(f.Name)
		case "height":
			cfg.App.Height, err = fs.GetInt(f.Name)
		case "progress":
			cfg.App.ShowProgress, err = fs.GetBool(f.Name)
		case "trace":
			cfg.Logging.Trace, err = fs.GetBool(f.Name)
		case "log-file":
			cfg.Logging.FilePath, err = fs.GetString(f.Name)
		}
	})
	return err
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	switch {
	case strings.TrimSpace(a.Root) == "":
		return errors.New("path must not be empty")
	case a.Width < 0:
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	case a.Height < 0:
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	case a.MinTileWidth < 1:
		return fmt.Errorf("min-tile-width must be >= 1 (got %d)", a.MinTileWidth)
	case a.MinTileHeight < 1:
		return fmt.Errorf("min-tile-height must be >= 1 (got %d)", a.MinTileHeight)
	case a.IdleTick <= 0:
		return fmt.Errorf("idle-tick must be positive (got %s)", a.IdleTick)
	case a.Workers <= 0:
		return fmt.Errorf("workers must be positive (got %d)", a.Workers)
	}
	return nil
}
