package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrUnknownPreset is returned by ResolvePreset when no preset matches.
var ErrUnknownPreset = errors.New("unknown preset")

// maxSuggestDistance bounds how far a typo may be from a preset name before
// ResolvePreset stops suggesting it.
const maxSuggestDistance = 3

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Timer    TimerConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// TimerConfig holds driver and preset settings.
type TimerConfig struct {
	Frame         time.Duration
	MaxDelta      time.Duration `mapstructure:"max_delta"`
	Presets       map[string]time.Duration
	DefaultPreset string `mapstructure:"default_preset"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowHours bool `mapstructure:"show_hours"`
	History   int
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level string
	File  string
}

// Preset is a named countdown duration.
type Preset struct {
	Name     string
	Duration time.Duration
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "ticktimer")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(dataDir(), "ticktimer.db"))
	v.SetDefault("timer.frame", "100ms")
	v.SetDefault("timer.max_delta", "1s")
	v.SetDefault("timer.presets", map[string]any{
		"pomodoro":    "25m",
		"short-break": "5m",
		"long-break":  "15m",
	})
	v.SetDefault("timer.default_preset", "pomodoro")
	v.SetDefault("ui.show_hours", false)
	v.SetDefault("ui.history", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir(), "ticktimer.log"))
}

// Load reads configuration from file and env. Env var overrides use prefix TICKTIMER_.
func Load() (Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command-line overrides. Flags named like
// config keys ("log.level") override file and env values when set.
func LoadWithFlags(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := explicitPath(fs)
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ticktimer"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TICKTIMER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the values the driver and TUI depend on.
func (c Config) Validate() error {
	if c.Timer.Frame <= 0 {
		return fmt.Errorf("config: timer.frame must be positive, got %s", c.Timer.Frame)
	}
	if c.Timer.MaxDelta < 0 {
		return fmt.Errorf("config: timer.max_delta must not be negative, got %s", c.Timer.MaxDelta)
	}
	for name, d := range c.Timer.Presets {
		if d < 0 {
			return fmt.Errorf("config: preset %q has negative duration %s", name, d)
		}
	}
	if _, err := c.ResolvePreset(c.Timer.DefaultPreset); err != nil {
		return fmt.Errorf("config: default preset: %w", err)
	}
	return nil
}

// Presets returns the configured presets sorted by name.
func (c Config) Presets() []Preset {
	out := make([]Preset, 0, len(c.Timer.Presets))
	for name, d := range c.Timer.Presets {
		out = append(out, Preset{Name: name, Duration: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResolvePreset finds a preset by case-insensitive name. On a miss the error
// wraps ErrUnknownPreset and names the closest preset, if one is near enough.
func (c Config) ResolvePreset(name string) (Preset, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	presets := c.Presets()
	for _, p := range presets {
		if strings.ToLower(p.Name) == want {
			return p, nil
		}
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, p := range presets {
		if d := levenshtein.ComputeDistance(want, strings.ToLower(p.Name)); d < bestDist {
			best, bestDist = p.Name, d
		}
	}
	if best != "" {
		return Preset{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownPreset, name, best)
	}
	return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
}

// Path reports the config file LoadWithFlags reads: the --config flag, then
// TICKTIMER_CONFIG, then ~/.config/ticktimer/config.toml.
func Path(fs *pflag.FlagSet) string {
	if p := explicitPath(fs); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "ticktimer", "config.toml")
}

func explicitPath(fs *pflag.FlagSet) string {
	path := os.Getenv("TICKTIMER_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			path = f.Value.String()
		}
	}
	return path
}

// Save writes the provided config to path as toml, creating the directory if
// needed. An empty path means Path(nil).
func Save(cfg Config, path string) error {
	if path == "" {
		path = Path(nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	presets := make(map[string]any, len(cfg.Timer.Presets))
	for name, d := range cfg.Timer.Presets {
		presets[name] = d.String()
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("timer.frame", cfg.Timer.Frame.String())
	v.Set("timer.max_delta", cfg.Timer.MaxDelta.String())
	v.Set("timer.presets", presets)
	v.Set("timer.default_preset", cfg.Timer.DefaultPreset)
	v.Set("ui.show_hours", cfg.UI.ShowHours)
	v.Set("ui.history", cfg.UI.History)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
