// Package config resolves Context Sentry settings from defaults, the
// optional per-project TOML file, and environment variables, in that order.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ctxsentry/ctxsentry/internal/trigger"
)

// Environment variables, the strongest layer. Names are shared with the
// original hook script so existing setups keep working.
const (
	EnvThresholdKB    = "CONTEXT_SENTRY_THRESHOLD_KB"
	EnvBackoffMin     = "CONTEXT_SENTRY_BACKOFF_MIN"
	EnvBackoffDeltaKB = "CONTEXT_SENTRY_BACKOFF_DELTA_KB"
	EnvDebug          = "CONTEXT_SENTRY_DEBUG"
)

// Built-in defaults.
const (
	DefaultThresholdKB    = 200
	DefaultBackoffMin     = 10
	DefaultBackoffDeltaKB = 50
)

// FileName is the optional per-project config file under .claude/.
const FileName = "context-sentry.toml"

// Source identifies which layer decided a setting.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceEnv     Source = "env"
)

// Config is the resolved, immutable per-run configuration.
type Config struct {
	ThresholdKB    int
	BackoffMin     int
	BackoffDeltaKB int
	Debug          bool

	// Theme is the CLI color scheme ("auto", "dark", "light"). It only
	// affects human-facing commands, never the hook decision.
	Theme string

	// Sources maps setting keys (threshold_kb, backoff_min,
	// backoff_delta_kb, debug, theme) to the layer that decided them.
	Sources map[string]Source

	// Warnings collects non-fatal load problems (unparsable file, bad
	// values). The hook ignores them; status and doctor surface them.
	Warnings []string
}

// fileConfig is the TOML shape. Pointers distinguish absent keys from
// explicit zeroes.
type fileConfig struct {
	ThresholdKB    *int    `toml:"threshold_kb"`
	BackoffMin     *int    `toml:"backoff_min"`
	BackoffDeltaKB *int    `toml:"backoff_delta_kb"`
	Debug          *bool   `toml:"debug"`
	Theme          *string `toml:"theme"`
}

// FilePath returns the config file location for a project root.
func FilePath(projectDir string) string {
	return filepath.Join(projectDir, ".claude", FileName)
}

// Load resolves the configuration for a project. It never fails: every
// problem degrades to the default for that key and is recorded in
// Warnings, because the hook must always be able to run.
func Load(projectDir string) Config {
	cfg := Config{
		ThresholdKB:    DefaultThresholdKB,
		BackoffMin:     DefaultBackoffMin,
		BackoffDeltaKB: DefaultBackoffDeltaKB,
		Theme:          "auto",
		Sources: map[string]Source{
			"threshold_kb":     SourceDefault,
			"backoff_min":      SourceDefault,
			"backoff_delta_kb": SourceDefault,
			"debug":            SourceDefault,
			"theme":            SourceDefault,
		},
	}

	// A project .env supplies variables for the env layer below without
	// overriding anything already exported.
	loadDotEnv(projectDir)

	cfg.applyFile(FilePath(projectDir))
	cfg.applyEnv()
	return cfg
}

func loadDotEnv(projectDir string) {
	path := filepath.Join(projectDir, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		c.warnf("ignoring %s: %v", FileName, err)
		return
	}

	if fc.ThresholdKB != nil {
		c.setInt("threshold_kb", &c.ThresholdKB, *fc.ThresholdKB, SourceFile)
	}
	if fc.BackoffMin != nil {
		c.setInt("backoff_min", &c.BackoffMin, *fc.BackoffMin, SourceFile)
	}
	if fc.BackoffDeltaKB != nil {
		c.setInt("backoff_delta_kb", &c.BackoffDeltaKB, *fc.BackoffDeltaKB, SourceFile)
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
		c.Sources["debug"] = SourceFile
	}
	if fc.Theme != nil {
		c.Theme = *fc.Theme
		c.Sources["theme"] = SourceFile
	}
}

func (c *Config) applyEnv() {
	c.envInt(EnvThresholdKB, "threshold_kb", &c.ThresholdKB)
	c.envInt(EnvBackoffMin, "backoff_min", &c.BackoffMin)
	c.envInt(EnvBackoffDeltaKB, "backoff_delta_kb", &c.BackoffDeltaKB)

	// Matches the historical contract: exactly "1" enables, anything
	// else set disables.
	if v, ok := os.LookupEnv(EnvDebug); ok && v != "" {
		c.Debug = v == "1"
		c.Sources["debug"] = SourceEnv
	}
}

func (c *Config) envInt(env, key string, dst *int) {
	v, ok := os.LookupEnv(env)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.warnf("%s=%q is not a number, keeping %d", env, v, *dst)
		return
	}
	c.setInt(key, dst, n, SourceEnv)
}

// setInt applies a value after validation. Non-positive thresholds and
// windows would make the sentry fire constantly or never, so they fall
// back to whatever the lower layers resolved.
func (c *Config) setInt(key string, dst *int, v int, src Source) {
	if v <= 0 {
		c.warnf("%s=%d is not positive, keeping %d", key, v, *dst)
		return
	}
	*dst = v
	c.Sources[key] = src
}

func (c *Config) warnf(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Policy converts the resolved limits for the evaluator.
func (c Config) Policy() trigger.Policy {
	return trigger.Policy{
		ThresholdKB:    float64(c.ThresholdKB),
		BackoffMin:     float64(c.BackoffMin),
		BackoffDeltaKB: float64(c.BackoffDeltaKB),
	}
}

// Tracef writes a diagnostic line to w when debug is enabled. The hook's
// primary output channel is stdout, so callers pass stderr here.
func (c Config) Tracef(w io.Writer, format string, args ...interface{}) {
	if !c.Debug {
		return
	}
	fmt.Fprintf(w, "[context-sentry] "+format+"\n", args...)
}
