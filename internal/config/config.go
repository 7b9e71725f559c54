package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Lex Umbra configuration
type Config struct {
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Retry    RetryConfig    `mapstructure:"retry"`
	Trial    TrialConfig    `mapstructure:"trial"`
	Debate   DebateConfig   `mapstructure:"debate"`
	Jury     JuryConfig     `mapstructure:"jury"`
	Rulebook RulebookConfig `mapstructure:"rulebook"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Export   ExportConfig   `mapstructure:"export"`
}

// GeminiConfig controls the text-completion service
type GeminiConfig struct {
	// APIKey is the Gemini API credential. The GEMINI_API_KEY environment
	// variable always takes precedence over the config file.
	APIKey string `mapstructure:"api_key"`
	// Model is the Gemini model identifier
	Model string `mapstructure:"model"`
}

// RetryConfig controls completion-call retry behavior
type RetryConfig struct {
	// MaxAttempts is the total attempt budget per generation call
	MaxAttempts int `mapstructure:"max_attempts"`
	// BaseDelayMs is the base backoff delay in milliseconds; actual delay is
	// base * 2^attempt plus up to 50% jitter
	BaseDelayMs int `mapstructure:"base_delay_ms"`
}

// BaseDelay returns the base backoff delay as a time.Duration
func (r *RetryConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMs) * time.Millisecond
}

// TrialConfig controls the guided trial flow
type TrialConfig struct {
	// MaxArgumentRounds caps guided argument rounds
	MaxArgumentRounds int `mapstructure:"max_argument_rounds"`
	// ContextChars bounds how much of each prior statement is fed back into
	// the next round's prompt
	ContextChars int `mapstructure:"context_chars"`
}

// DebateConfig controls the autonomous debate loop
type DebateConfig struct {
	// MinRounds is the hard floor: the judge is never consulted before it
	MinRounds int `mapstructure:"min_rounds"`
	// MaxRounds is the hard ceiling: debate always concludes at it
	MaxRounds int `mapstructure:"max_rounds"`
	// ConcludeTemperature is the sampling temperature for the judge's
	// continue/conclude decision
	ConcludeTemperature float64 `mapstructure:"conclude_temperature"`
	// SummaryChars bounds each side's argument summary in the conclude prompt
	SummaryChars int `mapstructure:"summary_chars"`
}

// JuryConfig controls the juror panel
type JuryConfig struct {
	// ProfilesFile is the path to the juror profile store (JSON)
	ProfilesFile string `mapstructure:"profiles_file"`
	// ParallelWorkers bounds the deliberation worker pool.
	// 0 means one worker per seated juror.
	ParallelWorkers int `mapstructure:"parallel_workers"`
}

// RulebookConfig controls the legal reference index
type RulebookConfig struct {
	// Path is the rulebook JSON file; missing file degrades gracefully
	Path string `mapstructure:"path"`
	// CacheSize is the LRU query cache capacity
	CacheSize int `mapstructure:"cache_size"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Enabled turns file logging on or off
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Dir is the directory for trial.log; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// ExportConfig controls transcript export
type ExportConfig struct {
	// TranscriptFile is the default export path
	TranscriptFile string `mapstructure:"transcript_file"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelayMs: 1000,
		},
		Trial: TrialConfig{
			MaxArgumentRounds: 5,
			ContextChars:      400,
		},
		Debate: DebateConfig{
			MinRounds:           2,
			MaxRounds:           5,
			ConcludeTemperature: 0.3,
			SummaryChars:        800,
		},
		Jury: JuryConfig{
			ProfilesFile:    "./data/jurors.json",
			ParallelWorkers: 0, // one worker per juror
		},
		Rulebook: RulebookConfig{
			Path:      "./data/rulebook.json",
			CacheSize: 128,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "", // stderr
		},
		Export: ExportConfig{
			TranscriptFile: "trial_transcript.json",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Gemini defaults
	viper.SetDefault("gemini.api_key", defaults.Gemini.APIKey)
	viper.SetDefault("gemini.model", defaults.Gemini.Model)

	// Retry defaults
	viper.SetDefault("retry.max_attempts", defaults.Retry.MaxAttempts)
	viper.SetDefault("retry.base_delay_ms", defaults.Retry.BaseDelayMs)

	// Trial defaults
	viper.SetDefault("trial.max_argument_rounds", defaults.Trial.MaxArgumentRounds)
	viper.SetDefault("trial.context_chars", defaults.Trial.ContextChars)

	// Debate defaults
	viper.SetDefault("debate.min_rounds", defaults.Debate.MinRounds)
	viper.SetDefault("debate.max_rounds", defaults.Debate.MaxRounds)
	viper.SetDefault("debate.conclude_temperature", defaults.Debate.ConcludeTemperature)
	viper.SetDefault("debate.summary_chars", defaults.Debate.SummaryChars)

	// Jury defaults
	viper.SetDefault("jury.profiles_file", defaults.Jury.ProfilesFile)
	viper.SetDefault("jury.parallel_workers", defaults.Jury.ParallelWorkers)

	// Rulebook defaults
	viper.SetDefault("rulebook.path", defaults.Rulebook.Path)
	viper.SetDefault("rulebook.cache_size", defaults.Rulebook.CacheSize)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Export defaults
	viper.SetDefault("export.transcript_file", defaults.Export.TranscriptFile)
}

// Load reads the configuration from viper into a Config struct and validates it.
// The GEMINI_API_KEY environment variable, if set, overrides any configured key.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lexumbra")
	}
	// Fall back to ~/.config/lexumbra
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexumbra"
	}
	return filepath.Join(home, ".config", "lexumbra")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
