// Package config manages application configuration from default values,
// an optional config.yaml file, and MYLIFE_-prefixed environment variables.
package config

import "time"

// Config defines the application configuration for all MyLife components:
// logging, HTTP server, database, e-mail delivery, the Gemini assistant,
// and the background scheduler services.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Email     EmailConfig     `mapstructure:"email"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls log verbosity and output format.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// HTTPConfig controls the REST API listener.
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"          validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  validate:"min=1s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=1s"`
}

// DatabaseConfig controls the SQLite database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// EmailConfig controls reminder e-mail delivery. When Enabled is false
// reminders are logged instead of sent, so the rest of the configuration
// may be left empty.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"     validate:"required_if=Enabled true"`
	Port     int    `mapstructure:"port"     validate:"min=1,max=65535"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"     validate:"required_if=Enabled true"`
}

// GeminiConfig controls the AI chat assistant. An empty APIKey disables
// the assistant; the chat endpoint then reports it as unavailable.
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay  time.Duration `mapstructure:"retry_delay" validate:"min=0"`
}

// SchedulerConfig controls the background services: how often the
// reminder poller and the cleanup sweep run, and how long completed
// todos are retained before cleanup removes them.
type SchedulerConfig struct {
	ReminderInterval time.Duration `mapstructure:"reminder_interval" validate:"min=1s"`
	CleanupInterval  time.Duration `mapstructure:"cleanup_interval"  validate:"min=1m"`
	Retention        time.Duration `mapstructure:"retention"         validate:"min=1m"`
}
