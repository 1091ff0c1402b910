package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=300"`
}

// DatabaseConfig contains all database-related configuration settings.
//
// URL selects the backend by scheme: postgres:// or postgresql:// use the
// Postgres store, sqlite:// uses the GORM SQLite store.
//
// The pool settings (MaxOpenConns, MaxIdleConns, ConnMaxLifetimeMinutes)
// only apply to Postgres. SQLite always runs on a single connection that is
// never recycled, which serializes writers and keeps :memory: databases alive.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=0"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

// LLMConfig contains all LLM integration related settings.
// An empty GeminiAPIKey disables AI suggestions instead of failing startup.
type LLMConfig struct {
	GeminiAPIKey      string  `mapstructure:"gemini_api_key"`
	ModelName         string  `mapstructure:"model_name" validate:"required"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int     `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
	Temperature       float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP              float32 `mapstructure:"top_p" validate:"gte=0,lte=1"`
	MaxOutputTokens   int     `mapstructure:"max_output_tokens" validate:"gte=1"`
}

// Enabled reports whether an API key is configured.
func (c LLMConfig) Enabled() bool {
	return c.GeminiAPIKey != ""
}
