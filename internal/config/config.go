package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Review   ReviewConfig   `yaml:"review"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Notify   NotifyConfig   `yaml:"notify"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds token settings for the device client.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"relearn"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
}

// ReviewConfig holds the spacing curve and notifier settings.
type ReviewConfig struct {
	// IntervalsRaw is the retention curve as comma-separated day counts,
	// one per progression stage. Parsed into Intervals during validation.
	IntervalsRaw string        `yaml:"intervals"     env:"REVIEW_INTERVALS"     env-default:"1,2,4,7,15,30"`
	TickInterval time.Duration `yaml:"tick_interval" env:"REVIEW_TICK_INTERVAL" env-default:"1m"`

	// Intervals is parsed from IntervalsRaw during validation.
	Intervals []int `yaml:"-" env:"-"`
}

// AnalysisConfig holds the external text/audio analysis service settings.
type AnalysisConfig struct {
	BaseURL string        `yaml:"base_url" env:"ANALYSIS_BASE_URL" env-required:"true"`
	APIKey  string        `yaml:"api_key"  env:"ANALYSIS_API_KEY"`
	Timeout time.Duration `yaml:"timeout"  env:"ANALYSIS_TIMEOUT"  env-default:"30s"`
}

// NotifyConfig holds push gateway settings. An empty GatewayURL disables
// delivery entirely (the notifier gate still runs, with a no-op sink).
type NotifyConfig struct {
	GatewayURL string        `yaml:"gateway_url" env:"NOTIFY_GATEWAY_URL"`
	APIKey     string        `yaml:"api_key"     env:"NOTIFY_API_KEY"`
	Timeout    time.Duration `yaml:"timeout"     env:"NOTIFY_TIMEOUT" env-default:"10s"`
}

// CORSConfig holds Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
