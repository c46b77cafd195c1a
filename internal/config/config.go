package config

import (
	"fmt"
	"time"
)

// Config is the root server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Board    BoardConfig    `yaml:"board"`
	Notify   NotifyConfig   `yaml:"notify"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
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

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	SkipMigrations  bool          `yaml:"skip_migrations"    env:"DATABASE_SKIP_MIGRATIONS"`
}

// BoardConfig holds limits for posted questions and answers.
type BoardConfig struct {
	MaxQuestionLength int `yaml:"max_question_length" env:"BOARD_MAX_QUESTION_LENGTH" env-default:"2000"`
	MaxAnswerLength   int `yaml:"max_answer_length"   env:"BOARD_MAX_ANSWER_LENGTH"   env-default:"5000"`
}

// NotifyConfig holds settings for the LISTEN/NOTIFY change feed.
type NotifyConfig struct {
	Channel          string        `yaml:"channel"           env:"NOTIFY_CHANNEL"           env-default:"questions_changes"`
	ReconnectDelay   time.Duration `yaml:"reconnect_delay"   env:"NOTIFY_RECONNECT_DELAY"   env-default:"2s"`
	SubscriberBuffer int           `yaml:"subscriber_buffer" env:"NOTIFY_SUBSCRIBER_BUFFER" env-default:"16"`
	PingInterval     time.Duration `yaml:"ping_interval"     env:"NOTIFY_PING_INTERVAL"     env-default:"30s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ClientConfig configures the terminal front-end. It is read from the
// environment only; command-line flags override it.
type ClientConfig struct {
	APIURL         string        `env:"QC_API_URL"         env-default:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"QC_REQUEST_TIMEOUT" env-default:"10s"`
	ReconnectDelay time.Duration `env:"QC_RECONNECT_DELAY" env-default:"2s"`
	LogFile        string        `env:"QC_LOG_FILE"`
	Log            LogConfig     `env-prefix:"QC_"`
}
