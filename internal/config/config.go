package config

import (
	"strconv"
	"time"
)

type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"3000"`
	// Browser front ends served from another origin (e.g. a Vite dev server).
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

type PostgresConfig struct {
	// "postgres" or "memory" (no database, data lives in process memory).
	Driver string `env:"DRIVER" envDefault:"postgres"`
	// Either DSN directly (e.g. from a managed secret),
	// or components to build it if DSN is empty.
	DSN          string `env:"DSN"`
	Host         string `env:"HOST" envDefault:"localhost"`
	Port         int    `env:"PORT" envDefault:"5432"`
	User         string `env:"USER"`
	Password     string `env:"PASSWORD"`
	DBName       string `env:"NAME"`
	SSLMode      string `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
}

func (c PostgresConfig) EffectiveDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "postgres://" + c.User + ":" + c.Password +
		"@" + c.Host + ":" + strconv.Itoa(c.Port) +
		"/" + c.DBName + "?sslmode=" + c.SSLMode
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type KafkaConfig struct {
	Enabled     bool     `env:"ENABLED" envDefault:"false"`
	Brokers     []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ClientID    string   `env:"CLIENT_ID" envDefault:"userhub"`
	GroupID     string   `env:"GROUP_ID" envDefault:"userhub"`
	TopicPrefix string   `env:"TOPIC_PREFIX"`
}

// ObservabilityConfig Observability / telemetry configuration
type ObservabilityConfig struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"userhub-api"`
	ServiceEnv  string `env:"SERVICE_ENV" envDefault:"Development"`
	// e.g. "otel-collector:4317"
	OtelEndpoint string `env:"ENDPOINT"`
}

// ClientConfig configures the console front end's API client.
type ClientConfig struct {
	BaseURL string        `env:"URL" envDefault:"http://localhost:3000"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"Development"`

	HTTP          HTTPConfig          `envPrefix:"HTTP_"`
	Postgres      PostgresConfig      `envPrefix:"DB_"`
	Redis         RedisConfig         `envPrefix:"REDIS_"`
	Kafka         KafkaConfig         `envPrefix:"KAFKA_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}
