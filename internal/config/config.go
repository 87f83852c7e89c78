package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	SinkRedis     = "redis"
	SinkKafka     = "kafka"
	SinkFirestore = "firestore"
	SinkWebhook   = "webhook"

	defaultSinkTimeout = 2 * time.Second
)

type Config struct {
	Environment string
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	MigrateOnStart bool   `toml:"migrate_on_start"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// http
	AllowedOrigins                []string `toml:"allowed_origins"`
	LeaderboardRateLimitPerMinute int      `toml:"leaderboard_rate_limit_per_minute"`
	JWTIssuer                     string   `toml:"jwt_issuer"`

	Sink SinkConfig `toml:"sink"`
}

// SinkConfig configures where ranking snapshots are pushed after a recompute.
type SinkConfig struct {
	Enabled bool     `toml:"enabled"`
	Types   []string `toml:"types"`
	// Timeout is a Go duration string, e.g. "1500ms".
	Timeout       string        `toml:"timeout"`
	TimeoutParsed time.Duration `toml:"-"`

	RedisChannel string `toml:"redis_channel"`

	KafkaBrokers []string `toml:"kafka_brokers"`
	KafkaTopic   string   `toml:"kafka_topic"`

	FirestoreProjectID       string `toml:"firestore_project_id"`
	FirestoreCollection      string `toml:"firestore_collection"`
	FirestoreCredentialsFile string `toml:"firestore_credentials_file"`

	WebhookURL string `toml:"webhook_url"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, fmt.Errorf("no development section")
		}
		t.Development.Environment = "development"
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, fmt.Errorf("no production section")
		}
		t.Production.Environment = "production"
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env, validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, content string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(content, &t); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", cfg.Environment, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("port must be positive, got %d", c.Port)
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.LeaderboardRateLimitPerMinute < 0 {
		return fmt.Errorf("leaderboard rate limit must not be negative")
	}

	c.Sink.TimeoutParsed = defaultSinkTimeout
	if c.Sink.Timeout != "" {
		d, err := time.ParseDuration(c.Sink.Timeout)
		if err != nil {
			return fmt.Errorf("sink timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("sink timeout must be positive")
		}
		c.Sink.TimeoutParsed = d
	}

	if !c.Sink.Enabled {
		return nil
	}
	for _, sinkType := range c.Sink.Types {
		switch sinkType {
		case SinkRedis:
			if c.Sink.RedisChannel == "" {
				return fmt.Errorf("redis sink: channel not set")
			}
		case SinkKafka:
			if len(c.Sink.KafkaBrokers) == 0 || c.Sink.KafkaTopic == "" {
				return fmt.Errorf("kafka sink: brokers and topic required")
			}
		case SinkFirestore:
			if c.Sink.FirestoreProjectID == "" {
				return fmt.Errorf("firestore sink: project id not set")
			}
			if c.Sink.FirestoreCollection == "" {
				c.Sink.FirestoreCollection = "rankings"
			}
		case SinkWebhook:
			if c.Sink.WebhookURL == "" {
				return fmt.Errorf("webhook sink: url not set")
			}
		default:
			return fmt.Errorf("unknown sink type: %s", sinkType)
		}
	}
	return nil
}
