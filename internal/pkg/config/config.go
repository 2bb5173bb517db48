package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - empty optional: integrations that are switched off when unset (Redis, Kafka)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Webhook WebhookConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Serial  SerialConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"5432"`
	User         string `envconfig:"DB_USER" required:"true"`
	Password     string `envconfig:"DB_PASSWORD" required:"true"`
	DBName       string `envconfig:"DB_NAME" required:"true"`
	SSLMode      string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone     string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns     int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	TxMaxRetries int    `envconfig:"DB_TX_MAX_RETRIES" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// JWTConfig verifies the admin UI's session tokens. Secret is the app's API secret.
type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Audience string `envconfig:"JWT_AUDIENCE"`
	Duration string `envconfig:"JWT_DURATION" default:"1m"`
}

type WebhookConfig struct {
	Secret    string        `envconfig:"WEBHOOK_SECRET" required:"true"`
	DedupeTTL time.Duration `envconfig:"WEBHOOK_DEDUPE_TTL" default:"48h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Username string `envconfig:"REDIS_USERNAME"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_ORDER_TOPIC" default:"storefront.orders"`
	GroupID string   `envconfig:"KAFKA_GROUP_ID" default:"serial-inventory"`
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

type SerialConfig struct {
	AssignmentPolicy    string        `envconfig:"SERIAL_ASSIGNMENT_POLICY" default:"multi"`
	EnforceInventoryCap bool          `envconfig:"SERIAL_ENFORCE_INVENTORY_CAP" default:"false"`
	ReservationHold     time.Duration `envconfig:"SERIAL_RESERVATION_HOLD" default:"0s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Webhook: WebhookConfig{
			Secret:    "test-webhook-secret",
			DedupeTTL: time.Hour,
		},
		Serial: SerialConfig{
			AssignmentPolicy: "multi",
		},
	}
}
