package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Logger   LoggerConfig   `yaml:"logger"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Checkout CheckoutConfig `yaml:"checkout"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type StorageConfig struct {
	Backend     string `yaml:"backend"`
	KeyPrefix   string `yaml:"key_prefix"`
	AsyncMirror bool   `yaml:"async_mirror"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// Enabled reports whether brokers are configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Catalog sources.
const (
	CatalogSourceMemory   = "memory"
	CatalogSourcePostgres = "postgres"
)

type CatalogConfig struct {
	Source          string `yaml:"source"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

type CheckoutConfig struct {
	DriversFeeRate float64 `yaml:"drivers_fee_rate"`
}

// LoadConfig reads the YAML file over the defaults, so keys absent from the
// file keep their default and explicit zero values are kept.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Address: ":8080"},
		Logger:   LoggerConfig{Level: "info", Format: "json"},
		Storage:  StorageConfig{Backend: BackendMemory, AsyncMirror: true},
		Kafka:    KafkaConfig{GroupID: "carrental-notifications"},
		Catalog:  CatalogConfig{Source: CatalogSourceMemory, CacheTTLSeconds: 60},
		Checkout: CheckoutConfig{DriversFeeRate: 0.05},
	}
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Catalog.Source {
	case CatalogSourceMemory, CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	if c.Checkout.DriversFeeRate < 0 {
		return fmt.Errorf("drivers fee rate must not be negative")
	}
	return nil
}
