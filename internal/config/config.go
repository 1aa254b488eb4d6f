package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"relocation_quest/internal/domain"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Site      SiteConfig      `yaml:"site"`
	Auth      AuthConfig      `yaml:"auth"`
	Agent     AgentConfig     `yaml:"agent"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Migration MigrationConfig `yaml:"migration"`
	LogLevel  string          `yaml:"log_level"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug"`
}

// DatabaseConfig accepts either a full connection URL or discrete fields.
// The URL wins when both are present.
type DatabaseConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Host == "" {
		return ""
	}
	port := d.Port
	if port == 0 {
		port = 5432
	}
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, port, d.User, d.Password, d.DBName, sslMode,
	)
}

type SiteConfig struct {
	BaseURL string `yaml:"base_url"`
}

type AuthConfig struct {
	// Provider is "kratos", "jwt" or empty. Empty disables the
	// authenticated routes.
	Provider        string        `yaml:"provider"`
	KratosPublicURL string        `yaml:"kratos_public_url"`
	JWTSecret       string        `yaml:"jwt_secret"`
	JWTIssuer       string        `yaml:"jwt_issuer"`
	CookieName      string        `yaml:"cookie_name"`
	Timeout         time.Duration `yaml:"timeout"`
}

type AgentConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
	Breaker BreakerConfig `yaml:"breaker"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type BreakerConfig struct {
	FailureThreshold uint32        `yaml:"failure_threshold"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
}

type MigrationConfig struct {
	Source               DatabaseConfig `yaml:"source"`
	Target               DatabaseConfig `yaml:"target"`
	PartitionColumn      string         `yaml:"partition_column"`
	PartitionValue       string         `yaml:"partition_value"`
	AuditTables          []string       `yaml:"audit_tables"`
	ColumnTables         []string       `yaml:"column_tables"`
	CoverageDestinations []string       `yaml:"coverage_destinations"`
	DiscoveryKeywords    []string       `yaml:"discovery_keywords"`
	PreviewLimit         int            `yaml:"preview_limit"`
	WatchInterval        time.Duration  `yaml:"watch_interval"`
}

// TargetDSN falls back to the application database when no explicit
// target is configured.
func (c *Config) TargetDSN() string {
	if dsn := c.Migration.Target.DSN(); dsn != "" {
		return dsn
	}
	return c.Database.DSN()
}

func (c *Config) Partition() domain.Partition {
	return domain.Partition{
		Column: c.Migration.PartitionColumn,
		Value:  c.Migration.PartitionValue,
	}
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// ValidateServer reports the settings the API server cannot start without.
func (c *Config) ValidateServer() error {
	if c.Database.DSN() == "" {
		return fmt.Errorf("database.url: %w", domain.ErrConfigMissing)
	}
	switch c.Auth.Provider {
	case "":
	case "kratos":
		if c.Auth.KratosPublicURL == "" {
			return fmt.Errorf("auth.kratos_public_url: %w", domain.ErrConfigMissing)
		}
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret: %w", domain.ErrConfigMissing)
		}
	default:
		return fmt.Errorf("unknown auth provider %q", c.Auth.Provider)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = "https://relocation-quest-v2.vercel.app"
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "session"
	}
	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = 10 * time.Second
	}
	if c.Agent.Timeout == 0 {
		c.Agent.Timeout = 10 * time.Second
	}
	if c.Agent.Retry.MaxAttempts == 0 {
		c.Agent.Retry.MaxAttempts = 2
	}
	if c.Agent.Retry.InitialBackoff == 0 {
		c.Agent.Retry.InitialBackoff = 200 * time.Millisecond
	}
	if c.Agent.Retry.MaxBackoff == 0 {
		c.Agent.Retry.MaxBackoff = 2 * time.Second
	}
	if c.Agent.Breaker.FailureThreshold == 0 {
		c.Agent.Breaker.FailureThreshold = 5
	}
	if c.Agent.Breaker.OpenTimeout == 0 {
		c.Agent.Breaker.OpenTimeout = 30 * time.Second
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "relocation_quest"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "articles"
	}
	if c.Migration.PartitionColumn == "" && c.Migration.PartitionValue == "" {
		c.Migration.PartitionColumn = "app"
		c.Migration.PartitionValue = "relocation"
	}
	if len(c.Migration.AuditTables) == 0 {
		c.Migration.AuditTables = []string{
			"articles", "destinations", "topic_images", "users", "user_data",
			"user_queries", "jobs", "companies", "skills", "contact_submissions",
		}
	}
	if len(c.Migration.ColumnTables) == 0 {
		c.Migration.ColumnTables = []string{"articles", "jobs", "companies"}
	}
	if len(c.Migration.CoverageDestinations) == 0 {
		c.Migration.CoverageDestinations = []string{
			"Portugal", "Spain", "Cyprus", "Dubai", "Canada", "Australia",
			"UK", "United Kingdom", "New Zealand", "France", "Germany", "Netherlands",
			"Mexico", "Thailand", "Malta", "Greece", "Italy", "Indonesia", "Bali",
		}
	}
	if len(c.Migration.DiscoveryKeywords) == 0 {
		c.Migration.DiscoveryKeywords = []string{
			"relocation", "moving to", "expat", "digital nomad", "visa", "cost of living", "abroad",
			"portugal", "spain", "cyprus", "dubai", "thailand", "bali", "mexico",
			"germany", "italy", "greece", "malta",
		}
	}
	if c.Migration.PreviewLimit == 0 {
		c.Migration.PreviewLimit = 10
	}
	if c.Migration.WatchInterval == 0 {
		c.Migration.WatchInterval = 15 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
