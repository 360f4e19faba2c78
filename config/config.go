package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is used when neither the config file nor the environment names
// the booking API.
const DefaultAPIBaseURL = "http://localhost:5000/api"

// APIBaseURLEnv overrides api.base_url.
const APIBaseURLEnv = "STOREFRONT_API_BASE_URL"

type Config struct {
	API      APIConfig      `yaml:"api"`
	HTTP     HTTPConfig     `yaml:"http"`
	Accounts AccountsConfig `yaml:"accounts"`
	Session  SessionConfig  `yaml:"session"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type AccountsConfig struct {
	Address    string `yaml:"address"`
	PathPrefix string `yaml:"path_prefix"`
}

type SessionConfig struct {
	SQLitePath   string `yaml:"sqlite_path"`
	CookieName   string `yaml:"cookie_name"`
	TTLMinutes   int    `yaml:"ttl_minutes"`
	SecureCookie bool   `yaml:"secure_cookie"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
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
	Brokers         []string `yaml:"brokers"`
	StorefrontTopic string   `yaml:"storefront_topic"`
	GroupID         string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.StorefrontTopic != ""
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// Default returns a config that works without a file: local booking API, memory
// sessions, no Kafka.
func Default() *Config {
	cfg := &Config{
		API:      APIConfig{TimeoutSeconds: 15},
		HTTP:     HTTPConfig{Address: ":8080"},
		Accounts: AccountsConfig{Address: ":8081", PathPrefix: "/api"},
		Session: SessionConfig{
			SQLitePath: defaultSQLitePath(),
			CookieName: "storefront_session",
			TTLMinutes: 60 * 24,
		},
	}
	cfg.applyEnv()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if env := strings.TrimSpace(os.Getenv(APIBaseURLEnv)); env != "" {
		c.API.BaseURL = env
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "storefront.db"
	}
	return filepath.Join(dir, "airbooking-storefront", "storefront.db")
}
