package config

import (
	"errors"
	"fmt"
	"os"

	"medivault/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Notify     NotifyConfig     `yaml:"notify"`
	Reminder   ReminderConfig   `yaml:"reminder"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port      int             `yaml:"port"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	// DoctorsTTL время жизни кэша справочника врачей, секунды
	DoctorsTTL int `yaml:"doctors_ttl"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	// TokenTTL срок действия access-токена, минуты
	TokenTTL int `yaml:"token_ttl"`
}

type NotifyConfig struct {
	// Transport: smtp или telegram
	Transport string         `yaml:"transport"`
	Timeout   int            `yaml:"timeout"` // секунды на одну отправку
	SMTP      SMTPConfig     `yaml:"smtp"`
	Telegram  TelegramConfig `yaml:"telegram"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

type ReminderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Time    string `yaml:"time"` // HH:MM, local time
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

func Load(configPath string) (*Config, error) {
	// .env не обязателен, ошибки отсутствия файла игнорируем
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "CHANGE_ME" {
		return errors.New("auth jwt secret is required")
	}

	switch c.Notify.Transport {
	case "smtp":
		if c.Notify.SMTP.Host == "" {
			return errors.New("notify.smtp.host is required for smtp transport")
		}
		if c.Notify.SMTP.From == "" {
			return errors.New("notify.smtp.from is required for smtp transport")
		}
	case "telegram":
		if c.Notify.Telegram.BotToken == "" {
			return errors.New("notify.telegram.bot_token is required for telegram transport")
		}
	case "none":
	default:
		return fmt.Errorf("unknown notify transport: %q", c.Notify.Transport)
	}

	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.New("redis address is required when redis is enabled")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimit.RPS == 0 {
		c.Server.RateLimit.RPS = float64(models.RateLimitRequests) / float64(models.RateLimitWindow)
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 10
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 60
	}
	if c.Notify.Transport == "" {
		c.Notify.Transport = "smtp"
	}
	if c.Notify.Timeout == 0 {
		c.Notify.Timeout = models.DefaultNotifyTimeout
	}
	if c.Notify.SMTP.Port == 0 {
		c.Notify.SMTP.Port = 587
	}
	if c.Redis.DoctorsTTL == 0 {
		c.Redis.DoctorsTTL = models.DefaultDoctorsCacheTTL
	}
	if c.Reminder.Time == "" {
		c.Reminder.Time = fmt.Sprintf("%02d:00", models.ReminderHour)
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
}
