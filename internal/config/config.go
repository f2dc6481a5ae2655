// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/inteligenciarte/luxurystudio/internal/models"
	"github.com/inteligenciarte/luxurystudio/internal/whatsapp"
)

type AppConfig struct {
	Name                   string `yaml:"name" validate:"required"`
	Environment            string `yaml:"environment" validate:"required,oneof=development production test"`
	Port                   int    `yaml:"port" validate:"required,min=1,max=65535"`
	BaseURL                string `yaml:"base_url" validate:"omitempty,url"`
	StaticDir              string `yaml:"static_dir"`
	TrustProxy             bool   `yaml:"trust_proxy"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" validate:"min=0"`
}

type StudioConfig struct {
	Name         string `yaml:"name" validate:"required"`
	Owner        string `yaml:"owner"`
	Phone        string `yaml:"phone" validate:"required"`
	Region       string `yaml:"region" validate:"required,len=2"`
	InstagramURL string `yaml:"instagram_url" validate:"required,url"`
	CoursesURL   string `yaml:"courses_url" validate:"required,url"`
	LogoPath     string `yaml:"logo_path"`
}

type DeveloperConfig struct {
	Handle       string `yaml:"handle"`
	Phone        string `yaml:"phone"`
	InstagramURL string `yaml:"instagram_url" validate:"omitempty,url"`
	Message      string `yaml:"message"`
}

type ThemeConfig struct {
	Background string `yaml:"background" validate:"omitempty,hexcolor"`
	Accent     string `yaml:"accent" validate:"omitempty,hexcolor"`
	Text       string `yaml:"text" validate:"omitempty,hexcolor"`
	Muted      string `yaml:"muted" validate:"omitempty,hexcolor"`
}

type SessionConfig struct {
	TTLMinutes int    `yaml:"ttl_minutes" validate:"min=0"`
	SweepCron  string `yaml:"sweep_cron"`
}

type RateLimitConfig struct {
	SubmitCooldownSeconds int `yaml:"submit_cooldown_seconds" validate:"min=0"`
	SubmitMaxPerHour      int `yaml:"submit_max_per_hour" validate:"min=0"`
}

type LeadsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Filename      string `yaml:"filename" validate:"required_if=Enabled true"`
	RetentionDays int    `yaml:"retention_days" validate:"min=0"`
	RetentionCron string `yaml:"retention_cron"`
}

type EmailConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region" validate:"required_if=Enabled true"`
	Sender    string `yaml:"sender" validate:"omitempty,email"`
	Recipient string `yaml:"recipient" validate:"omitempty,email"`

	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type Config struct {
	App       AppConfig       `yaml:"app"`
	Studio    StudioConfig    `yaml:"studio"`
	Developer DeveloperConfig `yaml:"developer"`
	Theme     ThemeConfig     `yaml:"theme"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Leads     LeadsConfig     `yaml:"leads"`
	Email     EmailConfig     `yaml:"email"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Default returns the studio's configuration as shipped.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "Luxury Studio"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.StaticDir = "static"
	cfg.App.ShutdownTimeoutSeconds = 30

	cfg.Studio.Name = "Luxury Studio"
	cfg.Studio.Owner = "Joyci Almeida"
	cfg.Studio.Phone = "42999722042"
	cfg.Studio.Region = "BR"
	cfg.Studio.InstagramURL = "https://www.instagram.com/luxury.joycialmeida"
	cfg.Studio.CoursesURL = "http://luxacademy.vercel.app"

	cfg.Developer.Handle = "@inteligenciarte.ia"
	cfg.Developer.Phone = "41988710303"
	cfg.Developer.InstagramURL = "https://www.instagram.com/inteligenciarte.ia"
	cfg.Developer.Message = "Olá! Gostaria de saber mais sobre como ter um link personalizado para o meu negócio."

	cfg.Session.TTLMinutes = 30
	cfg.Session.SweepCron = "*/5 * * * *"

	cfg.RateLimit.SubmitCooldownSeconds = 10
	cfg.RateLimit.SubmitMaxPerHour = 20

	cfg.Leads.Filename = "data/leads.db"
	cfg.Leads.RetentionDays = 90
	cfg.Leads.RetentionCron = "0 3 * * *"
	return cfg
}

// applyEnv overrides selected values from the environment.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("ENVIRONMENT"); ok && v != "" {
		cfg.App.Environment = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v, ok := os.LookupEnv("STATIC_DIR"); ok && v != "" {
		cfg.App.StaticDir = v
	}
	if v, ok := os.LookupEnv("STUDIO_PHONE"); ok && v != "" {
		cfg.Studio.Phone = v
	}

	// Load sensitive values from environment
	cfg.Email.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("%s failed %q validation", first.Namespace(), first.Tag())
		}
		return err
	}

	phone, err := whatsapp.NormalizeNumber(c.Studio.Phone, c.Studio.Region)
	if err != nil {
		return fmt.Errorf("studio phone: %w", err)
	}
	c.Studio.Phone = phone

	if c.Developer.Phone != "" {
		phone, err := whatsapp.NormalizeNumber(c.Developer.Phone, c.Studio.Region)
		if err != nil {
			return fmt.Errorf("developer phone: %w", err)
		}
		c.Developer.Phone = phone
	}

	if err := c.BrandTheme().Validate(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	if c.Email.Enabled {
		if c.Email.Sender == "" {
			return fmt.Errorf("email sender is required when email is enabled")
		}
		if c.Email.Recipient == "" {
			return fmt.Errorf("email recipient is required when email is enabled")
		}
		if c.Email.AccessKeyID == "" || c.Email.SecretAccessKey == "" {
			return fmt.Errorf("email is enabled but AWS credentials are not set")
		}
	}
	return nil
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

func (c *Config) LeadRetention() time.Duration {
	return time.Duration(c.Leads.RetentionDays) * 24 * time.Hour
}

// BrandTheme returns the configured palette with unset colors defaulted.
func (c *Config) BrandTheme() models.Theme {
	return models.Theme{
		Background: c.Theme.Background,
		Accent:     c.Theme.Accent,
		Text:       c.Theme.Text,
		Muted:      c.Theme.Muted,
	}.WithDefaults()
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
