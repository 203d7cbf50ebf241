package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSecret is the development signing secret used when SECRET_KEY is unset.
const DefaultSecret = "your-secret-key-here-change-in-production"

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	Algorithm     string `mapstructure:"algorithm"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AppSubConfig struct {
	Environment string `mapstructure:"environment"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppSubConfig   `mapstructure:"app"`
}

// environment variable names, kept compatible with the deployment manifests
var envBindings = map[string]string{
	"server.address":       "SERVER_ADDRESS",
	"server.port":          "PORT",
	"server.mode":          "GIN_MODE",
	"database.path":        "DATABASE_PATH",
	"database.log_mode":    "DATABASE_LOG_MODE",
	"jwt.secret":           "SECRET_KEY",
	"jwt.algorithm":        "ALGORITHM",
	"jwt.expire_minutes":   "ACCESS_TOKEN_EXPIRE_MINUTES",
	"security.bcrypt_cost": "BCRYPT_COST",
	"cors.allowed_origins": "ALLOWED_ORIGINS",
	"app.environment":      "ENVIRONMENT",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "")
	v.SetDefault("database.path", "./data/expenses.db")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("jwt.secret", DefaultSecret)
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.expire_minutes", 30)
	v.SetDefault("security.bcrypt_cost", 12)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("app.environment", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
}

// Load builds the configuration from defaults, an optional YAML file and the
// process environment, in increasing order of precedence.
// If path is empty, "config.yaml" in the working directory is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.JWT.Algorithm = strings.ToUpper(strings.TrimSpace(c.JWT.Algorithm))
	if c.JWT.Secret == "" {
		c.JWT.Secret = DefaultSecret
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Database.Path == "" {
		problems = append(problems, "database path cannot be empty")
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		problems = append(problems, fmt.Sprintf("unsupported signing algorithm %q", c.JWT.Algorithm))
	}
	if c.JWT.ExpireMinutes <= 0 {
		problems = append(problems, fmt.Sprintf("token ttl must be positive, got %d minutes", c.JWT.ExpireMinutes))
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("bcrypt cost %d out of range [%d, %d]",
			c.Security.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// UsingDefaultSecret reports whether tokens are signed with the development fallback.
func (c *Config) UsingDefaultSecret() bool {
	return c.JWT.Secret == "" || c.JWT.Secret == DefaultSecret
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Origins returns the allowed cross-origin sources, trimmed, empties dropped.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
