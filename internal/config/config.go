package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Redis  RedisConfig  `yaml:"redis"`
	JWT    JWTConfig    `yaml:"jwt"`
	CORS   CORSConfig   `yaml:"cors"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// RedisConfig configures the optional auth rate limiter. An empty Addr
// disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// CORSConfig holds the comma-separated allowed origins; "*" allows all.
type CORSConfig struct {
	Origins string `yaml:"origins"`
}

// Load reads the YAML config file (CONFIG_PATH, default config/base.yaml) and
// applies environment variable overrides on top. A missing file is not an
// error: everything can come from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: "8080"},
		DB: DBConfig{
			Host: "localhost",
			Port: 5432,
			User: "postgres",
			Name: "projecttracker",
		},
		JWT:  JWTConfig{Secret: "change-me"},
		CORS: CORSConfig{Origins: "*"},
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/base.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	overrideFromEnv(cfg)

	if cfg.Server.Port == "" {
		return nil, fmt.Errorf("server port is required")
	}
	if cfg.DB.Host == "" {
		return nil, fmt.Errorf("db host is required")
	}

	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = n
		}
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.Origins = origins
	}
}

// AllowedOrigins splits the configured origins list.
func (c CORSConfig) AllowedOrigins() []string {
	parts := strings.Split(c.Origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
