package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "TRANSIT"
	dotEnvFile = ".env"
)

// Config holds every runtime setting. It is read once at startup.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBPath string

	SessionSecret string
	SessionTTL    time.Duration
	SessionSecure bool

	UpstreamURL     string
	UpstreamTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("gin.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("session.secret", "super_secret_key_for_demo_only")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("upstream.url", "http://www.wienerlinien.at/ogd_realtime/monitor")
	v.SetDefault("upstream.timeout", 10*time.Second)
}

// Load reads configs/config.yml (if present) from the given search paths and
// applies TRANSIT_* environment overrides, e.g. TRANSIT_DB_PATH. A .env file
// in the first search path that has one is merged into the environment
// first; variables already set win over it.
func Load(paths ...string) (*Config, error) {
	if err := loadDotEnv(paths); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		GinMode:         v.GetString("gin.mode"),
		LogLevel:        v.GetString("log.level"),
		DBPath:          v.GetString("db.path"),
		SessionSecret:   v.GetString("session.secret"),
		SessionTTL:      v.GetDuration("session.ttl"),
		SessionSecure:   v.GetBool("session.secure"),
		UpstreamURL:     v.GetString("upstream.url"),
		UpstreamTimeout: v.GetDuration("upstream.timeout"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(paths []string) error {
	for _, p := range paths {
		file := filepath.Join(p, dotEnvFile)
		err := godotenv.Load(file)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("session.secret must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %s", c.SessionTTL)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("gin.mode must be debug, release or test, got %q", c.GinMode)
	}
	if c.UpstreamURL == "" {
		return errors.New("upstream.url must not be empty")
	}
	return nil
}
