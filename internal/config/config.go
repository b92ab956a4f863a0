// Package config loads server settings from the environment, an optional config file and
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PORTFOLIO"

// Config holds all runtime settings.
type Config struct {
	Port        int           `mapstructure:"port" validate:"min=1,max=65535"`
	Mode        string        `mapstructure:"mode" validate:"oneof=debug release test"`
	LogLevel    string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat   string        `mapstructure:"log_format" validate:"oneof=json console"`
	LogFile     string        `mapstructure:"log_file"`
	FontPath    string        `mapstructure:"font_path" validate:"required"`
	StaticDir   string        `mapstructure:"static_dir"`
	ContentFile string        `mapstructure:"content_file"`
	SceneCount  int           `mapstructure:"scene_count" validate:"min=0,max=64"`
	RevealTTL   time.Duration `mapstructure:"reveal_ttl" validate:"min=1m"`
	RedisURL    string        `mapstructure:"redis_url" validate:"omitempty,redis_url"`
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

var defaults = map[string]any{
	"port":         8080,
	"mode":         "release",
	"log_level":    "info",
	"log_format":   "json",
	"log_file":     "",
	"font_path":    "fonts/helvetiker_regular.typeface.json",
	"static_dir":   "",
	"content_file": "",
	"scene_count":  15,
	"reveal_ttl":   "2h",
	"redis_url":    "",
}

// Load resolves the configuration. Precedence, highest first: PORTFOLIO_* environment
// variables (PORT is accepted for the port), the config file, defaults. configFile may be
// empty, in which case ./portfolio.yaml is used when present.
func Load(configFile string) (*Config, error) {
	return load(viper.New(), configFile)
}

func load(v *viper.Viper, configFile string) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Mode = strings.ToLower(cfg.Mode)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("redis_url", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.HasPrefix(value, "redis://") ||
				strings.HasPrefix(value, "rediss://") ||
				strings.HasPrefix(value, "unix://")
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks cfg and reports the first offending setting by its config key.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("invalid config %s: failed %q (value %v)", keyFor(fe.StructField()), tagDescription(fe), fe.Value())
	}
	return err
}

func tagDescription(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

var structKeys = map[string]string{
	"Port":        "port",
	"Mode":        "mode",
	"LogLevel":    "log_level",
	"LogFormat":   "log_format",
	"LogFile":     "log_file",
	"FontPath":    "font_path",
	"StaticDir":   "static_dir",
	"ContentFile": "content_file",
	"SceneCount":  "scene_count",
	"RevealTTL":   "reveal_ttl",
	"RedisURL":    "redis_url",
}

func keyFor(field string) string {
	if key, ok := structKeys[field]; ok {
		return key
	}
	return field
}
