package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vango-dev/statectx/internal/errors"
)

const (
	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "statectx.json"

	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "STATECTX"

	// DefaultPort is the default demo server port.
	DefaultPort = 8080

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"
)

// Config is the demo server configuration.
type Config struct {
	// Name labels logs and the tracer.
	Name string `mapstructure:"name" json:"name" validate:"required"`

	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Demo    DemoConfig    `mapstructure:"demo" json:"demo"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing"`

	path string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host" json:"host" validate:"required"`
	Port            int           `mapstructure:"port" json:"port" validate:"min=0,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" validate:"gte=0"`
}

// DemoConfig configures the quote board.
type DemoConfig struct {
	// QuoteURL is fetched by the board's fetch action. Empty disables it.
	QuoteURL     string        `mapstructure:"quote_url" json:"quote_url" validate:"omitempty,url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" json:"fetch_timeout" validate:"gt=0"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" json:"format" validate:"oneof=text json"`
}

// MetricsConfig toggles the Prometheus observer and /metrics.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" json:"enabled"`
	Namespace string `mapstructure:"namespace" json:"namespace" validate:"required_if=Enabled true"`
}

// TracingConfig toggles the OpenTelemetry observer and its OTLP export.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`

	// Endpoint is the OTLP/HTTP collector host:port.
	Endpoint   string  `mapstructure:"endpoint" json:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool    `mapstructure:"insecure" json:"insecure"`
	SampleRate float64 `mapstructure:"sample_rate" json:"sample_rate" validate:"gte=0,lte=1"`
}

var defaults = map[string]any{
	"name":                    "statectx",
	"server.host":             DefaultHost,
	"server.port":             DefaultPort,
	"server.shutdown_timeout": 5 * time.Second,
	"demo.quote_url":          "",
	"demo.fetch_timeout":      3 * time.Second,
	"log.level":               "info",
	"log.format":              "text",
	"metrics.enabled":         true,
	"metrics.namespace":       "statectx",
	"tracing.enabled":         false,
	"tracing.endpoint":        "localhost:4318",
	"tracing.insecure":        true,
	"tracing.sample_rate":     1.0,
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := load(newViper(), "")
	if err != nil {
		panic("config: built-in defaults do not load: " + err.Error())
	}
	return cfg
}

// Load reads statectx.json from dir, if present, and applies environment
// overrides. A .env file in dir is loaded into the environment first
// without replacing variables that are already set. Missing files are not
// errors.
func Load(dir string) (*Config, error) {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, errors.New(errors.CodeConfigRead).WithDetail("%s: %v", envPath, err)
		}
	}

	v := newViper()
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.New(errors.CodeConfigRead).
				WithDetail("%s: %v", path, err).
				WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
		}
	} else {
		path = ""
	}
	return load(v, path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper, path string) (*Config, error) {
	cfg := &Config{path: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New(errors.CodeConfigRead).Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return fld.Tag.Get("mapstructure")
		})
	})
	return validate
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.New(errors.CodeInvalidConfig).Wrap(err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldKey(fe)+" "+describe(fe))
	}
	return errors.New(errors.CodeInvalidConfig).
		WithDetail("%s", strings.Join(msgs, "; ")).
		WithSuggestion("Fix " + ConfigFileName + " or the matching " + EnvPrefix + "_* variable")
}

// fieldKey turns "Config.server.port" into "server.port".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + fe.Tag()
	}
}

// Path returns the file the config was read from, or "" when none was.
func (c *Config) Path() string {
	return c.path
}

// Address returns host:port for the listener.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Logger builds an slog.Logger writing to w at the configured level and
// format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if c.Log.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("app", c.Name)
}
