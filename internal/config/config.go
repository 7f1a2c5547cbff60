// Package config loads task-api settings from defaults, an optional config
// file, TASKAPI_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"task-api/internal/ids"
	"task-api/internal/observability/jsonlog"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKAPI_HTTP_PORT.
const EnvPrefix = "TASKAPI"

type Config struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	Log    LogConfig    `mapstructure:"log"`
	Tasks  TasksConfig  `mapstructure:"tasks"`
	Client ClientConfig `mapstructure:"client"`
}

// HTTPConfig controls the listener started by `task-api serve`.
type HTTPConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	// ShutdownTimeout bounds how long in-flight requests may run after SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (c HTTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

type LogConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level"`
	// Format is "json" or "text".
	Format string `mapstructure:"format"`
}

type TasksConfig struct {
	// IDPolicy selects how new task ids are assigned: "sequential" (length+1)
	// or "monotonic".
	IDPolicy string `mapstructure:"id_policy"`
}

// ClientConfig is used by the `tasks` and `health` subcommands.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.read_header_timeout", "5s")
	v.SetDefault("http.shutdown_timeout", "5s")

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", jsonlog.FormatJSON)

	v.SetDefault("tasks.id_policy", string(ids.PolicySequential))

	v.SetDefault("client.base_url", "http://localhost:8000")
	v.SetDefault("client.timeout", "5s")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Container platforms commonly inject PORT.
	_ = v.BindEnv("http.port", EnvPrefix+"_HTTP_PORT", "PORT")
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.HTTP.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("http.shutdown_timeout must not be negative"))
	}
	if _, err := jsonlog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if f := strings.ToLower(c.Log.Format); f != jsonlog.FormatJSON && f != jsonlog.FormatText {
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q", jsonlog.FormatJSON, jsonlog.FormatText, c.Log.Format))
	}
	if _, err := ids.ParsePolicy(c.Tasks.IDPolicy); err != nil {
		errs = append(errs, fmt.Errorf("tasks.id_policy: %w", err))
	}
	if u, err := url.Parse(c.Client.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("client.base_url must be an absolute URL, got %q", c.Client.BaseURL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
