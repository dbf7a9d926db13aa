// Package config loads the command settings from flags, INTEGRAL_*
// environment variables and an optional config file.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	integral "github.com/JpHernandez277/Pendientes-John"
)

const EnvPrefix = "INTEGRAL"

// Keys
const (
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyListen          = "listen"
	KeyMCPMode         = "mcp.mode"
	KeyAbsTol          = "quadrature.abs_tol"
	KeyRelTol          = "quadrature.rel_tol"
	KeyMaxSubdivisions = "quadrature.max_subdivisions"
	KeyMaxBodyBytes    = "server.max_body_bytes"
)

type Config struct {
	LogLevel     logrus.Level
	LogFormat    string
	Listen       string
	MCPMode      string
	Quadrature   integral.Quadrature
	MaxBodyBytes int64
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	q := integral.DefaultQuadrature()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyListen, ":8080")
	v.SetDefault(KeyMCPMode, "stdio")
	v.SetDefault(KeyAbsTol, q.AbsTol)
	v.SetDefault(KeyRelTol, q.RelTol)
	v.SetDefault(KeyMaxSubdivisions, q.MaxSubdivisions)
	v.SetDefault(KeyMaxBodyBytes, int64(1<<20))
}

// BindEnv makes every key readable from INTEGRAL_<KEY>, with dots written as
// underscores (INTEGRAL_LOG_LEVEL, INTEGRAL_QUADRATURE_ABS_TOL).
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// BindFlags binds each flag in fs that names a key (log-level for
// log.level, abs-tol for quadrature.abs_tol, ...) to that key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	flagKeys := map[string]string{
		"log-level":        KeyLogLevel,
		"log-format":       KeyLogFormat,
		"listen":           KeyListen,
		"mode":             KeyMCPMode,
		"abs-tol":          KeyAbsTol,
		"rel-tol":          KeyRelTol,
		"max-subdivisions": KeyMaxSubdivisions,
		"max-body-bytes":   KeyMaxBodyBytes,
	}
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// ReadFile reads path into v; the format follows the file extension.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	return errors.Wrapf(v.ReadInConfig(), "read config %s", path)
}

// Load validates the settings in v.
func Load(v *viper.Viper) (*Config, error) {
	level, err := logrus.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, errors.Wrap(err, KeyLogLevel)
	}
	c := &Config{
		LogLevel:  level,
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
		Listen:    v.GetString(KeyListen),
		MCPMode:   strings.ToLower(v.GetString(KeyMCPMode)),
		Quadrature: integral.Quadrature{
			AbsTol:          v.GetFloat64(KeyAbsTol),
			RelTol:          v.GetFloat64(KeyRelTol),
			MaxSubdivisions: v.GetInt(KeyMaxSubdivisions),
		},
		MaxBodyBytes: v.GetInt64(KeyMaxBodyBytes),
	}

	switch {
	case c.LogFormat != "text" && c.LogFormat != "json":
		return nil, errors.Errorf("%s must be text or json, got %q", KeyLogFormat, c.LogFormat)
	case c.MCPMode != "stdio" && c.MCPMode != "http":
		return nil, errors.Errorf("%s must be stdio or http, got %q", KeyMCPMode, c.MCPMode)
	case c.Quadrature.AbsTol <= 0 || c.Quadrature.RelTol <= 0:
		return nil, errors.Errorf("quadrature tolerances must be positive, got abs %g rel %g",
			c.Quadrature.AbsTol, c.Quadrature.RelTol)
	case c.Quadrature.MaxSubdivisions < 1:
		return nil, errors.Errorf("%s must be at least 1, got %d", KeyMaxSubdivisions, c.Quadrature.MaxSubdivisions)
	case c.MaxBodyBytes < 1:
		return nil, errors.Errorf("%s must be positive, got %d", KeyMaxBodyBytes, c.MaxBodyBytes)
	}
	return c, nil
}

// ApplyLogging applies the log settings to l.
func (c *Config) ApplyLogging(l *logrus.Logger) {
	l.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Engine returns an engine using the configured quadrature and logger.
func (c *Config) Engine(l logrus.FieldLogger) *integral.Engine {
	en := integral.NewEngine()
	en.Quadrature = c.Quadrature
	en.Logger = l
	return en
}
