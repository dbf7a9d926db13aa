package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JpHernandez277/Pendientes-John/internal/config"
)

func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, "stdio", c.MCPMode)
	assert.Equal(t, 1.49e-8, c.Quadrature.AbsTol)
	assert.Equal(t, 1.49e-8, c.Quadrature.RelTol)
	assert.Equal(t, 50, c.Quadrature.MaxSubdivisions)
	assert.Equal(t, int64(1<<20), c.MaxBodyBytes)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("INTEGRAL_LOG_LEVEL", "debug")
	t.Setenv("INTEGRAL_QUADRATURE_MAX_SUBDIVISIONS", "200")
	c, err := config.Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, c.LogLevel)
	assert.Equal(t, 200, c.Quadrature.MaxSubdivisions)
}

func TestLoad_Flags(t *testing.T) {
	v := newViper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-format", "text", "")
	fs.Float64("abs-tol", 1e-6, "")
	require.NoError(t, config.BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--log-format=json", "--abs-tol=1e-10"}))

	c, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 1e-10, c.Quadrature.AbsTol)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "integral.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\nmcp:\n  mode: http\n"), 0o600))
	v := newViper()
	require.NoError(t, config.ReadFile(v, path))

	c, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Listen)
	assert.Equal(t, "http", c.MCPMode)

	assert.Error(t, config.ReadFile(newViper(), filepath.Join(t.TempDir(), "missing.yaml")))
	assert.NoError(t, config.ReadFile(newViper(), ""))
}

func TestLoad_Validation(t *testing.T) {
	tests := map[string]interface{}{
		config.KeyLogLevel:        "loud",
		config.KeyLogFormat:       "xml",
		config.KeyMCPMode:         "grpc",
		config.KeyAbsTol:          0.0,
		config.KeyRelTol:          -1.0,
		config.KeyMaxSubdivisions: 0,
		config.KeyMaxBodyBytes:    0,
	}
	for key, val := range tests {
		v := newViper()
		v.Set(key, val)
		_, err := config.Load(v)
		assert.Error(t, err, key)
	}
}

func TestConfig_EngineAndLogging(t *testing.T) {
	v := newViper()
	v.Set(config.KeyLogFormat, "json")
	v.Set(config.KeyMaxSubdivisions, 7)
	c, err := config.Load(v)
	require.NoError(t, err)

	l := logrus.New()
	c.ApplyLogging(l)
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	en := c.Engine(l)
	assert.Equal(t, 7, en.Quadrature.MaxSubdivisions)
	assert.Same(t, l, en.Logger)
}
