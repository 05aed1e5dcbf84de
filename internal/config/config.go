// Package config holds the probe's settings. Everything is overridable via
// flags or LSP_PROBE_* environment variables; the defaults reproduce the tool's
// original target, the markdown-ld language server on localhost:4000.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultHost      = "localhost"
	DefaultPort      = 4000
	DefaultRootURI   = "file:///Users/locnguyen/src/code/markdown_ld"
	DefaultWorkspace = "markdown_ld"

	DefaultInitializeTimeout = 10 * time.Second
	DefaultDialTimeout       = 5 * time.Second
	DefaultReadWindow        = 2 * time.Second
)

// EnvPrefix namespaces the environment bindings (LSP_PROBE_HOST and so on).
const EnvPrefix = "LSP_PROBE"

// Config is the resolved probe configuration.
type Config struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	RootURI   string `mapstructure:"root_uri"`
	Workspace string `mapstructure:"workspace"`

	Timeouts Timeouts `mapstructure:"timeouts"`
}

// Timeouts groups the per-operation deadlines. The spread mirrors the
// different probe modes: a full initialize exchange gets the longest budget,
// raw probes connect fast and give the target only a short answer window.
type Timeouts struct {
	Initialize time.Duration `mapstructure:"initialize"`
	Dial       time.Duration `mapstructure:"dial"`
	Read       time.Duration `mapstructure:"read"`
}

// New returns a viper instance carrying the probe's defaults and env
// bindings. The caller binds flags onto it before Resolve.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("root_uri", DefaultRootURI)
	v.SetDefault("workspace", DefaultWorkspace)
	v.SetDefault("timeouts.initialize", DefaultInitializeTimeout)
	v.SetDefault("timeouts.dial", DefaultDialTimeout)
	v.SetDefault("timeouts.read", DefaultReadWindow)

	return v
}

// Resolve unmarshals the viper state into a Config.
func Resolve(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, errors.Errorf("invalid port %d", cfg.Port)
	}
	return &cfg, nil
}

// Addr returns the target address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
