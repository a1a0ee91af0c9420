// Package config loads the development server configuration.
//
// Every setting has a literal default, so a missing configuration file is
// not an error: the server then listens on port 8000 on all interfaces. An
// optional devserver.toml or devserver.yaml placed in the served directory
// overrides individual settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the TCP port used when no configuration overrides it.
const DefaultPort = 8000

// DefaultTitle is the banner title used when no configuration overrides it.
const DefaultTitle = "Dev Server"

// FileNames lists the configuration files Load looks for, in order.
// The first one found is used; the rest are ignored.
var FileNames = []string{"devserver.toml", "devserver.yaml", "devserver.yml"}

// Config holds the settings of one server instance.
type Config struct {
	// Root is the directory files are served from. It is never read from a
	// configuration file; Load sets it to the directory it searched.
	Root string `toml:"-" yaml:"-"`
	// Source is the configuration file the settings were read from, or empty
	// when only defaults apply.
	Source string `toml:"-" yaml:"-"`

	// Port is the TCP port to bind. 0 asks the kernel for a free port.
	Port int `toml:"port" yaml:"port"`
	// Host is the interface to bind. Empty means all interfaces.
	Host string `toml:"host" yaml:"host"`
	// Title is shown at the top of the startup banner.
	Title string `toml:"title" yaml:"title"`
	// AccessLog enables one log line per request on stderr.
	AccessLog bool `toml:"access_log" yaml:"access_log"`
	// MaxConnections caps simultaneously accepted connections. 0 is unlimited.
	MaxConnections int `toml:"max_connections" yaml:"max_connections"`
	// ShutdownTimeout bounds how long in-flight requests may run after an
	// interrupt before their connections are closed.
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Default returns the configuration used when no file is present.
func Default(root string) *Config {
	return &Config{
		Root:            root,
		Port:            DefaultPort,
		Title:           DefaultTitle,
		AccessLog:       true,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("root directory is not set")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 0-65535", c.Port)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("max_connections must not be negative, got %d", c.MaxConnections)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// Load returns the configuration for root.
//
// It starts from Default(root) and applies the first file of FileNames that
// exists in root. Keys the Config does not know are rejected so that typos
// surface at startup instead of being silently ignored.
func Load(root string) (*Config, error) {
	cfg := Default(root)

	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		var err error
		switch strings.ToLower(filepath.Ext(name)) {
		case ".toml":
			err = decodeTOML(path, cfg)
		default:
			err = decodeYAML(path, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg.Source = path
		break
	}

	if err := cfg.Validate(); err != nil {
		if cfg.Source != "" {
			return nil, fmt.Errorf("invalid config %s: %w", cfg.Source, err)
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
