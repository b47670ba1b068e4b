// Package config loads starfolio.yaml and applies STARFOLIO_* overrides from
// the environment or a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
)

const (
	// DefaultFile is read when no explicit path is given. Its absence is not
	// an error.
	DefaultFile = "starfolio.yaml"
	// DefaultEnvFile is merged under the process environment when present.
	DefaultEnvFile = ".env"

	envPrefix = "STARFOLIO_"
)

type ServerConfig struct {
	Addr   string `yaml:"addr"`
	WebDir string `yaml:"web_dir"`
}

type GitHubConfig struct {
	User    string        `yaml:"user"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the runtime configuration shared by every front end.
type Config struct {
	ContentPath string        `yaml:"content"`
	PrefsPath   string        `yaml:"prefs_db"`
	LogLevel    string        `yaml:"log_level"`
	Motion      bool          `yaml:"motion"`
	Theme       string        `yaml:"theme"`
	Soundtrack  string        `yaml:"soundtrack"`
	Server      ServerConfig  `yaml:"server"`
	GitHub      GitHubConfig  `yaml:"github"`
	Window      WindowConfig  `yaml:"window"`
	Flight      flight.Config `yaml:"flight"`
}

func Default() Config {
	return Config{
		PrefsPath: "starfolio.db",
		LogLevel:  "INFO",
		Motion:    true,
		Theme:     "night",
		Server:    ServerConfig{Addr: ":8080", WebDir: "web"},
		GitHub: GitHubConfig{
			BaseURL: "https://api.github.com",
			Timeout: 6 * time.Second,
		},
		Window: WindowConfig{Width: 1280, Height: 800},
		Flight: flight.DefaultConfig(),
	}
}

// Load reads path (DefaultFile when empty) over the defaults, then applies
// environment overrides. envFile values sit under the real environment.
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	lookup, err := envLookup(envFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}
	cfg.Flight = cfg.Flight.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envLookup merges envFile (if any) beneath os.LookupEnv.
func envLookup(envFile string) (func(string) (string, bool), error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	file, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: read %s: %w", envFile, err)
		}
		file = map[string]string{}
	}
	return func(k string) (string, bool) {
		if v, ok := os.LookupEnv(k); ok {
			return v, true
		}
		v, ok := file[k]
		return v, ok
	}, nil
}

// ApplyEnv overrides fields from STARFOLIO_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	var errs []error
	num := func(key string, dst *float64) {
		if v, ok := lookup(envPrefix + key); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", envPrefix, key, err))
				return
			}
			*dst = f
		}
	}

	str("CONTENT", &c.ContentPath)
	str("PREFS_DB", &c.PrefsPath)
	str("LOG_LEVEL", &c.LogLevel)
	str("THEME", &c.Theme)
	str("SOUNDTRACK", &c.Soundtrack)
	str("ADDR", &c.Server.Addr)
	str("WEB_DIR", &c.Server.WebDir)
	str("GITHUB_USER", &c.GitHub.User)
	str("GITHUB_URL", &c.GitHub.BaseURL)
	num("SPACING", &c.Flight.Spacing)
	num("PERSPECTIVE", &c.Flight.Perspective)
	num("NEAR_PLANE", &c.Flight.NearPlane)

	if v, ok := lookup(envPrefix + "MOTION"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sMOTION: %w", envPrefix, err))
		} else {
			c.Motion = b
		}
	}
	if v, ok := lookup(envPrefix + "GITHUB_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sGITHUB_TIMEOUT: %w", envPrefix, err))
		} else {
			c.GitHub.Timeout = d
		}
	}
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	if err := c.Flight.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.GitHub.Timeout < 0 {
		return fmt.Errorf("config: negative github timeout")
	}
	return nil
}
