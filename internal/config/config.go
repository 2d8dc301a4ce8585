// Package config resolves runtime settings from built-in defaults,
// ALWAYSONTOP_* environment variables and bound command flags.
// No configuration file is read.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mj1618/alwaysontop/internal/hotkey"
	"github.com/mj1618/alwaysontop/internal/pin"
	"github.com/mj1618/alwaysontop/internal/update"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ALWAYSONTOP"

// Config is the resolved runtime configuration.
type Config struct {
	ReassertInterval time.Duration `mapstructure:"reassert_interval"`
	SettleDelay      time.Duration `mapstructure:"settle_delay"`
	Hotkeys          []string      `mapstructure:"hotkeys"`
	NoElevate        bool          `mapstructure:"no_elevate"`
	Update           UpdateConfig  `mapstructure:"update"`
	UI               UIConfig      `mapstructure:"ui"`
	Serve            ServeConfig   `mapstructure:"serve"`
}

// UpdateConfig configures the startup version gate.
type UpdateConfig struct {
	ReleaseURL  string        `mapstructure:"release_url"`
	HomepageURL string        `mapstructure:"homepage_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Policy      string        `mapstructure:"policy"`
}

// UIConfig configures the interactive window.
type UIConfig struct {
	Width           int           `mapstructure:"width"`
	Height          int           `mapstructure:"height"`
	RestoreInterval time.Duration `mapstructure:"restore_interval"`
	Credit          string        `mapstructure:"credit"`
}

// ServeConfig configures the MCP server.
type ServeConfig struct {
	Transport string        `mapstructure:"transport"`
	Port      int           `mapstructure:"port"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ReassertInterval: pin.DefaultInterval,
		SettleDelay:      pin.DefaultSettleDelay,
		Hotkeys:          append([]string(nil), hotkey.DefaultUnpin...),
		Update: UpdateConfig{
			ReleaseURL:  update.DefaultReleaseURL,
			HomepageURL: update.DefaultHomepageURL,
			Timeout:     update.DefaultTimeout,
			Policy:      string(update.PolicyNewer),
		},
		UI: UIConfig{
			Width:           400,
			Height:          280,
			RestoreInterval: 100 * time.Millisecond,
			Credit:          "Created by WYEA",
		},
		Serve: ServeConfig{
			Transport: "stdio",
			Port:      8080,
			CacheTTL:  500 * time.Millisecond,
		},
	}
}

// New returns a viper instance seeded with defaults and env bindings.
func New() *viper.Viper {
	cfg := Default()
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reassert_interval", cfg.ReassertInterval)
	v.SetDefault("settle_delay", cfg.SettleDelay)
	v.SetDefault("hotkeys", cfg.Hotkeys)
	v.SetDefault("no_elevate", cfg.NoElevate)
	v.SetDefault("update.release_url", cfg.Update.ReleaseURL)
	v.SetDefault("update.homepage_url", cfg.Update.HomepageURL)
	v.SetDefault("update.timeout", cfg.Update.Timeout)
	v.SetDefault("update.policy", cfg.Update.Policy)
	v.SetDefault("ui.width", cfg.UI.Width)
	v.SetDefault("ui.height", cfg.UI.Height)
	v.SetDefault("ui.restore_interval", cfg.UI.RestoreInterval)
	v.SetDefault("ui.credit", cfg.UI.Credit)
	v.SetDefault("serve.transport", cfg.Serve.Transport)
	v.SetDefault("serve.port", cfg.Serve.Port)
	v.SetDefault("serve.cache_ttl", cfg.Serve.CacheTTL)
	return v
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and formats.
func (c Config) Validate() error {
	if c.ReassertInterval <= 0 {
		return fmt.Errorf("reassert_interval must be positive, got %s", c.ReassertInterval)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay must not be negative, got %s", c.SettleDelay)
	}
	if _, err := hotkey.ParseAll(c.Hotkeys); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	if err := validateURL("update.release_url", c.Update.ReleaseURL); err != nil {
		return err
	}
	if c.Update.HomepageURL != "" {
		if err := validateURL("update.homepage_url", c.Update.HomepageURL); err != nil {
			return err
		}
	}
	if c.Update.Timeout <= 0 {
		return fmt.Errorf("update.timeout must be positive, got %s", c.Update.Timeout)
	}
	if _, err := update.ParsePolicy(c.Update.Policy); err != nil {
		return fmt.Errorf("update.policy: %w", err)
	}
	if c.UI.Width <= 0 || c.UI.Height <= 0 {
		return fmt.Errorf("ui size must be positive, got %dx%d", c.UI.Width, c.UI.Height)
	}
	if c.UI.RestoreInterval <= 0 {
		return fmt.Errorf("ui.restore_interval must be positive, got %s", c.UI.RestoreInterval)
	}
	switch c.Serve.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unsupported serve.transport %q (use stdio or streamable-http)", c.Serve.Transport)
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	return nil
}

// Bindings returns the parsed unpin hotkeys.
func (c Config) Bindings() ([]hotkey.Binding, error) {
	return hotkey.ParseAll(c.Hotkeys)
}

// PinOptions derives controller options.
func (c Config) PinOptions() pin.Options {
	opts := pin.Options{
		Interval:    c.ReassertInterval,
		SettleDelay: c.SettleDelay,
	}
	if bindings, err := c.Bindings(); err == nil {
		opts.ReleaseHint = hotkey.Hint(bindings)
	}
	return opts
}

// Checker builds the release checker for the running version.
func (c Config) Checker(current string) *update.Checker {
	policy, _ := update.ParsePolicy(c.Update.Policy)
	return &update.Checker{
		URL:     c.Update.ReleaseURL,
		Current: current,
		Policy:  policy,
		Timeout: c.Update.Timeout,
	}
}

func validateURL(key, raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must include scheme and host (e.g. https://example.com)", key)
	}
	return nil
}
