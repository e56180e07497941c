// Package config builds the daemon configuration from defaults, an optional
// YAML file, and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/keypad-lock/internal/gpio"
)

// Config is the complete daemon configuration.
type Config struct {
	// Tick is the sampling interval and therefore the debounce floor: a
	// bounce shorter than one tick is never seen.
	Tick      time.Duration `yaml:"tick"`
	Heartbeat time.Duration `yaml:"heartbeat"` // 0 disables
	Broker    string        `yaml:"broker"`
	HTTPAddr  string        `yaml:"http"` // empty disables the status server
	Chip      string        `yaml:"chip"`
	Buttons   []int         `yaml:"buttons"` // BCM pins for BTN0..BTN3
	LED       int           `yaml:"led"`
	ActiveLow bool          `yaml:"active_low"`

	// Set from the command line only.
	PrintState bool   `yaml:"-"`
	File       string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tick:      50 * time.Millisecond,
		Heartbeat: 15 * time.Minute,
		Broker:    "tcp://192.168.1.200:1883",
		HTTPAddr:  ":80",
		Chip:      gpio.DefaultChip,
		Buttons:   append([]int(nil), gpio.DefaultButtonPins[:]...),
		LED:       gpio.DefaultPinLED,
		ActiveLow: true,
	}
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be positive, got %v", c.Tick)
	}
	if c.Heartbeat < 0 {
		return fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat)
	}
	if c.Broker == "" {
		return errors.New("broker is required")
	}
	if c.Chip == "" {
		return errors.New("chip is required")
	}
	if len(c.Buttons) != gpio.NumButtons {
		return fmt.Errorf("expected %d button pins, got %d", gpio.NumButtons, len(c.Buttons))
	}

	seen := make(map[int]string)
	pins := map[string]int{"led": c.LED}
	for i, p := range c.Buttons {
		pins[fmt.Sprintf("button %d", i)] = p
	}
	for name, p := range pins {
		if p < 0 {
			return fmt.Errorf("%s pin must not be negative, got %d", name, p)
		}
		if other, ok := seen[p]; ok {
			return fmt.Errorf("pin %d used twice (%s and %s)", p, other, name)
		}
		seen[p] = name
	}
	return nil
}

// GPIO returns the board wiring described by the configuration.
// It must only be called on a validated Config.
func (c *Config) GPIO() gpio.Config {
	g := gpio.Config{
		Chip:      c.Chip,
		LED:       c.LED,
		ActiveLow: c.ActiveLow,
	}
	copy(g.Buttons[:], c.Buttons)
	return g
}

// Load reads a YAML config file on top of Default and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.File = path
	return cfg, nil
}

// bind registers a flag for every setting, defaulting to the current value.
// Buttons must already hold NumButtons entries.
func (c *Config) bind(fs *flag.FlagSet) {
	fs.DurationVar(&c.Tick, "tick", c.Tick, "Button sampling interval (debounce floor)")
	fs.DurationVar(&c.Heartbeat, "heartbeat", c.Heartbeat, "Heartbeat interval (0 to disable)")
	fs.StringVar(&c.Broker, "broker", c.Broker, "MQTT broker address")
	fs.StringVar(&c.HTTPAddr, "http", c.HTTPAddr, "HTTP status address (empty to disable)")
	fs.StringVar(&c.Chip, "chip", c.Chip, "GPIO chip name")
	for i := range c.Buttons {
		fs.IntVar(&c.Buttons[i], fmt.Sprintf("pin-btn%d", i), c.Buttons[i], fmt.Sprintf("BCM pin number for BTN%d", i))
	}
	fs.IntVar(&c.LED, "pin-led", c.LED, "BCM pin number for the indicator LED")
	fs.BoolVar(&c.ActiveLow, "active-low", c.ActiveLow, "Buttons pull the line low when pressed")
	fs.BoolVar(&c.PrintState, "print-state", c.PrintState, "Print current button levels and exit")
}

// Parse builds the configuration from command-line arguments. Values come
// from Default, then the YAML file named by -config, then any flag given
// explicitly on the command line.
func Parse(name string, args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	path := fs.String("config", "", "YAML config file (flags override file values)")
	cfg.bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *path == "" {
		if err := cfg.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}

	loaded, err := Load(*path)
	if err != nil {
		return Config{}, err
	}

	// Replay the explicitly set flags onto the file's values.
	over := flag.NewFlagSet(name, flag.ContinueOnError)
	loaded.bind(over)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" || setErr != nil {
			return
		}
		setErr = over.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return Config{}, setErr
	}

	if err := loaded.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}
