package main

import (
	"flag"
	"os"
)

// Config holds the daemon's process-level configuration: everything the
// spec treats as an out-of-scope external collaborator (serial driver
// bring-up, GPIO, flash) still needs a concrete value to wire into
// system.Deps on this host-side harness (spec §1).
type Config struct {
	// SerialPort is the path to the modem's serial port (e.g.
	// "/dev/ttyUSB0"). Ignored when HostSim is true.
	SerialPort string
	// HostSim runs against an in-process simulated modem/GPIO/flash
	// instead of real hardware (package hal/hostsim).
	HostSim bool
	// FlashPath is the file standing in for the reserved flash sector
	// in hostsim mode.
	FlashPath string
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error").
	LogLevel string
}

// ConfigOption is a function that modifies a Config.
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order.
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values.
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.SerialPort = "/dev/ttyUSB0"
		c.HostSim = false
		c.FlashPath = "alarmdial-config.bin"
		c.LogLevel = "info"
		return nil
	}
}

// WithEnv loads configuration from environment variables.
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if port := os.Getenv("SERIAL_PORT"); port != "" {
			c.SerialPort = port
		}
		if os.Getenv("HOSTSIM") == "1" {
			c.HostSim = true
		}
		if path := os.Getenv("FLASH_PATH"); path != "" {
			c.FlashPath = path
		}
		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}
		return nil
	}
}

// WithFlags loads configuration from command-line flags.
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "hostsim":
				c.HostSim = f.Value.String() == "true"
			case "flash-path":
				c.FlashPath = f.Value.String()
			case "log-level":
				c.LogLevel = f.Value.String()
			}
		})
		return nil
	}
}
