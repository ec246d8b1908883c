package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Engine EngineConfig `yaml:"engine"`
	Reset  ResetConfig  `yaml:"reset"`
}

type SerialConfig struct {
	// Device is the serial device path; may be left empty and supplied on
	// the command line instead.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type EngineConfig struct {
	// AckTimeout bounds the ACK/NAK wait after a configuration write.
	AckTimeout time.Duration `yaml:"ack_timeout"`
	// PollTimeout bounds the wait for a poll response; a negative value
	// waits forever.
	PollTimeout time.Duration `yaml:"poll_timeout"`
	// VerifyChecksums drops received frames with a bad checksum trailer.
	VerifyChecksums bool `yaml:"verify_checksums"`
}

type ResetConfig struct {
	// GPIOPin is the BCM pin wired to the receiver's RESET_N line;
	// 0 means no reset line is wired.
	GPIOPin int `yaml:"gpio_pin"`
	// Hold is how long the line is held low during a hardware reset.
	Hold time.Duration `yaml:"hold"`
}

// Default is the configuration used when no config file is given; command
// line flags fill in the rest.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()

	if cfg.Serial.Baud <= 0 {
		return Config{}, fmt.Errorf("serial.baud must be > 0")
	}
	if cfg.Engine.AckTimeout <= 0 {
		return Config{}, fmt.Errorf("engine.ack_timeout must be > 0")
	}
	if cfg.Reset.GPIOPin < 0 {
		return Config{}, fmt.Errorf("reset.gpio_pin must be >= 0")
	}
	if cfg.Reset.GPIOPin > 0 && cfg.Reset.Hold <= 0 {
		return Config{}, fmt.Errorf("reset.hold must be > 0 when reset.gpio_pin is set")
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 9600
	}
	if c.Engine.AckTimeout == 0 {
		c.Engine.AckTimeout = 2 * time.Second
	}
	if c.Engine.PollTimeout == 0 {
		c.Engine.PollTimeout = 3 * time.Second
	}
	if c.Reset.Hold == 0 {
		c.Reset.Hold = 100 * time.Millisecond
	}
}
