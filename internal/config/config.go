package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

type SPI struct {
	Dev      string `yaml:"dev"`       // spireg name, "" for the first port
	SpeedKHz int    `yaml:"speed_khz"` // e.g. 2500
}

type HTTP struct {
	Addr string `yaml:"addr"` // e.g. :8080, empty disables
}

// Config is the optional config.yaml. Zero values mean "not set".
type Config struct {
	Driver          string  `yaml:"driver"` // "spi" | "console" | "term" | "sim"
	Brightness      int     `yaml:"brightness"`
	ColorCorrection string  `yaml:"color_correction"`
	Gamma           float64 `yaml:"gamma"`
	DelayMs         int     `yaml:"delay_ms"`
	StartPattern    string  `yaml:"start_pattern"`

	SPI  SPI  `yaml:"spi,omitempty"`
	HTTP HTTP `yaml:"http,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Settings are the effective run parameters.
type Settings struct {
	Debug           bool
	ConfigPath      string
	Driver          string
	Preview         bool
	Brightness      int
	ColorCorrection string
	Gamma           float64
	Delay           time.Duration
	StartPattern    string
	SPI             SPI
	HTTPAddr        string
}

// ParseArgs reads the command line.
func ParseArgs(args []string) (Settings, error) {
	var s Settings

	a := kingpin.New(filepath.Base(os.Args[0]), "ringlight")
	a.HelpFlag.Short('h')
	a.Flag("debug", "Log debug messages").Short('d').Default("false").BoolVar(&s.Debug)
	a.Flag("config", "Path to config.yaml").Default("config.yaml").StringVar(&s.ConfigPath)
	a.Flag("driver", "Output driver: spi, console, term or sim").Default("spi").EnumVar(&s.Driver, "spi", "console", "term", "sim")
	a.Flag("preview", "Also show the rings in the terminal").Default("false").BoolVar(&s.Preview)
	a.Flag("brightness", "Global brightness 0..255").Default("255").IntVar(&s.Brightness)
	a.Flag("color-correction", "typical_led_strip, typical_smd5050 or uncorrected").Default("typical_led_strip").StringVar(&s.ColorCorrection)
	a.Flag("gamma", "Output gamma, 1 for linear").Default("1").Float64Var(&s.Gamma)
	a.Flag("delay", "Delay between ticks").Default("50ms").DurationVar(&s.Delay)
	a.Flag("pattern", "Pattern selected at start").Default("2").StringVar(&s.StartPattern)
	a.Flag("spi-dev", "SPI port name").Default("").StringVar(&s.SPI.Dev)
	a.Flag("spi-speed", "SPI speed in kHz").Default("2500").IntVar(&s.SPI.SpeedKHz)
	a.Flag("http-addr", "Preview/metrics listen address, empty disables").Default("").StringVar(&s.HTTPAddr)

	if _, err := a.Parse(args); err != nil {
		return s, fmt.Errorf("invalid command line arguments: %w", err)
	}
	return s, nil
}

// Apply lets config values override the flags wherever they are set.
func (s Settings) Apply(c *Config) Settings {
	if c == nil {
		return s
	}
	if c.Driver != "" {
		s.Driver = c.Driver
	}
	if c.Brightness > 0 {
		s.Brightness = c.Brightness
	}
	if c.ColorCorrection != "" {
		s.ColorCorrection = c.ColorCorrection
	}
	if c.Gamma > 0 {
		s.Gamma = c.Gamma
	}
	if c.DelayMs > 0 {
		s.Delay = time.Duration(c.DelayMs) * time.Millisecond
	}
	if c.StartPattern != "" {
		s.StartPattern = c.StartPattern
	}
	if c.SPI.Dev != "" {
		s.SPI.Dev = c.SPI.Dev
	}
	if c.SPI.SpeedKHz > 0 {
		s.SPI.SpeedKHz = c.SPI.SpeedKHz
	}
	if c.HTTP.Addr != "" {
		s.HTTPAddr = c.HTTP.Addr
	}
	return s
}

// BrightnessLevel clamps Brightness to a byte.
func (s Settings) BrightnessLevel() uint8 {
	return uint8(min(max(s.Brightness, 0), 255))
}
