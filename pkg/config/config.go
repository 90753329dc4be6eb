// Package config loads the optional iocheck YAML configuration and merges it
// over the built-in board defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vertti/iocheck/pkg/exec"
	"github.com/vertti/iocheck/pkg/gpiocheck"
	"github.com/vertti/iocheck/pkg/i2cdev"
	"github.com/vertti/iocheck/pkg/probe"
	"github.com/vertti/iocheck/pkg/pwmcheck"
	"github.com/vertti/iocheck/pkg/serialcheck"
	"github.com/vertti/iocheck/pkg/spicheck"
)

// Interface names accepted on the command line and under extra_commands.
const (
	GPIO   = "gpio"
	PWM    = "pwm"
	I2C    = "i2c"
	SPI    = "spi"
	Serial = "serial"
)

// Interfaces lists every interface in report order.
var Interfaces = []string{GPIO, PWM, I2C, SPI, Serial}

// Paths holds the board locations inspected by the checkers.
type Paths struct {
	BootConfig    []string `yaml:"boot_config,omitempty"`
	DeviceTree    string   `yaml:"device_tree,omitempty"`
	SocPrefix     string   `yaml:"soc_prefix,omitempty"`
	PWM           string   `yaml:"pwm,omitempty"`
	SPI           string   `yaml:"spi,omitempty"`
	SerialDevices []string `yaml:"serial_devices,omitempty"`
	GPIODetect    []string `yaml:"gpiodetect,omitempty"`
	I2CDev        string   `yaml:"i2c_dev,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Timeout time.Duration       `yaml:"timeout,omitempty"`
	Sensors *bool               `yaml:"sensors,omitempty"`
	Paths   Paths               `yaml:"paths,omitempty"`
	Extra   map[string][]string `yaml:"extra_commands,omitempty"`
}

// New returns a Config with every default populated.
func New() *Config {
	return &Config{
		Timeout: exec.DefaultTimeout,
		Sensors: boolPtr(true),
		Paths: Paths{
			BootConfig:    clone(probe.DefaultConfigFiles),
			DeviceTree:    probe.DefaultDeviceTreeRoot,
			SocPrefix:     probe.DefaultSocPrefix,
			PWM:           pwmcheck.DefaultSysfsRoot,
			SPI:           spicheck.DefaultDevicesRoot,
			SerialDevices: clone(serialcheck.DefaultDevices),
			GPIODetect:    clone(gpiocheck.DefaultTools),
			I2CDev:        i2cdev.DefaultDevDir,
		},
		Extra: map[string][]string{},
	}
}

// Load reads the YAML file at path and merges it over the defaults.
// An empty path returns the defaults. A missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := fileCfg.validate(); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	merge(cfg, &fileCfg)
	return cfg, nil
}

// SensorsEnabled reports whether I2C sensor detection should run.
func (c *Config) SensorsEnabled() bool {
	return c.Sensors == nil || *c.Sensors
}

// ExtraFor returns the additional commands configured for iface.
func (c *Config) ExtraFor(iface string) []string {
	return c.Extra[iface]
}

func (c *Config) validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	for iface := range c.Extra {
		if !known(iface) {
			return fmt.Errorf("extra_commands: unknown interface %q", iface)
		}
	}
	return nil
}

// merge copies every non-zero field of src onto dst.
func merge(dst, src *Config) {
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.Sensors != nil {
		dst.Sensors = src.Sensors
	}

	p := &src.Paths
	if len(p.BootConfig) > 0 {
		dst.Paths.BootConfig = p.BootConfig
	}
	if p.DeviceTree != "" {
		dst.Paths.DeviceTree = p.DeviceTree
	}
	if p.SocPrefix != "" {
		dst.Paths.SocPrefix = p.SocPrefix
	}
	if p.PWM != "" {
		dst.Paths.PWM = p.PWM
	}
	if p.SPI != "" {
		dst.Paths.SPI = p.SPI
	}
	if len(p.SerialDevices) > 0 {
		dst.Paths.SerialDevices = p.SerialDevices
	}
	if len(p.GPIODetect) > 0 {
		dst.Paths.GPIODetect = p.GPIODetect
	}
	if p.I2CDev != "" {
		dst.Paths.I2CDev = p.I2CDev
	}

	for iface, cmds := range src.Extra {
		dst.Extra[iface] = cmds
	}
}

func known(iface string) bool {
	for _, name := range Interfaces {
		if name == iface {
			return true
		}
	}
	return false
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

func boolPtr(b bool) *bool { return &b }
