package main

import (
	"log/slog"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/config"
	"github.com/vertti/iocheck/pkg/exec"
	"github.com/vertti/iocheck/pkg/gpiocheck"
	"github.com/vertti/iocheck/pkg/i2ccheck"
	"github.com/vertti/iocheck/pkg/probe"
	"github.com/vertti/iocheck/pkg/pwmcheck"
	"github.com/vertti/iocheck/pkg/sensor"
	"github.com/vertti/iocheck/pkg/serialcheck"
	"github.com/vertti/iocheck/pkg/spicheck"
)

// environment is the host the checkers inspect.
type environment struct {
	FS      probe.FileSystem
	Runner  exec.Runner
	Chips   gpiocheck.ChipLister
	Sensors sensor.Detector // nil when sensor detection is disabled
}

// newEnvironment is replaced in tests.
var newEnvironment = func(cfg *config.Config) environment {
	env := environment{
		FS:     &probe.RealFileSystem{},
		Runner: &exec.RealRunner{Timeout: cfg.Timeout},
		Chips:  &gpiocheck.RealChipLister{},
	}
	if cfg.SensorsEnabled() {
		env.Sensors = &sensor.I2CDetector{DevDir: cfg.Paths.I2CDev}
	}
	return env
}

func buildCheckers(cfg *config.Config, env environment) map[string]check.Checker {
	p := probe.New(env.FS, env.Runner)
	p.ConfigFiles = cfg.Paths.BootConfig
	p.DeviceTreeRoot = cfg.Paths.DeviceTree
	p.SocPrefix = cfg.Paths.SocPrefix

	return map[string]check.Checker{
		config.GPIO: &gpiocheck.Check{
			Probe: p,
			Tools: cfg.Paths.GPIODetect,
			Chips: env.Chips,
			Extra: cfg.ExtraFor(config.GPIO),
		},
		config.PWM: &pwmcheck.Check{
			Probe:     p,
			SysfsRoot: cfg.Paths.PWM,
			Extra:     cfg.ExtraFor(config.PWM),
		},
		config.I2C: &i2ccheck.Check{
			Probe:   p,
			Sensors: env.Sensors,
			Extra:   cfg.ExtraFor(config.I2C),
		},
		config.SPI: &spicheck.Check{
			Probe:       p,
			DevicesRoot: cfg.Paths.SPI,
			Extra:       cfg.ExtraFor(config.SPI),
		},
		config.Serial: &serialcheck.Check{
			Probe:   p,
			Devices: cfg.Paths.SerialDevices,
			Extra:   cfg.ExtraFor(config.Serial),
		},
	}
}

// selectInterfaces returns the requested interfaces in report order.
// No arguments selects all of them; unknown names are dropped.
func selectInterfaces(args []string) []string {
	if len(args) == 0 {
		return config.Interfaces
	}

	requested := make(map[string]bool, len(args))
	for _, arg := range args {
		requested[arg] = true
	}

	var selected []string
	for _, iface := range config.Interfaces {
		if requested[iface] {
			selected = append(selected, iface)
			delete(requested, iface)
		}
	}
	for arg := range requested {
		slog.Debug("ignoring unknown interface", "name", arg)
	}
	return selected
}
