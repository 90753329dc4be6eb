package spicheck

import (
	"context"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/probe"
)

const (
	// Title is the heading of the SPI report.
	Title = "SPI Detection"
	// DefaultDevicesRoot is where the kernel lists SPI devices.
	DefaultDevicesRoot = "/sys/bus/spi/devices"
)

// Check reports whether SPI is enabled and exposed.
type Check struct {
	Probe       *probe.Prober
	DevicesRoot string   // default: DefaultDevicesRoot
	Extra       []string // additional commands shown for human evaluation
}

// Detect checks the boot parameter, the device tree and the SPI bus devices.
func (c *Check) Detect(ctx context.Context) *check.Result {
	root := c.DevicesRoot
	if root == "" {
		root = DefaultDevicesRoot
	}

	result := check.NewResult(Title,
		c.Probe.ConfigSetting("dtparam=spi", "SPI", "dtparam=spi=on"),
		c.Probe.DeviceTree(ctx, "spi", "SPI bus controller"),
		c.Probe.Entries(ctx, root, "spi", "ls -l "+root, "One or more spiX.Y (X and Y = numbers)"),
	)
	for _, cmd := range c.Extra {
		result.Add(c.Probe.WithCommand(ctx, cmd, "SPI information"))
	}
	return result
}
