package sensor

import (
	"context"
	"io"
	"log/slog"

	"tinygo.org/x/drivers"

	"github.com/vertti/iocheck/pkg/i2cdev"
)

// Bus is an I2C bus that must be released after use.
type Bus interface {
	drivers.I2C
	io.Closer
}

// I2CDetector probes every registered candidate at each of its addresses on
// a Linux i2c-dev bus.
type I2CDetector struct {
	DevDir string                         // default: /dev
	Open   func(path string) (Bus, error) // default: i2cdev.Open
	Logger *slog.Logger
}

func (d *I2CDetector) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func (d *I2CDetector) open(path string) (Bus, error) {
	if d.Open != nil {
		return d.Open(path)
	}
	b, err := i2cdev.Open(path)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Detect opens the bus and returns every chip that identified itself.
// Each address is claimed by at most one chip.
func (d *I2CDetector) Detect(ctx context.Context, bus int) (*Detection, error) {
	path := i2cdev.DevPath(d.DevDir, bus)
	b, err := d.open(path)
	if err != nil {
		return nil, err
	}

	claimed := map[uint16]bool{}
	var sensors []Sensor
	for _, c := range Candidates() {
		for _, addr := range c.Addresses {
			if err := ctx.Err(); err != nil {
				_ = b.Close()
				return nil, err
			}
			if claimed[addr] {
				continue
			}
			read, ok := c.Probe(b, addr)
			if !ok {
				continue
			}
			claimed[addr] = true
			d.logger().Debug("sensor detected", "bus", bus, "chip", c.Name, "address", addr)
			sensors = append(sensors, newDriverSensor(c, addr, read))
		}
	}
	return NewDetection(sensors, b), nil
}
