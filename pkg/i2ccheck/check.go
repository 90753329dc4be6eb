package i2ccheck

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/parse"
	"github.com/vertti/iocheck/pkg/probe"
	"github.com/vertti/iocheck/pkg/sensor"
)

// Title is the heading of the I2C report.
const Title = "I2C Detection"

const noSensors = "No sensors could be detected, maybe there are none, or they could not be recognized by the available drivers"

// Check reports I2C enablement, the bus adapters, the devices answering on
// each bus and the sensors that could be identified.
type Check struct {
	Probe   *probe.Prober
	Sensors sensor.Detector // nil skips sensor detection
	Extra   []string        // additional commands shown for human evaluation
	Logger  *slog.Logger
}

func (c *Check) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Detect runs the fixed checks, then one address scan per adapter, then one
// sensor scan per adapter.
func (c *Check) Detect(ctx context.Context) *check.Result {
	result := check.NewResult(Title,
		c.Probe.ConfigSetting("dtparam=i2c", "I2C", "dtparam=i2c_arm=on"),
		c.Probe.DeviceTree(ctx, "i2c", "I2C bus controller"),
	)

	adapters, listing := c.adapters(ctx)
	result.Add(listing)

	for _, a := range adapters {
		result.Add(c.addressScan(ctx, a))
	}
	for _, a := range adapters {
		if a.Valid() {
			result.Add(c.sensorScan(ctx, a.Bus))
		}
	}

	for _, cmd := range c.Extra {
		result.Add(c.Probe.WithCommand(ctx, cmd, "I2C information"))
	}
	return result
}

func (c *Check) adapters(ctx context.Context) ([]parse.BusAdapter, check.Check) {
	adapters := parse.BusAdapters(c.Probe.Run(ctx, "i2cdetect -l").Output())

	var lines check.Details
	for _, a := range adapters {
		lines.Add(a.Output())
	}
	return adapters, check.PassIf(len(adapters) > 0,
		"i2cdetect -l",
		"One or more devices, e.g. 'i2c-1' (I2C bus adapters detected by 'i2cdetect -l')",
		lines.String())
}

func (c *Check) addressScan(ctx context.Context, a parse.BusAdapter) check.Check {
	if !a.Valid() {
		return check.Fail(
			"Address scan of "+a.Name,
			"A numeric bus identifier such as 'i2c-1'",
			fmt.Sprintf("Bus identifier '%s' could not be parsed", a.Name))
	}

	command := "i2cdetect -y " + strconv.Itoa(a.Bus)
	expected := fmt.Sprintf("One or more I2C used addresses detected on bus %d", a.Bus)

	out := c.Probe.Run(ctx, command)
	addrs := parse.AddressGrid(out.Output())
	if len(addrs) == 0 {
		var lines check.Details
		lines.Addf("No used addresses found on bus %d", a.Bus)
		if out.Err != nil {
			lines.Addf("%s failed: %v", command, out.Err)
		}
		return check.Fail(command, expected, lines.String())
	}

	return check.Pass(command, expected,
		fmt.Sprintf("Found %d used address(es) on bus %d: %s", parse.Distinct(addrs), a.Bus, parse.FormatAddresses(addrs)))
}

func (c *Check) sensorScan(ctx context.Context, bus int) check.Check {
	command := fmt.Sprintf("Sensor auto-detection on bus %d", bus)
	expected := fmt.Sprintf("One or more recognized I2C sensors on bus %d", bus)

	if c.Sensors == nil {
		return check.Undefined(command, expected, "Sensor detection skipped")
	}

	det, err := c.Sensors.Detect(ctx, bus)
	if err != nil {
		c.logger().Warn("sensor detection failed", "bus", bus, "error", err)
		return check.Fail(command, expected, err.Error())
	}
	defer func() {
		if err := det.Close(); err != nil {
			c.logger().Debug("closing bus failed", "bus", bus, "error", err)
		}
	}()

	if len(det.Sensors) == 0 {
		return check.ToEvaluate(command, expected, noSensors)
	}

	var lines check.Details
	for _, s := range det.Sensors {
		describe(&lines, s)
	}
	return check.Pass(command, expected, lines.String())
}

func describe(lines *check.Details, s sensor.Sensor) {
	d := s.Descriptor()
	lines.Addf("%s at 0x%02X", d.Name, d.Address)
	lines.Addf("- Addresses: %s", parse.FormatAddresses(d.Addresses))

	size := 0
	for _, v := range d.Values {
		size = max(size, v.Index+1)
	}
	values := make([]float64, size)
	if err := s.ReadMeasurement(values); err != nil {
		lines.Addf(" - error: %v", err)
		return
	}
	for _, v := range d.Values {
		lines.Addf(" - %s: %s %s", v.Name(), strconv.FormatFloat(values[v.Index], 'f', 2, 64), v.Unit)
	}
}
