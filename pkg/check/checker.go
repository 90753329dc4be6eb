package check

import "context"

// Checker is implemented by all interface checkers.
// Each checker gathers evidence about one hardware interface
// and returns a Result holding every check it ran, in order.
//
// Implementations:
//   - gpiocheck.Check: gpiodetect and GPIO character devices
//   - pwmcheck.Check: boot config, sysfs pwmchips, pin control
//   - i2ccheck.Check: boot config, device tree, adapters, addresses, sensors
//   - spicheck.Check: boot config, device tree, sysfs devices
//   - serialcheck.Check: boot config, device tree, device nodes
//
// Detect never returns an error; anything that goes wrong becomes a FAIL check.
type Checker interface {
	Detect(ctx context.Context) *Result
}
