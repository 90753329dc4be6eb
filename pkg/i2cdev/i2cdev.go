// Package i2cdev talks to I2C buses through the Linux i2c-dev interface
// (/dev/i2c-N). A Bus satisfies the tinygo.org/x/drivers I2C interface so
// the upstream sensor drivers can run on top of it.
package i2cdev

import (
	"fmt"
	"path"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// DefaultDevDir is the directory holding the i2c-N character devices.
const DefaultDevDir = "/dev"

// ErrUnsupported is returned on platforms without i2c-dev.
var ErrUnsupported = errors.New("i2c-dev is only available on linux")

// ErrClosed is returned by Tx after Close.
var ErrClosed = errors.New("i2c bus closed")

var _ drivers.I2C = (*Bus)(nil)

// DevPath returns the character device path of bus n under dir.
func DevPath(dir string, n int) string {
	if dir == "" {
		dir = DefaultDevDir
	}
	return path.Join(dir, fmt.Sprintf("i2c-%d", n))
}
