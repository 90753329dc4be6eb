//go:build !linux

package i2cdev

// Bus is unavailable off linux; every operation fails with ErrUnsupported.
type Bus struct{}

// Open always fails with ErrUnsupported.
func Open(path string) (*Bus, error) {
	return nil, ErrUnsupported
}

func (b *Bus) Tx(addr uint16, w, r []byte) error { return ErrUnsupported }

func (b *Bus) Close() error { return nil }
