//go:build !linux

package gpiocheck

// RealChipLister reports ErrUnsupported off linux.
type RealChipLister struct{}

func (r *RealChipLister) Chips() ([]ChipInfo, error) {
	return nil, ErrUnsupported
}
