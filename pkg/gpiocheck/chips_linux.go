//go:build linux

package gpiocheck

import (
	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
)

// RealChipLister opens every /dev/gpiochipN through the GPIO character device uAPI.
type RealChipLister struct{}

// Chips returns one entry per chip, in device order. Chips that cannot be
// opened are returned with Err set.
func (r *RealChipLister) Chips() ([]ChipInfo, error) {
	var chips []ChipInfo
	for _, name := range gpiocdev.Chips() {
		chips = append(chips, chipInfo(name))
	}
	return chips, nil
}

func chipInfo(name string) ChipInfo {
	c, err := gpiocdev.NewChip(name)
	if err != nil {
		return ChipInfo{Name: name, Err: errors.Wrap(err, "open")}
	}
	defer func() { _ = c.Close() }()
	return ChipInfo{Name: c.Name, Label: c.Label, Lines: c.Lines()}
}
