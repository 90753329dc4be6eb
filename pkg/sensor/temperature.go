package sensor

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mcp9808"
	"tinygo.org/x/drivers/tmp102"
)

func init() {
	Register(Candidate{
		Name:      "TMP102",
		Addresses: []uint16{0x48, 0x49, 0x4A, 0x4B},
		Values:    indexed(temperature),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			dev := tmp102.New(bus)
			dev.Configure(tmp102.Config{Address: uint8(addr)})
			if !dev.Connected() {
				return nil, false
			}
			return func(values []float64) error {
				t, err := dev.ReadTemperature()
				if err != nil {
					return err
				}
				values[0] = milli(t)
				return nil
			}, true
		},
	})

	Register(Candidate{
		Name:      "MCP9808",
		Addresses: []uint16{0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F},
		Values:    indexed(temperature),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			dev := mcp9808.New(bus)
			dev.Address = addr
			if !dev.Connected() {
				return nil, false
			}
			return func(values []float64) error {
				t, err := dev.ReadTemperature()
				if err != nil {
					return err
				}
				values[0] = t
				return nil
			}, true
		},
	})
}
