package sensor

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/lps22hb"
)

// ST Microelectronics pressure sensor found on the Sense HAT and similar boards.
func init() {
	Register(Candidate{
		Name:      "LPS22HB",
		Addresses: []uint16{lps22hb.LPS22HB_ADDRESS, 0x5D},
		Values:    indexed(pressure, temperature),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			dev := lps22hb.New(bus)
			dev.Address = uint8(addr)
			if !dev.Connected() {
				return nil, false
			}
			configured := false
			return func(values []float64) error {
				if !configured {
					dev.Configure()
					configured = true
				}
				p, err := dev.ReadPressure()
				if err != nil {
					return err
				}
				t, err := dev.ReadTemperature()
				if err != nil {
					return err
				}
				values[0], values[1] = milliPascalToHPa(p), milli(t)
				return nil
			}, true
		},
	})
}
