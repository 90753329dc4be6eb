package sensor

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/aht20"
)

func init() {
	Register(Candidate{
		Name:      "AHT20",
		Addresses: []uint16{aht20.Address},
		Values:    indexed(temperature, humidity),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			// The driver's Status ignores bus errors, so identify the chip
			// by its calibrated bit on a status read that must succeed.
			status := []byte{0}
			if err := bus.Tx(addr, []byte{aht20.CMD_STATUS}, status); err != nil {
				return nil, false
			}
			if status[0]&aht20.STATUS_CALIBRATED == 0 {
				return nil, false
			}

			dev := aht20.New(bus)
			dev.Address = addr
			configured := false
			return func(values []float64) error {
				if !configured {
					dev.Configure()
					configured = true
				}
				if err := dev.Read(); err != nil {
					return err
				}
				values[0] = float64(dev.DeciCelsius()) / 10
				values[1] = float64(dev.DeciRelHumidity()) / 10
				return nil
			}, true
		},
	})
}
