package sensor

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/bme280"
	"tinygo.org/x/drivers/bmp180"
	"tinygo.org/x/drivers/bmp280"
)

const (
	unitCelsius  = "°C"
	unitHPa      = "hPa"
	unitHumidity = "%RH"
)

var (
	temperature = Value{Kind: drivers.Temperature, Unit: unitCelsius}
	pressure    = Value{Kind: drivers.Pressure, Unit: unitHPa}
	humidity    = Value{Kind: drivers.Humidity, Unit: unitHumidity}
)

func indexed(vs ...Value) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		v.Index = i
		out[i] = v
	}
	return out
}

func milli(v int32) float64 { return float64(v) / 1000 }

// milliPascalToHPa converts the drivers' mPa readings.
func milliPascalToHPa(v int32) float64 { return float64(v) / 100000 }

func init() {
	Register(Candidate{
		Name:      "BME280",
		Addresses: []uint16{0x76, 0x77},
		Values:    indexed(temperature, pressure, humidity),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			dev := bme280.New(bus)
			dev.Address = addr
			if !dev.Connected() {
				return nil, false
			}
			configured := false
			return func(values []float64) error {
				if !configured {
					dev.Configure()
					configured = true
				}
				t, err := dev.ReadTemperature()
				if err != nil {
					return err
				}
				p, err := dev.ReadPressure()
				if err != nil {
					return err
				}
				h, err := dev.ReadHumidity()
				if err != nil {
					return err
				}
				values[0], values[1], values[2] = milli(t), milliPascalToHPa(p), float64(h)/100
				return nil
			}, true
		},
	})

	Register(Candidate{
		Name:      "BMP280",
		Addresses: []uint16{0x76, 0x77},
		Values:    indexed(temperature, pressure),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			dev := bmp280.New(bus)
			dev.Address = addr
			if !dev.Connected() {
				return nil, false
			}
			configured := false
			return func(values []float64) error {
				if !configured {
					dev.Configure(bmp280.STANDBY_1MS, bmp280.FILTER_OFF, bmp280.SAMPLING_1X, bmp280.SAMPLING_1X, bmp280.MODE_FORCED)
					configured = true
				}
				t, err := dev.ReadTemperature()
				if err != nil {
					return err
				}
				p, err := dev.ReadPressure()
				if err != nil {
					return err
				}
				values[0], values[1] = milli(t), milliPascalToHPa(p)
				return nil
			}, true
		},
	})

	Register(Candidate{
		Name:      "BMP180",
		Addresses: []uint16{0x77},
		Values:    indexed(temperature, pressure),
		Probe: func(bus drivers.I2C, addr uint16) (Reader, bool) {
			dev := bmp180.New(bus)
			dev.Address = addr
			if !dev.Connected() {
				return nil, false
			}
			configured := false
			return func(values []float64) error {
				if !configured {
					dev.Configure()
					configured = true
				}
				t, err := dev.ReadTemperature()
				if err != nil {
					return err
				}
				p, err := dev.ReadPressure()
				if err != nil {
					return err
				}
				values[0], values[1] = milli(t), milliPascalToHPa(p)
				return nil
			}, true
		},
	})
}
