// Package sensor auto-detects known sensor chips on an I2C bus and reads
// their measurements. Chip support comes from tinygo.org/x/drivers; each
// supported chip registers itself as a Candidate.
package sensor

import (
	"context"
	"io"

	"tinygo.org/x/drivers"
)

// Value describes one measurement channel of a sensor.
type Value struct {
	Kind  drivers.Measurement
	Unit  string // e.g. "°C"
	Index int    // position in the slice passed to ReadMeasurement
}

// Name returns the lower-case name of the measured quantity.
func (v Value) Name() string {
	switch v.Kind {
	case drivers.Temperature:
		return "temperature"
	case drivers.Humidity:
		return "humidity"
	case drivers.Pressure:
		return "pressure"
	case drivers.Luminosity:
		return "luminosity"
	case drivers.Voltage:
		return "voltage"
	case drivers.Concentration:
		return "concentration"
	default:
		return "value"
	}
}

// Descriptor identifies a detected sensor.
type Descriptor struct {
	Name      string   // chip name, e.g. "BME280"
	Address   uint16   // address it answered on
	Addresses []uint16 // addresses the chip can be strapped to
	Values    []Value
}

// Sensor is a detected chip that can be read.
type Sensor interface {
	Descriptor() Descriptor
	// ReadMeasurement stores each channel's reading at values[v.Index].
	// values must have room for every channel.
	ReadMeasurement(values []float64) error
}

// Detection holds the sensors found on one bus. The bus stays open until Close.
type Detection struct {
	Sensors []Sensor
	closer  io.Closer
}

// NewDetection wraps sensors and the resource they read through.
func NewDetection(sensors []Sensor, closer io.Closer) *Detection {
	return &Detection{Sensors: sensors, closer: closer}
}

// Close releases the bus.
func (d *Detection) Close() error {
	if d == nil || d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// Detector finds sensors on a numbered I2C bus.
type Detector interface {
	Detect(ctx context.Context, bus int) (*Detection, error)
}
