package sensor

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"tinygo.org/x/drivers"
)

// Reader fills measurement values for one bound chip.
type Reader func(values []float64) error

// Candidate is a chip the detector knows how to recognise.
type Candidate struct {
	Name      string
	Addresses []uint16
	Values    []Value
	// Probe checks whether the chip answers at addr and returns a reader bound to it.
	Probe func(bus drivers.I2C, addr uint16) (Reader, bool)
}

var (
	mu         sync.RWMutex
	candidates = map[string]Candidate{}
)

// Register adds a candidate chip. It panics on an empty or duplicate name.
func Register(c Candidate) {
	mu.Lock()
	defer mu.Unlock()
	if c.Name == "" {
		panic("sensor: empty candidate name")
	}
	key := strings.ToUpper(c.Name)
	if _, exists := candidates[key]; exists {
		panic(fmt.Sprintf("sensor: candidate already registered: %q", c.Name))
	}
	candidates[key] = c
}

// Candidates returns every registered candidate sorted by name.
func Candidates() []Candidate {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// driverSensor adapts a Candidate bound to one address to the Sensor interface.
type driverSensor struct {
	desc Descriptor
	read Reader
}

func newDriverSensor(c Candidate, addr uint16, read Reader) *driverSensor {
	addrs := slices.Clone(c.Addresses)
	slices.Sort(addrs)
	return &driverSensor{
		desc: Descriptor{
			Name:      c.Name,
			Address:   addr,
			Addresses: addrs,
			Values:    slices.Clone(c.Values),
		},
		read: read,
	}
}

func (s *driverSensor) Descriptor() Descriptor {
	return s.desc
}

func (s *driverSensor) ReadMeasurement(values []float64) error {
	for _, v := range s.desc.Values {
		if v.Index >= len(values) {
			return fmt.Errorf("%s: need room for %d values, got %d", s.desc.Name, len(s.desc.Values), len(values))
		}
	}
	return s.read(values)
}
