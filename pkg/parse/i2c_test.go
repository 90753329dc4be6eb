package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adapterListing = `i2c-1	i2c       	bcm2835 (i2c@7e804000)          	I2C adapter
i2c-20	i2c       	fef04500.i2c                    	I2C adapter
garbage line
i2c-x	i2c	mux	I2C adapter
`

func TestBusAdapters(t *testing.T) {
	adapters := BusAdapters(adapterListing)
	require.Len(t, adapters, 3)

	first := adapters[0]
	assert.Equal(t, "i2c-1", first.Name)
	assert.Equal(t, 1, first.Bus)
	assert.Equal(t, "i2c", first.Transport)
	assert.Equal(t, "bcm2835", first.Controller)
	assert.Equal(t, "(i2c@7e804000) I2C adapter", first.Description)
	assert.True(t, first.Valid())
	assert.Equal(t, "1: bcm2835, (i2c@7e804000) I2C adapter", first.Output())

	assert.Equal(t, 20, adapters[1].Bus)
	assert.Equal(t, "I2C adapter", adapters[1].Description)

	assert.Equal(t, InvalidBus, adapters[2].Bus)
	assert.False(t, adapters[2].Valid())
}

func TestBusAdaptersSkipsShortLines(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
	}{
		{"empty", "", 0},
		{"three fields", "i2c-1 i2c bcm2835", 0},
		{"four fields", "i2c-1 i2c bcm2835 adapter", 1},
		{"blank lines", "\n\n  \n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, BusAdapters(tt.output), tt.want)
		})
	}
}

const addressGrid = `     0  1  2  3  4  5  6  7  8  9  a  b  c  d  e  f
00:                         -- -- -- -- -- -- -- --
10: -- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --
20: -- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --
30: -- -- -- -- -- -- -- -- -- -- -- -- 3c -- -- --
40: -- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --
50: -- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --
60: -- -- -- -- -- -- -- -- UU -- -- -- -- -- -- --
70: -- -- -- -- -- -- 76 --
`

func TestAddressGrid(t *testing.T) {
	assert.Equal(t, []byte{0x3C, 0x76}, AddressGrid(addressGrid))
}

func TestAddressGridEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []byte
	}{
		{"empty", "", nil},
		{"header only", "     0  1  2  3", nil},
		{"upper case hex", "40: -- 4A --", []byte{0x4A}},
		{"indented row", "   50: 50 --", []byte{0x50}},
		{"duplicates kept", "30: 3c 3c", []byte{0x3C, 0x3C}},
		{"UU skipped", "60: UU UU", nil},
		{"three digit token skipped", "70: 123 zz 7f", []byte{0x7F}},
		{"unknown row label", "80: 80 81", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddressGrid(tt.output))
		})
	}
}

func TestFormatAddresses(t *testing.T) {
	assert.Equal(t, "0x3C, 0x76", FormatAddresses([]byte{0x76, 0x3C, 0x76}))
	assert.Equal(t, "0x0A", FormatAddresses([]byte{0x0A}))
	assert.Equal(t, "", FormatAddresses([]byte{}))
	assert.Equal(t, "0x76, 0x77", FormatAddresses([]uint16{0x77, 0x76}))
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, 2, Distinct([]byte{0x76, 0x3C, 0x76}))
	assert.Equal(t, 0, Distinct(nil))
}
