// Package parse turns the text output of the i2c-tools utilities into values.
// Parsers never fail: lines that do not fit the expected shape are skipped.
package parse

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// InvalidBus is the bus number of an adapter whose identifier has no numeric suffix.
const InvalidBus = -1

const busPrefix = "i2c-"

// BusAdapter is one line of `i2cdetect -l`.
type BusAdapter struct {
	Name        string // raw identifier, e.g. "i2c-1"
	Bus         int    // numeric suffix of Name, InvalidBus if unparsable
	Transport   string // e.g. "i2c"
	Controller  string // e.g. "bcm2835"
	Description string // remaining fields joined by single spaces
}

// Valid reports whether the bus number could be parsed.
func (a BusAdapter) Valid() bool {
	return a.Bus >= 0
}

// Output renders the adapter for a report line.
func (a BusAdapter) Output() string {
	return fmt.Sprintf("%d: %s, %s", a.Bus, a.Controller, a.Description)
}

// BusAdapters parses `i2cdetect -l` output. Lines with fewer than four
// whitespace-separated fields are skipped.
func BusAdapters(output string) []BusAdapter {
	var adapters []BusAdapter
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		adapters = append(adapters, BusAdapter{
			Name:        fields[0],
			Bus:         busNumber(fields[0]),
			Transport:   fields[1],
			Controller:  fields[2],
			Description: strings.Join(fields[3:], " "),
		})
	}
	return adapters
}

func busNumber(name string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(name, busPrefix))
	if err != nil || n < 0 {
		return InvalidBus
	}
	return n
}

var hexByte = regexp.MustCompile(`^[0-9a-fA-F]{2}$`)

// gridRows are the row labels of the `i2cdetect -y` address grid.
var gridRows = []string{"00: ", "10: ", "20: ", "30: ", "40: ", "50: ", "60: ", "70: "}

// AddressGrid extracts the responding addresses from `i2cdetect -y N` output.
// Cells holding "--" (no answer) or "UU" (claimed by a kernel driver) are
// skipped. Order follows the grid; duplicates are kept.
func AddressGrid(output string) []byte {
	var addrs []byte
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !isGridRow(line) {
			continue
		}
		for _, cell := range strings.Fields(line[3:]) {
			if !hexByte.MatchString(cell) {
				continue
			}
			v, err := strconv.ParseUint(cell, 16, 8)
			if err != nil {
				continue
			}
			addrs = append(addrs, byte(v))
		}
	}
	return addrs
}

func isGridRow(line string) bool {
	for _, prefix := range gridRows {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// FormatAddresses renders addresses sorted and de-duplicated, e.g. "0x3C, 0x76".
func FormatAddresses[T ~uint8 | ~uint16](addrs []T) string {
	sorted := slices.Clone(addrs)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	parts := make([]string, len(sorted))
	for i, a := range sorted {
		parts[i] = fmt.Sprintf("0x%02X", uint16(a))
	}
	return strings.Join(parts, ", ")
}

// Distinct returns the number of distinct addresses.
func Distinct(addrs []byte) int {
	sorted := slices.Clone(addrs)
	slices.Sort(sorted)
	return len(slices.Compact(sorted))
}
