package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vertti/iocheck/pkg/check"
)

func TestRenderSingleCheck(t *testing.T) {
	r := check.NewResult("I2C Detection", check.Pass(
		"i2cdetect -y 1",
		"One or more I2C used addresses detected on bus 1",
		"Found 2 used address(es) on bus 1: 0x3C, 0x76",
	))

	want := "Result from I2C Detection\n" +
		"\n\ti2cdetect -y 1" +
		"\n\t\tStatus: PASS" +
		"\n\t\tExpected: \n\t\t\tOne or more I2C used addresses detected on bus 1" +
		"\n\t\tResult: \n\t\t\tFound 2 used address(es) on bus 1: 0x3C, 0x76" +
		"\n"
	assert.Equal(t, want, Render(r))
}

func TestRenderEmptyFields(t *testing.T) {
	r := check.NewResult("SPI Detection",
		check.Fail("", "", ""),
		check.Fail("  ls -l /sys/bus/spi/devices  ", "", "   "),
	)

	want := "Results from SPI Detection\n" +
		"\n\t\tStatus: FAIL" +
		"\n\t\tExpected: \n\t\t\t-" +
		"\n\t\tResult: \n\t\t\t-" +
		"\n" +
		"\n\tls -l /sys/bus/spi/devices" +
		"\n\t\tStatus: FAIL" +
		"\n\t\tExpected: \n\t\t\t-" +
		"\n\t\tResult: \n\t\t\t-" +
		"\n"
	assert.Equal(t, want, Render(r))
}

func TestRenderMultilineResult(t *testing.T) {
	r := check.NewResult("I2C Detection", check.Pass(
		"Search for I2C (I2C bus controller) in /proc/device-tree",
		"i2c device-tree entries with status=okay",
		"✓ i2c@7e804000 (status: okay)\n  ✗ i2c@7e805000 (status: disabled)  \n",
	))

	out := Render(r)
	assert.Contains(t, out, "\n\t\tResult: \n\t\t\t✓ i2c@7e804000 (status: okay)\n\t\t\t  ✗ i2c@7e805000 (status: disabled)\n")
}

func TestRenderKeepsIndentedLines(t *testing.T) {
	r := check.NewResult("I2C Detection", check.Pass(
		"Sensor auto-detection on bus 1",
		"  One or more recognized I2C sensors on bus 1  ",
		"BME280 at 0x76\n- Addresses: 0x76, 0x77\n - temperature: 21.00 °C\n - pressure: 1013.25 hPa\n",
	))

	want := "Result from I2C Detection\n" +
		"\n\tSensor auto-detection on bus 1" +
		"\n\t\tStatus: PASS" +
		"\n\t\tExpected: \n\t\t\tOne or more recognized I2C sensors on bus 1" +
		"\n\t\tResult: " +
		"\n\t\t\tBME280 at 0x76" +
		"\n\t\t\t- Addresses: 0x76, 0x77" +
		"\n\t\t\t - temperature: 21.00 °C" +
		"\n\t\t\t - pressure: 1013.25 hPa" +
		"\n"
	assert.Equal(t, want, Render(r))
}

func TestRenderKeepsOrder(t *testing.T) {
	r := check.NewResult("PWM Detection",
		check.Fail("first", "", ""),
		check.Pass("second", "", ""),
		check.ToEvaluate("third", "", ""),
		check.Undefined("fourth", "", ""),
	)

	out := Render(r)
	i1 := strings.Index(out, "first")
	i2 := strings.Index(out, "second")
	i3 := strings.Index(out, "third")
	i4 := strings.Index(out, "fourth")
	assert.True(t, i1 < i2 && i2 < i3 && i3 < i4, out)
	assert.Contains(t, out, "Status: TO_EVALUATE")
	assert.Contains(t, out, "Status: UNDEFINED")
}

func TestRenderNoChecks(t *testing.T) {
	assert.Equal(t, "Result from GPIO Detection\n", Render(check.NewResult("GPIO Detection")))
}

func TestRenderIsDeterministic(t *testing.T) {
	r := check.NewResult("GPIO Detection", check.Pass("gpiodetect", "x", "gpiochip0 [pinctrl-bcm2835] (54 lines)"))
	assert.Equal(t, Render(r), Render(r))
}

func TestPrintResult(t *testing.T) {
	oldGreen, oldRed, oldYellow, oldDim, oldReset := green, red, yellow, dim, reset
	defer func() { green, red, yellow, dim, reset = oldGreen, oldRed, oldYellow, oldDim, oldReset }()

	r := check.NewResult("Serial Detection",
		check.Pass("a", "", ""),
		check.Fail("b", "", ""),
		check.ToEvaluate("c", "", ""),
	)

	t.Run("without colors", func(t *testing.T) {
		green, red, yellow, dim, reset = "", "", "", "", ""
		var buf bytes.Buffer
		PrintResult(&buf, r)
		assert.Equal(t, Render(r)+"\n", buf.String())
	})

	t.Run("with colors", func(t *testing.T) {
		green, red, yellow, dim, reset = "[G]", "[R]", "[Y]", "[D]", "[/]"
		var buf bytes.Buffer
		PrintResult(&buf, r)
		out := buf.String()
		assert.Contains(t, out, "Status: [G]PASS[/]")
		assert.Contains(t, out, "Status: [R]FAIL[/]")
		assert.Contains(t, out, "Status: [Y]TO_EVALUATE[/]")
	})
}
