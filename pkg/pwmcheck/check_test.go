package pwmcheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/exec"
	"github.com/vertti/iocheck/pkg/probe"
	"github.com/vertti/iocheck/pkg/testutil"
)

const pinctrlOutput = `
 0: ip    pu | hi // ID_SDA/GPIO0 = input
12: a0    pd | lo // GPIO12 = PWM0_CHAN0
18: a5    pd | lo // GPIO18 = PWM0_CHAN2
21: no    pd | -- // GPIO21 = none
`

func TestPWMDetected(t *testing.T) {
	root := t.TempDir()
	testutil.Tree(t, root, map[string]string{
		"boot/firmware/config.txt":                             "dtoverlay=pwm-2chan\n",
		"sys/devices/platform/axi/1f00098000.pwm/pwm/pwmchip0/": "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sys/class/pwm"), 0o755))
	require.NoError(t, os.Symlink(
		filepath.Join(root, "sys/devices/platform/axi/1f00098000.pwm/pwm/pwmchip0"),
		filepath.Join(root, "sys/class/pwm/pwmchip0"),
	))

	runner := &testutil.MockRunner{Outcomes: map[string]exec.Outcome{
		"pinctrl": testutil.Stdout(pinctrlOutput),
	}}
	c := &Check{Probe: probe.New(&probe.RealFileSystem{Root: root}, runner)}

	result := c.Detect(context.Background())
	assert.Equal(t, Title, result.Title)

	checks := result.Checks()
	require.Len(t, checks, 3)

	assert.Equal(t, check.StatusPass, checks[0].Status)
	assert.Equal(t, "Configuration check for PWM in config.txt", checks[0].Command)
	assert.Equal(t, "Found in /boot/firmware/config.txt: dtoverlay=pwm-2chan", checks[0].Result)

	assert.Equal(t, check.StatusPass, checks[1].Status)
	assert.Equal(t, "ls -l /sys/class/pwm/", checks[1].Command)
	assert.Equal(t, "One or more pwmchipX (X = number)", checks[1].Expected)
	assert.Equal(t, "pwmchip0", checks[1].Result)

	assert.Equal(t, check.StatusPass, checks[2].Status)
	assert.Equal(t, "pinctrl | grep PWM", checks[2].Command)
	assert.Equal(t, "12: a0    pd | lo // GPIO12 = PWM0_CHAN0\n18: a5    pd | lo // GPIO18 = PWM0_CHAN2", checks[2].Result)
}

func TestPWMAbsent(t *testing.T) {
	root := t.TempDir()
	testutil.Tree(t, root, map[string]string{
		"boot/config.txt": "#dtoverlay=pwm\n",
		"sys/class/pwm/":  "",
	})
	runner := &testutil.MockRunner{Outcomes: map[string]exec.Outcome{
		"pinctrl": testutil.Stdout(" 0: ip    pu | hi // ID_SDA/GPIO0 = input"),
	}}
	c := &Check{Probe: probe.New(&probe.RealFileSystem{Root: root}, runner)}

	result := c.Detect(context.Background())

	assert.Equal(t, 3, result.Count(check.StatusFail))
	assert.False(t, result.Passed())
}

func TestPWMWithoutPinctrl(t *testing.T) {
	c := &Check{Probe: probe.New(&probe.RealFileSystem{Root: t.TempDir()}, &testutil.MockRunner{})}

	checks := c.Detect(context.Background()).Checks()
	require.Len(t, checks, 3)
	assert.Equal(t, check.StatusFail, checks[1].Status)
	assert.Equal(t, "/sys/class/pwm not available", checks[1].Result)
	assert.Equal(t, check.StatusFail, checks[2].Status)
	assert.Empty(t, checks[2].Result)
}

func TestPWMCustomSysfsRoot(t *testing.T) {
	root := t.TempDir()
	testutil.Tree(t, root, map[string]string{"tmp/pwm/pwmchip2/": ""})
	c := &Check{
		Probe:     probe.New(&probe.RealFileSystem{Root: root}, &testutil.MockRunner{}),
		SysfsRoot: "/tmp/pwm",
	}

	checks := c.Detect(context.Background()).Checks()
	assert.Equal(t, "ls -l /tmp/pwm/", checks[1].Command)
	assert.Equal(t, "pwmchip2", checks[1].Result)
}
