// Package probe holds the evidence-gathering primitives shared by the
// interface checkers: boot config scans, device-tree scans, sysfs listings
// and generic tool invocations. Each primitive returns exactly one check.Check.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/vertti/iocheck/pkg/check"
	"github.com/vertti/iocheck/pkg/exec"
)

// Default board locations.
const (
	DefaultDeviceTreeRoot = "/proc/device-tree"
	DefaultSocPrefix      = "soc"
)

// DefaultConfigFiles are the boot configuration files scanned, in order.
var DefaultConfigFiles = []string{"/boot/config.txt", "/boot/firmware/config.txt"}

// Prober gathers evidence from the file system and from external tools.
type Prober struct {
	FS             FileSystem
	Runner         exec.Runner
	ConfigFiles    []string
	DeviceTreeRoot string
	SocPrefix      string
	Logger         *slog.Logger
}

// New returns a Prober with the default board locations.
func New(fsys FileSystem, runner exec.Runner) *Prober {
	return &Prober{
		FS:             fsys,
		Runner:         runner,
		ConfigFiles:    append([]string(nil), DefaultConfigFiles...),
		DeviceTreeRoot: DefaultDeviceTreeRoot,
		SocPrefix:      DefaultSocPrefix,
	}
}

func (p *Prober) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Run executes a command line through the Prober's runner.
func (p *Prober) Run(ctx context.Context, commandLine string) exec.Outcome {
	return exec.Execute(ctx, p.Runner, commandLine)
}

// ConfigSetting scans every existing boot config file for non-comment lines
// containing setting. PASS iff at least one line matches.
func (p *Prober) ConfigSetting(setting, iface, expected string) check.Check {
	command := fmt.Sprintf("Configuration check for %s in config.txt", strings.ToUpper(iface))

	var found check.Details
	for _, file := range p.ConfigFiles {
		data, err := p.FS.ReadFile(file)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				p.logger().Warn("reading boot config failed", "path", file, "error", err)
			}
			continue
		}
		for _, line := range strings.Split(string(data), "\n") {
			if isComment(line) || !strings.Contains(line, setting) {
				continue
			}
			found.Addf("Found in %s: %s", file, strings.TrimSpace(line))
		}
	}

	return check.PassIf(!found.Empty(), command, expected, found.String())
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

// WithCommand runs a command and hands its output to a human. Always TO_EVALUATE.
func (p *Prober) WithCommand(ctx context.Context, commandLine, expected string) check.Check {
	out := p.Run(ctx, commandLine).Output()
	if out == "" {
		return check.ToEvaluate(fmt.Sprintf("No info returned by '%s'", commandLine), expected, "")
	}
	return check.ToEvaluate(fmt.Sprintf("Info returned by '%s'", commandLine), expected, out)
}

// Entries lists entries below root (two levels deep, symlinks not followed)
// whose name starts with prefix. PASS iff any entry matches.
func (p *Prober) Entries(ctx context.Context, root, prefix, command, expected string) check.Check {
	if _, err := p.FS.Stat(root); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger().Warn("stat failed", "path", root, "error", err)
		}
		return check.Fail(command, expected, root+" not available")
	}

	var matches []string
	err := p.walk(ctx, root, 2, func(rel string, d fs.DirEntry) {
		if strings.HasPrefix(d.Name(), prefix) {
			matches = append(matches, rel)
		}
	})
	if err != nil {
		p.logger().Warn("listing failed", "path", root, "error", err)
		return check.Fail(command, expected, fmt.Sprintf("Error reading %s: %v", root, err))
	}

	sort.Strings(matches)
	return check.PassIf(len(matches) > 0, command, expected, strings.Join(matches, "\n"))
}

// walk calls fn for every entry up to maxDepth levels below root, root excluded.
// Only real directories are descended into. rel is the slash path relative to root.
// The context is checked before each directory read.
func (p *Prober) walk(ctx context.Context, root string, maxDepth int, fn func(rel string, d fs.DirEntry)) error {
	var visit func(dir, rel string, depth int) error
	visit = func(dir, rel string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := p.FS.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			childRel := path.Join(rel, e.Name())
			fn(childRel, e)
			if e.IsDir() && depth < maxDepth {
				if err := visit(path.Join(dir, e.Name()), childRel, depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return visit(root, "", 1)
}
