package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/vertti/iocheck/pkg/check"
)

// StatusOkay is the device-tree status of an enabled node.
const StatusOkay = "okay"

const unknownStatus = "unknown"

// DeviceTree searches the SoC subtree of the device tree for nodes whose name
// contains ifaceType and reports each node's status. PASS iff any node is okay.
func (p *Prober) DeviceTree(ctx context.Context, ifaceType, description string) check.Check {
	command := fmt.Sprintf("Search for %s (%s) in %s", strings.ToUpper(ifaceType), description, p.DeviceTreeRoot)
	expected := ifaceType + " device-tree entries with status=okay"

	base, ok := p.socPath()
	if !ok {
		return check.Fail(command, expected,
			fmt.Sprintf("Device-tree path %s not available", path.Join(p.DeviceTreeRoot, p.SocPrefix)))
	}

	var nodes []string
	err := p.walk(ctx, base, 2, func(rel string, d fs.DirEntry) {
		if d.IsDir() && strings.Contains(d.Name(), ifaceType) {
			nodes = append(nodes, path.Join(base, rel))
		}
	})
	if err != nil {
		p.logger().Warn("device-tree scan failed", "path", base, "error", err)
		return check.Fail(command, expected, fmt.Sprintf("Error reading device-tree info: %v", err))
	}
	sort.Strings(nodes)

	var lines check.Details
	active := false
	for _, node := range nodes {
		status := p.nodeStatus(node)
		mark := "✗"
		if status == StatusOkay {
			mark = "✓"
			active = true
		}
		lines.Addf("%s %s (status: %s)", mark, path.Base(node), status)
	}

	return check.PassIf(active, command, expected, lines.String())
}

// socPath returns the first directory under the device-tree root whose name
// starts with the SoC prefix.
func (p *Prober) socPath() (string, bool) {
	entries, err := p.FS.ReadDir(p.DeviceTreeRoot)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger().Warn("reading device tree failed", "path", p.DeviceTreeRoot, "error", err)
		}
		return "", false
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), p.SocPrefix) {
			continue
		}
		candidate := path.Join(p.DeviceTreeRoot, e.Name())
		if info, err := p.FS.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// nodeStatus reads a node's status property. Device-tree strings carry a
// trailing NUL which is dropped.
func (p *Prober) nodeStatus(node string) string {
	data, err := p.FS.ReadFile(path.Join(node, "status"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger().Warn("reading node status failed", "node", node, "error", err)
		}
		return unknownStatus
	}
	status := strings.TrimSpace(strings.ReplaceAll(string(data), "\x00", ""))
	if status == "" {
		return unknownStatus
	}
	return status
}
