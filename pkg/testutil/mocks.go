package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/vertti/iocheck/pkg/exec"
)

// MockRunner is a test double for exec.Runner.
// Outcomes are keyed by the full command line ("i2cdetect -y 1").
// Unknown commands fail as if the tool were not installed.
type MockRunner struct {
	Outcomes map[string]exec.Outcome
	RunFunc  func(name string, args ...string) exec.Outcome

	mu    sync.Mutex
	Calls []string
}

// Run records the call and returns the canned outcome.
func (m *MockRunner) Run(_ context.Context, name string, args ...string) exec.Outcome {
	line := strings.Join(append([]string{name}, args...), " ")
	m.mu.Lock()
	m.Calls = append(m.Calls, line)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	if out, ok := m.Outcomes[line]; ok {
		return out
	}
	return exec.Outcome{Err: os.ErrNotExist}
}

// Called reports whether the command line was run.
func (m *MockRunner) Called(line string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if c == line {
			return true
		}
	}
	return false
}

// Stdout is a successful outcome with the given output.
func Stdout(s string) exec.Outcome {
	return exec.Outcome{Succeeded: true, Stdout: strings.TrimSpace(s)}
}

// Tree creates files under root. Keys are slash paths relative to root; a key
// ending in "/" creates an empty directory.
func Tree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", p, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// ContainsLine checks if any line of result contains the given substring.
func ContainsLine(result, substr string) bool {
	for _, l := range strings.Split(result, "\n") {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
