// Package exec runs external diagnostic tools without a shell and with a
// hard timeout, capturing their output.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout is the wall-clock limit for a single tool invocation.
const DefaultTimeout = 30 * time.Second

// OutputGrace is how long output is still read after the tool has exited.
const OutputGrace = 500 * time.Millisecond

var (
	// ErrTimeout marks an invocation that was killed after exceeding its timeout.
	ErrTimeout = errors.New("process timeout")
	// ErrInterrupted marks an invocation abandoned because the caller's context ended.
	ErrInterrupted = errors.New("process interrupted")
	// ErrEmptyCommand is returned for a blank command line.
	ErrEmptyCommand = errors.New("empty command")
)

// Outcome is the result of one tool invocation.
type Outcome struct {
	Succeeded bool   // process was launched and exited on its own
	Stdout    string // trimmed, never nil
	Stderr    string // trimmed, never nil
	Err       error  // reason Succeeded is false
}

// Output returns Stdout when the invocation succeeded, "" otherwise.
func (o Outcome) Output() string {
	if !o.Succeeded {
		return ""
	}
	return o.Stdout
}

func failure(err error) Outcome {
	return Outcome{Err: err}
}

// Runner abstracts process execution for testability.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Outcome
}

// Execute tokenises commandLine and runs it through r.
// Quotes group words; pipes, redirections and globs are passed through literally.
func Execute(ctx context.Context, r Runner, commandLine string) Outcome {
	words, err := shlex.Split(commandLine)
	if err != nil {
		return failure(fmt.Errorf("parse %q: %w", commandLine, err))
	}
	if len(words) == 0 {
		return failure(ErrEmptyCommand)
	}
	return r.Run(ctx, words[0], words[1:]...)
}

// RealRunner runs processes on the host.
type RealRunner struct {
	Timeout time.Duration // default: DefaultTimeout
	Logger  *slog.Logger  // default: slog.Default()
}

func (r *RealRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Run starts name with args, waits at most Timeout and returns the captured output.
// A non-zero exit status still counts as success.
func (r *RealRunner) Run(ctx context.Context, name string, args ...string) Outcome {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := r.logger().With("command", commandString(name, args))

	// #nosec G204 -- commands are fixed diagnostic tools or come from the operator's config file.
	cmd := exec.CommandContext(ctx, name, args...)
	configureCommand(cmd)

	outR, outW, err := os.Pipe()
	if err != nil {
		return failure(err)
	}
	defer outR.Close()
	errR, errW, err := os.Pipe()
	if err != nil {
		_ = outW.Close()
		return failure(err)
	}
	defer errR.Close()
	cmd.Stdout, cmd.Stderr = outW, errW

	startErr := cmd.Start()
	// The child holds its own copies of the write ends.
	_ = outW.Close()
	_ = errW.Close()
	if startErr != nil {
		log.Warn("command failed to start", "error", startErr)
		return failure(startErr)
	}

	var outBuf, errBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error { return drain(&outBuf, outR) })
	g.Go(func() error { return drain(&errBuf, errR) })
	waitErr := cmd.Wait()

	// Descendants that outlive the tool may keep the pipes open.
	deadline := time.Now().Add(OutputGrace)
	_ = outR.SetReadDeadline(deadline)
	_ = errR.SetReadDeadline(deadline)
	readErr := g.Wait()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		log.Warn("command timed out", "timeout", timeout)
		return Outcome{
			Stdout: strings.TrimSpace(outBuf.String()),
			Stderr: strings.TrimSpace(errBuf.String()),
			Err:    fmt.Errorf("%w after %s", ErrTimeout, timeout),
		}
	case errors.Is(ctx.Err(), context.Canceled):
		log.Debug("command interrupted")
		return failure(fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err()))
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		log.Warn("command failed", "error", waitErr)
		return failure(waitErr)
	}
	if readErr != nil {
		log.Warn("reading command output failed", "error", readErr)
		return failure(readErr)
	}

	if exitErr != nil {
		log.Debug("command exited with non-zero status", "code", exitErr.ExitCode())
	}
	return Outcome{
		Succeeded: true,
		Stdout:    strings.TrimSpace(outBuf.String()),
		Stderr:    strings.TrimSpace(errBuf.String()),
	}
}

// drain copies src into dst until EOF or the read deadline. Output read
// before the deadline is kept.
func drain(dst *bytes.Buffer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return nil
	}
	return err
}

func commandString(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
