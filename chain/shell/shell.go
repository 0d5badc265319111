// Package shell runs shell commands and captures their output as pipelines.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/lguimbarda/min-chain/chain"
)

// ErrExit is returned when a command exits with a non-zero status.
var ErrExit = errors.New("command failed")

// Command describes a command line run by /bin/sh -c.
type Command struct {
	Line  string
	Dir   string
	Env   []string // appended to the current environment
	Stdin io.Reader

	// GracePeriod bounds how long output is drained after ctx is done.
	// Zero means five seconds.
	GracePeriod time.Duration
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Exec runs cmd and waits for it. A non-zero exit returns the Result along
// with an error wrapping ErrExit.
func Exec(ctx context.Context, cmd Command) (*Result, error) {
	if strings.TrimSpace(cmd.Line) == "" {
		return nil, fmt.Errorf("shell: command line is required")
	}
	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = 5 * time.Second
	}

	c := exec.CommandContext(ctx, "/bin/sh", "-c", cmd.Line) //nolint:gosec // running commands is the purpose of this package
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.Stdin = cmd.Stdin
	c.WaitDelay = gracePeriod

	start := time.Now()
	err := c.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("shell: killed by context: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%w: exit code %d: %s", ErrExit, result.ExitCode, firstLine(result.Stderr))
		}
		return result, fmt.Errorf("shell: %w", err)
	}
	return result, nil
}

// Run runs line and returns its standard output as one string per line.
func Run(ctx context.Context, line string, opts ...chain.Option) chain.Pipeline {
	return RunCommand(ctx, Command{Line: line}, opts...)
}

// RunCommand is Run for a fully described Command.
func RunCommand(ctx context.Context, cmd Command, opts ...chain.Option) chain.Pipeline {
	result, err := Exec(ctx, cmd)
	if err != nil {
		return chain.Fail(err, opts...)
	}
	return chain.Of(string(result.Stdout)).With(opts...).SplitLines().Flat()
}

// Output runs line and returns its standard output and standard error
// joined by a newline, with surrounding newlines trimmed. The exit status
// is ignored.
func Output(ctx context.Context, line string) (string, error) {
	result, err := Exec(ctx, Command{Line: line})
	if err != nil && !errors.Is(err, ErrExit) {
		return "", err
	}
	out := string(result.Stdout) + "\n" + string(result.Stderr)
	return strings.Trim(out, "\n\r"), nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
