package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

var ErrNotFound = errors.New("executable not found")

// Command describes a single invocation of an external tool. Args are passed as a vector and
// never interpreted by a shell, unless a shell runner is used.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the child process. The working directory of the current
	// process is never changed.
	Dir string

	// CaptureStdout collects stdout into Result.Stdout instead of forwarding it to Stdout.
	CaptureStdout bool

	// NoShell forces direct execution even when the runner would otherwise use a shell.
	NoShell bool

	// Stdout and Stderr receive the tool output when set. Stderr is additionally kept in
	// Result.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Runner executes external tools. A non-zero exit code is not an error, it is reported via
// Result.ExitCode. Errors are only returned if the tool could not be run at all.
type Runner interface {
	Run(ctx context.Context, c Command) (*Result, error)
}

type execRunner struct {
	shell bool
}

// NewExecRunner returns the default Runner, which starts tools directly from their argument
// vector.
func NewExecRunner() Runner {
	return &execRunner{}
}

// NewShellRunner returns a Runner that starts tools through the system shell. This is an escape
// hatch for tools that are only resolvable through the shell (e.g. cordova.cmd on Windows).
// Arguments are still passed as separate words.
func NewShellRunner() Runner {
	return &execRunner{shell: true}
}

func (r *execRunner) buildCmd(ctx context.Context, c Command) *exec.Cmd {
	name, args := c.Name, c.Args
	if r.shell && !c.NoShell {
		name, args = shellCommand(name, args)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.Dir
	setupProcessGroup(cmd)
	return cmd
}

func (r *execRunner) Run(ctx context.Context, c Command) (*Result, error) {
	if _, err := exec.LookPath(c.Name); err != nil && (!r.shell || c.NoShell) {
		return nil, fmt.Errorf("%s: %w", c.Name, ErrNotFound)
	}

	cmd := r.buildCmd(ctx, c)

	stdoutBuf := bytes.NewBuffer(nil)
	stderrBuf := newTailBuffer(maxStderrTail)

	if c.CaptureStdout {
		cmd.Stdout = stdoutBuf
	} else if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = io.MultiWriter(c.Stderr, stderrBuf)
	} else {
		cmd.Stderr = stderrBuf
	}

	err := cmd.Run()
	res := &Result{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s interrupted: %w", c.Name, ctx.Err())
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", c.Name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to run %s: %w", c.Name, err)
	}
	return res, nil
}

const maxStderrTail = 4096

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	max int
	buf []byte
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if len(b.buf) > b.max {
		b.buf = b.buf[len(b.buf)-b.max:]
	}
	return len(p), nil
}

func (b *tailBuffer) Bytes() []byte {
	return b.buf
}
