package cordova

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolNotFound       = errors.New("external tool not found")
	ErrNonZeroExit        = errors.New("external tool exited with non-zero code")
	ErrOutputParseFailure = errors.New("failed to parse tool output")
	ErrUnknownLocation    = errors.New("unknown build location")
)

type ErrorKind int

const (
	ToolNotFound ErrorKind = iota + 1
	NonZeroExit
	OutputParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ToolNotFound:
		return "ExternalToolNotFound"
	case NonZeroExit:
		return "NonZeroExit"
	case OutputParseFailure:
		return "OutputParseFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case ToolNotFound:
		return ErrToolNotFound
	case NonZeroExit:
		return ErrNonZeroExit
	case OutputParseFailure:
		return ErrOutputParseFailure
	}
	return nil
}

// ToolError describes why an external tool invocation failed. errors.Is matches it against
// ErrToolNotFound, ErrNonZeroExit and ErrOutputParseFailure depending on Kind.
type ToolError struct {
	Kind     ErrorKind
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolError) Error() string {
	switch e.Kind {
	case NonZeroExit:
		msg := fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
		if s := strings.TrimSpace(e.Stderr); s != "" {
			msg += ": " + s
		}
		return msg
	case OutputParseFailure:
		if e.Err != nil {
			return fmt.Sprintf("failed to parse output of %s: %s", e.Tool, e.Err.Error())
		}
		return fmt.Sprintf("failed to parse output of %s", e.Tool)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s", e.Kind.sentinel().Error(), e.Err.Error())
		}
		return fmt.Sprintf("%s: %s", e.Kind.sentinel().Error(), e.Tool)
	}
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func (e *ToolError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
