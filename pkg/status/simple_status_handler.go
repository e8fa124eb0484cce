package status

import (
	"bufio"
	"fmt"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
	"io"
	"os"
	"strings"
	"sync"
)

type SimpleStatusHandler struct {
	out      io.Writer
	in       io.Reader
	terminal bool
	trace    bool
	noColor  bool

	mutex sync.Mutex
}

type simpleStatusLine struct {
	sh      *SimpleStatusHandler
	message string
}

// NewSimpleStatusHandler writes one line per status message to out. Colors are only used when
// out is a terminal.
func NewSimpleStatusHandler(out io.Writer, trace bool) *SimpleStatusHandler {
	terminal := false
	if f, ok := out.(*os.File); ok {
		terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if terminal {
			out = colorable.NewColorable(f)
		}
	}
	return &SimpleStatusHandler{
		out:      out,
		in:       os.Stdin,
		terminal: terminal,
		trace:    trace,
	}
}

func (s *SimpleStatusHandler) SetTrace(trace bool) {
	s.trace = trace
}

func (s *SimpleStatusHandler) SetNoColor(noColor bool) {
	s.noColor = noColor
}

func (s *SimpleStatusHandler) SetInput(in io.Reader) {
	s.in = in
}

func (s *SimpleStatusHandler) IsTerminal() bool {
	return s.terminal
}

func (s *SimpleStatusHandler) IsTraceEnabled() bool {
	return s.trace
}

func (s *SimpleStatusHandler) Stop() {
}

func (s *SimpleStatusHandler) Flush() {
}

func (s *SimpleStatusHandler) StartStatus(level Level, total int, message string) StatusLine {
	if message != "" {
		s.Message(LevelInfo, message)
	}
	return &simpleStatusLine{sh: s, message: message}
}

func (s *SimpleStatusHandler) colorize(c color.Attribute, msg string) string {
	if !s.terminal || s.noColor {
		return msg
	}
	cl := color.New(c)
	cl.EnableColor()
	return cl.Sprint(msg)
}

func (s *SimpleStatusHandler) writeLine(line string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, _ = fmt.Fprintln(s.out, line)
}

func (s *SimpleStatusHandler) Message(level Level, message string) {
	switch level {
	case LevelTrace:
		if !s.trace {
			return
		}
		s.writeLine(message)
	case LevelWarning:
		s.writeLine(s.colorize(color.FgYellow, "Warning: "+message))
	case LevelError:
		s.writeLine(s.colorize(color.FgRed, "Error: "+message))
	default:
		s.writeLine(message)
	}
}

func (s *SimpleStatusHandler) MessageFallback(level Level, message string) {
	s.Message(level, message)
}

func (s *SimpleStatusHandler) Prompt(password bool, message string) (string, error) {
	s.mutex.Lock()
	_, _ = fmt.Fprint(s.out, message)
	s.mutex.Unlock()

	if f, ok := s.in.(*os.File); ok && password && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintf(s.out, "\n")
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	response, err := bufio.NewReader(s.in).ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return "", err
	}
	return strings.TrimRight(response, "\r\n"), nil
}

func (sl *simpleStatusLine) SetTotal(total int) {
}

func (sl *simpleStatusLine) Increment() {
}

func (sl *simpleStatusLine) Update(message string) {
	sl.message = message
}

func (sl *simpleStatusLine) End(result EndResult) {
	switch result {
	case EndSuccess:
		sl.sh.writeLine(sl.sh.colorize(color.FgGreen, "✓ "+sl.message))
	case EndWarning:
		sl.sh.writeLine(sl.sh.colorize(color.FgYellow, "⚠ "+sl.message))
	case EndError:
		sl.sh.writeLine(sl.sh.colorize(color.FgRed, "✗ "+sl.message))
	}
}

var _ StatusHandler = &SimpleStatusHandler{}
