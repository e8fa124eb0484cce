package term

import (
	"golang.org/x/term"
	"os"
	"strconv"
)

var origStdout = os.Stdout

// GetWidth returns the width of the terminal attached to stdout, honoring $COLUMNS. Falls back
// to 80 when stdout is not a terminal.
func GetWidth() int {
	if c, ok := os.LookupEnv("COLUMNS"); ok {
		tw, err := strconv.ParseInt(c, 10, 32)
		if err == nil {
			return int(tw)
		}
	}
	w, _, err := term.GetSize(int(origStdout.Fd()))
	if err != nil || w == 0 {
		return 80
	}
	return w
}
