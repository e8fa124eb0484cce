//go:build !windows

package process

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestExecRunner_ExitCodes(t *testing.T) {
	r := NewExecRunner()

	res, err := r.Run(context.Background(), Command{Name: "true"})
	require.NoError(t, err)
	assert.True(t, res.Success())

	for _, code := range []int{1, 2, 3, 127} {
		res, err = r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo oops >&2; exit " + strconv.Itoa(code)}})
		require.NoError(t, err)
		assert.False(t, res.Success())
		assert.Equal(t, code, res.ExitCode)
		assert.Equal(t, "oops\n", string(res.Stderr))
	}
}

func TestExecRunner_NotFound(t *testing.T) {
	r := NewExecRunner()
	_, err := r.Run(context.Background(), Command{Name: "cordovactl-does-not-exist"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecRunner_Dir(t *testing.T) {
	dir := t.TempDir()
	cwdBefore, err := os.Getwd()
	require.NoError(t, err)

	res, err := NewExecRunner().Run(context.Background(), Command{Name: "pwd", Dir: dir, CaptureStdout: true})
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(strings.TrimSpace(string(res.Stdout)))
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	cwdAfter, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwdBefore, cwdAfter)
}

func TestExecRunner_Streams(t *testing.T) {
	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	res, err := NewExecRunner().Run(context.Background(), Command{
		Name:   "sh",
		Args:   []string{"-c", "echo out; echo err >&2"},
		Stdout: stdout,
		Stderr: stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "err\n", string(res.Stderr))
}

func TestShellRunner_NoInterpolation(t *testing.T) {
	r := NewShellRunner()
	arg := `$(echo injected); echo "also" | cat`
	res, err := r.Run(context.Background(), Command{Name: "printf", Args: []string{"%s", arg}, CaptureStdout: true})
	require.NoError(t, err)
	assert.Equal(t, arg, string(res.Stdout))
}

func TestShellRunner_NotFoundIsExitCode(t *testing.T) {
	res, err := NewShellRunner().Run(context.Background(), Command{Name: "cordovactl-does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, 127, res.ExitCode)

	_, err = NewShellRunner().Run(context.Background(), Command{Name: "cordovactl-does-not-exist", NoShell: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecRunner_Cancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewExecRunner().Run(ctx, Command{Name: "sleep", Args: []string{"10"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestTailBuffer(t *testing.T) {
	b := newTailBuffer(4)
	_, _ = b.Write([]byte("ab"))
	_, _ = b.Write([]byte("cdef"))
	assert.Equal(t, "cdef", string(b.Bytes()))
}
