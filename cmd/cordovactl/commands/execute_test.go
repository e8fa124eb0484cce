package commands

import (
	"bytes"
	"context"
	"github.com/kluctl/cordovactl/pkg/process"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type testRunner struct {
	mutex    sync.Mutex
	shell    bool
	handlers map[string]func(c process.Command) (*process.Result, error)
	calls    []process.Command
}

func newTestRunner(t *testing.T) *testRunner {
	r := &testRunner{
		handlers: map[string]func(c process.Command) (*process.Result, error){},
	}
	oldNewRunner := newRunner
	newRunner = func(shell bool) process.Runner {
		r.shell = shell
		return r
	}
	t.Cleanup(func() {
		newRunner = oldNewRunner
	})
	return r
}

func (r *testRunner) on(tool string, h func(c process.Command) (*process.Result, error)) {
	r.handlers[tool] = h
}

func (r *testRunner) exitWith(tool string, code int) {
	r.on(tool, func(c process.Command) (*process.Result, error) {
		return &process.Result{ExitCode: code, Stderr: []byte("something went wrong")}, nil
	})
}

func (r *testRunner) Run(ctx context.Context, c process.Command) (*process.Result, error) {
	r.mutex.Lock()
	r.calls = append(r.calls, c)
	h := r.handlers[c.Name]
	r.mutex.Unlock()
	if h == nil {
		return &process.Result{}, nil
	}
	return h(c)
}

func (r *testRunner) callsOf(tool string) []process.Command {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var ret []process.Command
	for _, c := range r.calls {
		if c.Name == tool {
			ret = append(ret, c)
		}
	}
	return ret
}

func newTestProject(t *testing.T, config string) string {
	dir := t.TempDir()
	if config != "" {
		err := os.WriteFile(filepath.Join(dir, ".cordovactl.yml"), []byte(config), 0o600)
		require.NoError(t, err)
	}
	return dir
}

func writeTestFile(t *testing.T, p string, content string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func cordovactlExecute(t *testing.T, args ...string) (string, string, error) {
	t.Logf("Running cordovactl: %s", strings.Join(args, " "))

	require.NoError(t, initViper(context.Background()))

	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)

	ctx := WithStdStreams(context.Background(), stdout, stderr)
	ctx = WithStdin(ctx, strings.NewReader(""))
	err := Execute(ctx, args, nil)

	t.Log(stderr.String())
	return stdout.String(), stderr.String(), err
}
