package cordova

import (
	"context"
	"github.com/kluctl/cordovactl/pkg/process"
	"sync"
)

type fakeHandler func(c process.Command) (*process.Result, error)

// fakeRunner records all invocations and answers them with per-tool handlers. Tools without a
// handler exit with code 0.
type fakeRunner struct {
	mutex    sync.Mutex
	handlers map[string]fakeHandler
	calls    []process.Command
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		handlers: map[string]fakeHandler{},
	}
}

func (r *fakeRunner) on(tool string, h fakeHandler) *fakeRunner {
	r.handlers[tool] = h
	return r
}

func (r *fakeRunner) exitWith(tool string, code int) *fakeRunner {
	return r.on(tool, func(c process.Command) (*process.Result, error) {
		return &process.Result{ExitCode: code, Stderr: []byte("failure output")}, nil
	})
}

func (r *fakeRunner) stdout(tool string, stdout string) *fakeRunner {
	return r.on(tool, func(c process.Command) (*process.Result, error) {
		return &process.Result{Stdout: []byte(stdout)}, nil
	})
}

func (r *fakeRunner) Run(ctx context.Context, c process.Command) (*process.Result, error) {
	r.mutex.Lock()
	r.calls = append(r.calls, c)
	h, ok := r.handlers[c.Name]
	r.mutex.Unlock()

	if !ok {
		return &process.Result{}, nil
	}
	return h(c)
}

func (r *fakeRunner) callsOf(tool string) []process.Command {
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
