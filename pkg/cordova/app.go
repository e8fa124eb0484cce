package cordova

import (
	"context"
	"errors"
	"fmt"
	"github.com/kluctl/cordovactl/pkg/process"
	"github.com/kluctl/cordovactl/pkg/status"
	"github.com/kluctl/cordovactl/pkg/utils"
	"github.com/kluctl/cordovactl/pkg/yaml"
	log "github.com/sirupsen/logrus"
	"path/filepath"
	"time"
)

const cordovaTool = "cordova"

// App orchestrates the cordova CLI for a single project. It is immutable after construction.
// Tools are started with the project root (or a sub directory of it) as their working
// directory; the working directory of the current process is never touched, so Apps can be
// used concurrently.
type App struct {
	path         string
	name         string
	runner       process.Runner
	clock        func() time.Time
	locations    BuildLocations
	strictErrors bool
}

type appParams struct {
	Path string `validate:"required"`
	Name string `validate:"appname"`
}

type Option func(a *App)

// WithRunner replaces the default direct exec runner, e.g. with process.NewShellRunner().
func WithRunner(r process.Runner) Option {
	return func(a *App) {
		a.runner = r
	}
}

func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.clock = clock
	}
}

func WithBuildLocations(l BuildLocations) Option {
	return func(a *App) {
		a.locations = l
	}
}

// WithStrictErrors makes operations additionally return a *ToolError with kind NonZeroExit
// whenever a tool exits with a non-zero code. The boolean/path return values are unaffected.
func WithStrictErrors() Option {
	return func(a *App) {
		a.strictErrors = true
	}
}

func NewApp(path string, name string, opts ...Option) (*App, error) {
	err := yaml.ValidateStructs(&appParams{Path: path, Name: name})
	if err != nil {
		return nil, fmt.Errorf("invalid app: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	a := &App{
		path:      absPath,
		name:      name,
		runner:    process.NewExecRunner(),
		clock:     time.Now,
		locations: DefaultBuildLocations,
	}
	for _, o := range opts {
		o(a)
	}

	if err := a.locations.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build locations: %w", err)
	}
	return a, nil
}

func (a *App) Path() string {
	return a.path
}

func (a *App) Name() string {
	return a.name
}

func (a *App) Locations() BuildLocations {
	return a.locations
}

var secretArgs = []string{"-storepass", "-keypass"}

func (a *App) run(ctx context.Context, c process.Command) (*process.Result, error) {
	if c.Dir == "" {
		c.Dir = a.path
	}

	logger := log.WithFields(log.Fields{
		"tool": c.Name,
		"args": utils.ShellJoin(utils.MaskArgs(c.Args, secretArgs...)),
		"dir":  c.Dir,
	})
	logger.Debug("Running external tool")

	forward := func(line string) {
		logger.Trace(line)
		status.Trace(ctx, line)
	}
	stdout, stdoutDone := status.NewLineRedirector(forward)
	stderr, stderrDone := status.NewLineRedirector(forward)
	if !c.CaptureStdout {
		c.Stdout = stdout
	}
	c.Stderr = stderr

	res, err := a.runner.Run(ctx, c)

	_ = stdout.Close()
	_ = stderr.Close()
	<-stdoutDone
	<-stderrDone

	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return nil, &ToolError{Kind: ToolNotFound, Tool: c.Name, Err: err}
		}
		return nil, err
	}
	logger.WithField("exitCode", res.ExitCode).Debug("External tool finished")
	return res, nil
}

// exitError returns the strict mode error for a failed invocation, or nil.
func (a *App) exitError(c process.Command, res *process.Result) error {
	if res.Success() || !a.strictErrors {
		return nil
	}
	return &ToolError{
		Kind:     NonZeroExit,
		Tool:     c.Name,
		ExitCode: res.ExitCode,
		Stderr:   string(res.Stderr),
	}
}

// runBool runs c and maps exit code 0 to true and everything else to false.
func (a *App) runBool(ctx context.Context, c process.Command) (bool, error) {
	res, err := a.run(ctx, c)
	if err != nil {
		return false, err
	}
	return res.Success(), a.exitError(c, res)
}

func cordovaCmd(args ...string) process.Command {
	return process.Command{Name: cordovaTool, Args: args}
}

// PlatformList returns the installed and available platforms as reported by
// "cordova platform ls". Every call invokes the tool again.
func (a *App) PlatformList(ctx context.Context) ([]string, []string, error) {
	raw, err := a.platformLs(ctx)
	if err != nil {
		return nil, nil, err
	}
	installed, available, err := ParsePlatformListing(raw)
	if err != nil {
		return nil, nil, &ToolError{Kind: OutputParseFailure, Tool: cordovaTool, Err: err}
	}
	return installed, available, nil
}

// PlatformVersions returns the installed platforms including their versions.
func (a *App) PlatformVersions(ctx context.Context) ([]Platform, error) {
	raw, err := a.platformLs(ctx)
	if err != nil {
		return nil, err
	}
	ret, err := ParsePlatformVersions(raw)
	if err != nil {
		return nil, &ToolError{Kind: OutputParseFailure, Tool: cordovaTool, Err: err}
	}
	return ret, nil
}

func (a *App) platformLs(ctx context.Context) ([]byte, error) {
	c := cordovaCmd("platform", "ls")
	c.CaptureStdout = true
	res, err := a.run(ctx, c)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		// without output there is nothing to parse, so this is an error in any mode
		return nil, &ToolError{Kind: NonZeroExit, Tool: cordovaTool, ExitCode: res.ExitCode, Stderr: string(res.Stderr)}
	}
	return res.Stdout, nil
}

func (a *App) InstalledPlatformList(ctx context.Context) ([]string, error) {
	installed, _, err := a.PlatformList(ctx)
	return installed, err
}

func (a *App) AvailablePlatformList(ctx context.Context) ([]string, error) {
	_, available, err := a.PlatformList(ctx)
	return available, err
}

func (a *App) AddPlatform(ctx context.Context, platform string) (bool, error) {
	return a.runBool(ctx, cordovaCmd("platform", "add", platform))
}

func (a *App) RemovePlatform(ctx context.Context, platform string) (bool, error) {
	return a.runBool(ctx, cordovaCmd("platform", "remove", platform))
}

func (a *App) Prepare(ctx context.Context, platform string) (bool, error) {
	return a.runBool(ctx, cordovaCmd("prepare", platform))
}

// Compile compiles the platform sources without preparing them first.
func (a *App) Compile(ctx context.Context, platform string) (bool, error) {
	return a.runBool(ctx, cordovaCmd("compile", platform))
}
