package commands

import (
	"context"
	"fmt"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/cordova"
	"github.com/kluctl/cordovactl/pkg/process"
	"github.com/kluctl/cordovactl/pkg/types"
	log "github.com/sirupsen/logrus"
	"path/filepath"
)

// newRunner creates the runner used for all external tools. Replaced in tests.
var newRunner = func(shell bool) process.Runner {
	if shell {
		return process.NewShellRunner()
	}
	return process.NewExecRunner()
}

type loadedProject struct {
	app    *cordova.App
	config *types.ProjectConfig
}

func withApp(ctx context.Context, projectFlags args.ProjectFlags, cb func(ctx context.Context, p *loadedProject) error) error {
	projectDir, err := projectFlags.GetProjectDir()
	if err != nil {
		return err
	}

	config, err := types.LoadProjectConfig(projectDir, projectFlags.ProjectConfig.String())
	if err != nil {
		return err
	}

	name := projectFlags.Name
	if name == "" {
		name = config.Name
	}
	if name == "" {
		name = filepath.Base(projectDir)
	}

	shell := projectFlags.Shell || config.Shell
	opts := []cordova.Option{
		cordova.WithRunner(newRunner(shell)),
	}
	if projectFlags.StrictErrors {
		opts = append(opts, cordova.WithStrictErrors())
	}

	app, err := cordova.NewApp(projectDir, name, opts...)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"dir":   app.Path(),
		"name":  app.Name(),
		"shell": shell,
	}).Debug("Loaded project")

	if projectFlags.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, projectFlags.Timeout)
		defer cancel()
	}

	err = cb(ctx, &loadedProject{app: app, config: config})
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("timed out after %s: %w", projectFlags.Timeout, err)
	}
	return err
}
