package commands

import (
	"context"
	"fmt"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/status"
	"github.com/kluctl/cordovactl/pkg/types"
	cp "github.com/otiai10/copy"
	"os"
	"path/filepath"
)

type buildCmd struct {
	args.ProjectFlags
	args.OutputFlags
	args.BuildFlags

	Platform string `arg:"" help:"The platform to build" completion:"known"`
}

func (cmd *buildCmd) Help() string {
	return `Runs 'cordova build <platform>' and prints the location of the build output.

The output is looked up at a fixed location below platforms/<platform>. When an output
directory is given, the build output is copied into it.`
}

func (cmd *buildCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		outputDir := cmd.OutputDir.String()
		if outputDir == "" {
			outputDir = p.config.OutputDir
		}

		return runOperation(ctx, cmd.OutputFlags, "build", cmd.Platform, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			path, err := p.app.Build(ctx, cmd.Platform, cmd.Release)
			if err != nil || path == "" {
				return false, err
			}
			cr.Path = path

			if outputDir != "" {
				cr.ExportedPath, err = exportArtifact(ctx, path, outputDir)
				if err != nil {
					return false, err
				}
			}
			return true, nil
		})
	})
}

// exportArtifact copies a build output (a file or an .app directory) into outputDir.
func exportArtifact(ctx context.Context, path string, outputDir string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("build output %s not found: %w", path, err)
	}

	err := os.MkdirAll(outputDir, 0o755)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(outputDir, filepath.Base(path))
	status.Tracef(ctx, "Copying %s to %s", path, dst)

	err = cp.Copy(path, dst, cp.Options{
		OnSymlink: func(src string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to copy build output to %s: %w", outputDir, err)
	}
	return dst, nil
}
