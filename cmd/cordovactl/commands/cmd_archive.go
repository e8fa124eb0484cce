package commands

import (
	"context"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/types"
)

type archiveCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Platform string `arg:"" help:"The platform to archive" completion:"installed"`
}

func (cmd *archiveCmd) Help() string {
	return `Packs platforms/<platform> into platforms/<name>-<platform>.zip.

The archive is a gzip compressed tarball, despite its file extension.`
}

func (cmd *archiveCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		return runOperation(ctx, cmd.OutputFlags, "archive", cmd.Platform, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			path, err := p.app.Archive(ctx, cmd.Platform)
			cr.Path = path
			return path != "", err
		})
	})
}
