package commands

import (
	"context"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/types"
)

type prepareCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Platform string `arg:"" help:"The platform to prepare" completion:"installed"`
}

func (cmd *prepareCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		return runOperation(ctx, cmd.OutputFlags, "prepare", cmd.Platform, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			return p.app.Prepare(ctx, cmd.Platform)
		})
	})
}
