package commands

import (
	"context"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/types"
)

type compileCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Platform string `arg:"" help:"The platform to compile" completion:"installed"`
}

func (cmd *compileCmd) Help() string {
	return `Runs 'cordova compile <platform>'. Run 'prepare' first to pick up changed web sources.`
}

func (cmd *compileCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		return runOperation(ctx, cmd.OutputFlags, "compile", cmd.Platform, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			return p.app.Compile(ctx, cmd.Platform)
		})
	})
}
