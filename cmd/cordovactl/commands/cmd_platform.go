package commands

import (
	"context"
	"fmt"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/types"
	"strings"
)

type platformCmd struct {
	Ls     platformLsCmd     `cmd:"ls" help:"List the installed and available platforms"`
	Add    platformAddCmd    `cmd:"" help:"Add a platform to the project"`
	Remove platformRemoveCmd `cmd:"" help:"Remove a platform from the project"`
}

type platformLsCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Versions bool `group:"misc" help:"Also print the versions of the installed platforms."`
}

func (cmd *platformLsCmd) Help() string {
	return `Runs 'cordova platform ls' and prints the installed and available platforms.`
}

func (cmd *platformLsCmd) Run(ctx context.Context) error {
	if err := cmd.OutputFlags.Validate(); err != nil {
		return err
	}
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		installed, available, err := p.app.PlatformList(ctx)
		if err != nil {
			return err
		}
		result := types.PlatformListResult{
			Installed: installed,
			Available: available,
		}

		if cmd.Versions {
			platforms, err := p.app.PlatformVersions(ctx)
			if err != nil {
				return err
			}
			result.Versions = map[string]string{}
			for _, pl := range platforms {
				result.Versions[pl.Name] = pl.RawVersion
			}
		}

		return outputResult(ctx, cmd.OutputFlags, formatPlatformListText(&result), &result)
	})
}

func formatPlatformListText(r *types.PlatformListResult) string {
	installed := r.Installed
	if r.Versions != nil {
		installed = nil
		for _, p := range r.Installed {
			if v, ok := r.Versions[p]; ok {
				p = fmt.Sprintf("%s %s", p, v)
			}
			installed = append(installed, p)
		}
	}
	return fmt.Sprintf("Installed platforms: %s\nAvailable platforms: %s\n", strings.Join(installed, ", "), strings.Join(r.Available, ", "))
}

type platformAddCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Platform string `arg:"" help:"The platform to add" completion:"available"`
}

func (cmd *platformAddCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		return runOperation(ctx, cmd.OutputFlags, "platform add", cmd.Platform, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			return p.app.AddPlatform(ctx, cmd.Platform)
		})
	})
}

type platformRemoveCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Platform string `arg:"" help:"The platform to remove" completion:"installed"`
}

func (cmd *platformRemoveCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		return runOperation(ctx, cmd.OutputFlags, "platform remove", cmd.Platform, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			return p.app.RemovePlatform(ctx, cmd.Platform)
		})
	})
}
