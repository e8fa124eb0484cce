package commands

import (
	"context"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/cordova"
	"github.com/kluctl/cordovactl/pkg/types"
	"github.com/kluctl/cordovactl/pkg/utils"
	"github.com/kluctl/cordovactl/pkg/utils/term"
	"sort"
)

type locationsCmd struct {
	args.ProjectFlags
	args.OutputFlags

	Platform string `arg:"" optional:"true" help:"Only print the locations of this platform" completion:"known"`
}

func (cmd *locationsCmd) Help() string {
	return `Prints where build, archive and sign outputs are expected. No external tool is run.
The signed location is computed for the current date.`
}

func (cmd *locationsCmd) Run(ctx context.Context) error {
	if err := cmd.OutputFlags.Validate(); err != nil {
		return err
	}
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		platforms := p.app.Locations().Platforms()
		if cmd.Platform != "" {
			platforms = []string{cmd.Platform}
		}

		var result []types.LocationsResult
		for _, platform := range platforms {
			l, err := p.app.ResolveLocations(platform)
			if err != nil {
				return err
			}
			r := types.LocationsResult{
				Platform:  platform,
				Locations: map[string]string{},
			}
			for v, path := range l {
				r.Locations[string(v)] = path
			}
			result = append(result, r)
		}

		return outputResult(ctx, cmd.OutputFlags, formatLocationsText(result), result)
	})
}

var variantOrder = []cordova.Variant{cordova.VariantDebug, cordova.VariantRelease, cordova.VariantArchive, cordova.VariantSigned}

func variantIndex(v string) int {
	for i, x := range variantOrder {
		if string(x) == v {
			return i
		}
	}
	return len(variantOrder)
}

func formatLocationsText(result []types.LocationsResult) string {
	var table utils.PrettyTable
	table.SetHeader("PLATFORM", "VARIANT", "PATH")
	for _, r := range result {
		var variants []string
		for v := range r.Locations {
			variants = append(variants, v)
		}
		sort.SliceStable(variants, func(i, j int) bool {
			a, b := variantIndex(variants[i]), variantIndex(variants[j])
			if a != b {
				return a < b
			}
			return variants[i] < variants[j]
		})
		for _, v := range variants {
			table.AddRow(r.Platform, v, r.Locations[v])
		}
	}
	return table.Render([]int{-1, -1}, term.GetWidth())
}
