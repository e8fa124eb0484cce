package commands

import (
	"context"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/cordova"
	"github.com/kluctl/cordovactl/pkg/status"
	"github.com/spf13/cobra"
	"reflect"
	"time"
)

const (
	completeInstalled = "installed"
	completeAvailable = "available"
	completeKnown     = "known"
)

// RegisterCompletionFuncs registers completion for positional platform arguments. The kind of
// completion is taken from the "completion" tag of the argument.
func RegisterCompletionFuncs(cmdStruct interface{}, ccmd *cobra.Command) error {
	v := reflect.ValueOf(cmdStruct).Elem()
	t := v.Type()

	projectFlags := v.FieldByName("ProjectFlags")
	if !projectFlags.IsValid() {
		return nil
	}
	pf := projectFlags.Addr().Interface().(*args.ProjectFlags)

	var kinds []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup("arg"); !ok {
			continue
		}
		kinds = append(kinds, f.Tag.Get("completion"))
	}
	if len(kinds) == 0 {
		return nil
	}

	ccmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= len(kinds) || kinds[len(args)] == "" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return buildPlatformCompletion(cmd.Context(), pf, kinds[len(args)])
	}
	return nil
}

func buildPlatformCompletion(ctx context.Context, projectFlags *args.ProjectFlags, kind string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		ctx = context.Background()
	}

	// limit the time spent in cordova while completing
	pf := *projectFlags
	pf.Timeout = 10 * time.Second

	var ret []string
	err := withApp(ctx, pf, func(ctx context.Context, p *loadedProject) error {
		var err error
		switch kind {
		case completeInstalled:
			ret, err = p.app.InstalledPlatformList(ctx)
		case completeAvailable:
			ret, err = p.app.AvailablePlatformList(ctx)
		default:
			ret = p.app.Locations().Platforms()
		}
		return err
	})
	if err != nil {
		status.Error(ctx, err.Error())
		return cordova.DefaultBuildLocations.Platforms(), cobra.ShellCompDirectiveNoFileComp
	}
	return ret, cobra.ShellCompDirectiveNoFileComp
}
