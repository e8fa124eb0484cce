/*
Copyright © 2022 Alexander Block <ablock84@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package commands

import (
	"context"
	"errors"
	"fmt"
	"github.com/kluctl/cordovactl/pkg/status"
	"github.com/kluctl/cordovactl/pkg/version"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
)

const envPrefix = "CORDOVACTL"

type GlobalFlags struct {
	Verbosity string `group:"global" short:"v" help:"Log level (trace, debug, info, warn, error, fatal, panic)." default:"warn"`
	Quiet     bool   `group:"global" short:"q" help:"Don't forward the output of external tools."`
	NoColor   bool   `group:"global" help:"Disable colored output."`
}

type cli struct {
	GlobalFlags

	Platform  platformCmd  `cmd:"" help:"Manage the platforms of the project"`
	Build     buildCmd     `cmd:"" help:"Build a platform and print the path of the build output"`
	Prepare   prepareCmd   `cmd:"" help:"Copy the web sources and config into a platform"`
	Compile   compileCmd   `cmd:"" help:"Compile a platform without preparing it first"`
	Archive   archiveCmd   `cmd:"" help:"Pack a platform directory into platforms/<name>-<platform>.zip"`
	Sign      signCmd      `cmd:"" help:"Sign and zip-align the android release APK"`
	Locations locationsCmd `cmd:"" help:"Print the build output locations of the project"`

	Version versionCmd `cmd:"" help:"Print cordovactl version"`
}

var groupInfos = []groupInfo{
	{group: "project", title: "Project arguments:", description: "Define where and how to run the cordova tooling."},
	{group: "signing", title: "Signing arguments:", description: "Control how the APK is signed. Missing values are taken from .cordovactl.yml."},
	{group: "misc", title: "Misc arguments:", description: "Command specific arguments."},
	{group: "global", title: "Global arguments:"},
}

func (c *cli) setupLogs() error {
	lvl, err := log.ParseLevel(c.Verbosity)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

func (c *cli) setupStatusHandler(ctx context.Context) context.Context {
	sh, ok := status.FromContext(ctx).(*status.SimpleStatusHandler)
	if !ok {
		_, stderr := getStdStreams(ctx)
		sh = status.NewSimpleStatusHandler(stderr, !c.Quiet)
		sh.SetInput(getStdin(ctx))
		ctx = status.NewContext(ctx, sh)
	}
	sh.SetTrace(!c.Quiet)
	sh.SetNoColor(c.NoColor)
	return ctx
}

func initViper(ctx context.Context) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	home, err := homedir.Dir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".cordovactl"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		log.Debugf("Loaded config from %s", viper.ConfigFileUsed())
	}

	viper.SetEnvPrefix(strings.ToLower(envPrefix))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	return nil
}

func Main() {
	sh := status.NewSimpleStatusHandler(os.Stderr, true)
	ctx := status.NewContext(context.Background(), sh)
	defer sh.Stop()

	err := initViper(ctx)
	if err == nil {
		err = Execute(ctx, os.Args[1:], nil)
	}
	if err != nil {
		status.Error(ctx, err.Error())
		sh.Stop()
		os.Exit(1)
	}
}

// Execute runs the command line given by args. preRun is invoked after all flags have been
// parsed and before the command runs.
func Execute(ctx context.Context, args []string, preRun func(ctx context.Context, rootCmd *cobra.Command) (context.Context, error)) error {
	root := cli{}
	rootCmd, err := buildRootCobraCmd(&root, "cordovactl",
		"Build, sign and package cordova apps",
		`cordovactl drives the cordova CLI and the android signing tools for a single project.

All operations run the external tools inside the project directory. Build outputs are
looked up at fixed locations below platforms/.`,
		groupInfos)
	if err != nil {
		return err
	}

	rootCmd.Version = version.GetVersion()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	stdout, stderr := getStdStreams(ctx)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		err := copyViperValuesToCobraCmd(cmd)
		if err != nil {
			return err
		}
		err = root.setupLogs()
		if err != nil {
			return err
		}

		ctx := root.setupStatusHandler(cmd.Context())
		if preRun != nil {
			ctx, err = preRun(ctx, rootCmd)
			if err != nil {
				return err
			}
		}
		cmd.SetContext(ctx)
		return nil
	}

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
