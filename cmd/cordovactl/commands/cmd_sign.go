package commands

import (
	"context"
	"dario.cat/mergo"
	"fmt"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/cordova"
	"github.com/kluctl/cordovactl/pkg/status"
	"github.com/kluctl/cordovactl/pkg/types"
)

type signCmd struct {
	args.ProjectFlags
	args.OutputFlags
	args.SigningFlags
}

func (cmd *signCmd) Help() string {
	return `Signs the android release APK with jarsigner, using the app name as key alias, and
zip-aligns it into platforms/android/build/outputs/apk/<name>-<DD-MM-YY>.apk.

Passwords can be passed via CORDOVACTL_STORE_PASS and CORDOVACTL_KEY_PASS. When they
are missing and cordovactl runs in a terminal, they are prompted for.`
}

func (cmd *signCmd) buildSignOptions(ctx context.Context, p *loadedProject) (cordova.SignOptions, error) {
	opts := cordova.SignOptions{
		Keystore:    cmd.Keystore.String(),
		StorePass:   cmd.StorePass,
		KeyPass:     cmd.KeyPass,
		UnsignedApk: cmd.UnsignedApk.String(),
	}

	if p.config.Signing != nil {
		if p.config.Signing.StorePass != "" || p.config.Signing.KeyPass != "" {
			status.WarningOnce(ctx, "plaintext-passwords", fmt.Sprintf("%s contains signing passwords in plain text, consider using CORDOVACTL_STORE_PASS and CORDOVACTL_KEY_PASS instead", types.ProjectConfigFileName))
		}
		defaults := cordova.SignOptions{
			Keystore:  p.config.Signing.Keystore,
			StorePass: p.config.Signing.StorePass,
			KeyPass:   p.config.Signing.KeyPass,
		}
		err := mergo.Merge(&opts, defaults)
		if err != nil {
			return opts, err
		}
	}

	if opts.Keystore == "" {
		return opts, fmt.Errorf("no keystore specified, use --keystore or signing.keystore in %s", types.ProjectConfigFileName)
	}

	var err error
	if opts.StorePass == "" {
		opts.StorePass, err = status.AskForPassword(ctx, fmt.Sprintf("Password for keystore %s", opts.Keystore))
		if err != nil {
			return opts, err
		}
	}
	if opts.KeyPass == "" {
		opts.KeyPass, err = status.AskForPassword(ctx, fmt.Sprintf("Password for key %s", p.app.Name()))
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func (cmd *signCmd) Run(ctx context.Context) error {
	return withApp(ctx, cmd.ProjectFlags, func(ctx context.Context, p *loadedProject) error {
		opts, err := cmd.buildSignOptions(ctx, p)
		if err != nil {
			return err
		}

		return runOperation(ctx, cmd.OutputFlags, "sign", cordova.PlatformAndroid, func(ctx context.Context, cr *types.CommandResult) (bool, error) {
			path, err := p.app.SignAndroidApk(ctx, opts)
			cr.Path = path
			return path != "", err
		})
	})
}
