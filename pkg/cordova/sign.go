package cordova

import (
	"context"
	"errors"
	"fmt"
	"github.com/kluctl/cordovactl/pkg/process"
	"github.com/kluctl/cordovactl/pkg/utils"
	log "github.com/sirupsen/logrus"
	"os"
	"path/filepath"
)

const (
	signatureAlgorithm = "SHA1withRSA"
	digestAlgorithm    = "SHA1"
	timestampAuthority = "http://tsa.starfieldtech.com"

	// DD-MM-YY
	signedDateLayout = "02-01-06"
)

type SignOptions struct {
	Keystore  string
	KeyPass   string
	StorePass string

	// UnsignedApk defaults to the release build output. Relative paths are resolved against the
	// project root.
	UnsignedApk string
}

// UnsignedApkPath returns the default input of SignAndroidApk.
func (a *App) UnsignedApkPath() (string, error) {
	return a.BuildPath(PlatformAndroid, true)
}

// SignedApkPath returns the output path of SignAndroidApk for the current date.
func (a *App) SignedApkPath() (string, error) {
	date := a.clock().Format(signedDateLayout)
	p, err := a.locations.Resolve(PlatformAndroid, VariantSigned, a.name, date)
	if err != nil {
		return "", err
	}
	return filepath.Join(a.path, p), nil
}

func (a *App) jarsignerCmd(opts SignOptions, unsignedApk string) process.Command {
	return process.Command{
		Name: "jarsigner",
		Args: []string{
			"-verbose",
			"-sigalg", signatureAlgorithm,
			"-digestalg", digestAlgorithm,
			"-keystore", opts.Keystore,
			"-tsa", timestampAuthority,
			"-storepass", opts.StorePass,
			"-keypass", opts.KeyPass,
			unsignedApk,
			a.name,
		},
	}
}

func zipalignCmd(unsignedApk string, signedApk string) process.Command {
	return process.Command{
		Name:    "zipalign",
		Args:    []string{"-v", "4", unsignedApk, signedApk},
		NoShell: true,
	}
}

// SignAndroidApk signs the unsigned release APK in place with jarsigner (using the app name as
// key alias) and then zip-aligns it into the signed location. An existing file at the signed
// location is replaced. The signed path is only returned when both tools succeed; if zipalign
// fails, the unsigned APK stays signed.
func (a *App) SignAndroidApk(ctx context.Context, opts SignOptions) (string, error) {
	unsignedApk := opts.UnsignedApk
	if unsignedApk == "" {
		p, err := a.UnsignedApkPath()
		if err != nil {
			return "", err
		}
		unsignedApk = p
	} else {
		unsignedApk = utils.ResolvePath(a.path, unsignedApk)
	}

	c := a.jarsignerCmd(opts, unsignedApk)
	res, err := a.run(ctx, c)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", a.exitError(c, res)
	}

	signedApk, err := a.SignedApkPath()
	if err != nil {
		return "", err
	}

	if utils.Exists(signedApk) {
		log.Debugf("Removing existing signed APK %s", signedApk)
		err = os.Remove(signedApk)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to remove existing signed APK: %w", err)
		}
	}

	c = zipalignCmd(unsignedApk, signedApk)
	res, err = a.run(ctx, c)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", a.exitError(c, res)
	}
	return signedApk, nil
}
