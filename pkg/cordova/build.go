package cordova

import (
	"context"
	"fmt"
	"path/filepath"
)

func buildVariant(release bool) Variant {
	if release {
		return VariantRelease
	}
	return VariantDebug
}

// buildSubstitution returns the value used for the first placeholder of build and sign
// templates. Cordova names android outputs after the platform ("android-debug.apk"), not after
// the app, so android always uses the literal "android".
func (a *App) buildSubstitution(platform string) string {
	if platform == PlatformAndroid {
		return PlatformAndroid
	}
	return a.name
}

// BuildPath returns the absolute path of the artifact "cordova build <platform>" produces.
func (a *App) BuildPath(platform string, release bool) (string, error) {
	p, err := a.locations.Resolve(platform, buildVariant(release), a.buildSubstitution(platform))
	if err != nil {
		return "", err
	}
	return filepath.Join(a.path, p), nil
}

// Build runs "cordova build <platform> [--release]" and returns the path of the build output.
// An empty path is returned when cordova fails.
func (a *App) Build(ctx context.Context, platform string, release bool) (string, error) {
	c := cordovaCmd("build", platform)
	if release {
		c.Args = append(c.Args, "--release")
	}

	res, err := a.run(ctx, c)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", a.exitError(c, res)
	}

	p, err := a.BuildPath(platform, release)
	if err != nil {
		return "", fmt.Errorf("build of %s succeeded, but its output can't be located: %w", platform, err)
	}
	return p, nil
}

// ResolveLocations returns all known output locations of platform as absolute paths. The
// signed location is computed for the current date.
func (a *App) ResolveLocations(platform string) (map[Variant]string, error) {
	vs, ok := a.locations[platform]
	if !ok {
		return nil, fmt.Errorf("%w: platform %s", ErrUnknownLocation, platform)
	}

	ret := map[Variant]string{}
	for v := range vs {
		var p string
		var err error
		switch v {
		case VariantDebug, VariantRelease:
			p, err = a.BuildPath(platform, v == VariantRelease)
		case VariantArchive:
			p = a.ArchivePath(platform)
		case VariantSigned:
			p, err = a.SignedApkPath()
		default:
			p, err = a.locations.Resolve(platform, v, a.name)
			p = filepath.Join(a.path, p)
		}
		if err != nil {
			return nil, err
		}
		ret[v] = p
	}
	return ret, nil
}
