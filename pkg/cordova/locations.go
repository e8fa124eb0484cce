package cordova

import (
	"fmt"
	"sort"
	"strings"
)

type Variant string

const (
	VariantDebug   Variant = "debug"
	VariantRelease Variant = "release"
	VariantArchive Variant = "archive"
	VariantSigned  Variant = "signed"
)

const (
	PlatformAndroid = "android"
	PlatformIos     = "ios"
)

// BuildLocations maps platform and variant to a path template relative to the project root.
// Templates take the app name (or the literal "android", see BuildPath) as first argument;
// the signed template additionally takes the signing date.
type BuildLocations map[string]map[Variant]string

var DefaultBuildLocations = BuildLocations{
	PlatformAndroid: {
		VariantDebug:   "platforms/android/build/outputs/apk/%s-debug.apk",
		VariantRelease: "platforms/android/build/outputs/apk/%s-release-unsigned.apk",
		VariantArchive: "platforms/%s-android.zip",
		VariantSigned:  "platforms/android/build/outputs/apk/%s-%s.apk",
	},
	PlatformIos: {
		VariantDebug:   "platforms/ios/build/emulator/%s.app",
		VariantRelease: "platforms/ios/build/emulator/%s.app",
		VariantArchive: "platforms/%s-ios.zip",
	},
}

var requiredVariants = []Variant{VariantDebug, VariantRelease, VariantArchive}

func (l BuildLocations) Template(platform string, variant Variant) (string, bool) {
	vs, ok := l[platform]
	if !ok {
		return "", false
	}
	t, ok := vs[variant]
	return t, ok
}

// Resolve formats the template for platform and variant with args.
func (l BuildLocations) Resolve(platform string, variant Variant, args ...any) (string, error) {
	t, ok := l.Template(platform, variant)
	if !ok {
		return "", fmt.Errorf("%w: no %s location for platform %s", ErrUnknownLocation, variant, platform)
	}
	if n := strings.Count(t, "%s"); n != len(args) {
		return "", fmt.Errorf("template %q for %s/%s expects %d arguments, got %d", t, platform, variant, n, len(args))
	}
	return fmt.Sprintf(t, args...), nil
}

func (l BuildLocations) Platforms() []string {
	var ret []string
	for p := range l {
		ret = append(ret, p)
	}
	sort.Strings(ret)
	return ret
}

// Validate checks that every platform defines debug, release and archive, that signed is
// only defined for android and that every template has the right number of placeholders.
func (l BuildLocations) Validate() error {
	for _, p := range l.Platforms() {
		vs := l[p]
		for _, v := range requiredVariants {
			if _, ok := vs[v]; !ok {
				return fmt.Errorf("platform %s has no %s location", p, v)
			}
		}
		if _, ok := vs[VariantSigned]; ok && p != PlatformAndroid {
			return fmt.Errorf("platform %s must not define a %s location", p, VariantSigned)
		}
		for v, t := range vs {
			expected := 1
			if v == VariantSigned {
				expected = 2
			}
			if n := strings.Count(t, "%s"); n != expected {
				return fmt.Errorf("location %s/%s has %d placeholders, expected %d", p, v, n, expected)
			}
		}
	}
	return nil
}
