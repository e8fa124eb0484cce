package cordova

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDefaultBuildLocations_Valid(t *testing.T) {
	require.NoError(t, DefaultBuildLocations.Validate())

	for _, p := range DefaultBuildLocations.Platforms() {
		for _, v := range []Variant{VariantDebug, VariantRelease, VariantArchive} {
			_, ok := DefaultBuildLocations.Template(p, v)
			assert.True(t, ok, "%s/%s", p, v)
		}
	}
	_, ok := DefaultBuildLocations.Template(PlatformAndroid, VariantSigned)
	assert.True(t, ok)
	_, ok = DefaultBuildLocations.Template(PlatformIos, VariantSigned)
	assert.False(t, ok)
}

func TestBuildLocations_Validate(t *testing.T) {
	tests := []struct {
		name string
		l    BuildLocations
		err  string
	}{
		{
			name: "missing archive",
			l:    BuildLocations{"ios": {VariantDebug: "%s", VariantRelease: "%s"}},
			err:  "platform ios has no archive location",
		},
		{
			name: "signed on ios",
			l:    BuildLocations{"ios": {VariantDebug: "%s", VariantRelease: "%s", VariantArchive: "%s", VariantSigned: "%s-%s"}},
			err:  "platform ios must not define a signed location",
		},
		{
			name: "signed with one placeholder",
			l:    BuildLocations{"android": {VariantDebug: "%s", VariantRelease: "%s", VariantArchive: "%s", VariantSigned: "%s"}},
			err:  "location android/signed has 1 placeholders, expected 2",
		},
		{
			name: "debug without placeholder",
			l:    BuildLocations{"android": {VariantDebug: "x", VariantRelease: "%s", VariantArchive: "%s"}},
			err:  "location android/debug has 0 placeholders, expected 1",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.l.Validate(), tc.err)
		})
	}
}

func TestBuildLocations_Resolve(t *testing.T) {
	p, err := DefaultBuildLocations.Resolve(PlatformAndroid, VariantSigned, "myapp", "17-10-26")
	require.NoError(t, err)
	assert.Equal(t, "platforms/android/build/outputs/apk/myapp-17-10-26.apk", p)

	p, err = DefaultBuildLocations.Resolve(PlatformIos, VariantRelease, "myapp")
	require.NoError(t, err)
	assert.Equal(t, "platforms/ios/build/emulator/myapp.app", p)

	_, err = DefaultBuildLocations.Resolve("browser", VariantDebug, "myapp")
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = DefaultBuildLocations.Resolve(PlatformIos, VariantSigned, "myapp", "x")
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = DefaultBuildLocations.Resolve(PlatformAndroid, VariantSigned, "myapp")
	assert.ErrorContains(t, err, "expects 2 arguments, got 1")
}
