package commands

import (
	"github.com/kluctl/cordovactl/pkg/process"
	"github.com/kluctl/cordovactl/pkg/types"
	"github.com/kluctl/cordovactl/pkg/version"
	"github.com/kluctl/cordovactl/pkg/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVersion(t *testing.T) {
	stdout, _, err := cordovactlExecute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.GetVersion()+"\n", stdout)
}

func TestPlatformLs(t *testing.T) {
	r := newTestRunner(t)
	r.on("cordova", func(c process.Command) (*process.Result, error) {
		return &process.Result{Stdout: []byte("Installed platforms: android 7.0.0, ios 4.5.4\nAvailable platforms: browser 5.0.0\n")}, nil
	})
	dir := newTestProject(t, "")

	stdout, _, err := cordovactlExecute(t, "platform", "ls", "-p", dir, "--name", "myapp")
	require.NoError(t, err)
	assert.Equal(t, "Installed platforms: android, ios\nAvailable platforms: browser\n", stdout)

	stdout, _, err = cordovactlExecute(t, "platform", "ls", "-p", dir, "--name", "myapp", "--versions", "-o", "yaml")
	require.NoError(t, err)
	var result types.PlatformListResult
	require.NoError(t, yaml.ReadYamlString(stdout, &result))
	assert.Equal(t, []string{"android", "ios"}, result.Installed)
	assert.Equal(t, []string{"browser"}, result.Available)
	assert.Equal(t, map[string]string{"android": "7.0.0", "ios": "4.5.4"}, result.Versions)

	for _, c := range r.callsOf("cordova") {
		assert.Equal(t, []string{"platform", "ls"}, c.Args)
		assert.Equal(t, dir, c.Dir)
	}
}

func TestPlatformLs_InvalidOutput(t *testing.T) {
	newTestRunner(t)
	dir := newTestProject(t, "")
	_, _, err := cordovactlExecute(t, "platform", "ls", "-p", dir, "-o", "json")
	assert.ErrorContains(t, err, "invalid output format json")
}

func TestPlatformAddRemove(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "name: myapp\n")

	_, _, err := cordovactlExecute(t, "platform", "add", "ios", "-p", dir)
	require.NoError(t, err)
	_, _, err = cordovactlExecute(t, "platform", "remove", "ios", "-p", dir)
	require.NoError(t, err)

	calls := r.callsOf("cordova")
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"platform", "add", "ios"}, calls[0].Args)
	assert.Equal(t, []string{"platform", "remove", "ios"}, calls[1].Args)
	assert.False(t, r.shell)
}

func TestPlatformAdd_MissingArg(t *testing.T) {
	newTestRunner(t)
	dir := newTestProject(t, "")
	_, _, err := cordovactlExecute(t, "platform", "add", "-p", dir)
	assert.ErrorContains(t, err, "accepts between 1 and 1 arg(s)")
}

func TestOperationFailed(t *testing.T) {
	for _, args := range [][]string{
		{"prepare", "android"},
		{"compile", "android"},
		{"platform", "add", "android"},
		{"build", "android"},
	} {
		r := newTestRunner(t)
		r.exitWith("cordova", 1)
		dir := newTestProject(t, "")

		stdout, _, err := cordovactlExecute(t, append(args, "-p", dir, "--name", "myapp")...)
		assert.ErrorContains(t, err, "failed")
		assert.Equal(t, "", stdout)
	}
}

func TestOperationFailed_StrictErrors(t *testing.T) {
	r := newTestRunner(t)
	r.exitWith("cordova", 2)
	dir := newTestProject(t, "")

	_, _, err := cordovactlExecute(t, "prepare", "android", "-p", dir, "--name", "myapp", "--strict-errors")
	assert.ErrorContains(t, err, "prepare android failed: cordova exited with code 2: something went wrong")
}

func TestOperationResultYaml(t *testing.T) {
	newTestRunner(t)
	dir := newTestProject(t, "")

	before := time.Now()
	stdout, _, err := cordovactlExecute(t, "compile", "ios", "-p", dir, "--name", "myapp", "-o", "yaml")
	require.NoError(t, err)

	var cr types.CommandResult
	require.NoError(t, yaml.ReadYamlString(stdout, &cr))
	assert.NotEmpty(t, cr.Id)
	assert.Equal(t, "compile", cr.Command)
	assert.Equal(t, "ios", cr.Platform)
	assert.True(t, cr.Success)
	assert.False(t, cr.StartTime.Before(before.Truncate(time.Second)))
	assert.False(t, cr.EndTime.Before(cr.StartTime))
}

func TestBuild(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "")
	apk := filepath.Join(dir, "platforms/android/build/outputs/apk/android-release-unsigned.apk")
	r.on("cordova", func(c process.Command) (*process.Result, error) {
		writeTestFile(t, apk, "apk")
		return &process.Result{}, nil
	})

	stdout, _, err := cordovactlExecute(t, "build", "android", "--release", "-p", dir, "--name", "myapp")
	require.NoError(t, err)
	assert.Equal(t, apk+"\n", stdout)
	assert.Equal(t, []string{"build", "android", "--release"}, r.callsOf("cordova")[0].Args)
}

func TestBuild_OutputDir(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "name: myapp\noutputDir: dist\n")
	appDir := filepath.Join(dir, "platforms/ios/build/emulator/myapp.app")
	r.on("cordova", func(c process.Command) (*process.Result, error) {
		writeTestFile(t, filepath.Join(appDir, "Info.plist"), "plist")
		return &process.Result{}, nil
	})

	stdout, _, err := cordovactlExecute(t, "build", "ios", "-p", dir)
	require.NoError(t, err)
	exported := filepath.Join(dir, "dist", "myapp.app")
	assert.Equal(t, exported+"\n", stdout)

	b, err := os.ReadFile(filepath.Join(exported, "Info.plist"))
	require.NoError(t, err)
	assert.Equal(t, "plist", string(b))

	// flag wins over the config file
	otherDir := filepath.Join(t.TempDir(), "out")
	stdout, _, err = cordovactlExecute(t, "build", "ios", "-p", dir, "--output-dir", otherDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(otherDir, "myapp.app")+"\n", stdout)
}

func TestBuild_MissingOutput(t *testing.T) {
	newTestRunner(t)
	dir := newTestProject(t, "")
	_, _, err := cordovactlExecute(t, "build", "android", "-p", dir, "--name", "myapp", "--output-dir", filepath.Join(dir, "dist"))
	assert.ErrorContains(t, err, "not found")
}

func TestArchive(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "")

	stdout, _, err := cordovactlExecute(t, "archive", "android", "-p", dir, "--name", "myapp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "platforms", "myapp-android.zip")+"\n", stdout)

	calls := r.callsOf("tar")
	require.Len(t, calls, 1)
	assert.Equal(t, filepath.Join(dir, "platforms"), calls[0].Dir)
}

func TestSign(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "name: myapp\nsigning:\n  keystore: release.keystore\n  keyPass: from-config\n")
	writeTestFile(t, filepath.Join(dir, "release.keystore"), "ks")
	t.Setenv("CORDOVACTL_STORE_PASS", "from-env")

	stdout, stderr, err := cordovactlExecute(t, "sign", "-p", dir, "--key-pass", "from-flag")
	require.NoError(t, err)
	assert.Contains(t, stderr, "signing passwords in plain text")
	assert.Contains(t, stdout, filepath.Join(dir, "platforms/android/build/outputs/apk/myapp-"))

	calls := r.callsOf("jarsigner")
	require.Len(t, calls, 1)
	args := calls[0].Args
	assert.Equal(t, filepath.Join(dir, "release.keystore"), args[6])
	assert.Equal(t, "from-env", args[10])
	assert.Equal(t, "from-flag", args[12])
	assert.Equal(t, "myapp", args[len(args)-1])
	assert.Len(t, r.callsOf("zipalign"), 1)
}

func TestSign_JarsignerFails(t *testing.T) {
	r := newTestRunner(t)
	r.exitWith("jarsigner", 1)
	dir := newTestProject(t, "")
	keystore := filepath.Join(dir, "release.keystore")
	writeTestFile(t, keystore, "ks")

	_, _, err := cordovactlExecute(t, "sign", "-p", dir, "--name", "myapp", "--keystore", keystore, "--store-pass", "a", "--key-pass", "b")
	assert.ErrorContains(t, err, "sign android failed")
	assert.Len(t, r.callsOf("zipalign"), 0)
}

func TestSign_MissingCredentials(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "")
	keystore := filepath.Join(dir, "release.keystore")
	writeTestFile(t, keystore, "ks")

	_, _, err := cordovactlExecute(t, "sign", "-p", dir, "--name", "myapp")
	assert.ErrorContains(t, err, "no keystore specified")

	_, _, err = cordovactlExecute(t, "sign", "-p", dir, "--name", "myapp", "--keystore", keystore)
	assert.ErrorContains(t, err, "not a terminal")
	assert.Len(t, r.callsOf("jarsigner"), 0)
}

func TestLocations(t *testing.T) {
	t.Setenv("COLUMNS", "1000")
	r := newTestRunner(t)
	dir := newTestProject(t, "")

	stdout, _, err := cordovactlExecute(t, "locations", "ios", "-p", dir, "--name", "myapp", "-o", "yaml")
	require.NoError(t, err)

	var result []types.LocationsResult
	require.NoError(t, yaml.ReadYamlString(stdout, &result))
	require.Len(t, result, 1)
	assert.Equal(t, "ios", result[0].Platform)
	assert.Equal(t, filepath.Join(dir, "platforms/ios/build/emulator/myapp.app"), result[0].Locations["debug"])
	assert.Equal(t, filepath.Join(dir, "platforms/myapp-ios.zip"), result[0].Locations["archive"])

	stdout, _, err = cordovactlExecute(t, "locations", "-p", dir, "--name", "myapp")
	require.NoError(t, err)
	assert.Contains(t, stdout, "android-debug.apk")
	assert.Contains(t, stdout, "myapp-ios.zip")

	_, _, err = cordovactlExecute(t, "locations", "browser", "-p", dir, "--name", "myapp")
	assert.ErrorContains(t, err, "unknown build location")

	assert.Len(t, r.calls, 0)
}

func TestProjectConfig(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "name: fromconfig\nshell: true\n")

	stdout, _, err := cordovactlExecute(t, "archive", "ios", "-p", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "platforms", "fromconfig-ios.zip")+"\n", stdout)
	assert.True(t, r.shell)

	stdout, _, err = cordovactlExecute(t, "archive", "ios", "-p", dir, "--name", "fromflag")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "platforms", "fromflag-ios.zip")+"\n", stdout)
}

func TestProjectConfig_Invalid(t *testing.T) {
	newTestRunner(t)
	dir := newTestProject(t, "name: myapp\nunknownField: x\n")

	_, _, err := cordovactlExecute(t, "prepare", "android", "-p", dir)
	assert.ErrorContains(t, err, "failed to load project config")

	_, _, err = cordovactlExecute(t, "prepare", "android", "-p", dir, "-c", filepath.Join(dir, "missing.yml"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestEnvOverridesFlagDefaults(t *testing.T) {
	r := newTestRunner(t)
	dir := newTestProject(t, "")
	t.Setenv("CORDOVACTL_PROJECT_DIR", dir)
	t.Setenv("CORDOVACTL_NAME", "envapp")

	stdout, _, err := cordovactlExecute(t, "archive", "android")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "platforms", "envapp-android.zip")+"\n", stdout)
	assert.Len(t, r.callsOf("tar"), 1)
}

func TestHelp(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	stdout, _, err := cordovactlExecute(t, "build", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage: cordovactl build <platform>")
	assert.Contains(t, stdout, "Arguments:")
	assert.Contains(t, stdout, "Project arguments:")
	assert.Contains(t, stdout, "--release")
	assert.Contains(t, stdout, "Global arguments:")
}
