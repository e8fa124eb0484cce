package version

// Version is set at build time via -ldflags "-X github.com/kluctl/cordovactl/pkg/version.Version=..."
var Version = "0.0.0"

func GetVersion() string {
	return Version
}
