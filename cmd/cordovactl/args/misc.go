package args

type BuildFlags struct {
	Release   bool     `group:"misc" help:"Build the release variant."`
	OutputDir PathType `group:"misc" help:"Copy the build output into this directory. Defaults to outputDir from .cordovactl.yml."`
}
