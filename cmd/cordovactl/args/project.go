package args

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type ProjectDir struct {
	ProjectDir ExistingDirType `group:"project" short:"p" help:"Specify the cordova project directory. Defaults to the current working directory."`
}

func (a ProjectDir) GetProjectDir() (string, error) {
	if a.ProjectDir != "" {
		return filepath.Abs(a.ProjectDir.String())
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine current working directory: %w", err)
	}
	return cwd, nil
}

type ProjectFlags struct {
	ProjectDir

	Name          string           `group:"project" help:"Name of the app. Defaults to the name from .cordovactl.yml or the name of the project directory."`
	ProjectConfig ExistingFileType `group:"project" short:"c" help:"Location of the .cordovactl.yml config file. Defaults to $PROJECT/.cordovactl.yml" exts:"yml,yaml"`

	Shell        bool          `group:"project" help:"Run external tools through the system shell. Only needed when tools can't be resolved otherwise, e.g. cordova.cmd on Windows."`
	StrictErrors bool          `group:"project" help:"Report the exit code and error output of failed tools."`
	Timeout      time.Duration `group:"project" help:"Maximum time a command may take. Running tools are terminated when the timeout is reached." default:"1h"`
}
