package cordova

import (
	"context"
	"fmt"
	"github.com/kluctl/cordovactl/pkg/process"
	"path/filepath"
)

func (a *App) archiveName(platform string) string {
	return fmt.Sprintf("%s-%s.zip", a.name, platform)
}

// ArchivePath returns the absolute path of the archive created by Archive.
func (a *App) ArchivePath(platform string) string {
	return filepath.Join(a.path, "platforms", a.archiveName(platform))
}

// Archive packs platforms/<platform> into platforms/<name>-<platform>.zip. Despite the file
// extension, the archive is a gzip compressed tarball. An empty path is returned when tar fails.
func (a *App) Archive(ctx context.Context, platform string) (string, error) {
	c := process.Command{
		Name: "tar",
		Args: []string{"-czf", a.archiveName(platform), platform},
		Dir:  filepath.Join(a.path, "platforms"),
	}

	res, err := a.run(ctx, c)
	if err != nil {
		return "", err
	}
	if !res.Success() {
		return "", a.exitError(c, res)
	}
	return a.ArchivePath(platform), nil
}
