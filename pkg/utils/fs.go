package utils

import (
	"github.com/mitchellh/go-homedir"
	"os"
	"path/filepath"
)

func Exists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		return false
	}
	return true
}

func IsFile(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fileInfo.Mode().IsRegular()
}

func IsDirectory(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}

	return fileInfo.IsDir()
}

// ExpandPath replaces a leading ~ with the home directory of the current user.
func ExpandPath(p string) string {
	x, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return x
}

// ResolvePath returns p when it is absolute, or p joined onto base otherwise.
func ResolvePath(base string, p string) string {
	p = ExpandPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
