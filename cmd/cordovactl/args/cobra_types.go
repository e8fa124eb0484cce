package args

import (
	"fmt"
	"github.com/kluctl/cordovactl/pkg/utils"
)

type ExistingFileType string

func (s *ExistingFileType) Set(val string) error {
	val = utils.ExpandPath(val)
	if !utils.Exists(val) {
		return fmt.Errorf("%s does not exist", val)
	}
	if utils.IsDirectory(val) {
		return fmt.Errorf("%s exists but is a directory", val)
	}
	*s = ExistingFileType(val)
	return nil
}
func (s *ExistingFileType) Type() string {
	return "existingfile"
}

func (s *ExistingFileType) String() string { return string(*s) }

type ExistingDirType string

func (s *ExistingDirType) Set(val string) error {
	val = utils.ExpandPath(val)
	if !utils.Exists(val) {
		return fmt.Errorf("%s does not exist", val)
	}
	if !utils.IsDirectory(val) {
		return fmt.Errorf("%s exists but is not a directory", val)
	}
	*s = ExistingDirType(val)
	return nil
}
func (s *ExistingDirType) Type() string {
	return "existingdir"
}

func (s *ExistingDirType) String() string { return string(*s) }

// PathType is a path that does not need to exist yet, e.g. an output directory.
type PathType string

func (s *PathType) Set(val string) error {
	*s = PathType(utils.ExpandPath(val))
	return nil
}
func (s *PathType) Type() string {
	return "path"
}

func (s *PathType) String() string { return string(*s) }
