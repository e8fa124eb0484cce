package types

import (
	"github.com/google/uuid"
	"time"
)

type CommandResult struct {
	Id        string    `yaml:"id"`
	Command   string    `yaml:"command"`
	Platform  string    `yaml:"platform,omitempty"`
	Success   bool      `yaml:"success"`
	Path      string    `yaml:"path,omitempty"`
	StartTime time.Time `yaml:"startTime"`
	EndTime   time.Time `yaml:"endTime"`

	// ExportedPath is the copy of Path in the output directory, if one was requested.
	ExportedPath string `yaml:"exportedPath,omitempty"`
}

func NewCommandResult(command string, platform string, startTime time.Time) *CommandResult {
	return &CommandResult{
		Id:        uuid.New().String(),
		Command:   command,
		Platform:  platform,
		StartTime: startTime,
	}
}

type PlatformListResult struct {
	Installed []string          `yaml:"installed"`
	Available []string          `yaml:"available"`
	Versions  map[string]string `yaml:"versions,omitempty"`
}

type LocationsResult struct {
	Platform  string            `yaml:"platform"`
	Locations map[string]string `yaml:"locations"`
}
