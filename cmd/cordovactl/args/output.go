package args

import "fmt"

const (
	OutputFormatText = "text"
	OutputFormatYaml = "yaml"
)

type OutputFlags struct {
	Output string `group:"misc" short:"o" help:"Output format of the command result. Can either be 'text' or 'yaml'." default:"text"`
}

func (a OutputFlags) Validate() error {
	switch a.Output {
	case OutputFormatText, OutputFormatYaml:
		return nil
	}
	return fmt.Errorf("invalid output format %s, must be one of text, yaml", a.Output)
}
