package commands

import (
	"context"
	"fmt"
	"github.com/kluctl/cordovactl/cmd/cordovactl/args"
	"github.com/kluctl/cordovactl/pkg/status"
	"github.com/kluctl/cordovactl/pkg/types"
	"github.com/kluctl/cordovactl/pkg/yaml"
	"time"
)

func formatCommandResultText(cr *types.CommandResult) string {
	if !cr.Success {
		return ""
	}
	if cr.ExportedPath != "" {
		return cr.ExportedPath + "\n"
	}
	if cr.Path != "" {
		return cr.Path + "\n"
	}
	return ""
}

func outputResult(ctx context.Context, outputFlags args.OutputFlags, text string, o any) error {
	s := text
	if outputFlags.Output == args.OutputFormatYaml {
		var err error
		s, err = yaml.WriteYamlString(o)
		if err != nil {
			return err
		}
	}
	if s == "" {
		return nil
	}
	_, err := getStdout(ctx).WriteString(s)
	return err
}

func outputCommandResult(ctx context.Context, outputFlags args.OutputFlags, cr *types.CommandResult) error {
	return outputResult(ctx, outputFlags, formatCommandResultText(cr), cr)
}

type operationFunc func(ctx context.Context, cr *types.CommandResult) (bool, error)

// runOperation runs op with a status line and writes the resulting CommandResult. A failed
// operation results in an error naming the operation, so that the process exits non-zero.
func runOperation(ctx context.Context, outputFlags args.OutputFlags, command string, platform string, op operationFunc) error {
	if err := outputFlags.Validate(); err != nil {
		return err
	}

	cr := types.NewCommandResult(command, platform, time.Now())

	var s *status.StatusContext
	if platform != "" {
		s = status.Startf(ctx, "Running %s for %s", command, platform)
	} else {
		s = status.Startf(ctx, "Running %s", command)
	}
	defer s.Failed()

	ok, err := op(ctx, cr)
	cr.EndTime = time.Now()
	cr.Success = ok && err == nil

	if cr.Success {
		s.Success()
	} else if err != nil {
		s.FailedWithMessage(err.Error())
	}

	if err2 := outputCommandResult(ctx, outputFlags, cr); err2 != nil {
		return err2
	}

	desc := command
	if platform != "" {
		desc = fmt.Sprintf("%s %s", command, platform)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", desc, err)
	}
	if !ok {
		return fmt.Errorf("%s failed", desc)
	}
	return nil
}
