package status

import (
	"context"
	"fmt"
	"strings"
)

func AskForPassword(ctx context.Context, prompt string) (string, error) {
	if !FromContext(ctx).IsTerminal() {
		err := fmt.Errorf("not a terminal, suppressed credentials prompt: %s", prompt)
		Warning(ctx, err.Error())
		return "", err
	}

	password, err := Prompt(ctx, true, fmt.Sprintf("%s: ", prompt))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(password), nil
}
