package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveTaskID maps user input to a task ID: exact UUID, then UUID prefix,
// then case-insensitive title match.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) == 0 {
		for _, t := range tasks {
			if strings.EqualFold(t.Title, input) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task %q is ambiguous (%d matches)", input, len(matches))
	}
}
