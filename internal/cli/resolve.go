package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/neuroplan/internal/scheduler"
)

var (
	errIDRequired  = errors.New("ID is required")
	errIDAmbiguous = errors.New("ID prefix is ambiguous")
)

// matchID resolves input against known ids: exact match first, then a
// unique prefix.
func matchID(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s %w", kind, errIDRequired)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s %w: %q matches %d", kind, errIDAmbiguous, input, len(matches))
	}
}

func resolveConversationID(ctx context.Context, app *App, input string) (string, error) {
	convs, err := app.Conversations.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(convs))
	for i, c := range convs {
		ids[i] = c.ID
	}
	return matchID("conversation", input, ids)
}

func resolveGoalID(ctx context.Context, app *App, input string) (string, error) {
	goals, err := app.Roadmaps.ListGoals(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.Goal.ID
	}
	return matchID("goal", input, ids)
}

func resolvePromptID(ctx context.Context, app *App, input string) (string, error) {
	prompts, err := app.Vault.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(prompts))
	for i, p := range prompts {
		ids[i] = p.ID
	}
	return matchID("prompt", input, ids)
}

// resolveTaskID matches prefixes against this month's tasks. Anything else
// is passed through as a full ID.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	view, err := app.Schedule.ListRange(ctx, app.UserID, scheduler.ViewMonth, app.now())
	if err != nil {
		return "", err
	}
	ids := make([]string, len(view.Tasks))
	for i, t := range view.Tasks {
		ids[i] = t.ID
	}
	id, err := matchID("task", input, ids)
	if err != nil && !errors.Is(err, errIDAmbiguous) && !errors.Is(err, errIDRequired) {
		return strings.TrimSpace(input), nil
	}
	return id, err
}
