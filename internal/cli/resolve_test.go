package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchID(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
		errText string
	}{
		{name: "exact", input: "xyz789", want: "xyz789"},
		{name: "unique prefix", input: "abc", want: "abc123"},
		{name: "trimmed", input: "  xy ", want: "xyz789"},
		{name: "ambiguous", input: "ab", wantErr: errIDAmbiguous},
		{name: "empty", input: " ", wantErr: errIDRequired},
		{name: "unknown", input: "q", errText: "goal not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchID("goal", tt.input, ids)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveTaskID_PassesUnknownThrough(t *testing.T) {
	e := newCLIEnv(t)
	ctx := context.Background()

	id, err := resolveTaskID(ctx, e.app, "some-full-id-from-last-year")
	require.NoError(t, err)
	assert.Equal(t, "some-full-id-from-last-year", id)

	_, err = resolveTaskID(ctx, e.app, "")
	assert.ErrorIs(t, err, errIDRequired)
}

func TestResolveConversationID_Prefix(t *testing.T) {
	e := newCLIEnv(t)
	ctx := context.Background()

	c, err := e.app.Conversations.Create(ctx, e.app.UserID, "Notes", "")
	require.NoError(t, err)

	id, err := resolveConversationID(ctx, e.app, c.ID[:10])
	require.NoError(t, err)
	assert.Equal(t, c.ID, id)
}
