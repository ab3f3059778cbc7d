package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, database *sql.DB) *domain.User {
	t.Helper()
	u := testutil.NewTestUser()
	require.NoError(t, NewSQLiteUserRepo(database).Create(context.Background(), u))
	return u
}
