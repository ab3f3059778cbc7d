package service

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureLocalUser_Idempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewUserService(repository.NewSQLiteUserRepo(database))
	ctx := context.Background()

	first, err := svc.EnsureLocalUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.LocalUserID, first.ID)

	second, err := svc.EnsureLocalUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
}

func TestCreateUser_TokenAuthenticates(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewUserService(repository.NewSQLiteUserRepo(database))
	ctx := context.Background()

	u, token, err := svc.CreateUser(ctx, "  Linh ")
	require.NoError(t, err)
	assert.Equal(t, "Linh", u.DisplayName)
	assert.True(t, strings.HasPrefix(token, tokenPrefix))
	assert.NotEqual(t, token, u.TokenHash, "token must not be stored in clear")
	assert.Equal(t, HashToken(token), u.TokenHash)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAuthenticate_RejectsUnknownToken(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewUserService(repository.NewSQLiteUserRepo(database))
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "np_nope")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "  ")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateUser_RequiresName(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewUserService(repository.NewSQLiteUserRepo(database))

	_, _, err := svc.CreateUser(context.Background(), " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHashToken_Stable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
