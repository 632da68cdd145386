package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/camus/internal/infrastructure/repository/session"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/pkg/testhelpers"
)

func TestFindOrCreateIsStable(t *testing.T) {
	repo := session.NewPostgresRepository(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.FindByClientID(ctx, "browser-1")
	assert.True(t, platformerrors.IsNotFound(err))

	first, err := repo.FindOrCreate(ctx, "browser-1")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := repo.FindOrCreate(ctx, "browser-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.LastSeenAt.Before(first.LastSeenAt))

	other, err := repo.FindOrCreate(ctx, "browser-2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	found, err := repo.FindByClientID(ctx, "browser-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}
