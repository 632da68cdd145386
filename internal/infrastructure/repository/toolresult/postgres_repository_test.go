package toolresult_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/repository/toolresult"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/pkg/testhelpers"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newResult(id string) *domain.ToolResult {
	return &domain.ToolResult{
		ID:        id,
		ToolName:  "web_search",
		Args:      json.RawMessage(`{"q":"weather"}`),
		Result:    json.RawMessage(`{"items":[1,2]}`),
		Timestamp: base.UnixMilli(),
		CreatedAt: base,
		UpdatedAt: base,
	}
}

func TestCreateAndFind(t *testing.T) {
	repo := toolresult.NewPostgresRepository(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newResult("tr_1")))

	got, err := repo.FindByID(ctx, "tr_1")
	require.NoError(t, err)
	assert.Equal(t, "web_search", got.ToolName)
	assert.JSONEq(t, `{"q":"weather"}`, string(got.Args))
	assert.JSONEq(t, `{"items":[1,2]}`, string(got.Result))

	err = repo.Create(ctx, newResult("tr_1"))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeDatabaseError))
}

func TestUpdate(t *testing.T) {
	repo := toolresult.NewPostgresRepository(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newResult("tr_1")))

	display := "Weather lookup"
	got, err := repo.Update(ctx, "tr_1", domain.UpdateParams{
		Result:      json.RawMessage(`{"items":[]}`),
		DisplayName: &display,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(got.Result))
	assert.Equal(t, display, *got.DisplayName)
	assert.JSONEq(t, `{"q":"weather"}`, string(got.Args))

	_, err = repo.Update(ctx, "missing", domain.UpdateParams{DisplayName: &display})
	assert.True(t, platformerrors.IsNotFound(err))
}

func TestFindByIDsSkipsMissing(t *testing.T) {
	repo := toolresult.NewPostgresRepository(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newResult("tr_a")))
	require.NoError(t, repo.Create(ctx, newResult("tr_b")))

	got, err := repo.FindByIDs(ctx, []string{"tr_b", "tr_missing", "tr_a"})
	require.NoError(t, err)
	ids := []string{}
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"tr_a", "tr_b"}, ids)

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
