package toolresult

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/camus/internal/utils/platformerrors"
)

type memoryRepo struct {
	mu    sync.Mutex
	items map[string]*ToolResult
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]*ToolResult{}}
}

func (r *memoryRepo) Create(ctx context.Context, tr *ToolResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[tr.ID]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "duplicate key", nil, "")
	}
	cp := *tr
	r.items[tr.ID] = &cp
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, p UpdateParams) (*ToolResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.items[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "tool result not found", nil, "")
	}
	if p.ToolName != nil {
		tr.ToolName = *p.ToolName
	}
	if len(p.Result) > 0 {
		tr.Result = p.Result
	}
	cp := *tr
	return &cp, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (*ToolResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tr, ok := r.items[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "tool result not found", nil, "")
	}
	cp := *tr
	return &cp, nil
}

func (r *memoryRepo) FindByIDs(_ context.Context, ids []string) ([]*ToolResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ToolResult
	for _, id := range ids {
		if tr, ok := r.items[id]; ok {
			cp := *tr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func TestSave_PreservesSuppliedIDAndTimestamp(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, zerolog.Nop())
	ts := int64(1735689600123)

	tr, err := svc.Save(context.Background(), "conv_1", SaveParams{
		ID:        "result-1",
		ToolName:  "webSearch",
		Args:      json.RawMessage(`{"query":"weather"}`),
		Result:    json.RawMessage(`{"hits":3}`),
		Timestamp: &ts,
	})
	require.NoError(t, err)
	assert.Equal(t, "result-1", tr.ID)
	assert.Equal(t, ts, tr.Timestamp)
	assert.JSONEq(t, `{"query":"weather"}`, string(tr.Args))
}

func TestSave_GeneratesIDWhenAbsent(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, zerolog.Nop())

	tr, err := svc.Save(context.Background(), "conv_1", SaveParams{ToolName: "webSearch"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tr.ID, "tr_"))
	assert.Greater(t, tr.Timestamp, int64(0))
}

func TestSave_DuplicateIsSaveFailure(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, zerolog.Nop())
	params := SaveParams{ID: "result-1", ToolName: "webSearch"}

	_, err := svc.Save(context.Background(), "conv_1", params)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), "conv_1", params)
	var perr *platformerrors.PlatformError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Failed to save tool result", perr.Message)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, zerolog.Nop())
	name := "renamed"

	_, err := svc.Update(context.Background(), "conv_1", "missing", UpdateParams{ToolName: &name})
	require.Error(t, err)
	assert.True(t, platformerrors.IsNotFound(err))

	var perr *platformerrors.PlatformError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Failed to update tool result", perr.Message)
}

func TestFindByIDs_OmitsUnknown(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, zerolog.Nop())
	for _, id := range []string{"A", "B"} {
		_, err := svc.Save(context.Background(), "", SaveParams{ID: id, ToolName: "t"})
		require.NoError(t, err)
	}

	results, err := svc.FindByIDs(context.Background(), []string{"A", "B", "missing"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = svc.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
