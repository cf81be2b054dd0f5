package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-games/vagabond/internal/storage/postgres"
	"github.com/calder-games/vagabond/internal/testutil"
)

func saveRepo(t *testing.T) *postgres.SaveRepository {
	t.Helper()
	return postgres.NewSaveRepository(testutil.NewPool(t))
}

func TestSaveRepository_PutAndGet(t *testing.T) {
	repo := saveRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "slot1", []byte(`{"gold": 50}`)))

	rec, err := repo.Get(ctx, "slot1")
	require.NoError(t, err)
	assert.Equal(t, "slot1", rec.Slot)
	assert.JSONEq(t, `{"gold": 50}`, string(rec.Data))
}

func TestSaveRepository_PutOverwrites(t *testing.T) {
	repo := saveRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "slot1", []byte(`{"day": 1}`)))
	require.NoError(t, repo.Put(ctx, "slot1", []byte(`{"day": 2}`)))

	rec, err := repo.Get(ctx, "slot1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"day": 2}`, string(rec.Data))
	assert.True(t, rec.UpdatedAt.After(rec.CreatedAt) || rec.UpdatedAt.Equal(rec.CreatedAt))
}

func TestSaveRepository_GetMissing(t *testing.T) {
	repo := saveRepo(t)
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, postgres.ErrSaveNotFound)
}

func TestSaveRepository_ListNewestFirst(t *testing.T) {
	repo := saveRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "older", []byte(`{}`)))
	require.NoError(t, repo.Put(ctx, "newer", []byte(`{}`)))
	require.NoError(t, repo.Put(ctx, "older", []byte(`{"touched": true}`)))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "older", recs[0].Slot, "the most recently updated slot lists first")
}

func TestSaveRepository_Delete(t *testing.T) {
	repo := saveRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "slot1", []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, "slot1"))
	assert.ErrorIs(t, repo.Delete(ctx, "slot1"), postgres.ErrSaveNotFound)
}
