package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outreach-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

// --- Runs ---

func TestSQLite_CreateAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "route", "leads.csv")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "route", got.Stage)
	assert.Equal(t, "leads.csv", got.Input)
	assert.Nil(t, got.Result)
}

func TestSQLite_GetRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_UpdateRunStatus(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "enrich", "")
	require.NoError(t, err)

	require.NoError(t, st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusRunning, got.Status)
}

func TestSQLite_UpdateRunStatus_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateRunStatus(context.Background(), "missing", model.RunStatusRunning)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_UpdateRunResult(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "route", "")
	require.NoError(t, err)

	result := &model.RunResult{
		ContactsIn:  10,
		ContactsOut: 8,
		Flagged:     2,
	}
	require.NoError(t, st.UpdateRunResult(ctx, run.ID, result))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, 10, got.Result.ContactsIn)
	assert.Equal(t, 8, got.Result.ContactsOut)
}

func TestSQLite_UpdateRunResult_ErrorMarksFailed(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "route", "")
	require.NoError(t, err)

	require.NoError(t, st.UpdateRunResult(ctx, run.ID, &model.RunResult{Error: "roster fetch failed"}))

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
}

func TestSQLite_ListRuns_FilterAndOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	r1, err := st.CreateRun(ctx, "route", "a.csv")
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "enrich", "b.csv")
	require.NoError(t, err)
	require.NoError(t, st.UpdateRunStatus(ctx, r1.ID, model.RunStatusComplete))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	routeOnly, err := st.ListRuns(ctx, RunFilter{Stage: "route"})
	require.NoError(t, err)
	require.Len(t, routeOnly, 1)
	assert.Equal(t, r1.ID, routeOnly[0].ID)

	complete, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, r1.ID, complete[0].ID)
}

func TestSQLite_ListRuns_Limit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := st.CreateRun(ctx, "route", "")
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

// --- Enrichment cache ---

func TestSQLite_Cache_SetAndGet(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	err := st.CacheSet(ctx, "people_match|a|acme|0", []byte(`{"linkedin_url":"x"}`), time.Hour)
	require.NoError(t, err)

	value, ok, err := st.CacheGet(ctx, "people_match|a|acme|0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"linkedin_url":"x"}`, string(value))
}

func TestSQLite_Cache_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, ok, err := st.CacheGet(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_Cache_Expired(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	// Set with already-expired TTL (-1 hour in the past).
	err := st.CacheSet(ctx, "stale-key", []byte("old"), -1*time.Hour)
	require.NoError(t, err)

	_, ok, err := st.CacheGet(ctx, "stale-key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_Cache_Overwrite(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.CacheSet(ctx, "key-ow", []byte("original"), time.Hour))
	require.NoError(t, st.CacheSet(ctx, "key-ow", []byte("updated"), time.Hour))

	value, ok, err := st.CacheGet(ctx, "key-ow")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "updated", string(value))
}

func TestSQLite_PurgeExpired(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.CacheSet(ctx, "fresh", []byte("a"), time.Hour))
	require.NoError(t, st.CacheSet(ctx, "stale1", []byte("b"), -time.Hour))
	require.NoError(t, st.CacheSet(ctx, "stale2", []byte("c"), -time.Hour))

	n, err := st.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, err := st.CacheGet(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}
