package history_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathviz/internal/history"
	"github.com/katalvlaran/pathviz/playback"
)

func openMemory(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open("file::memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func summary(job, alg string, explored, path int, found bool) playback.Summary {
	return playback.Summary{
		JobID: job, Algorithm: alg, Rows: 10, Cols: 5,
		Explored: explored, PathLen: path, Found: found, Duration: 1500 * time.Millisecond,
	}
}

func TestRecordAndList(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "sess-1", summary("job-1", "dijkstra", 30, 8, true)))
	require.NoError(t, s.Record(ctx, "sess-1", summary("job-2", "dfs", 12, 0, false)))
	require.NoError(t, s.Record(ctx, "sess-1", summary("job-1", "dijkstra", 99, 99, true))) // duplicate ignored

	runs, err := s.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "job-2", runs[0].JobID)
	assert.Equal(t, "dfs", runs[0].Algorithm)
	assert.False(t, runs[0].Found)

	assert.Equal(t, "job-1", runs[1].JobID)
	assert.Equal(t, "sess-1", runs[1].SessionID)
	assert.Equal(t, 30, runs[1].Explored)
	assert.Equal(t, 8, runs[1].PathLen)
	assert.True(t, runs[1].Found)
	assert.Equal(t, int64(1500), runs[1].DurationMs)
	assert.Equal(t, 10, runs[1].Rows)
	assert.Equal(t, 5, runs[1].Cols)
	assert.False(t, runs[1].CreatedAt.IsZero())

	only, err := s.List(ctx, "dijkstra", 10)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "job-1", only[0].JobID)

	limited, err := s.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestList_ClampsLimit(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()
	for i := 0; i < history.MaxListLimit+5; i++ {
		require.NoError(t, s.Record(ctx, "", summary(fmt.Sprintf("job-%d", i), "dfs", i, 0, false)))
	}

	runs, err := s.List(ctx, "", 1_000_000_000_000)
	require.NoError(t, err)
	assert.Len(t, runs, history.MaxListLimit)
	assert.Equal(t, fmt.Sprintf("job-%d", history.MaxListLimit+4), runs[0].JobID)

	runs, err = s.List(ctx, "", -3)
	require.NoError(t, err)
	assert.Len(t, runs, history.DefaultListLimit)
}

func TestStats(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, "", summary("a", "dijkstra", 10, 4, true)))
	require.NoError(t, s.Record(ctx, "", summary("b", "dijkstra", 20, 0, false)))
	require.NoError(t, s.Record(ctx, "", summary("c", "dfs", 7, 7, true)))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []history.AlgorithmStats{
		{Algorithm: "dfs", Runs: 1, Found: 1, AvgExplored: 7, AvgPathLen: 7},
		{Algorithm: "dijkstra", Runs: 2, Found: 1, AvgExplored: 15, AvgPathLen: 2},
	}, stats)
}

func TestRecorder(t *testing.T) {
	s := openMemory(t)
	s.Recorder("sess-9")(summary("job-9", "dfs", 1, 1, true))

	runs, err := s.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "sess-9", runs[0].SessionID)
}

func TestOpen_FileReopenSkipsAppliedMigrations(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := history.Open(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Record(context.Background(), "", summary("persisted", "dfs", 1, 0, false)))
	require.NoError(t, s.Close())

	s, err = history.Open(dsn, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.List(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].JobID)
}

func TestClosed(t *testing.T) {
	s, err := history.Open("file::memory:", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Record(context.Background(), "", summary("x", "dfs", 0, 0, false)), history.ErrClosed)
	_, err = s.List(context.Background(), "", 0)
	assert.ErrorIs(t, err, history.ErrClosed)
	_, err = s.Stats(context.Background())
	assert.ErrorIs(t, err, history.ErrClosed)
}

func TestClose_ConcurrentWithRecord(t *testing.T) {
	s, err := history.Open("file::memory:", zerolog.Nop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8*20)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				errs <- s.Record(context.Background(), "", summary(fmt.Sprintf("w%d-%d", w, i), "dfs", 1, 0, false))
			}
		}(w)
	}
	require.NoError(t, s.Close())
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, history.ErrClosed)
		}
	}
}
