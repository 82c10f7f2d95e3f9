package entity

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpeg2-bot/ddd/domain/vo"
)

func TestNewConversionJobStagingPaths(t *testing.T) {
	job := NewConversionJob(42, 7, "movie.mp4", "/stage")

	assert.NotEmpty(t, job.JobID())
	assert.Equal(t, vo.JobStatusReceived, job.Status())
	assert.Equal(t, "/stage", filepath.Dir(job.InputPath()))
	assert.Equal(t, "/stage", filepath.Dir(job.OutputPath()))
	assert.True(t, strings.HasSuffix(job.InputPath(), ".mp4"))
	assert.True(t, strings.HasSuffix(job.OutputPath(), ".mpg"))
	assert.NotEqual(t, job.InputPath(), job.OutputPath())
}

func TestConcurrentJobsGetDistinctPaths(t *testing.T) {
	const n = 64
	var (
		mu    sync.Mutex
		paths = make(map[string]struct{}, 2*n)
		wg    sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job := NewConversionJob(1, 1, "movie.mp4", "/stage")
			mu.Lock()
			paths[job.InputPath()] = struct{}{}
			paths[job.OutputPath()] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, paths, 2*n, "staging paths must not collide across concurrent jobs")
}

func TestJobTransitionsMonotonic(t *testing.T) {
	job := NewConversionJob(42, 7, "movie.mp4", "/stage")

	require.NoError(t, job.BeginDownload())
	require.NoError(t, job.MarkValidated())
	require.NoError(t, job.BeginConvert())
	require.NoError(t, job.BeginUpload())
	require.NoError(t, job.Complete())
	assert.Equal(t, vo.JobStatusCompleted, job.Status())
	assert.NotNil(t, job.CompletedAt())

	// Terminal: nothing moves a completed job.
	assert.Error(t, job.BeginDownload())
	assert.Error(t, job.Fail("late failure"))
}

func TestJobFailFromAnyStage(t *testing.T) {
	job := NewConversionJob(42, 7, "movie.mp4", "/stage")
	require.NoError(t, job.BeginDownload())
	require.NoError(t, job.Fail("transfer error"))

	assert.Equal(t, vo.JobStatusFailed, job.Status())
	assert.Equal(t, "transfer error", job.ErrorMessage())
	assert.Error(t, job.BeginConvert())
}

func TestCleanupRemovesStagingFiles(t *testing.T) {
	dir := t.TempDir()
	job := NewConversionJob(42, 7, "movie.mp4", dir)

	require.NoError(t, os.WriteFile(job.InputPath(), []byte("in"), 0o644))
	require.NoError(t, os.WriteFile(job.OutputPath(), []byte("out"), 0o644))

	require.NoError(t, job.Cleanup())

	_, err := os.Stat(job.InputPath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(job.OutputPath())
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	job := NewConversionJob(42, 7, "movie.mp4", dir)

	require.NoError(t, os.WriteFile(job.InputPath(), []byte("in"), 0o644))
	// Output was never produced; cleanup must still succeed, twice.
	require.NoError(t, job.Cleanup())
	require.NoError(t, job.Cleanup())
}
