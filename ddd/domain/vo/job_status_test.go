package vo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusIsValid(t *testing.T) {
	valid := []JobStatus{
		JobStatusReceived, JobStatusDownloading, JobStatusValidated,
		JobStatusConverting, JobStatusUploading,
		JobStatusCompleted, JobStatusFailed, JobStatusRejected,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %s should be valid", s)
	}
	assert.False(t, JobStatus("pending").IsValid())
	assert.False(t, JobStatus("").IsValid())
}

func TestJobStatusTerminal(t *testing.T) {
	assert.True(t, JobStatusCompleted.IsFinalStatus())
	assert.True(t, JobStatusFailed.IsFinalStatus())
	assert.True(t, JobStatusRejected.IsFinalStatus())

	assert.False(t, JobStatusReceived.IsFinalStatus())
	assert.False(t, JobStatusConverting.IsFinalStatus())
}

func TestJobStatusHappyPathTransitions(t *testing.T) {
	order := []JobStatus{
		JobStatusReceived, JobStatusDownloading, JobStatusValidated,
		JobStatusConverting, JobStatusUploading, JobStatusCompleted,
	}
	for i := 0; i < len(order)-1; i++ {
		assert.True(t, order[i].CanTransitionTo(order[i+1]),
			"%s -> %s should be allowed", order[i], order[i+1])
	}
}

func TestJobStatusFailedReachableFromEveryNonTerminal(t *testing.T) {
	nonTerminal := []JobStatus{
		JobStatusReceived, JobStatusDownloading, JobStatusValidated,
		JobStatusConverting, JobStatusUploading,
	}
	for _, s := range nonTerminal {
		assert.True(t, s.CanTransitionTo(JobStatusFailed), "%s -> failed should be allowed", s)
	}
	for _, s := range []JobStatus{JobStatusCompleted, JobStatusFailed, JobStatusRejected} {
		assert.False(t, s.CanTransitionTo(JobStatusFailed), "%s is terminal", s)
	}
}

func TestJobStatusNoRegression(t *testing.T) {
	assert.False(t, JobStatusConverting.CanTransitionTo(JobStatusDownloading))
	assert.False(t, JobStatusUploading.CanTransitionTo(JobStatusConverting))
	assert.False(t, JobStatusCompleted.CanTransitionTo(JobStatusReceived))
	assert.False(t, JobStatusFailed.CanTransitionTo(JobStatusCompleted))
	assert.False(t, JobStatusRejected.CanTransitionTo(JobStatusDownloading))
}
