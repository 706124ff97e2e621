package scheduler

import (
	"testing"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.PendingDigest = "0 0 7 * * *"
	cfg.Scheduler.PurgeSessions = "0 30 3 * * *"

	s, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, nil, cfg))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())
}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.PendingDigest = "every morning"
	cfg.Scheduler.PurgeSessions = "0 30 3 * * *"

	_, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, nil, cfg))
	assert.Error(t, err)
}
