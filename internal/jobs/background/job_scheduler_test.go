package background

import (
	"context"
	"testing"
	"time"

	"maintdesk/internal/jobs"
	"maintdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepRecorder implements services.NotificationService; only the sweep is exercised
type sweepRecorder struct {
	calls chan time.Time
}

func (s *sweepRecorder) Notify(context.Context, string, models.NotificationType, string, *string) error {
	return nil
}

func (s *sweepRecorder) NotifyRoles(context.Context, []string, models.NotificationType, string, *string) error {
	return nil
}

func (s *sweepRecorder) List(context.Context, string, bool, int, int) ([]*models.Notification, error) {
	return nil, nil
}

func (s *sweepRecorder) UnreadCount(context.Context, string) (int, error) { return 0, nil }

func (s *sweepRecorder) MarkRead(context.Context, string, int64) error { return nil }

func (s *sweepRecorder) MarkAllRead(context.Context, string) (int64, error) { return 0, nil }

func (s *sweepRecorder) Delete(context.Context, string, int64) error { return nil }

func (s *sweepRecorder) SweepExpiringContracts(_ context.Context, now time.Time) (int, error) {
	s.calls <- now
	return 1, nil
}

func TestNewJobSchedulerRegistersJobs(t *testing.T) {
	recorder := &sweepRecorder{calls: make(chan time.Time, 1)}
	js, err := NewJobScheduler(
		jobs.NewHolidaySyncJob(nil, []int{2025}),
		jobs.NewContractExpiryJob(recorder),
		Options{HolidaySyncCron: "30 2 * * *", ExpirySweepAt: 7*time.Hour + 30*time.Minute},
	)
	require.NoError(t, err)
	defer js.Stop()

	assert.Equal(t, []string{ContractExpiryJobName, HolidaySyncJobName}, js.JobNames())
}

func TestNewJobSchedulerSkipsNilJobs(t *testing.T) {
	js, err := NewJobScheduler(nil, nil, Options{})
	require.NoError(t, err)
	defer js.Stop()

	assert.Empty(t, js.JobNames())
}

func TestNewJobSchedulerRejectsBadCron(t *testing.T) {
	_, err := NewJobScheduler(jobs.NewHolidaySyncJob(nil, nil), nil, Options{HolidaySyncCron: "every day"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "holiday sync job")
}

func TestRunNow(t *testing.T) {
	recorder := &sweepRecorder{calls: make(chan time.Time, 1)}
	js, err := NewJobScheduler(nil, jobs.NewContractExpiryJob(recorder), Options{})
	require.NoError(t, err)
	js.Start()
	defer js.Stop()

	require.NoError(t, js.RunNow(ContractExpiryJobName))
	select {
	case <-recorder.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not run")
	}

	assert.ErrorIs(t, js.RunNow("nope"), ErrUnknownJob)
}
