package background

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"maintdesk/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

// Job names
const (
	HolidaySyncJobName    = "holiday-sync"
	ContractExpiryJobName = "contract-expiry-sweep"
)

const jobTimeout = 5 * time.Minute

// ErrUnknownJob is returned by RunNow for a name that is not registered
var ErrUnknownJob = errors.New("unknown job")

// Options configures when each job runs
type Options struct {
	HolidaySyncCron string
	SyncOnStart     bool
	ExpirySweepAt   time.Duration // offset from local midnight
	Location        *time.Location
}

// JobScheduler runs the holiday sync and the contract expiry sweep
type JobScheduler struct {
	scheduler   gocron.Scheduler
	holidaySync *jobs.HolidaySyncJob
	expiry      *jobs.ContractExpiryJob
	ctx         context.Context
	cancel      context.CancelFunc
	jobs        map[string]gocron.Job
	mu          sync.RWMutex
}

// NewJobScheduler registers the jobs without starting them. A nil job is skipped.
func NewJobScheduler(holidaySync *jobs.HolidaySyncJob, expiry *jobs.ContractExpiryJob, opts Options) (*JobScheduler, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobScheduler{
		scheduler:   scheduler,
		holidaySync: holidaySync,
		expiry:      expiry,
		ctx:         ctx,
		cancel:      cancel,
		jobs:        make(map[string]gocron.Job),
	}

	if err := js.registerJobs(opts); err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) registerJobs(opts Options) error {
	if js.holidaySync != nil {
		cron := opts.HolidaySyncCron
		if cron == "" {
			cron = "0 3 * * *"
		}
		jobOpts := []gocron.JobOption{
			gocron.WithName(HolidaySyncJobName),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		}
		if opts.SyncOnStart {
			jobOpts = append(jobOpts, gocron.WithStartAt(gocron.WithStartImmediately()))
		}
		job, err := js.scheduler.NewJob(
			gocron.CronJob(cron, false),
			gocron.NewTask(js.syncHolidays),
			jobOpts...,
		)
		if err != nil {
			return fmt.Errorf("failed to create holiday sync job: %w", err)
		}
		js.jobs[HolidaySyncJobName] = job
	}

	if js.expiry != nil {
		at := opts.ExpirySweepAt
		if at <= 0 || at >= 24*time.Hour {
			at = 8 * time.Hour
		}
		h, m := uint(at/time.Hour), uint(at%time.Hour/time.Minute)
		job, err := js.scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(h, m, 0))),
			gocron.NewTask(js.sweepExpiringContracts),
			gocron.WithName(ContractExpiryJobName),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create contract expiry job: %w", err)
		}
		js.jobs[ContractExpiryJobName] = job
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
	return nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop cancels running jobs and waits for them to return
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) syncHolidays() {
	ctx, cancel := context.WithTimeout(js.ctx, jobTimeout)
	defer cancel()
	_, _ = js.holidaySync.Run(ctx)
}

func (js *JobScheduler) sweepExpiringContracts() {
	ctx, cancel := context.WithTimeout(js.ctx, jobTimeout)
	defer cancel()
	_, _ = js.expiry.Run(ctx)
}

// RunNow triggers a registered job outside its schedule
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownJob, name)
	}
	return job.RunNow()
}

// JobNames lists the registered jobs in name order
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
