package jobs

import (
	"context"
	"log"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

// HolidaySyncJob pulls national holidays into the holiday table
type HolidaySyncJob struct {
	holidayService services.HolidayService
	years          []int
	now            func() time.Time
}

// NewHolidaySyncJob syncs the given years; with none it syncs the previous,
// current and next year relative to each run.
func NewHolidaySyncJob(holidayService services.HolidayService, years []int) *HolidaySyncJob {
	return &HolidaySyncJob{
		holidayService: holidayService,
		years:          years,
		now:            time.Now,
	}
}

func (j *HolidaySyncJob) Years() []int {
	if len(j.years) > 0 {
		return j.years
	}
	y := j.now().Year()
	return []int{y - 1, y, y + 1}
}

// Run never blocks startup: failures are logged and returned to the caller
func (j *HolidaySyncJob) Run(ctx context.Context) (*models.HolidaySyncResult, error) {
	years := j.Years()
	log.Printf("Starting holiday sync for %v", years)

	result, err := j.holidayService.Sync(ctx, years)
	if err != nil {
		log.Printf("Holiday sync failed: %v", err)
		return result, err
	}

	log.Printf("Completed holiday sync: fetched=%d inserted=%d failed=%d",
		result.Fetched, result.Inserted, len(result.Failed))
	return result, nil
}
