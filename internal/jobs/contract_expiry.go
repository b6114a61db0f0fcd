package jobs

import (
	"context"
	"log"
	"time"

	"maintdesk/internal/services"
)

// ContractExpiryJob notifies admins and managers about contracts ending soon
type ContractExpiryJob struct {
	notificationService services.NotificationService
	now                 func() time.Time
}

func NewContractExpiryJob(notificationService services.NotificationService) *ContractExpiryJob {
	return &ContractExpiryJob{
		notificationService: notificationService,
		now:                 time.Now,
	}
}

func (j *ContractExpiryJob) Run(ctx context.Context) (int, error) {
	created, err := j.notificationService.SweepExpiringContracts(ctx, j.now())
	if err != nil {
		log.Printf("Contract expiry sweep failed: %v", err)
		return created, err
	}
	if created == 0 {
		log.Println("No new contract expiry notifications")
		return 0, nil
	}
	log.Printf("Created %d contract expiry notifications (window %d days)", created, services.ExpiryWarningDays)
	return created, nil
}
