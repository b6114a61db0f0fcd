package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"maintdesk/internal/calendar"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

// ExpiryWarningDays is how far ahead the expiry sweep looks
const ExpiryWarningDays = 30

// NotificationService delivers in-app notifications
type NotificationService interface {
	Notify(ctx context.Context, username string, kind models.NotificationType, message string, link *string) error
	NotifyRoles(ctx context.Context, roles []string, kind models.NotificationType, message string, link *string) error
	List(ctx context.Context, username string, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, username string) (int, error)
	MarkRead(ctx context.Context, username string, id int64) error
	MarkAllRead(ctx context.Context, username string) (int64, error)
	Delete(ctx context.Context, username string, id int64) error
	SweepExpiringContracts(ctx context.Context, now time.Time) (int, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	contractRepo     repositories.ContractRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, contractRepo repositories.ContractRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		contractRepo:     contractRepo,
	}
}

func (s *notificationService) Notify(ctx context.Context, username string, kind models.NotificationType, message string, link *string) error {
	return s.notificationRepo.Create(ctx, &models.Notification{
		Username: username,
		Type:     kind,
		Message:  message,
		Link:     link,
	})
}

// NotifyRoles sends one notification per approved user holding any of the roles
func (s *notificationService) NotifyRoles(ctx context.Context, roles []string, kind models.NotificationType, message string, link *string) error {
	users, err := s.userRepo.ListByRoles(ctx, roles...)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}
	for _, u := range users {
		if err := s.Notify(ctx, u.Username, kind, message, link); err != nil {
			log.Printf("Failed to notify %s: %v", u.Username, err)
		}
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, username string, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	items, err := s.notificationRepo.ListByUser(ctx, username, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Notification{}
	}
	return items, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, username string) (int, error) {
	return s.notificationRepo.CountUnread(ctx, username)
}

func (s *notificationService) MarkRead(ctx context.Context, username string, id int64) error {
	ok, err := s.notificationRepo.MarkRead(ctx, username, id)
	return missing(ok, err, "notification")
}

func (s *notificationService) MarkAllRead(ctx context.Context, username string) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, username)
}

func (s *notificationService) Delete(ctx context.Context, username string, id int64) error {
	ok, err := s.notificationRepo.Delete(ctx, username, id)
	return missing(ok, err, "notification")
}

// SweepExpiringContracts warns admins and managers about contracts ending in
// the next ExpiryWarningDays days. A recipient gets each warning at most once
// per warning window.
func (s *notificationService) SweepExpiringContracts(ctx context.Context, now time.Time) (int, error) {
	today := calendar.TruncateDay(now)
	until := today.AddDate(0, 0, ExpiryWarningDays)
	contracts, err := s.contractRepo.ListEndingBetween(ctx, calendar.DateKey(today), calendar.DateKey(until))
	if err != nil {
		return 0, fmt.Errorf("list expiring contracts: %w", err)
	}
	if len(contracts) == 0 {
		return 0, nil
	}

	recipients, err := s.userRepo.ListByRoles(ctx, models.RoleAdmin, models.RoleManager)
	if err != nil {
		return 0, fmt.Errorf("list recipients: %w", err)
	}

	since := today.AddDate(0, 0, -ExpiryWarningDays)
	created := 0
	for _, c := range contracts {
		// the message carries the end date, so an extended contract warns again
		message := fmt.Sprintf("Contract %q for %s ends on %s", c.ProjectTitle, c.CustomerName, calendar.DateKey(*c.EndDate))
		link := fmt.Sprintf("/contracts/%d", c.ID)
		for _, u := range recipients {
			ok, err := s.notificationRepo.CreateIfAbsent(ctx, &models.Notification{
				Username: u.Username,
				Type:     models.NotificationContractExpiring,
				Message:  message,
				Link:     &link,
			}, since)
			if err != nil {
				log.Printf("Failed to create expiry notification for %s: %v", u.Username, err)
				continue
			}
			if ok {
				created++
			}
		}
	}
	return created, nil
}
