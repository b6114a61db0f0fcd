package services

import (
	"context"
	"log"
	"time"

	"maintdesk/internal/caching"
	"maintdesk/internal/calendar"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

const dashboardCacheTTL = time.Minute

type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*models.DashboardStats, error)
}

type dashboardService struct {
	contractRepo repositories.ContractRepository
	assetRepo    repositories.AssetRepository
	eventRepo    repositories.EventRepository
	userRepo     repositories.UserRepository
	cacheSvc     caching.CacheService
}

func NewDashboardService(contractRepo repositories.ContractRepository, assetRepo repositories.AssetRepository, eventRepo repositories.EventRepository, userRepo repositories.UserRepository, cacheSvc caching.CacheService) DashboardService {
	return &dashboardService{
		contractRepo: contractRepo,
		assetRepo:    assetRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		cacheSvc:     cacheSvc,
	}
}

func (s *dashboardService) Stats(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	if s.cacheSvc != nil {
		if cached, err := s.cacheSvc.GetDashboard(ctx); cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("Cache error for dashboard: %v", err)
		}
	}

	today := calendar.TruncateDay(now)
	stats := &models.DashboardStats{}
	var err error

	if stats.ActiveContracts, err = s.contractRepo.CountActive(ctx, calendar.DateKey(today)); err != nil {
		return nil, err
	}
	until := today.AddDate(0, 0, ExpiryWarningDays)
	if stats.ExpiringContracts, err = s.contractRepo.CountEndingBetween(ctx, calendar.DateKey(today), calendar.DateKey(until)); err != nil {
		return nil, err
	}
	if stats.AssetsByCategory, err = s.assetRepo.CountByCategory(ctx); err != nil {
		return nil, err
	}
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	if stats.EventsByStatus, err = s.eventRepo.CountByStatusBetween(ctx, monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if stats.PendingUsers, err = s.userRepo.CountByStatus(ctx, models.ApprovalPending); err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetDashboard(ctx, stats, dashboardCacheTTL); err != nil {
			log.Printf("Failed to cache dashboard: %v", err)
		}
	}
	return stats, nil
}
