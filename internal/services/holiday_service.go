package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"maintdesk/internal/caching"
	"maintdesk/internal/calendar"
	"maintdesk/internal/holidayapi"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

const holidayCacheTTL = 24 * time.Hour

type HolidayService interface {
	List(ctx context.Context, from, to time.Time) ([]*models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	Update(ctx context.Context, holiday *models.Holiday) error
	Delete(ctx context.Context, id int64) error
	Sync(ctx context.Context, years []int) (*models.HolidaySyncResult, error)
}

type holidayService struct {
	holidayRepo repositories.HolidayRepository
	client      holidayapi.Client
	cacheSvc    caching.CacheService
}

// NewHolidayService wires the holiday store; client and cacheSvc may be nil
func NewHolidayService(holidayRepo repositories.HolidayRepository, client holidayapi.Client, cacheSvc caching.CacheService) HolidayService {
	return &holidayService{
		holidayRepo: holidayRepo,
		client:      client,
		cacheSvc:    cacheSvc,
	}
}

// List returns holidays in [from, to], served per year from the cache when possible
func (s *holidayService) List(ctx context.Context, from, to time.Time) ([]*models.Holiday, error) {
	from, to = calendar.TruncateDay(from), calendar.TruncateDay(to)
	if to.Before(from) {
		return nil, invalid("to must not be before from")
	}
	if to.Year()-from.Year() > 10 {
		return nil, invalid("date range is too large")
	}

	out := []*models.Holiday{}
	for year := from.Year(); year <= to.Year(); year++ {
		holidays, err := s.year(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, h := range holidays {
			d := calendar.TruncateDay(h.Date)
			if !d.Before(from) && !d.After(to) {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

func (s *holidayService) year(ctx context.Context, year int) ([]*models.Holiday, error) {
	if s.cacheSvc != nil {
		cached, err := s.cacheSvc.GetHolidays(ctx, year)
		if err != nil {
			log.Printf("Cache error for holidays %d: %v", year, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	holidays, err := s.holidayRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetHolidays(ctx, year, holidays, holidayCacheTTL); err != nil {
			log.Printf("Failed to cache holidays %d: %v", year, err)
		}
	}
	return holidays, nil
}

func (s *holidayService) invalidate(ctx context.Context, years ...int) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateHolidays(ctx, years...); err != nil {
		log.Printf("Failed to invalidate holiday cache %v: %v", years, err)
	}
}

func validateHoliday(h *models.Holiday) error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return invalid("name is required")
	}
	if h.Date.IsZero() {
		return invalid("date is required")
	}
	h.Date = calendar.TruncateDay(h.Date)
	switch h.Type {
	case "":
		h.Type = models.HolidayCompany
	case models.HolidayCompany, models.HolidayNational:
	default:
		return invalid("invalid holiday type %q", h.Type)
	}
	return nil
}

func (s *holidayService) Create(ctx context.Context, h *models.Holiday) error {
	if err := validateHoliday(h); err != nil {
		return err
	}
	h.Source = models.HolidaySourceManual
	if err := s.holidayRepo.Create(ctx, h); err != nil {
		return err
	}
	s.invalidate(ctx, h.Date.Year())
	return nil
}

func (s *holidayService) Update(ctx context.Context, h *models.Holiday) error {
	if err := validateHoliday(h); err != nil {
		return err
	}
	existing, err := s.holidayRepo.GetByID(ctx, h.ID)
	if err != nil {
		return notFound(err, "holiday")
	}
	if err := s.holidayRepo.Update(ctx, h); err != nil {
		return notFound(err, "holiday")
	}
	s.invalidate(ctx, existing.Date.Year(), h.Date.Year())
	return nil
}

func (s *holidayService) Delete(ctx context.Context, id int64) error {
	existing, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "holiday")
	}
	ok, err := s.holidayRepo.Delete(ctx, id)
	if err := missing(ok, err, "holiday"); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Date.Year())
	return nil
}

// Sync pulls public holidays for each year and stores the ones not yet known.
// A failing year is recorded in the result and does not stop the others.
func (s *holidayService) Sync(ctx context.Context, years []int) (*models.HolidaySyncResult, error) {
	result := &models.HolidaySyncResult{Years: years}
	if s.client == nil {
		return result, fmt.Errorf("holiday API client is not configured")
	}

	for _, year := range years {
		holidays, err := s.client.PublicHolidays(ctx, year)
		if err != nil {
			log.Printf("Holiday sync for %d failed: %v", year, err)
			result.Failed = append(result.Failed, fmt.Sprintf("%d: %v", year, err))
			continue
		}
		result.Fetched += len(holidays)

		inserted := 0
		for _, ph := range holidays {
			day, err := ph.Day()
			if err != nil {
				log.Printf("Skipping holiday %q with bad date %q", ph.DisplayName(), ph.Date)
				continue
			}
			ok, err := s.holidayRepo.InsertIfNotExists(ctx, &models.Holiday{
				Date:   day,
				Name:   ph.DisplayName(),
				Type:   models.HolidayNational,
				Source: models.HolidaySourceAPI,
			})
			if err != nil {
				log.Printf("Failed to store holiday %s %q: %v", ph.Date, ph.DisplayName(), err)
				continue
			}
			if ok {
				inserted++
			}
		}
		result.Inserted += inserted
		s.invalidate(ctx, year)
	}

	log.Printf("Holiday sync done: years=%v fetched=%d inserted=%d failed=%d",
		years, result.Fetched, result.Inserted, len(result.Failed))
	return result, nil
}
