package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"maintdesk/internal/calendar"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

// maxCalendarSpan bounds a single calendar feed request
const maxCalendarSpan = 400 * 24 * time.Hour

type EventService interface {
	Create(ctx context.Context, actor string, event *models.CalendarEvent) error
	Get(ctx context.Context, id int64) (*models.CalendarEvent, error)
	Update(ctx context.Context, event *models.CalendarEvent) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter *models.EventFilter) ([]*models.CalendarEvent, error)
	GenerateInspections(ctx context.Context, actor string, contractID int64, horizon *time.Time) (*models.GenerationResult, error)
	GenerateContractEndEvents(ctx context.Context, actor string) (*models.GenerationResult, error)
	EnsureContractEndEvent(ctx context.Context, actor string, contract *models.Contract) (bool, error)
	Calendar(ctx context.Context, from, to time.Time) (*models.CalendarFeed, error)
}

type eventService struct {
	eventRepo    repositories.EventRepository
	contractRepo repositories.ContractRepository
	holidaySvc   HolidayService
	loc          *time.Location
}

func NewEventService(eventRepo repositories.EventRepository, contractRepo repositories.ContractRepository, holidaySvc HolidayService) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		contractRepo: contractRepo,
		holidaySvc:   holidaySvc,
		loc:          time.Local,
	}
}

// normalizeEvent validates the event and recomputes its support hours
func normalizeEvent(e *models.CalendarEvent) error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return invalid("title is required")
	}
	if e.Type == "" {
		e.Type = models.EventTypeEtc
	}
	if !models.IsValidEventType(e.Type) {
		return invalid("invalid event type %q", e.Type)
	}
	if e.Status == "" {
		e.Status = models.EventStatusScheduled
	}
	if !models.IsValidEventStatus(e.Status) {
		return invalid("invalid event status %q", e.Status)
	}
	if e.StartAt.IsZero() {
		return invalid("start_at is required")
	}
	if e.EndAt.IsZero() {
		e.EndAt = e.StartAt
	}
	if e.EndAt.Before(e.StartAt) {
		return invalid("end_at must not be before start_at")
	}

	if e.AllDay {
		e.StartAt = calendar.TruncateDay(e.StartAt)
		e.EndAt = calendar.TruncateDay(e.EndAt)
		e.SupportHours = 0
	} else {
		e.SupportHours = calendar.SupportHours(e.StartAt, e.EndAt)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, actor string, e *models.CalendarEvent) error {
	if err := normalizeEvent(e); err != nil {
		return err
	}
	if actor != "" {
		e.CreatedBy = &actor
	}
	return duplicateEvent(s.eventRepo.Create(ctx, e), e)
}

// duplicateEvent maps a unique index hit to ErrDuplicate
func duplicateEvent(err error, e *models.CalendarEvent) error {
	if repositories.IsUniqueViolation(err) {
		return fmt.Errorf("%s event on %s %w", e.Type, calendar.DateKey(e.StartAt.UTC()), ErrDuplicate)
	}
	return err
}

func (s *eventService) Get(ctx context.Context, id int64) (*models.CalendarEvent, error) {
	e, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event")
	}
	return e, nil
}

func (s *eventService) Update(ctx context.Context, e *models.CalendarEvent) error {
	if err := normalizeEvent(e); err != nil {
		return err
	}
	return notFound(duplicateEvent(s.eventRepo.Update(ctx, e), e), "event")
}

func (s *eventService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !models.IsValidEventStatus(status) {
		return invalid("invalid event status %q", status)
	}
	ok, err := s.eventRepo.UpdateStatus(ctx, id, status)
	return missing(ok, err, "event")
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	ok, err := s.eventRepo.Delete(ctx, id)
	return missing(ok, err, "event")
}

func (s *eventService) List(ctx context.Context, filter *models.EventFilter) ([]*models.CalendarEvent, error) {
	if filter != nil && filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, invalid("to must not be before from")
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.CalendarEvent{}
	}
	return events, nil
}

// GenerateInspections expands every asset's inspection cycle of one contract
// into all-day inspection events and stores the new ones in one transaction.
func (s *eventService) GenerateInspections(ctx context.Context, actor string, contractID int64, horizon *time.Time) (*models.GenerationResult, error) {
	contract, err := s.contractRepo.GetWithAssets(ctx, contractID)
	if err != nil {
		return nil, notFound(err, "contract")
	}
	seen, err := s.eventRepo.InspectionKeys(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("load existing inspections: %w", err)
	}

	result := &models.GenerationResult{}
	until := calendar.Horizon(contract.StartDate, contract.EndDate, horizon)
	var events []*models.CalendarEvent
	for _, asset := range contract.Assets {
		cycle, err := calendar.ParseCycle(asset.InspectionCycle)
		if err != nil {
			log.Printf("Skipping asset %d of contract %d: %v", asset.ID, contractID, err)
			continue
		}
		in := calendar.ExpandInput{
			ContractID: contractID,
			AssetID:    asset.ID,
			Cycle:      cycle,
			Start:      contract.StartDate,
			Horizon:    until,
		}
		fresh := calendar.Expand(in, seen)
		result.Skipped += len(calendar.Expand(in, nil)) - len(fresh)

		for _, occ := range fresh {
			events = append(events, inspectionEvent(contract, asset, occ, actor))
		}
	}

	created, err := s.eventRepo.CreateBatch(ctx, events)
	if err != nil {
		return nil, fmt.Errorf("store inspections: %w", err)
	}
	result.Created = created
	result.Skipped += len(events) - created
	return result, nil
}

func inspectionEvent(c *models.Contract, a *models.Asset, occ calendar.Occurrence, actor string) *models.CalendarEvent {
	contractID, assetID := c.ID, a.ID
	day := time.Date(occ.Date.Year(), occ.Date.Month(), occ.Date.Day(), 0, 0, 0, 0, time.UTC)
	e := &models.CalendarEvent{
		Title:      fmt.Sprintf("Inspection: %s / %s", c.CustomerName, a.Item),
		Type:       models.EventTypeInspection,
		ContractID: &contractID,
		AssetID:    &assetID,
		StartAt:    day,
		EndAt:      day,
		AllDay:     true,
		Status:     models.EventStatusScheduled,
		Assignee:   a.MainEngineer.Name,
	}
	if actor != "" {
		e.CreatedBy = &actor
	}
	return e
}

// EnsureContractEndEvent keeps exactly one contract_end event on the contract's
// end date. Markers left on an earlier end date are removed, and a contract
// without an end date keeps none.
func (s *eventService) EnsureContractEndEvent(ctx context.Context, actor string, c *models.Contract) (bool, error) {
	var day *time.Time
	if c.EndDate != nil {
		d := time.Date(c.EndDate.Year(), c.EndDate.Month(), c.EndDate.Day(), 0, 0, 0, 0, time.UTC)
		day = &d
	}
	if _, err := s.eventRepo.DeleteContractEndExcept(ctx, c.ID, day); err != nil {
		return false, fmt.Errorf("remove stale contract end events: %w", err)
	}
	if day == nil {
		return false, nil
	}
	exists, err := s.eventRepo.ContractEndExists(ctx, c.ID, *day)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	contractID := c.ID
	e := &models.CalendarEvent{
		Title:      fmt.Sprintf("Contract end: %s - %s", c.CustomerName, c.ProjectTitle),
		Type:       models.EventTypeContractEnd,
		ContractID: &contractID,
		StartAt:    *day,
		EndAt:      *day,
		AllDay:     true,
		Status:     models.EventStatusScheduled,
	}
	if actor != "" {
		e.CreatedBy = &actor
	}
	created, err := s.eventRepo.CreateBatch(ctx, []*models.CalendarEvent{e})
	if err != nil {
		return false, err
	}
	return created == 1, nil
}

func (s *eventService) GenerateContractEndEvents(ctx context.Context, actor string) (*models.GenerationResult, error) {
	contracts, err := s.contractRepo.ListEndingBetween(ctx, "1900-01-01", "9999-12-31")
	if err != nil {
		return nil, err
	}
	result := &models.GenerationResult{}
	for _, c := range contracts {
		created, err := s.EnsureContractEndEvent(ctx, actor, c)
		if err != nil {
			return result, fmt.Errorf("contract %d: %w", c.ID, err)
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

func (s *eventService) dayOf(e *models.CalendarEvent) string {
	if e.AllDay {
		return calendar.DateKey(e.StartAt.UTC())
	}
	return calendar.DateKey(e.StartAt.In(s.loc))
}

// Calendar merges events and holidays of [from, to] into one feed sorted by day.
// Holidays come before events on the same day.
func (s *eventService) Calendar(ctx context.Context, from, to time.Time) (*models.CalendarFeed, error) {
	from, to = calendar.TruncateDay(from), calendar.TruncateDay(to)
	if to.Before(from) {
		return nil, invalid("to must not be before from")
	}
	if to.Sub(from) > maxCalendarSpan {
		return nil, invalid("date range is too large")
	}

	rangeEnd := to.Add(24*time.Hour - time.Nanosecond)
	events, err := s.eventRepo.List(ctx, &models.EventFilter{From: &from, To: &rangeEnd})
	if err != nil {
		return nil, err
	}
	holidays, err := s.holidaySvc.List(ctx, from, to)
	if err != nil {
		return nil, err
	}

	set := calendar.HolidaySet{}
	entries := make([]*models.CalendarEntry, 0, len(events)+len(holidays))
	for _, h := range holidays {
		set.Add(h.Date, h.Name)
		entries = append(entries, &models.CalendarEntry{
			Kind:      "holiday",
			Date:      calendar.DateKey(h.Date),
			Title:     h.Name,
			IsWeekend: calendar.IsWeekend(h.Date),
			Holiday:   h,
		})
	}
	for _, e := range events {
		day := s.dayOf(e)
		d, _ := time.Parse("2006-01-02", day)
		entries = append(entries, &models.CalendarEntry{
			Kind:      "event",
			Date:      day,
			Title:     e.Title,
			IsWeekend: calendar.IsWeekend(d),
			Event:     e,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Kind != b.Kind {
			return a.Kind == "holiday"
		}
		if a.Event != nil && b.Event != nil {
			return a.Event.StartAt.Before(b.Event.StartAt)
		}
		return false
	})

	return &models.CalendarFeed{
		From:         calendar.DateKey(from),
		To:           calendar.DateKey(to),
		BusinessDays: calendar.BusinessDaysBetween(from, to, set),
		Entries:      entries,
	}, nil
}
