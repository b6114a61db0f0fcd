package services

import (
	"context"
	"strings"

	"maintdesk/internal/calendar"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

// Support report statuses
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

type SupportReportService interface {
	Create(ctx context.Context, report *models.ClientSupportReport) error
	Get(ctx context.Context, id int64) (*models.ClientSupportReport, error)
	Update(ctx context.Context, report *models.ClientSupportReport) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter *models.SupportReportFilter) ([]*models.ClientSupportReport, error)
	MonthlyStats(ctx context.Context, year int) ([]*models.MonthlySupportStat, error)
}

type supportReportService struct {
	reportRepo repositories.SupportReportRepository
}

func NewSupportReportService(reportRepo repositories.SupportReportRepository) SupportReportService {
	return &supportReportService{reportRepo: reportRepo}
}

func normalizeReport(r *models.ClientSupportReport) error {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.Engineer = strings.TrimSpace(r.Engineer)
	if r.CustomerName == "" {
		return invalid("customer_name is required")
	}
	if r.Engineer == "" {
		return invalid("engineer is required")
	}
	if strings.TrimSpace(r.Issue) == "" {
		return invalid("issue is required")
	}
	switch r.SupportType {
	case "":
		r.SupportType = models.SupportRemote
	case models.SupportRemote, models.SupportOnsite, models.SupportPhone:
	default:
		return invalid("support_type must be remote, onsite or phone")
	}
	if r.Status == "" {
		r.Status = ReportStatusOpen
	}
	if r.StartAt.IsZero() || r.EndAt.IsZero() {
		return invalid("start_at and end_at are required")
	}
	if r.EndAt.Before(r.StartAt) {
		return invalid("end_at must not be before start_at")
	}
	r.SupportHours = calendar.SupportHours(r.StartAt, r.EndAt)
	return nil
}

func (s *supportReportService) Create(ctx context.Context, r *models.ClientSupportReport) error {
	if err := normalizeReport(r); err != nil {
		return err
	}
	return s.reportRepo.Create(ctx, r)
}

func (s *supportReportService) Get(ctx context.Context, id int64) (*models.ClientSupportReport, error) {
	r, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "support report")
	}
	return r, nil
}

func (s *supportReportService) Update(ctx context.Context, r *models.ClientSupportReport) error {
	if err := normalizeReport(r); err != nil {
		return err
	}
	return notFound(s.reportRepo.Update(ctx, r), "support report")
}

func (s *supportReportService) Delete(ctx context.Context, id int64) error {
	ok, err := s.reportRepo.Delete(ctx, id)
	return missing(ok, err, "support report")
}

func (s *supportReportService) List(ctx context.Context, filter *models.SupportReportFilter) ([]*models.ClientSupportReport, error) {
	if filter != nil && filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, invalid("to must not be before from")
	}
	reports, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*models.ClientSupportReport{}
	}
	return reports, nil
}

// MonthlyStats returns twelve rows, zero-filled for months without reports
func (s *supportReportService) MonthlyStats(ctx context.Context, year int) ([]*models.MonthlySupportStat, error) {
	if year < 1900 || year > 9999 {
		return nil, invalid("invalid year %d", year)
	}
	rows, err := s.reportRepo.MonthlyStats(ctx, year)
	if err != nil {
		return nil, err
	}
	stats := make([]*models.MonthlySupportStat, 12)
	for i := range stats {
		stats[i] = &models.MonthlySupportStat{Month: i + 1}
	}
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			stats[r.Month-1].Count = r.Count
			stats[r.Month-1].TotalHours = calendar.Round2(r.TotalHours)
		}
	}
	return stats, nil
}
