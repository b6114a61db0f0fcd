package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"maintdesk/internal/calendar"
	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type MemberService interface {
	Create(ctx context.Context, member *models.ProjectMember) error
	Get(ctx context.Context, id int64) (*models.ProjectMember, error)
	Update(ctx context.Context, member *models.ProjectMember) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, contractID *int64) ([]*models.ProjectMember, error)
	Summary(ctx context.Context, month time.Time) ([]*models.EffortSummary, error)
}

type memberService struct {
	memberRepo repositories.MemberRepository
}

func NewMemberService(memberRepo repositories.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func normalizeMember(m *models.ProjectMember) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return invalid("name is required")
	}
	switch m.AllocationType {
	case "":
		m.AllocationType = models.AllocationFull
	case models.AllocationFull, models.AllocationPartial:
	default:
		return invalid("allocation_type must be full or partial")
	}
	if m.AllocationDays < 0 || m.AllocationDays > 31 {
		return invalid("allocation_days must be between 0 and 31")
	}
	if m.StartDate.IsZero() {
		return invalid("start_date is required")
	}
	if err := common.ValidateDateRange(m.StartDate, m.EndDate); err != nil {
		return invalid("%s", err.Error())
	}
	m.MonthlyEffort = calendar.MonthlyEffort(m.AllocationType, m.AllocationDays)
	return nil
}

func (s *memberService) Create(ctx context.Context, m *models.ProjectMember) error {
	if err := normalizeMember(m); err != nil {
		return err
	}
	return s.memberRepo.Create(ctx, m)
}

func (s *memberService) Get(ctx context.Context, id int64) (*models.ProjectMember, error) {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "member")
	}
	return m, nil
}

func (s *memberService) Update(ctx context.Context, m *models.ProjectMember) error {
	if err := normalizeMember(m); err != nil {
		return err
	}
	return notFound(s.memberRepo.Update(ctx, m), "member")
}

func (s *memberService) Delete(ctx context.Context, id int64) error {
	ok, err := s.memberRepo.Delete(ctx, id)
	return missing(ok, err, "member")
}

func (s *memberService) List(ctx context.Context, contractID *int64) ([]*models.ProjectMember, error) {
	members, err := s.memberRepo.List(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []*models.ProjectMember{}
	}
	return members, nil
}

// Summary totals the effort of members active during month, grouped by contract.
// Members without a contract are reported under a nil contract id.
func (s *memberService) Summary(ctx context.Context, month time.Time) ([]*models.EffortSummary, error) {
	members, err := s.memberRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	monthKey := month.Format("2006-01")

	byContract := make(map[int64]*models.EffortSummary)
	var unassigned *models.EffortSummary
	for _, m := range members {
		if !calendar.ActiveInMonth(m.StartDate, m.EndDate, month) {
			continue
		}
		var sum *models.EffortSummary
		if m.ContractID == nil {
			if unassigned == nil {
				unassigned = &models.EffortSummary{Month: monthKey}
			}
			sum = unassigned
		} else {
			sum = byContract[*m.ContractID]
			if sum == nil {
				id := *m.ContractID
				sum = &models.EffortSummary{ContractID: &id, Month: monthKey}
				byContract[id] = sum
			}
		}
		sum.MemberCount++
		sum.TotalEffort = calendar.Round2(sum.TotalEffort + calendar.MonthlyEffort(m.AllocationType, m.AllocationDays))
	}

	out := make([]*models.EffortSummary, 0, len(byContract)+1)
	for _, sum := range byContract {
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ContractID < *out[j].ContractID })
	if unassigned != nil {
		out = append(out, unassigned)
	}
	return out, nil
}
