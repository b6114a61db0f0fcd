package services

import (
	"context"
	"log"
	"strings"

	"maintdesk/internal/caching"
	"maintdesk/internal/calendar"
	"maintdesk/internal/common"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type ContractService interface {
	Create(ctx context.Context, actor string, contract *models.Contract) error
	Update(ctx context.Context, actor string, contract *models.Contract) error
	Get(ctx context.Context, id int64) (*models.Contract, error)
	List(ctx context.Context, filter *models.ContractFilter) ([]*models.Contract, error)
	ListWithAssets(ctx context.Context) ([]*models.Contract, error)
	Delete(ctx context.Context, id int64) error
}

type contractService struct {
	contractRepo repositories.ContractRepository
	eventSvc     EventService
	cacheSvc     caching.CacheService
}

func NewContractService(contractRepo repositories.ContractRepository, eventSvc EventService, cacheSvc caching.CacheService) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		eventSvc:     eventSvc,
		cacheSvc:     cacheSvc,
	}
}

// NormalizeContract validates a contract with its assets and rewrites
// aliases (category case, cycle names) to their stored form.
func NormalizeContract(c *models.Contract) error {
	c.CustomerName = strings.TrimSpace(c.CustomerName)
	c.ProjectTitle = strings.TrimSpace(c.ProjectTitle)
	if c.CustomerName == "" {
		return invalid("customer_name is required")
	}
	if c.ProjectTitle == "" {
		return invalid("project_title is required")
	}
	if c.StartDate.IsZero() {
		return invalid("start_date is required")
	}
	c.StartDate = calendar.TruncateDay(c.StartDate)
	if c.EndDate != nil {
		end := calendar.TruncateDay(*c.EndDate)
		c.EndDate = &end
	}
	if err := common.ValidateDateRange(c.StartDate, c.EndDate); err != nil {
		return invalid("%s", err.Error())
	}
	if c.ContractAmount != nil && *c.ContractAmount < 0 {
		return invalid("contract_amount cannot be negative")
	}
	c.Notes = common.StringPtr(common.SafeString(c.Notes))

	for i, a := range c.Assets {
		if err := normalizeAsset(a); err != nil {
			return invalid("assets[%d]: %s", i, err.Error())
		}
	}
	return nil
}

func normalizeAsset(a *models.Asset) error {
	a.Category = strings.ToUpper(strings.TrimSpace(a.Category))
	switch a.Category {
	case models.AssetCategoryHW, models.AssetCategorySW:
	default:
		return invalid("category must be HW or SW")
	}
	a.Item = strings.TrimSpace(a.Item)
	if a.Item == "" {
		return invalid("item is required")
	}
	if a.Qty < 0 {
		return invalid("qty cannot be negative")
	}
	if a.Qty == 0 {
		a.Qty = 1
	}
	if strings.TrimSpace(a.InspectionCycle) == "" {
		a.InspectionCycle = string(calendar.CycleOnFailure)
	}
	cycle, err := calendar.ParseCycle(a.InspectionCycle)
	if err != nil {
		return invalid("%s", err.Error())
	}
	a.InspectionCycle = string(cycle)

	for j, d := range a.Details {
		d.Name = strings.TrimSpace(d.Name)
		if d.Name == "" {
			return invalid("details[%d]: name is required", j)
		}
		if d.Qty < 0 {
			return invalid("details[%d]: qty cannot be negative", j)
		}
		if d.Qty == 0 {
			d.Qty = 1
		}
	}
	return nil
}

func (s *contractService) Create(ctx context.Context, actor string, c *models.Contract) error {
	if err := NormalizeContract(c); err != nil {
		return err
	}
	if actor != "" {
		c.CreatedBy = &actor
	}
	if err := s.contractRepo.CreateWithAssets(ctx, c); err != nil {
		return err
	}
	s.afterSave(ctx, actor, c)
	return nil
}

func (s *contractService) Update(ctx context.Context, actor string, c *models.Contract) error {
	if err := NormalizeContract(c); err != nil {
		return err
	}
	if err := s.contractRepo.UpdateWithAssets(ctx, c); err != nil {
		return notFound(err, "contract")
	}
	s.afterSave(ctx, actor, c)
	return nil
}

func (s *contractService) afterSave(ctx context.Context, actor string, c *models.Contract) {
	if s.eventSvc != nil {
		if _, err := s.eventSvc.EnsureContractEndEvent(ctx, actor, c); err != nil {
			log.Printf("Failed to create contract end event for contract %d: %v", c.ID, err)
		}
	}
	s.invalidateDashboard(ctx)
}

func (s *contractService) invalidateDashboard(ctx context.Context) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.InvalidateDashboard(ctx); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}

func (s *contractService) Get(ctx context.Context, id int64) (*models.Contract, error) {
	c, err := s.contractRepo.GetWithAssets(ctx, id)
	if err != nil {
		return nil, notFound(err, "contract")
	}
	if c.Assets == nil {
		c.Assets = []*models.Asset{}
	}
	return c, nil
}

func (s *contractService) List(ctx context.Context, filter *models.ContractFilter) ([]*models.Contract, error) {
	contracts, err := s.contractRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if contracts == nil {
		contracts = []*models.Contract{}
	}
	return contracts, nil
}

func (s *contractService) ListWithAssets(ctx context.Context) ([]*models.Contract, error) {
	return s.contractRepo.ListWithAssets(ctx)
}

func (s *contractService) Delete(ctx context.Context, id int64) error {
	ok, err := s.contractRepo.Delete(ctx, id)
	if err := missing(ok, err, "contract"); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}
