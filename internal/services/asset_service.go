package services

import (
	"context"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type AssetService interface {
	List(ctx context.Context, category, search string, limit, offset int) ([]*models.AssetWithContract, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	ListByContract(ctx context.Context, contractID int64) ([]*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id int64) error
}

type assetService struct {
	assetRepo repositories.AssetRepository
}

func NewAssetService(assetRepo repositories.AssetRepository) AssetService {
	return &assetService{assetRepo: assetRepo}
}

func (s *assetService) List(ctx context.Context, category, search string, limit, offset int) ([]*models.AssetWithContract, error) {
	switch category {
	case "", models.AssetCategoryHW, models.AssetCategorySW:
	default:
		return nil, invalid("category must be HW or SW")
	}
	assets, err := s.assetRepo.List(ctx, category, search, limit, offset)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []*models.AssetWithContract{}
	}
	return assets, nil
}

func (s *assetService) Get(ctx context.Context, id int64) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "asset")
	}
	return asset, nil
}

func (s *assetService) ListByContract(ctx context.Context, contractID int64) ([]*models.Asset, error) {
	assets, err := s.assetRepo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []*models.Asset{}
	}
	return assets, nil
}

// Update edits one asset; the contract-level writer remains the way to replace all assets
func (s *assetService) Update(ctx context.Context, asset *models.Asset) error {
	if err := normalizeAsset(asset); err != nil {
		return err
	}
	return notFound(s.assetRepo.Update(ctx, asset), "asset")
}

func (s *assetService) Delete(ctx context.Context, id int64) error {
	ok, err := s.assetRepo.Delete(ctx, id)
	return missing(ok, err, "asset")
}
