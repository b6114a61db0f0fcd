package services

import (
	"context"
	"strings"

	"maintdesk/internal/calendar"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type VersionService interface {
	Create(ctx context.Context, actor string, v *models.VersionHistory) error
	Update(ctx context.Context, v *models.VersionHistory) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.VersionHistory, error)
	List(ctx context.Context) ([]*models.VersionHistory, error)
}

type versionService struct {
	versionRepo repositories.VersionRepository
}

func NewVersionService(versionRepo repositories.VersionRepository) VersionService {
	return &versionService{versionRepo: versionRepo}
}

func validateVersion(v *models.VersionHistory) error {
	v.Version = strings.TrimSpace(v.Version)
	if v.Version == "" {
		return invalid("version is required")
	}
	if strings.TrimSpace(v.Changes) == "" {
		return invalid("changes are required")
	}
	if v.ReleasedAt.IsZero() {
		return invalid("released_at is required")
	}
	v.ReleasedAt = calendar.TruncateDay(v.ReleasedAt)
	return nil
}

func (s *versionService) Create(ctx context.Context, actor string, v *models.VersionHistory) error {
	if err := validateVersion(v); err != nil {
		return err
	}
	if actor != "" {
		v.Author = &actor
	}
	return s.versionRepo.Create(ctx, v)
}

func (s *versionService) Update(ctx context.Context, v *models.VersionHistory) error {
	if err := validateVersion(v); err != nil {
		return err
	}
	return notFound(s.versionRepo.Update(ctx, v), "version")
}

func (s *versionService) Delete(ctx context.Context, id int64) error {
	ok, err := s.versionRepo.Delete(ctx, id)
	return missing(ok, err, "version")
}

func (s *versionService) Get(ctx context.Context, id int64) (*models.VersionHistory, error) {
	v, err := s.versionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "version")
	}
	return v, nil
}

func (s *versionService) List(ctx context.Context) ([]*models.VersionHistory, error) {
	versions, err := s.versionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []*models.VersionHistory{}
	}
	return versions, nil
}
