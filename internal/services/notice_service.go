package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type NoticeService interface {
	Create(ctx context.Context, actor string, notice *models.Notice) error
	Get(ctx context.Context, id int64) (*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*models.Notice, error)
}

type noticeService struct {
	noticeRepo      repositories.NoticeRepository
	files           FileService
	notificationSvc NotificationService
}

func NewNoticeService(noticeRepo repositories.NoticeRepository, files FileService, notificationSvc NotificationService) NoticeService {
	return &noticeService{
		noticeRepo:      noticeRepo,
		files:           files,
		notificationSvc: notificationSvc,
	}
}

func validateNotice(n *models.Notice) error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(n.Content) == "" {
		return invalid("content is required")
	}
	return nil
}

// Create stores the notice; pinned notices are announced to every role
func (s *noticeService) Create(ctx context.Context, actor string, n *models.Notice) error {
	if err := validateNotice(n); err != nil {
		return err
	}
	n.Author = actor
	if err := s.noticeRepo.Create(ctx, n); err != nil {
		return err
	}
	if n.Pinned && s.notificationSvc != nil {
		link := fmt.Sprintf("/notices/%d", n.ID)
		roles := []string{models.RoleAdmin, models.RoleManager, models.RoleUser}
		if err := s.notificationSvc.NotifyRoles(ctx, roles, models.NotificationNotice, "New notice: "+n.Title, &link); err != nil {
			log.Printf("Failed to announce notice %d: %v", n.ID, err)
		}
	}
	return nil
}

func (s *noticeService) Get(ctx context.Context, id int64) (*models.Notice, error) {
	n, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "notice")
	}
	if s.files != nil {
		files, err := s.files.List(ctx, id)
		if err != nil {
			return nil, err
		}
		n.Files = files
	}
	return n, nil
}

func (s *noticeService) Update(ctx context.Context, n *models.Notice) error {
	if err := validateNotice(n); err != nil {
		return err
	}
	return notFound(s.noticeRepo.Update(ctx, n), "notice")
}

// Delete removes the notice row; file rows cascade, stored objects are removed best effort
func (s *noticeService) Delete(ctx context.Context, id int64) error {
	var attached []*models.StoredFile
	if s.files != nil {
		files, err := s.files.List(ctx, id)
		if err != nil {
			return err
		}
		attached = files
	}
	for _, f := range attached {
		if err := s.files.Delete(ctx, id, f.ID); err != nil {
			log.Printf("Failed to delete file %d of notice %d: %v", f.ID, id, err)
		}
	}
	ok, err := s.noticeRepo.Delete(ctx, id)
	return missing(ok, err, "notice")
}

func (s *noticeService) List(ctx context.Context, limit, offset int) ([]*models.Notice, error) {
	notices, err := s.noticeRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if notices == nil {
		notices = []*models.Notice{}
	}
	return notices, nil
}
