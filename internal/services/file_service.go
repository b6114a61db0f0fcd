package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"

	"github.com/google/uuid"
)

const (
	MaxUploadSize       = 20 << 20
	presignedURLExpiry  = 15 * time.Minute
	maxOriginalNameSize = 255
)

// Attachment owner kinds
const (
	OwnerNotice   = "notices"
	OwnerContract = "contracts"
)

// FileService manages attachments of one owner kind
type FileService interface {
	Upload(ctx context.Context, ownerID int64, filename, contentType string, reader io.Reader, size int64, uploadedBy string) (*models.StoredFile, error)
	List(ctx context.Context, ownerID int64) ([]*models.StoredFile, error)
	DownloadURL(ctx context.Context, ownerID, fileID int64) (string, error)
	Delete(ctx context.Context, ownerID, fileID int64) error
}

type fileService struct {
	kind     string
	fileRepo repositories.FileRepository
	storage  ObjectStorage
}

func NewFileService(kind string, fileRepo repositories.FileRepository, storage ObjectStorage) FileService {
	return &fileService{kind: kind, fileRepo: fileRepo, storage: storage}
}

// ObjectKey builds the storage key {kind}/{owner}/{uuid}-{name}
func ObjectKey(kind string, ownerID int64, filename string) string {
	return fmt.Sprintf("%s/%d/%s-%s", kind, ownerID, uuid.NewString(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == '/' || r == '"' {
			return '_'
		}
		return r
	}, name)
	if name == "." || name == "" {
		name = "file"
	}
	if len(name) > maxOriginalNameSize {
		name = name[len(name)-maxOriginalNameSize:]
	}
	return name
}

func (s *fileService) Upload(ctx context.Context, ownerID int64, filename, contentType string, reader io.Reader, size int64, uploadedBy string) (*models.StoredFile, error) {
	if size <= 0 {
		return nil, invalid("file is empty")
	}
	if size > MaxUploadSize {
		return nil, invalid("file exceeds the %d MiB limit", MaxUploadSize>>20)
	}
	if s.storage == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}

	name := sanitizeFilename(filename)
	key := ObjectKey(s.kind, ownerID, name)
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	file := &models.StoredFile{
		OwnerID:      ownerID,
		OriginalName: name,
		ObjectKey:    key,
		ContentType:  contentType,
		Size:         size,
		UploadedBy:   uploadedBy,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("Failed to remove orphan object %s: %v", key, delErr)
		}
		return nil, err
	}
	return file, nil
}

func (s *fileService) List(ctx context.Context, ownerID int64) ([]*models.StoredFile, error) {
	files, err := s.fileRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []*models.StoredFile{}
	}
	return files, nil
}

func (s *fileService) DownloadURL(ctx context.Context, ownerID, fileID int64) (string, error) {
	file, err := s.fileRepo.GetByID(ctx, ownerID, fileID)
	if err != nil {
		return "", notFound(err, "file")
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	return s.storage.PresignedURL(ctx, file.ObjectKey, file.OriginalName, presignedURLExpiry)
}

// Delete drops the metadata row first; a failed object removal only leaves an orphan object
func (s *fileService) Delete(ctx context.Context, ownerID, fileID int64) error {
	file, err := s.fileRepo.GetByID(ctx, ownerID, fileID)
	if err != nil {
		return notFound(err, "file")
	}
	ok, err := s.fileRepo.Delete(ctx, ownerID, fileID)
	if err := missing(ok, err, "file"); err != nil {
		return err
	}
	if s.storage != nil {
		if err := s.storage.Delete(ctx, file.ObjectKey); err != nil {
			log.Printf("Failed to remove object %s: %v", file.ObjectKey, err)
		}
	}
	return nil
}
