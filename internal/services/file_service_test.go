package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"maintdesk/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey(OwnerNotice, 12, "report.pdf")

	assert.True(t, strings.HasPrefix(key, "notices/12/"))
	assert.True(t, strings.HasSuffix(key, "-report.pdf"))
	assert.NotEqual(t, key, ObjectKey(OwnerNotice, 12, "report.pdf"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "evil.sh", sanitizeFilename("../../etc/evil.sh"))
	assert.Equal(t, "doc.xlsx", sanitizeFilename(`C:\Users\kim\doc.xlsx`))
	assert.Equal(t, "a_b.txt", sanitizeFilename("a\"b.txt"))
	assert.Equal(t, "file", sanitizeFilename(""))
}

func TestFileUpload_Limits(t *testing.T) {
	svc := NewFileService(OwnerContract, &MockFileRepository{}, &MockObjectStorage{})

	_, err := svc.Upload(context.Background(), 1, "a.txt", "text/plain", strings.NewReader(""), 0, "kim")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(context.Background(), 1, "a.bin", "application/octet-stream", strings.NewReader("x"), MaxUploadSize+1, "kim")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFileUpload_Stores(t *testing.T) {
	repo := &MockFileRepository{}
	storage := &MockObjectStorage{}
	body := strings.NewReader("hello")

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "contracts/5/") && strings.HasSuffix(key, "-manual.pdf")
	}), body, int64(5), "application/pdf").Return(nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *models.StoredFile) bool {
		return f.OwnerID == 5 && f.OriginalName == "manual.pdf" && f.UploadedBy == "kim"
	})).Return(nil).Once()

	file, err := NewFileService(OwnerContract, repo, storage).Upload(context.Background(), 5, "manual.pdf", "application/pdf", body, 5, "kim")

	require.NoError(t, err)
	assert.Equal(t, int64(5), file.Size)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileUpload_RemovesOrphanOnInsertFailure(t *testing.T) {
	repo := &MockFileRepository{}
	storage := &MockObjectStorage{}

	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, int64(3), "text/plain").Return(nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
	storage.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	_, err := NewFileService(OwnerNotice, repo, storage).Upload(context.Background(), 1, "a.txt", "text/plain", strings.NewReader("abc"), 3, "kim")

	assert.Error(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileDownloadURL(t *testing.T) {
	repo := &MockFileRepository{}
	storage := &MockObjectStorage{}
	repo.On("GetByID", mock.Anything, int64(1), int64(9)).Return(&models.StoredFile{ObjectKey: "notices/1/x-a.txt", OriginalName: "a.txt"}, nil).Once()
	repo.On("GetByID", mock.Anything, int64(1), int64(10)).Return(nil, pgx.ErrNoRows).Once()
	storage.On("PresignedURL", mock.Anything, "notices/1/x-a.txt", "a.txt", presignedURLExpiry).Return("http://minio/signed", nil).Once()

	svc := NewFileService(OwnerNotice, repo, storage)
	url, err := svc.DownloadURL(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Equal(t, "http://minio/signed", url)

	_, err = svc.DownloadURL(context.Background(), 1, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
