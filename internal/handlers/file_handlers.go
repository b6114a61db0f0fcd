package handlers

import (
	"context"
	"net/http"

	"maintdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// OwnerCheck reports services.ErrNotFound when the attachment owner does not exist
type OwnerCheck func(ctx context.Context, ownerID int64) error

// FileHandlers serves attachments for one owner kind (notices or contracts).
// Routes are mounted under the owner path, e.g. /notices/:id/files.
type FileHandlers struct {
	fileService services.FileService
	ownerExists OwnerCheck
}

func NewFileHandlers(fileService services.FileService, ownerExists OwnerCheck) *FileHandlers {
	return &FileHandlers{fileService: fileService, ownerExists: ownerExists}
}

func (h *FileHandlers) owner(c echo.Context) (int64, error) {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return 0, err
	}
	if h.ownerExists != nil {
		if err := h.ownerExists(c.Request().Context(), ownerID); err != nil {
			return 0, serviceError(err, "load attachment owner")
		}
	}
	return ownerID, nil
}

// UploadFile stores the multipart field "file"
func (h *FileHandlers) UploadFile(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	ownerID, err := h.owner(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	if file.Size > services.MaxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File size exceeds maximum limit of 20MB")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get(echo.HeaderContentType)
	stored, err := h.fileService.Upload(c.Request().Context(), ownerID, file.Filename, contentType, src, file.Size, actor)
	if err != nil {
		return serviceError(err, "upload file")
	}
	return c.JSON(http.StatusCreated, stored)
}

func (h *FileHandlers) ListFiles(c echo.Context) error {
	ownerID, err := h.owner(c)
	if err != nil {
		return err
	}
	files, err := h.fileService.List(c.Request().Context(), ownerID)
	if err != nil {
		return serviceError(err, "list files")
	}
	return c.JSON(http.StatusOK, files)
}

// DownloadFile redirects to a short-lived presigned URL
func (h *FileHandlers) DownloadFile(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "fileId")
	if err != nil {
		return err
	}
	url, err := h.fileService.DownloadURL(c.Request().Context(), ownerID, fileID)
	if err != nil {
		return serviceError(err, "download file")
	}
	return c.Redirect(http.StatusFound, url)
}

func (h *FileHandlers) DeleteFile(c echo.Context) error {
	ownerID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	fileID, err := pathID(c, "fileId")
	if err != nil {
		return err
	}
	if err := h.fileService.Delete(c.Request().Context(), ownerID, fileID); err != nil {
		return serviceError(err, "delete file")
	}
	return c.NoContent(http.StatusNoContent)
}
