package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/storage"
)

// UploadRequest is the input of AttachmentService.UploadURL.
type UploadRequest struct {
	TaskID   string  `json:"taskId" validate:"required,uuid"`
	Filename string  `json:"filename" validate:"required,min=1,max=255"`
	MimeType *string `json:"mimeType" validate:"omitempty,max=255"`
	Size     *int64  `json:"size" validate:"omitempty,min=0"`
}

// UploadTicket is a presigned PUT URL and the attachment row it belongs to.
type UploadTicket struct {
	URL        string           `json:"uploadUrl"`
	Attachment model.Attachment `json:"attachment"`
}

// DownloadTicket is a presigned GET URL for an attachment.
type DownloadTicket struct {
	URL      string `json:"downloadUrl"`
	Filename string `json:"filename"`
}

// AttachmentService defines the use cases for task attachments.
type AttachmentService interface {
	// UploadURL records the attachment and returns a presigned URL the client
	// uploads the content to.
	UploadURL(ctx context.Context, userID string, in UploadRequest) (*UploadTicket, error)

	// Upload streams the content to object storage, saves metadata to DB, and
	// rolls back storage if DB save fails.
	Upload(ctx context.Context, userID, taskID string, r io.Reader, filename, contentType string, size int64) (*model.Attachment, error)

	DownloadURL(ctx context.Context, userID, id string) (*DownloadTicket, error)

	// Open streams the content through the API. The caller closes the reader.
	Open(ctx context.Context, userID, id string) (io.ReadCloser, *model.Attachment, error)
	ListByTask(ctx context.Context, userID, taskID string) ([]model.Attachment, error)

	// Delete removes the object and then the row. A missing object is not an error.
	Delete(ctx context.Context, userID, id string) error
}

type attachmentService struct {
	repo   repository.AttachmentRepository
	tasks  repository.TaskRepository
	store  storage.Storage
	expiry time.Duration
}

// NewAttachmentService constructs a new AttachmentService. expiry bounds the
// lifetime of presigned URLs.
func NewAttachmentService(
	repo repository.AttachmentRepository,
	tasks repository.TaskRepository,
	store storage.Storage,
	expiry time.Duration,
) AttachmentService {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &attachmentService{repo: repo, tasks: tasks, store: store, expiry: expiry}
}

// objectKey builds <user>/<task>/<uuid><ext>; the original name only contributes its extension.
func objectKey(userID, taskID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(userID, taskID, uuid.New().String()+ext)
}

func (s *attachmentService) ownTask(ctx context.Context, userID, taskID string) error {
	if taskID == "" {
		return ErrIDRequired
	}
	_, err := s.tasks.FindByID(ctx, userID, taskID)
	return notFound("task", err)
}

func (s *attachmentService) UploadURL(ctx context.Context, userID string, in UploadRequest) (*UploadTicket, error) {
	if err := s.ownTask(ctx, userID, in.TaskID); err != nil {
		return nil, err
	}
	key := objectKey(userID, in.TaskID, in.Filename)
	url, err := s.store.PresignPut(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	a, err := s.repo.Create(ctx, &model.Attachment{
		TaskID:   in.TaskID,
		Filename: in.Filename,
		MimeType: in.MimeType,
		Size:     in.Size,
		S3Key:    key,
	})
	if err != nil {
		return nil, err
	}
	return &UploadTicket{URL: url, Attachment: *a}, nil
}

func (s *attachmentService) Upload(ctx context.Context, userID, taskID string, r io.Reader, filename, contentType string, size int64) (*model.Attachment, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if err := s.ownTask(ctx, userID, taskID); err != nil {
		return nil, err
	}
	key := objectKey(userID, taskID, filename)

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	a := &model.Attachment{
		TaskID:   taskID,
		Filename: filename,
		Size:     &info.Size,
		S3Key:    info.Key,
	}
	if info.ContentType != "" {
		a.MimeType = &info.ContentType
	} else if contentType != "" {
		a.MimeType = &contentType
	}
	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *attachmentService) DownloadURL(ctx context.Context, userID, id string) (*DownloadTicket, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, notFound("attachment", err)
	}
	url, err := s.store.PresignGet(ctx, a.S3Key, a.Filename, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign download: %w", err)
	}
	return &DownloadTicket{URL: url, Filename: a.Filename}, nil
}

func (s *attachmentService) Open(ctx context.Context, userID, id string) (io.ReadCloser, *model.Attachment, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, nil, notFound("attachment", err)
	}
	rc, _, err := s.store.Get(ctx, a.S3Key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil, &NotFoundError{Resource: "attachment content"}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open object: %w", err)
	}
	return rc, a, nil
}

func (s *attachmentService) ListByTask(ctx context.Context, userID, taskID string) ([]model.Attachment, error) {
	if err := s.ownTask(ctx, userID, taskID); err != nil {
		return nil, err
	}
	return s.repo.ListByTask(ctx, taskID)
}

func (s *attachmentService) Delete(ctx context.Context, userID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return notFound("attachment", err)
	}
	// Storage first; if this fails, keep the row so the object is not orphaned.
	if err := s.store.Delete(ctx, a.S3Key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, a.ID)
}
