package mocks

import (
	"context"
	"io"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) UploadURL(ctx context.Context, userID string, in service.UploadRequest) (*service.UploadTicket, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadTicket), args.Error(1)
}

func (m *MockAttachmentService) Upload(ctx context.Context, userID, taskID string, r io.Reader, filename, contentType string, size int64) (*model.Attachment, error) {
	args := m.Called(ctx, userID, taskID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) DownloadURL(ctx context.Context, userID, id string) (*service.DownloadTicket, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DownloadTicket), args.Error(1)
}

func (m *MockAttachmentService) ListByTask(ctx context.Context, userID, taskID string) ([]model.Attachment, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentService) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockAttachmentService) Open(ctx context.Context, userID, id string) (io.ReadCloser, *model.Attachment, error) {
	args := m.Called(ctx, userID, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	a, _ := args.Get(1).(*model.Attachment)
	return rc, a, args.Error(2)
}
