package mocks

import (
	"context"

	"taskboard/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockViewPreferenceRepository struct {
	mock.Mock
}

func (m *MockViewPreferenceRepository) Get(ctx context.Context, userID string, section, projectID *string) (*model.ViewPreference, error) {
	args := m.Called(ctx, userID, section, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ViewPreference), args.Error(1)
}

func (m *MockViewPreferenceRepository) Upsert(ctx context.Context, p *model.ViewPreference) (*model.ViewPreference, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ViewPreference), args.Error(1)
}
