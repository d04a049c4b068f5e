package mocks

import (
	"context"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockViewPreferenceService struct {
	mock.Mock
}

func (m *MockViewPreferenceService) pref(args mock.Arguments) (*model.ViewPreference, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ViewPreference), args.Error(1)
}

func (m *MockViewPreferenceService) Get(ctx context.Context, userID string, target service.ViewTarget) (*model.ViewPreference, error) {
	return m.pref(m.Called(ctx, userID, target))
}

func (m *MockViewPreferenceService) Set(ctx context.Context, userID string, target service.ViewTarget, mode model.ViewMode) (*model.ViewPreference, error) {
	return m.pref(m.Called(ctx, userID, target, mode))
}
