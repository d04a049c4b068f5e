package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) PurgeTrash(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockMaintenanceService) GenerateRecurring(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockMaintenanceService) ArchiveCompleted(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
