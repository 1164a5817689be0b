package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qrcut/internal/model"
	"qrcut/internal/qrmask"
	"qrcut/internal/service"
)

type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) Process(ctx context.Context, uploads []service.Upload, opts qrmask.Options) (*service.BatchResult, error) {
	args := m.Called(ctx, uploads, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockProcessingService) RecentLogs(ctx context.Context) ([]model.ProcessLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProcessLog), args.Error(1)
}
