package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qrcut/internal/model"
)

type MockProcessLogRepository struct {
	mock.Mock
}

func (m *MockProcessLogRepository) Append(ctx context.Context, entries []model.ProcessLog) ([]model.ProcessLog, error) {
	args := m.Called(ctx, entries)
	if f, ok := args.Get(0).(func(context.Context, []model.ProcessLog) []model.ProcessLog); ok {
		return f(ctx, entries), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProcessLog), args.Error(1)
}

func (m *MockProcessLogRepository) Recent(ctx context.Context, limit int) ([]model.ProcessLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProcessLog), args.Error(1)
}
