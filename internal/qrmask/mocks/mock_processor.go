package mocks

import (
	"github.com/stretchr/testify/mock"

	"qrcut/internal/qrmask"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Process(data []byte, filename string, opts qrmask.Options) ([]byte, int, error) {
	args := m.Called(data, filename, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}
