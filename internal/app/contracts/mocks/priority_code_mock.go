package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockPriorityCodeGenerator struct {
	mock.Mock
}

func (m *MockPriorityCodeGenerator) Next(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockPriorityCodeGenerator) Reset(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
