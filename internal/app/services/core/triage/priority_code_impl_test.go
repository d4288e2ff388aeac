package triage

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPriorityCodeGenerator(t *testing.T) {
	internalConfig := &config.InternalConfig{Session: config.AppSession{IdleTTLInMinutes: 30}}

	t.Run("Issues Code From Session Counter", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("Increment", mock.Anything, "kiosk:session:S-1:priority_counter").Return(int64(1), nil).Once()
		repo.On("Increment", mock.Anything, "kiosk:session:S-1:priority_counter").Return(int64(100), nil).Once()
		repo.On("Expire", mock.Anything, "kiosk:session:S-1:priority_counter", 30*time.Minute).Return(nil)

		generator := NewPriorityCodeGenerator(repo, zap.NewNop(), internalConfig)

		code, err := generator.Next(context.Background(), "S-1")
		require.NoError(t, err)
		assert.Equal(t, "E01", code)

		code, err = generator.Next(context.Background(), "S-1")
		require.NoError(t, err)
		assert.Equal(t, "E01", code, "the 100th code wraps")

		repo.AssertExpectations(t)
	})

	t.Run("Counter Failure", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("Increment", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

		generator := NewPriorityCodeGenerator(repo, zap.NewNop(), internalConfig)

		_, err := generator.Next(context.Background(), "S-1")
		assert.ErrorIs(t, err, assert.AnError)
		repo.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Reset Deletes Counter", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("Delete", mock.Anything, []string{"kiosk:session:S-1:priority_counter"}).Return(nil)

		generator := NewPriorityCodeGenerator(repo, zap.NewNop(), internalConfig)

		require.NoError(t, generator.Reset(context.Background(), "S-1"))
		repo.AssertExpectations(t)
	})
}
