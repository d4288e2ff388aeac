package ratelimiter

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/contracts/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResourceLimiter_ApplyResourceLimiter(t *testing.T) {
	now := time.Unix(1_700_000_010, 0).UTC()
	key := "ratelimit:login:msantos:5666666"

	t.Run("First Hit Sets Window Expiry", func(t *testing.T) {
		redisRepository := new(mocks.MockRedisRepository)
		redisRepository.On("Increment", mock.Anything, key).Return(int64(1), nil).Once()
		redisRepository.On("Expire", mock.Anything, key, 301*time.Second).Return(nil).Once()

		out, err := NewResourceLimiter(redisRepository, zap.NewNop()).ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:      " MSantos ",
			LimiterGroupName:  "login",
			WindowDurationSec: 300,
			MaxQuota:          5,
			NowUTC:            now,
		})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		redisRepository.AssertExpectations(t)
	})

	t.Run("Over Quota", func(t *testing.T) {
		redisRepository := new(mocks.MockRedisRepository)
		redisRepository.On("Increment", mock.Anything, key).Return(int64(6), nil).Once()

		out, err := NewResourceLimiter(redisRepository, zap.NewNop()).ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:      "msantos",
			LimiterGroupName:  "login",
			WindowDurationSec: 300,
			MaxQuota:          5,
			NowUTC:            now,
		})
		require.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.Equal(t, 91, out.RetryAfterSecs)
		redisRepository.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Disabled Quota", func(t *testing.T) {
		redisRepository := new(mocks.MockRedisRepository)

		out, err := NewResourceLimiter(redisRepository, zap.NewNop()).ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:     "msantos",
			LimiterGroupName: "login",
		})
		require.NoError(t, err)
		assert.True(t, out.Allowed)
		redisRepository.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})

	t.Run("Redis Failure", func(t *testing.T) {
		redisRepository := new(mocks.MockRedisRepository)
		redisRepository.On("Increment", mock.Anything, key).Return(int64(0), errors.New("redis down")).Once()

		out, err := NewResourceLimiter(redisRepository, zap.NewNop()).ApplyResourceLimiter(context.Background(), &ApplyResourceLimiterInput{
			ResourceName:      "msantos",
			LimiterGroupName:  "login",
			WindowDurationSec: 300,
			MaxQuota:          5,
			NowUTC:            now,
		})
		assert.Error(t, err)
		assert.False(t, out.Allowed)
	})
}
