package locker

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

const lockKey = "kiosk:queue_board:lock"

func TestLockService_TryLock(t *testing.T) {
	t.Run("Acquired", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("TrySetNX", mock.Anything, lockKey, mock.AnythingOfType("string"), 10*time.Second).Return(true, nil).Once()

		acquired, token, err := newLockService(repo, zap.NewNop()).TryLock(context.Background(), lockKey, 10*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, token)
		repo.AssertExpectations(t)
	})

	t.Run("Held Elsewhere", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("TrySetNX", mock.Anything, lockKey, mock.Anything, mock.Anything).Return(false, nil).Once()

		acquired, token, err := newLockService(repo, zap.NewNop()).TryLock(context.Background(), lockKey, time.Second)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, token)
	})

	t.Run("Redis Error", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("TrySetNX", mock.Anything, lockKey, mock.Anything, mock.Anything).Return(false, errors.New("connection refused")).Once()

		acquired, _, err := newLockService(repo, zap.NewNop()).TryLock(context.Background(), lockKey, time.Second)
		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ownedBy := func(token string) func(mock.Arguments) {
		return func(args mock.Arguments) {
			*args.Get(2).(*string) = token
		}
	}

	t.Run("Owner Releases", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("GetJSON", mock.Anything, lockKey, mock.Anything).Run(ownedBy("token-1")).Return(true, nil).Once()
		repo.On("Delete", mock.Anything, []string{lockKey}).Return(nil).Once()

		require.NoError(t, newLockService(repo, zap.NewNop()).Unlock(context.Background(), lockKey, "token-1"))
		repo.AssertExpectations(t)
	})

	t.Run("Other Holder Keeps Lock", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("GetJSON", mock.Anything, lockKey, mock.Anything).Run(ownedBy("token-2")).Return(true, nil).Once()

		err := newLockService(repo, zap.NewNop()).Unlock(context.Background(), lockKey, "token-1")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Expired Lease", func(t *testing.T) {
		repo := new(mocks.MockRedisRepository)
		repo.On("GetJSON", mock.Anything, lockKey, mock.Anything).Return(false, nil).Once()

		assert.NoError(t, newLockService(repo, zap.NewNop()).Unlock(context.Background(), lockKey, "token-1"))
	})
}
