package queue

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts/mocks"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func setupQueue(t *testing.T) (*queueUsecase, *mocks.MockBackendClient, *mocks.MockRedisRepository) {
	t.Helper()
	backend := new(mocks.MockBackendClient)
	redis := new(mocks.MockRedisRepository)
	internalConfig := &config.InternalConfig{
		QueueBoard: config.AppQueue{CacheTTLInSeconds: 30},
	}
	uc := NewQueueUsecase(backend, redis, internalConfig, zap.NewNop()).(*queueUsecase)
	uc.now = func() time.Time { return fixedNow }
	return uc, backend, redis
}

func ptr(value float64) *float64 {
	return &value
}

func sampleQueue() []models.QueueEntry {
	return []models.QueueEntry{
		{ID: "Q-1", QueueNumber: "A-001", PriorityStatus: constvars.PriorityNormal, Status: constvars.QueueStatusComplete,
			Patient: models.PatientProfile{PatientID: "P-001", FirstName: "Ana", LastName: "Reyes"}},
		{ID: "Q-2", QueueNumber: "A-002", PriorityStatus: constvars.PriorityPriority, PriorityCode: "E01", Status: constvars.QueueStatusWaiting,
			Patient:      models.PatientProfile{PatientID: "P-002", FirstName: "Maria", MiddleInitial: "L", LastName: "Santos"},
			LatestVitals: &models.VitalsRecord{WeightKg: ptr(70), HeightCm: ptr(175)}},
		{ID: "Q-3", QueueNumber: "A-003", PriorityStatus: constvars.PriorityNormal, Status: constvars.QueueStatusInProgress,
			Patient: models.PatientProfile{PatientID: "P-003", FirstName: "Jose", LastName: "Cruz"}},
	}
}

func TestBuildBoard(t *testing.T) {
	t.Run("In Progress Is Now Serving", func(t *testing.T) {
		board := buildBoard(sampleQueue(), fixedNow)

		require.Len(t, board.Entries, 2, "completed entries are dropped")
		assert.Equal(t, 2, board.Total)
		assert.Equal(t, "A-002", board.Entries[0].QueueNumber)
		assert.Equal(t, "22.9", board.Entries[0].Vitals.BMI)
		require.NotNil(t, board.NowServing)
		assert.Equal(t, "Q-3", board.NowServing.ID)
		assert.Equal(t, fixedNow, board.RefreshedAt)
	})

	t.Run("First Waiting When Nobody Is Served", func(t *testing.T) {
		board := buildBoard(sampleQueue()[:2], fixedNow)
		require.NotNil(t, board.NowServing)
		assert.Equal(t, "Q-2", board.NowServing.ID)
	})

	t.Run("Empty Queue", func(t *testing.T) {
		board := buildBoard(nil, fixedNow)
		assert.Nil(t, board.NowServing)
		assert.NotNil(t, board.Entries)
		assert.Zero(t, board.Total)
	})
}

func TestQueueUsecase_GetBoard(t *testing.T) {
	t.Run("Cache Hit", func(t *testing.T) {
		uc, backend, redis := setupQueue(t)
		redis.On("GetJSON", mock.Anything, constvars.RedisKeyQueueBoard, mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*responses.QueueBoard) = responses.QueueBoard{Total: 4}
			}).Return(true, nil).Once()

		board, err := uc.GetBoard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 4, board.Total)
		backend.AssertNotCalled(t, "CurrentQueue", mock.Anything)
	})

	t.Run("Cache Miss Fetches Live", func(t *testing.T) {
		uc, backend, redis := setupQueue(t)
		redis.On("GetJSON", mock.Anything, constvars.RedisKeyQueueBoard, mock.Anything).Return(false, nil).Once()
		backend.On("CurrentQueue", mock.Anything).Return(sampleQueue(), nil).Once()
		redis.On("Set", mock.Anything, constvars.RedisKeyQueueBoard, mock.Anything, 30*time.Second).Return(nil).Once()

		board, err := uc.GetBoard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, board.Total)
		redis.AssertExpectations(t)
	})

	t.Run("Redis Down Still Serves", func(t *testing.T) {
		uc, backend, redis := setupQueue(t)
		redis.On("GetJSON", mock.Anything, constvars.RedisKeyQueueBoard, mock.Anything).Return(false, errors.New("connection refused")).Once()
		backend.On("CurrentQueue", mock.Anything).Return(sampleQueue(), nil).Once()
		redis.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()

		board, err := uc.GetBoard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, board.Total)
	})

	t.Run("Backend Down", func(t *testing.T) {
		uc, backend, redis := setupQueue(t)
		redis.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
		backend.On("CurrentQueue", mock.Anything).Return(nil, errors.New("backend down")).Once()

		_, err := uc.GetBoard(context.Background())
		assert.Error(t, err)
		redis.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestQueueUsecase_MarkComplete(t *testing.T) {
	t.Run("Refreshes Board", func(t *testing.T) {
		uc, backend, redis := setupQueue(t)
		backend.On("MarkQueueComplete", mock.Anything, "Q-3").Return(nil).Once()
		backend.On("CurrentQueue", mock.Anything).Return(sampleQueue()[:2], nil).Once()
		redis.On("Set", mock.Anything, constvars.RedisKeyQueueBoard, mock.Anything, mock.Anything).Return(nil).Once()

		board, err := uc.MarkComplete(context.Background(), "Q-3")
		require.NoError(t, err)
		assert.Equal(t, "Q-2", board.NowServing.ID)
		backend.AssertExpectations(t)
	})

	t.Run("Backend Rejects", func(t *testing.T) {
		uc, backend, _ := setupQueue(t)
		backend.On("MarkQueueComplete", mock.Anything, "Q-9").Return(errors.New("not found")).Once()

		_, err := uc.MarkComplete(context.Background(), "Q-9")
		assert.Error(t, err)
		backend.AssertNotCalled(t, "CurrentQueue", mock.Anything)
	})

	t.Run("Refresh Failure Drops Cache", func(t *testing.T) {
		uc, backend, redis := setupQueue(t)
		backend.On("MarkQueueComplete", mock.Anything, "Q-3").Return(nil).Once()
		backend.On("CurrentQueue", mock.Anything).Return(nil, errors.New("timeout")).Once()
		redis.On("Delete", mock.Anything, []string{constvars.RedisKeyQueueBoard}).Return(nil).Once()

		_, err := uc.MarkComplete(context.Background(), "Q-3")
		assert.Error(t, err)
		redis.AssertExpectations(t)
	})
}
