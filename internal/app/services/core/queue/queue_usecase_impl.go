package queue

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/shared/metrics"
	"esperanza-kiosk/internal/app/services/shared/vitalsview"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/dto/responses"
	"esperanza-kiosk/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type queueUsecase struct {
	BackendClient   contracts.BackendClient
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
	cacheTTL        time.Duration
	now             func() time.Time
}

func NewQueueUsecase(
	backendClient contracts.BackendClient,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.QueueUsecase {
	return &queueUsecase{
		BackendClient:   backendClient,
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
		Log:             logger,
		cacheTTL:        time.Duration(internalConfig.QueueBoard.CacheTTLInSeconds) * time.Second,
		now:             time.Now,
	}
}

// GetBoard serves the cached board and falls back to a live fetch on a miss.
func (uc *queueUsecase) GetBoard(ctx context.Context) (*responses.QueueBoard, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("queueUsecase.GetBoard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	var board responses.QueueBoard
	found, err := uc.RedisRepository.GetJSON(ctx, constvars.RedisKeyQueueBoard, &board)
	if err != nil {
		uc.Log.Warn("queueUsecase.GetBoard cache unavailable, fetching live",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if found {
		return &board, nil
	}

	return uc.RefreshBoard(ctx)
}

func (uc *queueUsecase) RefreshBoard(ctx context.Context) (*responses.QueueBoard, error) {
	requestID := utils.GetRequestID(ctx)

	entries, err := uc.BackendClient.CurrentQueue(ctx)
	metrics.RecordQueueBoardRefresh(err)
	if err != nil {
		uc.Log.Error("queueUsecase.RefreshBoard error calling BackendClient.CurrentQueue",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	board := buildBoard(entries, uc.now())
	if err := uc.RedisRepository.Set(ctx, constvars.RedisKeyQueueBoard, board, uc.cacheTTL); err != nil {
		uc.Log.Warn("queueUsecase.RefreshBoard error caching board",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Debug("queueUsecase.RefreshBoard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, board.Total),
	)
	return board, nil
}

func (uc *queueUsecase) MarkComplete(ctx context.Context, queueID string) (*responses.QueueBoard, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("queueUsecase.MarkComplete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueIDKey, queueID),
	)

	if err := uc.BackendClient.MarkQueueComplete(ctx, queueID); err != nil {
		uc.Log.Error("queueUsecase.MarkComplete error calling BackendClient.MarkQueueComplete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueIDKey, queueID),
			zap.Error(err),
		)
		return nil, err
	}

	board, err := uc.RefreshBoard(ctx)
	if err != nil {
		// the entry is complete on the backend, so the cached board is stale either way
		if delErr := uc.RedisRepository.Delete(ctx, constvars.RedisKeyQueueBoard); delErr != nil {
			uc.Log.Warn("queueUsecase.MarkComplete error dropping cached board",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	uc.Log.Info("queueUsecase.MarkComplete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueIDKey, queueID),
	)
	return board, nil
}

// buildBoard keeps the backend order and drops completed entries. The entry
// being served is the first in progress, else the first waiting.
func buildBoard(entries []models.QueueEntry, now time.Time) *responses.QueueBoard {
	board := &responses.QueueBoard{
		Entries:     make([]responses.QueueEntry, 0, len(entries)),
		RefreshedAt: now,
	}

	var firstWaiting *responses.QueueEntry
	for _, entry := range entries {
		if entry.Status == constvars.QueueStatusComplete {
			continue
		}
		board.Entries = append(board.Entries, vitalsview.QueueEntry(entry, now))
	}
	for i := range board.Entries {
		entry := &board.Entries[i]
		if entry.Status == constvars.QueueStatusInProgress && board.NowServing == nil {
			board.NowServing = entry
		}
		if entry.Status == constvars.QueueStatusWaiting && firstWaiting == nil {
			firstWaiting = entry
		}
	}
	if board.NowServing == nil {
		board.NowServing = firstWaiting
	}

	board.Total = len(board.Entries)
	return board
}
