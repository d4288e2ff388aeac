package locker

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"esperanza-kiosk/internal/pkg/utils"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	lockerServiceInstance contracts.LockerService
	onceLockerService     sync.Once
)

type lockService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewLockService(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	onceLockerService.Do(func() {
		lockerServiceInstance = newLockService(redisRepository, logger)
	})
	return lockerServiceInstance
}

func newLockService(redisRepository contracts.RedisRepository, logger *zap.Logger) *lockService {
	return &lockService{
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID := utils.GetRequestID(ctx)

	token := uuid.NewString()
	acquired, err := s.RedisRepository.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling RedisRepository.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}
	if !acquired {
		s.Log.Debug("lockService.TryLock lock held elsewhere",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, token),
		zap.Duration(constvars.LoggingLockTTLKey, expiration),
	)
	return true, token, nil
}

// Unlock releases key only while it still holds token. A lease that already
// expired is not an error.
func (s *lockService) Unlock(ctx context.Context, key, token string) error {
	requestID := utils.GetRequestID(ctx)

	var stored string
	found, err := s.RedisRepository.GetJSON(ctx, key, &stored)
	if err != nil {
		s.Log.Error("lockService.Unlock error reading lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	if !found {
		return nil
	}

	if stored != token {
		err := exceptions.ErrRedisUnlock(errors.New("lock owned by another holder"))
		s.Log.Warn("lockService.Unlock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	return s.RedisRepository.Delete(ctx, key)
}

