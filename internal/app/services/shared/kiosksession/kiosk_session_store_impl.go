package kiosksession

import (
	"context"
	"errors"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/exceptions"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type kioskSessionStore struct {
	client     *redis.Client
	Log        *zap.Logger
	idleTTL    time.Duration
	maxRetries int
}

func NewKioskSessionStore(client *redis.Client, logger *zap.Logger, internalConfig *config.InternalConfig) contracts.SessionStore {
	maxRetries := internalConfig.Session.UpdateMaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	return &kioskSessionStore{
		client:     client,
		Log:        logger,
		idleTTL:    time.Duration(internalConfig.Session.IdleTTLInMinutes) * time.Minute,
		maxRetries: maxRetries,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyKioskSession, sessionID)
}

func priorityCounterKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisKeyPriorityCounter, sessionID)
}

func (s *kioskSessionStore) Create(ctx context.Context, session *models.KioskSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = s.client.Set(ctx, sessionKey(session.SessionID), payload, s.idleTTL).Err()
	if err != nil {
		s.Log.Error("kioskSessionStore.Create error setting session",
			zap.String(constvars.LoggingSessionIDKey, session.SessionID),
			zap.Error(err),
		)
		return exceptions.ErrRedisSetData(err)
	}
	return nil
}

// Get loads the session and slides its idle expiry.
func (s *kioskSessionStore) Get(ctx context.Context, sessionID string) (*models.KioskSession, error) {
	key := sessionKey(sessionID)
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, exceptions.ErrSessionNotFound(nil)
	} else if err != nil {
		return nil, exceptions.ErrRedisGetNoData(err, key)
	}

	session := new(models.KioskSession)
	if err := json.Unmarshal(data, session); err != nil {
		return nil, exceptions.ErrRedisGetData(err)
	}

	pipe := s.client.Pipeline()
	pipe.Expire(ctx, key, s.idleTTL)
	pipe.Expire(ctx, priorityCounterKey(sessionID), s.idleTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.Log.Warn("kioskSessionStore.Get error sliding session expiry",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}
	return session, nil
}

func (s *kioskSessionStore) Update(ctx context.Context, sessionID string, fn func(session *models.KioskSession) error) (*models.KioskSession, error) {
	key := sessionKey(sessionID)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		var updated *models.KioskSession
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err == redis.Nil {
				return exceptions.ErrSessionNotFound(nil)
			} else if err != nil {
				return exceptions.ErrRedisGetNoData(err, key)
			}

			session := new(models.KioskSession)
			if err := json.Unmarshal(data, session); err != nil {
				return exceptions.ErrRedisGetData(err)
			}

			if err := fn(session); err != nil {
				return err
			}
			session.SetUpdatedAt(time.Now())

			payload, err := json.Marshal(session)
			if err != nil {
				return exceptions.ErrCannotMarshalJSON(err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, s.idleTTL)
				pipe.Expire(ctx, priorityCounterKey(sessionID), s.idleTTL)
				return nil
			})
			if err != nil {
				return err
			}
			updated = session
			return nil
		}, key)

		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}

		s.Log.Debug("kioskSessionStore.Update conflict, retrying",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Int(constvars.LoggingAttemptKey, attempt),
		)
	}

	return nil, exceptions.ErrSessionConflict(redis.TxFailedErr)
}

func (s *kioskSessionStore) Delete(ctx context.Context, sessionID string) error {
	err := s.client.Del(ctx, sessionKey(sessionID), priorityCounterKey(sessionID)).Err()
	if err != nil {
		return exceptions.ErrRedisDeleteData(err)
	}
	return nil
}
