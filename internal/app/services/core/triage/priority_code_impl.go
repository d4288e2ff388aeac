package triage

import (
	"context"
	"esperanza-kiosk/internal/app/config"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type priorityCodeGenerator struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	counterTTL      time.Duration
}

// NewPriorityCodeGenerator keeps one counter per kiosk session. The counter
// expires together with the session and is removed on logout.
func NewPriorityCodeGenerator(redisRepository contracts.RedisRepository, logger *zap.Logger, internalConfig *config.InternalConfig) contracts.PriorityCodeGenerator {
	return &priorityCodeGenerator{
		RedisRepository: redisRepository,
		Log:             logger,
		counterTTL:      time.Duration(internalConfig.Session.IdleTTLInMinutes) * time.Minute,
	}
}

func (g *priorityCodeGenerator) Next(ctx context.Context, sessionID string) (string, error) {
	key := fmt.Sprintf(constvars.RedisKeyPriorityCounter, sessionID)

	counter, err := g.RedisRepository.Increment(ctx, key)
	if err != nil {
		g.Log.Error("priorityCodeGenerator.Next error incrementing counter",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return "", err
	}

	if err := g.RedisRepository.Expire(ctx, key, g.counterTTL); err != nil {
		g.Log.Warn("priorityCodeGenerator.Next error setting counter expiry",
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
	}

	code := FormatPriorityCode(counter)
	g.Log.Debug("priorityCodeGenerator.Next issued code",
		zap.String(constvars.LoggingSessionIDKey, sessionID),
		zap.String(constvars.LoggingPriorityCodeKey, code),
	)
	return code, nil
}

func (g *priorityCodeGenerator) Reset(ctx context.Context, sessionID string) error {
	return g.RedisRepository.Delete(ctx, fmt.Sprintf(constvars.RedisKeyPriorityCounter, sessionID))
}
