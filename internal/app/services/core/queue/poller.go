package queue

import (
	"context"
	"esperanza-kiosk/internal/app/contracts"
	"esperanza-kiosk/internal/pkg/constvars"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultPollInterval = 10 * time.Second

// Poller keeps the cached queue board warm. Replicas share a Redis lease so
// that refreshes do not overlap.
type Poller struct {
	usecase  contracts.QueueUsecase
	locker   contracts.LockerService
	log      *zap.Logger
	interval time.Duration
	timeout  time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(usecase contracts.QueueUsecase, locker contracts.LockerService, logger *zap.Logger, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if timeout <= 0 {
		timeout = interval
	}
	return &Poller{
		usecase:  usecase,
		locker:   locker,
		log:      logger,
		interval: interval,
		timeout:  timeout,
	}
}

// Start refreshes once and then on every tick until Stop or ctx is done.
func (p *Poller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.runOnce(runCtx)
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				p.runOnce(runCtx)
			}
		}
	}()
	p.log.Info("queue.poller: started", zap.Duration("interval", p.interval))
}

// Stop cancels the loop and waits for an in-flight refresh to return.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.log.Info("queue.poller: stopped")
}

func (p *Poller) runOnce(ctx context.Context) {
	acquired, token, err := p.locker.TryLock(ctx, constvars.RedisKeyQueueBoardLock, p.interval)
	if err != nil {
		p.log.Warn("queue.poller: lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := p.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyQueueBoardLock, token); err != nil {
			p.log.Warn("queue.poller: unlock failed", zap.Error(err))
		}
	}()

	refreshCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if _, err := p.usecase.RefreshBoard(refreshCtx); err != nil && ctx.Err() == nil {
		p.log.Warn("queue.poller: refresh failed", zap.Error(err))
	}
}
