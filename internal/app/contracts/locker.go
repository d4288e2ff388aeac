package contracts

import (
	"context"
	"time"
)

// LockerService hands out short Redis leases so that only one kiosk replica
// runs a periodic job at a time.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
