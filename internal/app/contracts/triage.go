package contracts

import "context"

type PriorityCodeGenerator interface {
	Next(ctx context.Context, sessionID string) (string, error)
	Reset(ctx context.Context, sessionID string) error
}
