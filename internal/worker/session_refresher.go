package worker

import (
	"context"
	"log"
	"time"
)

// LinkProvisioning fills in meeting links that are still missing.
type LinkProvisioning interface {
	ProvisionPending(ctx context.Context, limit int) (int, error)
}

type SessionRefresher struct {
	ledger    LinkProvisioning
	batchSize int
	loop      loop
}

func NewSessionRefresher(ledger LinkProvisioning, interval time.Duration) *SessionRefresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	r := &SessionRefresher{ledger: ledger, batchSize: 100}
	r.loop = loop{interval: interval, tick: func(ctx context.Context) { r.Refresh(ctx) }}
	return r
}

func (r *SessionRefresher) Start(ctx context.Context) {
	r.loop.start(ctx)
}

func (r *SessionRefresher) Close() {
	r.loop.close()
}

func (r *SessionRefresher) Refresh(ctx context.Context) int {
	updated, err := r.ledger.ProvisionPending(ctx, r.batchSize)
	if err != nil && ctx.Err() == nil {
		log.Printf("refresh meeting links failed: %v", err)
	}
	if updated > 0 {
		log.Printf("assigned meeting links to %d sessions", updated)
	}
	return updated
}
