package worker

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// BalanceSource refreshes the cached balance of one user.
type BalanceSource interface {
	Balance(ctx context.Context, userID uint) (float64, error)
}

// ConnectedUsers lists users holding a payments connection.
type ConnectedUsers interface {
	Users() []uint
}

// BalancePoller keeps the balance cache warm for every connected user.
type BalancePoller struct {
	users       ConnectedUsers
	balances    BalanceSource
	parallelism int
	timeout     time.Duration
	loop        loop
}

func NewBalancePoller(users ConnectedUsers, balances BalanceSource, interval time.Duration) *BalancePoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	p := &BalancePoller{
		users:       users,
		balances:    balances,
		parallelism: 4,
		timeout:     interval,
	}
	p.loop = loop{interval: interval, tick: func(ctx context.Context) { p.Poll(ctx) }}
	return p
}

func (p *BalancePoller) Start(ctx context.Context) {
	p.loop.start(ctx)
}

func (p *BalancePoller) Close() {
	p.loop.close()
}

// Poll refreshes all balances once and returns how many succeeded. A failing
// user is logged and does not stop the others.
func (p *BalancePoller) Poll(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	users := p.users.Users()
	ok := make([]bool, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)
	for i, userID := range users {
		i, userID := i, userID
		g.Go(func() error {
			if _, err := p.balances.Balance(gctx, userID); err != nil {
				log.Printf("poll balance of user %d failed: %v", userID, err)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	refreshed := 0
	for _, done := range ok {
		if done {
			refreshed++
		}
	}
	return refreshed
}
