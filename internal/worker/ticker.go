package worker

import (
	"context"
	"sync"
	"time"
)

// loop runs tick once right away and then every interval until Close.
type loop struct {
	interval time.Duration
	tick     func(ctx context.Context)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (l *loop) start(ctx context.Context) {
	if l.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		l.tick(loopCtx)
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				l.tick(loopCtx)
			}
		}
	}()
}

func (l *loop) close() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
}
