package jobs

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// HealthPinger is implemented by services that expose a health check.
type HealthPinger interface {
	Health(ctx context.Context) error
}

// ModelProbe periodically checks the upstream classification service so
// callers can skip it while it is down.
type ModelProbe struct {
	target   HealthPinger
	interval time.Duration
	timeout  time.Duration
	healthy  atomic.Bool
}

// NewModelProbe creates a probe. The service is assumed healthy until the
// first failed check.
func NewModelProbe(target HealthPinger, interval time.Duration) *ModelProbe {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	p := &ModelProbe{
		target:   target,
		interval: interval,
		timeout:  5 * time.Second,
	}
	p.healthy.Store(true)
	return p
}

// Healthy reports the result of the latest check.
func (p *ModelProbe) Healthy() bool {
	return p.healthy.Load()
}

// Start begins the background probe loop. It returns when ctx is done.
func (p *ModelProbe) Start(ctx context.Context) {
	log.Printf("Model probe started (interval: %v)", p.interval)

	// Run immediately on start
	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Model probe stopped")
			return
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

// check runs one health check and logs state transitions.
func (p *ModelProbe) check(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.target.Health(checkCtx)
	if ctx.Err() != nil {
		return
	}

	healthy := err == nil
	if was := p.healthy.Swap(healthy); was != healthy {
		if healthy {
			log.Println("Model probe: model service recovered")
		} else {
			log.Printf("Model probe: model service unavailable, using local classifier: %v", err)
		}
	}
}
