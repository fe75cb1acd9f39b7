// Package poller drives the pull-based feed refresh. The message core
// is timer-free; a Poller fetches a channel's messages on a fixed
// interval and replaces its snapshot wholesale, so consumers never need
// to reconcile overlapping fetches — the last fetch wins.
package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/vahc/jambohub/pkg/jambohub/models"
)

// DefaultInterval is how often the feed is re-fetched
const DefaultInterval = 10 * time.Second

// FetchFunc returns the authoritative message list for a channel
type FetchFunc func(ctx context.Context) ([]models.Message, error)

// Poller periodically refreshes a message snapshot
type Poller struct {
	fetch    FetchFunc
	interval time.Duration

	mu       sync.RWMutex
	snapshot []models.Message

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Poller with the given fetch function. A non-positive
// interval falls back to the default.
func New(fetch FetchFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{fetch: fetch, interval: interval}
}

// Start begins polling until the context is cancelled or Stop is
// called. An immediate fetch runs before the first tick.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		p.Refresh(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Refresh(ctx)
			}
		}
	}()
}

// Stop halts polling and waits for the loop to exit
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Refresh performs one fetch and replaces the snapshot. The previous
// snapshot is kept when the fetch fails.
func (p *Poller) Refresh(ctx context.Context) {
	msgs, err := p.fetch(ctx)
	if err != nil {
		log.Printf("poller: fetch failed: %v", err)
		return
	}

	p.mu.Lock()
	p.snapshot = msgs
	p.mu.Unlock()
}

// Snapshot returns the most recent message list
func (p *Poller) Snapshot() []models.Message {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
