package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/loader.go -pkg mocks -skip-ensure -fmt goimports . Loader

// Loader runs a view model load
type Loader interface {
	Load(ctx context.Context, force, clearCache bool) error
}

// Scheduler keeps the cache warm with periodic background loads
type Scheduler struct {
	loader   Loader
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// NewScheduler creates a new scheduler instance, interval below a minute is raised to a minute
func NewScheduler(loader Loader, interval time.Duration) *Scheduler {
	return &Scheduler{loader: loader, interval: max(interval, time.Minute)}
}

// Start runs a forced load right away, then a regular load every interval
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.refreshWorker(ctx)

	lgr.Printf("[INFO] scheduler started with refresh interval %v", s.interval)
}

// Stop gracefully stops the scheduler and waits for the running load to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// initial load skips the cache read, same as a fresh widget setup
	s.refresh(ctx, true)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx, false)
		}
	}
}

func (s *Scheduler) refresh(ctx context.Context, force bool) {
	start := time.Now()
	if err := s.loader.Load(ctx, force, false); err != nil {
		if ctx.Err() != nil {
			return
		}
		lgr.Printf("[WARN] scheduled refresh failed: %v", err)
		return
	}
	lgr.Printf("[DEBUG] scheduled refresh completed in %v", time.Since(start))
}
