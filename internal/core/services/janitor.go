package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driven"
)

const janitorLockName = "draft-janitor"

// DraftJanitor periodically purges expired editor sessions.
//
// For multi-instance deployments, configure a DistributedLock so only one
// instance purges per cycle.
type DraftJanitor struct {
	purger driven.DraftPurger
	lock   driven.DistributedLock
	logger *slog.Logger

	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	interval time.Duration

	lockTTL      time.Duration
	lockRequired bool
}

// DraftJanitorConfig holds configuration for the janitor.
type DraftJanitorConfig struct {
	Purger       driven.DraftPurger
	Lock         driven.DistributedLock // Optional
	Logger       *slog.Logger
	Interval     time.Duration // default: 5m
	LockTTL      time.Duration // default: 1m
	LockRequired bool          // skip the cycle when the lock backend fails
}

// NewDraftJanitor creates a new janitor.
func NewDraftJanitor(cfg DraftJanitorConfig) *DraftJanitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}
	return &DraftJanitor{
		purger:       cfg.Purger,
		lock:         cfg.Lock,
		logger:       logger,
		interval:     interval,
		lockTTL:      lockTTL,
		lockRequired: cfg.LockRequired,
	}
}

// Start begins the purge loop. It runs until Stop is called or ctx is cancelled.
func (j *DraftJanitor) Start(ctx context.Context) {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.stopCh = make(chan struct{})
	j.doneCh = make(chan struct{})
	j.mu.Unlock()

	j.logger.Info("draft janitor starting", "interval", j.interval)
	go j.run(ctx)
}

// Stop halts the loop and waits for the current cycle to finish.
func (j *DraftJanitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	close(j.stopCh)
	j.mu.Unlock()

	<-j.doneCh

	j.mu.Lock()
	j.running = false
	j.mu.Unlock()

	j.logger.Info("draft janitor stopped")
}

// Running reports whether the loop is active
func (j *DraftJanitor) Running() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.running
}

func (j *DraftJanitor) run(ctx context.Context) {
	defer close(j.doneCh)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.PurgeOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.stopCh:
			return
		case <-ticker.C:
			j.PurgeOnce(ctx)
		}
	}
}

// PurgeOnce runs a single purge cycle and returns the number of drafts
// removed. It returns 0 when another instance holds the lock.
func (j *DraftJanitor) PurgeOnce(ctx context.Context) int64 {
	if j.lock != nil {
		acquired, err := j.lock.Acquire(ctx, janitorLockName, j.lockTTL)
		switch {
		case err != nil:
			j.logger.Warn("failed to acquire janitor lock", "error", err)
			if j.lockRequired {
				return 0
			}
		case !acquired:
			j.logger.Debug("janitor lock held by another instance, skipping cycle")
			return 0
		default:
			defer func() {
				if err := j.lock.Release(ctx, janitorLockName); err != nil {
					j.logger.Warn("failed to release janitor lock", "error", err)
				}
			}()
		}
	}

	n, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error("failed to purge expired drafts", "error", err)
		return 0
	}
	if n > 0 {
		j.logger.Info("purged expired drafts", "count", n)
	}
	return n
}
