package idea

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/idea-hub/pkg/jobcontext"
)

const sweepJobType = "discussion_sweep"

// DiscussionCloser is the part of the service the sweeper drives
type DiscussionCloser interface {
	CloseExpiredDiscussions(ctx context.Context, limit int) (int, error)
}

// Sweeper periodically moves expired discussions to pending_decision so the status
// column matches the countdown without anyone opening the idea
type Sweeper struct {
	closer   DiscussionCloser
	interval time.Duration
	batch    int
	logger   *zap.Logger

	wg sync.WaitGroup
}

// NewSweeper creates a sweeper running every interval over at most batch ideas per run
func NewSweeper(closer DiscussionCloser, interval time.Duration, batch int, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		closer:   closer,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
}

// Start launches the worker; it stops when ctx is cancelled
func (w *Sweeper) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.logger.Info("🚀 Discussion sweeper started", zap.Duration("interval", w.interval))

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.RunOnce(ctx)
			select {
			case <-ctx.Done():
				w.logger.Info("🛑 Discussion sweeper stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Wait blocks until the worker has returned
func (w *Sweeper) Wait() {
	w.wg.Wait()
}

// RunOnce closes expired discussions batch by batch until none are left
func (w *Sweeper) RunOnce(parent context.Context) {
	for parent.Err() == nil {
		var closed int
		jobCtx, cancel := jobcontext.JobBegin(parent, sweepJobType, 0)
		err := jobcontext.JobEnd(jobCtx, func(ctx context.Context) error {
			n, err := w.closer.CloseExpiredDiscussions(ctx, w.batch)
			closed += n
			return err
		})

		if err != nil {
			fields := append(jobcontext.LogFields(jobCtx), zap.Int("closed", closed), zap.Error(err))
			w.logger.Error("❌ Discussion sweep failed", fields...)
			cancel()
			return
		}
		cancel()
		if closed > 0 {
			w.logger.Info("✅ Closed expired discussions", zap.Int("count", closed))
		}
		if closed < w.batch {
			return
		}
	}
}
