package idea

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubCloser struct {
	mu      sync.Mutex
	results []int
	calls   int
	err     error
}

func (c *stubCloser) CloseExpiredDiscussions(_ context.Context, limit int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	if len(c.results) == 0 {
		return 0, nil
	}
	n := c.results[0]
	c.results = c.results[1:]
	if n > limit {
		n = limit
	}
	return n, nil
}

func (c *stubCloser) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestSweeper_RunOnceDrainsFullBatches(t *testing.T) {
	closer := &stubCloser{results: []int{5, 5, 2}}
	w := NewSweeper(closer, time.Hour, 5, zap.NewNop())

	w.RunOnce(context.Background())
	assert.Equal(t, 3, closer.callCount())
}

func TestSweeper_NonRetryableErrorStopsTheRun(t *testing.T) {
	closer := &stubCloser{err: errors.New("syntax error at or near")}
	w := NewSweeper(closer, time.Hour, 5, zap.NewNop())

	w.RunOnce(context.Background())
	assert.Equal(t, 1, closer.callCount())
}

func TestSweeper_StartStopsWithContext(t *testing.T) {
	closer := &stubCloser{}
	w := NewSweeper(closer, 10*time.Millisecond, 5, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	assert.Eventually(t, func() bool { return closer.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	w.Wait()
}
