// Package jobcontext runs background jobs under a deadline with retry
// metadata carried on the context.
package jobcontext

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

const (
	// DefaultTimeout bounds a single job run including retries
	DefaultTimeout    = 2 * time.Minute
	defaultMaxRetries = 3
)

// Metadata describes the job a context belongs to
type Metadata struct {
	JobID      uuid.UUID
	JobType    string
	Attempt    int
	MaxRetries int
	StartTime  time.Time
}

// JobBegin derives a job context carrying metadata and a timeout
func JobBegin(parent context.Context, jobType string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	md := Metadata{
		JobID:      uuid.New(),
		JobType:    jobType,
		MaxRetries: defaultMaxRetries,
		StartTime:  time.Now(),
	}
	return context.WithValue(ctx, ctxKey{}, md), cancel
}

// JobEnd runs jobFunc, retrying retryable failures with exponential backoff.
// Panics are converted into errors and not retried.
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) error {
	return jobEnd(ctx, jobFunc, newBackOff())
}

func jobEnd(ctx context.Context, jobFunc func(context.Context) error, bo backoff.BackOff) error {
	md := FromContext(ctx)

	op := func() (err error) {
		runCtx := context.WithValue(ctx, ctxKey{}, md)
		md.Attempt++

		defer func() {
			if p := recover(); p != nil {
				err = backoff.Permanent(fmt.Errorf("panic recovered: %v", p))
			}
		}()

		if runCtx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("context cancelled before job execution: %w", runCtx.Err()))
		}

		err = jobFunc(runCtx)
		if err != nil && !IsRetryableError(err) {
			return backoff.Permanent(fmt.Errorf("non-retryable error: %w", err))
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(md.MaxRetries)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		if md.Attempt > md.MaxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %w", md.MaxRetries, err)
		}
		return err
	}
	return nil
}

func newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 10 * time.Second
	return bo
}

// FromContext returns the job metadata, or the zero value outside a job.
// Attempt counts from zero for the first run.
func FromContext(ctx context.Context) Metadata {
	md, _ := ctx.Value(ctxKey{}).(Metadata)
	return md
}

// WithMaxRetries overrides how many times a failing job is retried
func WithMaxRetries(ctx context.Context, n int) context.Context {
	md := FromContext(ctx)
	md.MaxRetries = n
	return context.WithValue(ctx, ctxKey{}, md)
}

// LogFields describes the job for structured logs
func LogFields(ctx context.Context) []zap.Field {
	md := FromContext(ctx)
	if md.JobID == uuid.Nil {
		return nil
	}
	return []zap.Field{
		zap.String("job_id", md.JobID.String()),
		zap.String("job_type", md.JobType),
		zap.Int("attempt", md.Attempt),
		zap.Duration("elapsed", time.Since(md.StartTime)),
	}
}

// IsRetryableError reports whether err looks transient: a dropped connection,
// a lock conflict or an overloaded upstream
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var retryableMarkers = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"i/o timeout",
	"broken pipe",
	"deadlock",
	"40001", // serialization_failure
	"40p01", // deadlock_detected
	"too many clients",
	"service unavailable",
	"try again",
}
