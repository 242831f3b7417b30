package queue

import (
	"context"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
)

// RetryPolicy makes the task runner's retry behavior an explicit parameter
// instead of an annotation side effect. Only errors the predicate accepts
// are retried; everything else fails the task on the first attempt.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(error) bool
}

func DefaultRetryPolicy(maxAttempts int, backoff time.Duration) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if backoff <= 0 {
		backoff = 5 * time.Second
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		Backoff:     backoff,
		Retryable:   IsConnectivityError,
	}
}

// Delay implements linear backoff: attempt n waits n times the base value.
func (p RetryPolicy) Delay(n int, _ error, _ *asynq.Task) time.Duration {
	if n < 1 {
		n = 1
	}
	return time.Duration(n) * p.Backoff
}

// IsConnectivityError reports whether the failure looks like a broker or
// store being unreachable. Validation, parse and integrity failures never
// match: retrying a partially committed import would double-insert rows.
func IsConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}
