package queue

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"
)

func TestIsConnectivityError(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":                {nil, false},
		"deadline":           {context.DeadlineExceeded, true},
		"wrapped deadline":   {fmt.Errorf("dial: %w", context.DeadlineExceeded), true},
		"conn refused":       {syscall.ECONNREFUSED, true},
		"conn reset":         {fmt.Errorf("write: %w", syscall.ECONNRESET), true},
		"broken pipe":        {syscall.EPIPE, true},
		"net op error":       {&net.OpError{Op: "dial", Err: errors.New("unreachable")}, true},
		"validation failure": {errors.New("status must be 0 or 1"), false},
		"duplicate key":      {errors.New("duplicate key value violates unique constraint"), false},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := IsConnectivityError(tc.err); got != tc.want {
				t.Fatalf("IsConnectivityError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestDefaultRetryPolicyBounds(t *testing.T) {
	t.Parallel()

	p := DefaultRetryPolicy(0, 0)
	if p.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts by default, got %d", p.MaxAttempts)
	}
	if p.Backoff != 5*time.Second {
		t.Fatalf("expected 5s backoff by default, got %v", p.Backoff)
	}
}

func TestRetryDelayIsLinear(t *testing.T) {
	t.Parallel()

	p := DefaultRetryPolicy(3, 2*time.Second)
	if got := p.Delay(1, nil, nil); got != 2*time.Second {
		t.Fatalf("attempt 1: got %v", got)
	}
	if got := p.Delay(3, nil, nil); got != 6*time.Second {
		t.Fatalf("attempt 3: got %v", got)
	}
	if got := p.Delay(0, nil, nil); got != 2*time.Second {
		t.Fatalf("attempt 0 should clamp to the base delay, got %v", got)
	}
}
