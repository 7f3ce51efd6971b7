package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sadaqah_go/internal/fault"
)

func TestRetryPolicy_OnlyTimeoutRetried(t *testing.T) {
	var delays []time.Duration
	p := noSleep(&delays)

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return fault.New(fault.CategoryServer, fault.MsgServer)
	})
	assert.Equal(t, fault.CategoryServer, fault.CategoryOf(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestRetryPolicy_MaxAttempts(t *testing.T) {
	for _, n := range []int{0, 1, 3, 5} {
		var delays []time.Duration
		p := noSleep(&delays)
		p.MaxAttempts = n

		calls := 0
		p.Do(context.Background(), "op", func(context.Context) error {
			calls++
			return fault.New(fault.CategoryTimeout, fault.MsgTimeout)
		})

		want := n
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, calls, "maxAttempts=%d", n)
		assert.Len(t, delays, want-1)
	}
}

func TestRetryPolicy_StopsWhenCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var delays []time.Duration
	p := noSleep(&delays)

	calls := 0
	err := p.Do(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return fault.Classify(context.Canceled)
	})
	assert.Equal(t, fault.CategoryTimeout, fault.CategoryOf(err))
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_SleepInterrupted(t *testing.T) {
	p := DefaultRetryPolicy()
	p.Sleep = func(context.Context, time.Duration) error { return errors.New("interrupted") }

	calls := 0
	err := p.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return fault.New(fault.CategoryTimeout, fault.MsgTimeout)
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, fault.CategoryTimeout, fault.CategoryOf(err))
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
