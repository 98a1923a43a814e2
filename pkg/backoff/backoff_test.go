package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), Policy{MaxAttempts: 5, Sleep: noSleep}, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	result, err := Do(context.Background(), Policy{MaxAttempts: 5, Sleep: noSleep}, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	_, err := Do(context.Background(), Policy{MaxAttempts: 3, Sleep: noSleep}, func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	_, err := Do(context.Background(), Policy{
		MaxAttempts: 5,
		IsRetryable: func(err error) bool { return false },
		Sleep:       noSleep,
	}, func(ctx context.Context) (int, error) {
		calls++
		return 0, fatal
	})

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, calls)
}

func TestDoReportsDelaysAndAttempts(t *testing.T) {
	var delays []time.Duration
	var attempts []int

	_, err := Do(context.Background(), Policy{
		MaxAttempts: 4,
		DelayFor:    Exponential(2 * time.Second),
		OnStatus: func(delay time.Duration, attempt int) {
			delays = append(delays, delay)
			attempts = append(attempts, attempt)
		},
		Sleep: noSleep,
	}, func(ctx context.Context) (int, error) {
		return 0, errors.New("transient")
	})

	require.Error(t, err)
	// 最后一次失败不再等待
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, delays)
	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, Policy{
		MaxAttempts: 5,
		DelayFor:    Exponential(time.Second),
	}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestExponential(t *testing.T) {
	delay := Exponential(5 * time.Second)
	assert.Equal(t, 5*time.Second, delay(1, nil))
	assert.Equal(t, 10*time.Second, delay(2, nil))
	assert.Equal(t, 40*time.Second, delay(4, nil))
}
