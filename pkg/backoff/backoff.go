package backoff

import (
	"context"
	"time"
)

// Policy 控制重试行为。所有判定均注入，便于测试与复用
type Policy struct {
	// MaxAttempts 总尝试次数（含首次），至少为1
	MaxAttempts int

	// IsRetryable 判断错误是否值得重试，nil 表示全部重试
	IsRetryable func(err error) bool

	// DelayFor 返回第 attempt 次失败后的等待时长（attempt 从1开始）。
	// 错误中自带的等待提示也在这里解析
	DelayFor func(attempt int, err error) time.Duration

	// OnStatus 每次等待前回调，用于向调用方透出进度
	OnStatus func(delay time.Duration, attempt int)

	// Sleep 可替换的休眠实现，nil 时使用真实时钟
	Sleep func(ctx context.Context, d time.Duration) error
}

// Exponential 返回从 base 开始每次翻倍的延迟函数
func Exponential(base time.Duration) func(attempt int, err error) time.Duration {
	return func(attempt int, err error) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
		}
		return d
	}
}

// Do 执行 op，按策略重试。返回最后一次的结果或错误
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = realSleep
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		if p.IsRetryable != nil && !p.IsRetryable(err) {
			break
		}

		var delay time.Duration
		if p.DelayFor != nil {
			delay = p.DelayFor(attempt, err)
		}
		if p.OnStatus != nil {
			p.OnStatus(delay, attempt)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func realSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
