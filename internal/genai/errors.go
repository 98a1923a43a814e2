package genai

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrQuotaExhausted 服务端限流/容量不足，可按退避策略重试
	ErrQuotaExhausted = errors.New("ai quota exhausted")
	// ErrCapacityExceeded 重试次数耗尽后的终态错误
	ErrCapacityExceeded = errors.New("analysis failed: capacity exceeded")
	// ErrMalformedResponse 模型返回的文本去围栏后仍不是合法JSON，重试无意义
	ErrMalformedResponse = errors.New("ai returned malformed response")
	// ErrInvalidPlanResponse 计划生成响应中找不到可解析的JSON
	ErrInvalidPlanResponse = errors.New("invalid AI response")
)

// quotaError 携带服务端建议的重试等待时长
type quotaError struct {
	retryAfter time.Duration // 0 表示无提示
	raw        string
}

func (e *quotaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrQuotaExhausted, e.raw)
}

func (e *quotaError) Unwrap() error { return ErrQuotaExhausted }

// retryDelayPattern 匹配错误负载里形如 "retryDelay": "31s" 的提示
var retryDelayPattern = regexp.MustCompile(`"retryDelay"\s*:\s*"(\d+(?:\.\d+)?)s?"`)

func newQuotaError(raw string) *quotaError {
	e := &quotaError{raw: raw}
	if m := retryDelayPattern.FindStringSubmatch(raw); m != nil {
		if secs, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.retryAfter = time.Duration(secs * float64(time.Second))
		}
	}
	return e
}

// RetryHint 提取错误中服务端建议的等待时长
func RetryHint(err error) (time.Duration, bool) {
	var qe *quotaError
	if errors.As(err, &qe) && qe.retryAfter > 0 {
		return qe.retryAfter, true
	}
	return 0, false
}
