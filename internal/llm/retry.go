package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RetryingGenerator 在每次调用前等待限流器，遇到 429 时指数退避重试
type RetryingGenerator struct {
	next       Generator
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	log        logrus.FieldLogger
}

// NewRetryingGenerator 限流参数: Limit=RPM/60, Burst=QPS
func NewRetryingGenerator(next Generator, rpm, qps, maxRetries int, log logrus.FieldLogger) *RetryingGenerator {
	limit := rate.Inf
	if rpm > 0 {
		limit = rate.Limit(float64(rpm) / 60.0)
	}
	if qps <= 0 {
		qps = 1
	}
	return &RetryingGenerator{
		next:       next,
		limiter:    rate.NewLimiter(limit, qps),
		maxRetries: maxRetries,
		baseDelay:  2 * time.Second,
		log:        log,
	}
}

func (r *RetryingGenerator) Name() string { return r.next.Name() }

func (r *RetryingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for i := 0; i <= r.maxRetries; i++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %w", ErrCallFailed, err)
		}

		text, err := r.next.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isRateLimited(err) || i == r.maxRetries {
			break
		}

		delay := r.baseDelay * time.Duration(1<<i)
		r.log.Warnf("%s 触发限流，%v 后重试 (%d/%d)", r.next.Name(), delay, i+1, r.maxRetries)
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrCallFailed, ctx.Err())
		case <-time.After(delay):
		}
	}
	return "", fmt.Errorf("%w: %w", ErrCallFailed, lastErr)
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted")
}
