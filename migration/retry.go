package migration

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var retryInitialInterval = 500 * time.Millisecond

type retryPolicy struct {
	retries int
}

// do runs op once, plus up to p.retries more times with exponential backoff.
func (p retryPolicy) do(ctx context.Context, op func() error) error {
	if p.retries <= 0 {
		return op()
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = retryInitialInterval
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.retries)), ctx)
	return backoff.Retry(op, b)
}
