package utils

import (
	"math/rand"
	"time"
)

// Backoff retries fn with exponential delays plus jitter. One policy for
// every retried call site.
type Backoff struct {
	base       time.Duration
	jitter     time.Duration
	maxRetries int
}

func NewBackoff(base, jitter time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, jitter: jitter, maxRetries: maxRetries}
}

func (b Backoff) Do(fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		if err = fn(i); err == nil {
			return nil
		}
		if i == b.maxRetries {
			break
		}
		sleep := time.Duration(1<<i) * b.base
		if b.jitter > 0 {
			sleep += time.Duration(rand.Int63n(int64(b.jitter)))
		}
		time.Sleep(sleep)
	}
	return err
}
