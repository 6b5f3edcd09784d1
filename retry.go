package main

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// linearBackOff retries with linearly growing delays: step, 2·step, 3·step…
// up to maxRetries, then gives up. Substituting a zero step makes the
// policy free for tests.
type linearBackOff struct {
	step       time.Duration
	maxRetries int
	attempt    int
}

func newLinearBackOff(step time.Duration, maxRetries int) *linearBackOff {
	return &linearBackOff{step: step, maxRetries: maxRetries}
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	if b.attempt > b.maxRetries {
		return backoff.Stop
	}
	return time.Duration(b.attempt) * b.step
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}
