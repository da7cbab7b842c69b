package xapi

import "golang.org/x/time/rate"

const (
	defaultRequestsPerSecond = 1.0
	defaultBurst             = 5
)

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	return rate.NewLimiter(rate.Limit(rps), defaultBurst)
}
