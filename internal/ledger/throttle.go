package ledger

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// failureThrottle limits failed credential attempts per access code.
// Successful attempts do not consume budget.
type failureThrottle struct {
	perMinute int
	limiters  *lru.Cache[string, *rate.Limiter]
}

func newFailureThrottle(perMinute int) *failureThrottle {
	if perMinute <= 0 {
		perMinute = DefaultFailuresPerMinute
	}
	limiters, _ := lru.New[string, *rate.Limiter](throttleTrackedCodes)
	return &failureThrottle{perMinute: perMinute, limiters: limiters}
}

func (t *failureThrottle) limiter(accessCode string) *rate.Limiter {
	if lim, ok := t.limiters.Get(accessCode); ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(t.perMinute)), t.perMinute)
	if present, _ := t.limiters.ContainsOrAdd(accessCode, lim); present {
		if existing, ok := t.limiters.Get(accessCode); ok {
			return existing
		}
	}
	return lim
}

// Blocked reports whether the code has used up its failure budget.
func (t *failureThrottle) Blocked(accessCode string) bool {
	lim, ok := t.limiters.Peek(accessCode)
	if !ok {
		return false
	}
	return lim.Tokens() < 1
}

// Fail spends one unit of the code's failure budget.
func (t *failureThrottle) Fail(accessCode string) {
	t.limiter(accessCode).Allow()
}
