package ledger

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mcfadden20/Swim-meet-timer/internal/domain"
	"github.com/mcfadden20/Swim-meet-timer/internal/metrics"
)

// credentialCache keeps recently resolved meets by access code. Access codes
// and PINs never change once issued, so entries only need a TTL for meets
// that get deactivated.
type credentialCache struct {
	lru *expirable.LRU[string, domain.Meet]
}

func newCredentialCache(size int, ttl time.Duration) *credentialCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &credentialCache{
		lru: expirable.NewLRU[string, domain.Meet](size, nil, ttl),
	}
}

func (c *credentialCache) Get(accessCode string) (domain.Meet, bool) {
	meet, ok := c.lru.Get(accessCode)
	if ok {
		metrics.CredentialCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
	} else {
		metrics.CredentialCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
	}
	return meet, ok
}

func (c *credentialCache) Set(meet domain.Meet) {
	c.lru.Add(meet.AccessCode, meet)
}
