package refdata

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"researchconnect/internal/domain"
)

// Loader fetches reference lists from the remote API.
type Loader interface {
	LoadSpecies(ctx context.Context) ([]domain.Species, error)
	LoadInteractionTypes(ctx context.Context) ([]domain.InteractionType, error)
}

// Cache keeps the species and interaction-type lists in memory with a TTL,
// so message-creation screens do not refetch them on every keystroke.
type Cache struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu           sync.RWMutex
	species      cached[[]domain.Species]
	interactions cached[[]domain.InteractionType]
}

type cached[T any] struct {
	value     T
	expiresAt time.Time
}

func NewCache(loader Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Species returns the cached species list, refreshing it when expired.
func (c *Cache) Species(ctx context.Context) ([]domain.Species, error) {
	now := c.clock()

	c.mu.RLock()
	if c.species.expiresAt.After(now) {
		defer c.mu.RUnlock()
		return c.species.value, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("species", func() (interface{}, error) {
		c.mu.RLock()
		if c.species.expiresAt.After(c.clock()) {
			defer c.mu.RUnlock()
			return c.species.value, nil
		}
		c.mu.RUnlock()

		list, err := c.loader.LoadSpecies(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.species = cached[[]domain.Species]{value: list, expiresAt: c.clock().Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Species), nil
}

// InteractionTypes returns the cached interaction-type list, refreshing it
// when expired.
func (c *Cache) InteractionTypes(ctx context.Context) ([]domain.InteractionType, error) {
	now := c.clock()

	c.mu.RLock()
	if c.interactions.expiresAt.After(now) {
		defer c.mu.RUnlock()
		return c.interactions.value, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("interaction-types", func() (interface{}, error) {
		c.mu.RLock()
		if c.interactions.expiresAt.After(c.clock()) {
			defer c.mu.RUnlock()
			return c.interactions.value, nil
		}
		c.mu.RUnlock()

		list, err := c.loader.LoadInteractionTypes(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.interactions = cached[[]domain.InteractionType]{value: list, expiresAt: c.clock().Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.InteractionType), nil
}

func (c *Cache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
