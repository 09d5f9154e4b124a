package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

// ScenarioCache decorates a ScenarioRepository with a short-lived cache of
// the active scenario per source company. The booking form reads this on
// every open; writes flow through and invalidate.
type ScenarioCache struct {
	inner  usecase.ScenarioRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewScenarioCache creates a new ScenarioCache.
func NewScenarioCache(inner usecase.ScenarioRepository, client *redis.Client, ttl time.Duration) *ScenarioCache {
	return &ScenarioCache{
		inner:  inner,
		client: client,
		prefix: "interco:scenario:active:",
		ttl:    ttl,
	}
}

// Create stores a scenario and invalidates the company's cached slot.
func (c *ScenarioCache) Create(ctx context.Context, scenario *domain.Scenario) error {
	if err := c.inner.Create(ctx, scenario); err != nil {
		return err
	}
	c.invalidate(ctx, scenario.SourceCompanyID)
	return nil
}

// GetByID is a pass-through; only the active-scenario lookup is cached.
func (c *ScenarioCache) GetByID(ctx context.Context, id string) (*domain.Scenario, error) {
	return c.inner.GetByID(ctx, id)
}

// List is a pass-through.
func (c *ScenarioCache) List(ctx context.Context, sourceCompanyID string, activeOnly bool) ([]*domain.Scenario, error) {
	return c.inner.List(ctx, sourceCompanyID, activeOnly)
}

// FindActiveBySourceCompany serves the active scenario from cache when
// possible. Cache failures fall back to the repository; the cache is never
// authoritative.
func (c *ScenarioCache) FindActiveBySourceCompany(ctx context.Context, sourceCompanyID string) (*domain.Scenario, error) {
	key := c.prefix + sourceCompanyID

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var scenario domain.Scenario
		if err := json.Unmarshal(cached, &scenario); err == nil {
			return &scenario, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return c.inner.FindActiveBySourceCompany(ctx, sourceCompanyID)
	}

	scenario, err := c.inner.FindActiveBySourceCompany(ctx, sourceCompanyID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(scenario); err == nil {
		c.client.Set(ctx, key, data, c.ttl)
	}

	return scenario, nil
}

// SetActive updates the flag and invalidates the company's cached slot.
func (c *ScenarioCache) SetActive(ctx context.Context, id string, active bool) error {
	scenario, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := c.inner.SetActive(ctx, id, active); err != nil {
		return err
	}

	c.invalidate(ctx, scenario.SourceCompanyID)
	return nil
}

func (c *ScenarioCache) invalidate(ctx context.Context, sourceCompanyID string) {
	c.client.Del(ctx, c.prefix+sourceCompanyID)
}
