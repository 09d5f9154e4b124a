package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aheinzel/account-intercompany-booking-button/internal/domain"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase/mocks"
)

func seededScenario(id string, active bool) *domain.Scenario {
	return &domain.Scenario{
		ID: id, Name: "Alpha to Beta", Active: active,
		SourceCompanyID: "co-alpha", DestCompanyID: "co-beta",
		SourceJournalID: "j1", DestJournalID: "j2",
		SourceDebitAccountID: "a1", SourceCreditAccountID: "a2",
		DestDebitAccountID: "a3", DestCreditAccountID: "a4",
	}
}

func TestScenarioCache_FindActiveBySourceCompany(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := mocks.NewMockScenarioRepository()
	inner.Add(seededScenario("scn-1", true))
	cache := NewScenarioCache(inner, client, time.Minute)
	ctx := context.Background()

	scenario, err := cache.FindActiveBySourceCompany(ctx, "co-alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scenario.ID != "scn-1" {
		t.Fatalf("scenario = %s, want scn-1", scenario.ID)
	}

	// A deactivation that bypasses the cache is not observed within the TTL,
	// proving the second lookup was served from Redis.
	if err := inner.SetActive(ctx, "scn-1", false); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	cached, err := cache.FindActiveBySourceCompany(ctx, "co-alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached.ID != "scn-1" {
		t.Fatalf("cached scenario = %s, want scn-1", cached.ID)
	}
}

func TestScenarioCache_SetActiveInvalidates(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := mocks.NewMockScenarioRepository()
	inner.Add(seededScenario("scn-1", true))
	cache := NewScenarioCache(inner, client, time.Minute)
	ctx := context.Background()

	if _, err := cache.FindActiveBySourceCompany(ctx, "co-alpha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := cache.SetActive(ctx, "scn-1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := cache.FindActiveBySourceCompany(ctx, "co-alpha"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound after deactivation, got %v", err)
	}
}

func TestScenarioCache_MissNotCached(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := mocks.NewMockScenarioRepository()
	cache := NewScenarioCache(inner, client, time.Minute)
	ctx := context.Background()

	if _, err := cache.FindActiveBySourceCompany(ctx, "co-alpha"); !errors.Is(err, domain.ErrScenarioNotFound) {
		t.Fatalf("expected ErrScenarioNotFound, got %v", err)
	}

	// The scenario created after the miss is served on the next lookup.
	inner.Add(seededScenario("scn-1", true))
	scenario, err := cache.FindActiveBySourceCompany(ctx, "co-alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scenario.ID != "scn-1" {
		t.Fatalf("scenario = %s, want scn-1", scenario.ID)
	}
}
