package refdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"researchconnect/internal/domain"
)

type countingLoader struct {
	speciesCalls     int
	interactionCalls int
	speciesErr       error
}

func (l *countingLoader) LoadSpecies(context.Context) ([]domain.Species, error) {
	l.speciesCalls++
	if l.speciesErr != nil {
		return nil, l.speciesErr
	}
	return []domain.Species{{ID: "sp1", Name: "Eurasian otter"}}, nil
}

func (l *countingLoader) LoadInteractionTypes(context.Context) ([]domain.InteractionType, error) {
	l.interactionCalls++
	return []domain.InteractionType{{ID: "it1", Name: "Sighting"}}, nil
}

func TestSpeciesServedFromCacheUntilExpiry(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, time.Minute)

	now := time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		list, err := cache.Species(context.Background())
		if err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
		if len(list) != 1 || list[0].Name != "Eurasian otter" {
			t.Fatalf("call %d: unexpected list %v", i, list)
		}
	}
	if loader.speciesCalls != 1 {
		t.Fatalf("expected a single upstream load, got %d", loader.speciesCalls)
	}

	// Jitter extends the ttl by at most 10%, so 2x ttl is safely past it.
	now = now.Add(2 * time.Minute)
	if _, err := cache.Species(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if loader.speciesCalls != 2 {
		t.Fatalf("expected a refresh after expiry, got %d loads", loader.speciesCalls)
	}
}

func TestInteractionTypesCachedIndependently(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, time.Minute)

	if _, err := cache.Species(context.Background()); err != nil {
		t.Fatalf("species load failed: %v", err)
	}
	if _, err := cache.InteractionTypes(context.Background()); err != nil {
		t.Fatalf("interaction-types load failed: %v", err)
	}
	if _, err := cache.InteractionTypes(context.Background()); err != nil {
		t.Fatalf("cached interaction-types read failed: %v", err)
	}

	if loader.speciesCalls != 1 || loader.interactionCalls != 1 {
		t.Fatalf("expected one load per list, got species=%d interactions=%d",
			loader.speciesCalls, loader.interactionCalls)
	}
}

func TestSpeciesLoadErrorsAreNotCached(t *testing.T) {
	loader := &countingLoader{speciesErr: errors.New("api down")}
	cache := NewCache(loader, time.Minute)

	if _, err := cache.Species(context.Background()); err == nil {
		t.Fatalf("expected the upstream error to surface")
	}

	loader.speciesErr = nil
	list, err := cache.Species(context.Background())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected the retry to fetch fresh data, got %v", list)
	}
	if loader.speciesCalls != 2 {
		t.Fatalf("expected 2 upstream loads, got %d", loader.speciesCalls)
	}
}
