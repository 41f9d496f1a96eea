package spin

import (
	"math"
	"testing"

	"colorspin-backend/internal/models"
)

func testPool() []*models.PrizeTier {
	return []*models.PrizeTier{
		{ID: "a", Rarity: models.RarityCommon, Prob: 0.5},
		{ID: "b", Rarity: models.RarityCommon, Prob: 0.3},
		{ID: "c", Rarity: models.RarityCommon, Prob: 0.2},
	}
}

func TestPickEmptyPool(t *testing.T) {
	if _, err := Pick(nil, 0, NewSeededRNG(1)); err != ErrEmptyPool {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestPickReturnsMember(t *testing.T) {
	pool := testPool()
	rng := NewSeededRNG(7)
	for i := 0; i < 1000; i++ {
		got, err := Pick(pool, 0, rng)
		if err != nil {
			t.Fatal(err)
		}
		if got != pool[0] && got != pool[1] && got != pool[2] {
			t.Fatalf("pick returned non-member %+v", got)
		}
	}
}

func TestPickFrequencies(t *testing.T) {
	const n = 100000
	pool := testPool()
	rng := NewSeededRNG(42)

	counts := map[string]int{}
	for i := 0; i < n; i++ {
		tier, err := Pick(pool, 0, rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[tier.ID]++
	}

	for _, tier := range pool {
		freq := float64(counts[tier.ID]) / n
		if rel := math.Abs(freq-tier.Prob) / tier.Prob; rel > 0.1 {
			t.Errorf("tier %s: freq=%.4f want %.4f within 10%%", tier.ID, freq, tier.Prob)
		}
	}
}

func TestPickUniformFallbackOnZeroWeights(t *testing.T) {
	const n = 30000
	pool := []*models.PrizeTier{
		{ID: "a", Rarity: models.RarityCommon, Prob: 0},
		{ID: "b", Rarity: models.RarityCommon, Prob: 0},
		{ID: "c", Rarity: models.RarityCommon, Prob: 0},
	}
	rng := NewSeededRNG(9)

	counts := map[string]int{}
	for i := 0; i < n; i++ {
		tier, err := Pick(pool, 0, rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[tier.ID]++
	}

	for id, c := range counts {
		freq := float64(c) / n
		if freq < 0.30 || freq > 0.37 {
			t.Errorf("zero-weight pool not uniform: %s drawn %.4f", id, freq)
		}
	}
}

func TestPickBoostRaisesHighRarityShare(t *testing.T) {
	const n = 200000
	pool := []*models.PrizeTier{
		{ID: "rare", Rarity: models.RarityRare, Prob: 0.01},
		{ID: "common", Rarity: models.RarityCommon, Prob: 0.99},
	}

	countRare := func(boost float64, seed uint64) int {
		rng := NewSeededRNG(seed)
		hits := 0
		for i := 0; i < n; i++ {
			tier, err := Pick(pool, boost, rng)
			if err != nil {
				t.Fatal(err)
			}
			if tier.ID == "rare" {
				hits++
			}
		}
		return hits
	}

	base := countRare(0, 11)
	boosted := countRare(0.2, 11)

	if boosted <= base {
		t.Fatalf("boost=0.2 rare hits %d not greater than base %d", boosted, base)
	}
}

func TestPickBoostDoesNotMutateCatalogProb(t *testing.T) {
	pool := []*models.PrizeTier{
		{ID: "rare", Rarity: models.RarityRare, Prob: 0.01},
		{ID: "common", Rarity: models.RarityCommon, Prob: 0.99},
	}
	rng := NewSeededRNG(3)
	for i := 0; i < 100; i++ {
		if _, err := Pick(pool, 0.5, rng); err != nil {
			t.Fatal(err)
		}
	}
	if pool[0].Prob != 0.01 || pool[1].Prob != 0.99 {
		t.Fatalf("stored probabilities mutated: %g, %g", pool[0].Prob, pool[1].Prob)
	}
}
