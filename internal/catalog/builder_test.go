package catalog

import (
	"math"
	"testing"

	"colorspin-backend/internal/models"
)

func TestCatalogProbabilitiesSumToOne(t *testing.T) {
	cat := Build()

	sum := 0.0
	for _, tier := range cat.Tiers {
		if tier.Prob < 0 {
			t.Errorf("tier %s has negative probability %g", tier.ID, tier.Prob)
		}
		sum += tier.Prob
	}

	if diff := math.Abs(sum - 1); diff > 1e-9 {
		t.Fatalf("probabilities sum to %.15f, want 1 within 1e-9", sum)
	}
}

func TestCatalogComposition(t *testing.T) {
	cat := Build()

	if len(cat.Tiers) != Size {
		t.Fatalf("catalog has %d tiers, want %d", len(cat.Tiers), Size)
	}

	counts := map[models.Rarity]int{}
	names := map[string]bool{}
	for _, tier := range cat.Tiers {
		counts[tier.Rarity]++

		if names[tier.Name] {
			t.Errorf("duplicate display name %q", tier.Name)
		}
		names[tier.Name] = true

		switch tier.Rarity {
		case models.RarityEpic:
			if tier.Value != epicValue || tier.Prob != epicProb {
				t.Errorf("epic %s: value=%d prob=%g", tier.ID, tier.Value, tier.Prob)
			}
			if tier.Zone != "" {
				t.Errorf("epic %s should have no zone, got %s", tier.ID, tier.Zone)
			}
		case models.RarityRare:
			if tier.Value != rareValue || tier.Prob != rareProb {
				t.Errorf("rare %s: value=%d prob=%g", tier.ID, tier.Value, tier.Prob)
			}
		case models.RarityCommonGray:
			if tier.Zone != models.ZoneGrays {
				t.Errorf("gray %s has zone %q, want grays", tier.ID, tier.Zone)
			}
			if tier.Value < 1 || tier.Value > 10 {
				t.Errorf("gray %s value %d out of [1,10]", tier.ID, tier.Value)
			}
		case models.RarityCommon:
			if tier.Zone == "" {
				t.Errorf("common %s has no zone", tier.ID)
			}
			if tier.Value < 30 || tier.Value > 50 {
				t.Errorf("common %s value %d out of [30,50]", tier.ID, tier.Value)
			}
		}
	}

	if counts[models.RarityEpic] != 2 {
		t.Errorf("epic count = %d, want 2", counts[models.RarityEpic])
	}
	if counts[models.RarityRare] != 3 {
		t.Errorf("rare count = %d, want 3", counts[models.RarityRare])
	}
	if counts[models.RarityCommonGray] != grayCount {
		t.Errorf("gray count = %d, want %d", counts[models.RarityCommonGray], grayCount)
	}
}

func TestCatalogGrayProbabilityFollowsLightness(t *testing.T) {
	cat := Build()

	grays := cat.ZoneTiers(models.ZoneGrays)
	graySum := 0.0
	for i := 1; i < len(grays); i++ {
		// builder emits grays light-to-dark; probability must not increase
		if grays[i].Prob > grays[i-1].Prob {
			t.Errorf("gray %s (%g) more probable than lighter %s (%g)",
				grays[i].ID, grays[i].Prob, grays[i-1].ID, grays[i-1].Prob)
		}
	}
	for _, g := range grays {
		graySum += g.Prob
	}
	if math.Abs(graySum-grayBudget) > 1e-9 {
		t.Errorf("gray probability mass = %g, want %g", graySum, grayBudget)
	}
}

func TestCatalogDeterministic(t *testing.T) {
	a := Build()
	b := Build()

	for i := range a.Tiers {
		x, y := a.Tiers[i], b.Tiers[i]
		if x.ID != y.ID || x.Name != y.Name || x.Hex != y.Hex || x.Value != y.Value || x.Prob != y.Prob {
			t.Fatalf("builds diverge at index %d: %+v vs %+v", i, x, y)
		}
	}
}

func TestCatalogTierLookup(t *testing.T) {
	cat := Build()

	tier, ok := cat.Tier("c-0001")
	if !ok || tier.Name != "Naïa" {
		t.Fatalf("lookup c-0001 = %v, %v", tier, ok)
	}
	if _, ok := cat.Tier("nope"); ok {
		t.Fatal("lookup of unknown id should fail")
	}
}
