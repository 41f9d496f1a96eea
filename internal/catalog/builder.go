package catalog

import (
	"fmt"
	"math"

	"colorspin-backend/internal/models"
	"colorspin-backend/internal/spin"
)

const (
	// Size is the fixed number of tiers in the catalog.
	Size      = 500
	grayCount = 30

	epicValue = 10000
	rareValue = 1000

	// Final probability mass: epic/rare are hand-set, grays take a fixed
	// 60% of the space, commons absorb whatever remains.
	epicProb   = 0.00005
	rareProb   = 0.0001
	grayBudget = 0.60

	// buildSeed makes the default build reproducible across processes.
	buildSeed = 20240901
)

// Catalog is the immutable set of prize tiers, built once at startup.
type Catalog struct {
	Tiers []*models.PrizeTier
	byID  map[string]*models.PrizeTier
}

// Build constructs the catalog with the default deterministic seed.
func Build() *Catalog {
	return BuildWith(spin.NewSeededRNG(buildSeed))
}

// BuildWith constructs the catalog using rng for the randomized parts
// (common values, common probability jitter, name shuffling).
func BuildWith(rng spin.RandomSource) *Catalog {
	tiers := make([]*models.PrizeTier, 0, Size)

	// Epic and rare tiers carry reserved names and placeholder
	// probabilities that are overwritten below.
	tiers = append(tiers,
		&models.PrizeTier{ID: "c-0001", Hex: "#000000", Name: "Naïa", Rarity: models.RarityEpic, Value: epicValue, Prob: 0.001},
		&models.PrizeTier{ID: "c-0002", Hex: "#FFFFFF", Name: "Nathan", Rarity: models.RarityEpic, Value: epicValue, Prob: 0.001},
		&models.PrizeTier{ID: "c-0003", Hex: "#FF0000", Name: "Robion", Rarity: models.RarityRare, Value: rareValue, Prob: 0.01},
		&models.PrizeTier{ID: "c-0004", Hex: "#00FF00", Name: "Xavier", Rarity: models.RarityRare, Value: rareValue, Prob: 0.01},
		&models.PrizeTier{ID: "c-0005", Hex: "#0000FF", Name: "Natalie", Rarity: models.RarityRare, Value: rareValue, Prob: 0.01},
	)

	names := assignNames(Size-len(tiers), rng)
	nameIdx := 0
	nextName := func() string {
		n := names[nameIdx]
		nameIdx++
		return n
	}

	// Grays: lightness ramp from near-white down to mid-gray, coin value
	// 10 down to 1 along the same ramp.
	for i := 0; i < grayCount; i++ {
		light := math.Round(95 - float64(i)*(60.0/float64(grayCount-1)))
		value := 1 + int(math.Round(float64(grayCount-1-i)*(9.0/float64(grayCount-1))))
		tiers = append(tiers, &models.PrizeTier{
			ID:     fmt.Sprintf("c-g%02d", i+1),
			Hex:    hslToHex(0, 0, light),
			Name:   nextName(),
			Rarity: models.RarityCommonGray,
			Value:  value,
			Zone:   models.ZoneGrays,
		})
	}

	// Commons: golden-angle hue rotation crossed with varying
	// saturation/lightness, partitioned into warm/cold/neutral zones.
	remaining := Size - len(tiers)
	for i := 0; i < remaining; i++ {
		idx := i + 6
		hue := float64((i * 137) % 360)
		sat := float64(60 + (i*53)%30)
		light := float64(45 + (i*71)%30)

		zone := models.ZoneNeutral
		switch {
		case hue < 60 || hue >= 300:
			zone = models.ZoneWarm
		case hue >= 120 && hue < 240:
			zone = models.ZoneCold
		}

		tiers = append(tiers, &models.PrizeTier{
			ID:     fmt.Sprintf("c-%04d", idx+1),
			Hex:    hslToHex(hue, sat, light),
			Name:   nextName(),
			Rarity: models.RarityCommon,
			Value:  30 + rng.IntN(21),
			Zone:   zone,
		})
	}

	distributeProbabilities(tiers, rng)

	byID := make(map[string]*models.PrizeTier, len(tiers))
	for _, t := range tiers {
		byID[t.ID] = t
	}
	return &Catalog{Tiers: tiers, byID: byID}
}

// distributeProbabilities assigns the final draw probabilities so the
// catalog sums to 1 within machine epsilon.
func distributeProbabilities(tiers []*models.PrizeTier, rng spin.RandomSource) {
	var grays, commons []*models.PrizeTier
	reserved := 0.0
	for _, t := range tiers {
		switch t.Rarity {
		case models.RarityEpic:
			t.Prob = epicProb
			reserved += t.Prob
		case models.RarityRare:
			t.Prob = rareProb
			reserved += t.Prob
		case models.RarityCommonGray:
			grays = append(grays, t)
		case models.RarityCommon:
			commons = append(commons, t)
		}
	}

	commonBudget := math.Max(0, 1-reserved-grayBudget)

	// Gray share is proportional to brightness: lighter grays draw more
	// often than darker ones.
	lightSum := 0
	for _, g := range grays {
		lightSum += redChannel(g.Hex)
	}
	for _, g := range grays {
		g.Prob = grayBudget * float64(redChannel(g.Hex)) / float64(lightSum)
	}

	// Commons get jittered weights in [0.85, 1.15] normalized onto their
	// budget.
	if len(commons) > 0 {
		weights := make([]float64, len(commons))
		sumW := 0.0
		for i := range commons {
			weights[i] = 0.85 + rng.Float64()*0.3
			sumW += weights[i]
		}
		for i, c := range commons {
			c.Prob = weights[i] / sumW * commonBudget
		}
	}

	// Fold residual floating drift into one designated common entry.
	sum := 0.0
	for _, t := range tiers {
		sum += t.Prob
	}
	if diff := 1 - sum; math.Abs(diff) > 1e-12 {
		target := tiers[0]
		if len(commons) > 0 {
			target = commons[0]
		}
		target.Prob += diff
	}
}

// Tier looks a tier up by id.
func (c *Catalog) Tier(id string) (*models.PrizeTier, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// ZoneTiers returns every tier tagged with the given zone.
func (c *Catalog) ZoneTiers(zone models.Zone) []*models.PrizeTier {
	var out []*models.PrizeTier
	for _, t := range c.Tiers {
		if t.Zone == zone {
			out = append(out, t)
		}
	}
	return out
}
