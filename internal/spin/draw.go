package spin

import (
	"errors"

	"colorspin-backend/internal/models"
)

var ErrEmptyPool = errors.New("draw pool is empty")

// minTotalWeight guards the weighted path: below this the pool is treated
// as weightless and the pick degrades to uniform.
const minTotalWeight = 1e-6

// Pick performs one weighted random selection over tiers.
//
// When boost > 0 the weight of every rare/epic tier is multiplied by
// (1 + boost) for this pick only; the stored catalog probabilities are
// never touched. If the pool carries no usable weight the pick is uniform.
// For a non-empty pool Pick always returns a member and never fails.
func Pick(tiers []*models.PrizeTier, boost float64, rng RandomSource) (*models.PrizeTier, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyPool
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	weights := make([]float64, len(tiers))
	total := 0.0
	for i, t := range tiers {
		w := t.Prob
		if w < 0 {
			w = 0
		}
		if boost > 0 && t.HighRarity() {
			w *= 1 + boost
		}
		weights[i] = w
		total += w
	}

	if total < minTotalWeight {
		return tiers[rng.IntN(len(tiers))], nil
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return tiers[i], nil
		}
	}
	// floating drift exhausted the walk
	return tiers[len(tiers)-1], nil
}
