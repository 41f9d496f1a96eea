package models

type Rarity string

const (
	RarityEpic       Rarity = "epic"
	RarityRare       Rarity = "rare"
	RarityCommonGray Rarity = "common_gray"
	RarityCommon     Rarity = "common"
)

type Zone string

const (
	ZoneGrays   Zone = "grays"
	ZoneWarm    Zone = "warm"
	ZoneCold    Zone = "cold"
	ZoneNeutral Zone = "neutral"
)

// PrizeTier is one entry of the color catalog. Tiers are built once at
// startup and never mutated afterwards.
type PrizeTier struct {
	ID     string  `json:"id"`
	Hex    string  `json:"hex"`
	Name   string  `json:"name"`
	Rarity Rarity  `json:"rarity"`
	Value  int     `json:"value"`
	Prob   float64 `json:"prob"`
	Zone   Zone    `json:"zone,omitempty"` // empty for epic/rare tiers
}

// HighRarity reports whether the tier belongs to the boosted class of a
// mega spin.
func (t *PrizeTier) HighRarity() bool {
	return t.Rarity == RarityEpic || t.Rarity == RarityRare
}
