package zones

import (
	"colorspin-backend/internal/catalog"
	"colorspin-backend/internal/models"
)

// unlockCosts is the static price table. Grays is free and always
// unlocked.
var unlockCosts = map[models.Zone]int{
	models.ZoneGrays:   0,
	models.ZoneWarm:    50000,
	models.ZoneCold:    10000,
	models.ZoneNeutral: 1500,
}

// UnlockCost returns the coin price of a zone.
func UnlockCost(zone models.Zone) (int, error) {
	cost, ok := unlockCosts[zone]
	if !ok {
		return 0, models.ErrUnknownZone
	}
	return cost, nil
}

// ParseZone validates a zone tag from client input.
func ParseZone(s string) (models.Zone, error) {
	z := models.Zone(s)
	if _, ok := unlockCosts[z]; !ok {
		return "", models.ErrUnknownZone
	}
	return z, nil
}

// Eligible filters tiers down to those the account may draw: tiers
// without a zone, and tiers whose zone is unlocked.
func Eligible(account *models.Account, tiers []*models.PrizeTier) []*models.PrizeTier {
	out := make([]*models.PrizeTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Zone == "" || account.HasZone(t.Zone) {
			out = append(out, t)
		}
	}
	return out
}

// AutoUnlockRule unlocks Zone free of charge once the account owns at
// least Fraction of the tiers in PrereqZone. The exact trigger is policy,
// not law; callers may swap in their own rule set.
type AutoUnlockRule struct {
	Zone       models.Zone
	PrereqZone models.Zone
	Fraction   float64
}

// DefaultAutoUnlockRules: cold opens at 80% of the grays collected, warm
// at 60% of cold. Neutral stays paid-only.
func DefaultAutoUnlockRules() []AutoUnlockRule {
	return []AutoUnlockRule{
		{Zone: models.ZoneCold, PrereqZone: models.ZoneGrays, Fraction: 0.8},
		{Zone: models.ZoneWarm, PrereqZone: models.ZoneCold, Fraction: 0.6},
	}
}

// CheckAutoUnlock evaluates rules against the account's collection and
// returns the first still-locked zone whose rule is now satisfied. It does
// not mutate the account.
func CheckAutoUnlock(account *models.Account, cat *catalog.Catalog, rules []AutoUnlockRule) (models.Zone, bool) {
	for _, rule := range rules {
		if account.HasZone(rule.Zone) {
			continue
		}
		pool := cat.ZoneTiers(rule.PrereqZone)
		if len(pool) == 0 {
			continue
		}
		owned := 0
		for _, t := range pool {
			if account.Owns(t.ID) {
				owned++
			}
		}
		if float64(owned)/float64(len(pool)) >= rule.Fraction {
			return rule.Zone, true
		}
	}
	return "", false
}
