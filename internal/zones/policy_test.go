package zones

import (
	"testing"

	"colorspin-backend/internal/catalog"
	"colorspin-backend/internal/models"
)

func TestUnlockCosts(t *testing.T) {
	cases := map[models.Zone]int{
		models.ZoneGrays:   0,
		models.ZoneWarm:    50000,
		models.ZoneCold:    10000,
		models.ZoneNeutral: 1500,
	}
	for zone, want := range cases {
		got, err := UnlockCost(zone)
		if err != nil || got != want {
			t.Errorf("UnlockCost(%s) = %d, %v; want %d", zone, got, err, want)
		}
	}

	if _, err := UnlockCost(models.Zone("lava")); err == nil {
		t.Error("unknown zone should error")
	}
}

func TestParseZone(t *testing.T) {
	if z, err := ParseZone("warm"); err != nil || z != models.ZoneWarm {
		t.Errorf("ParseZone(warm) = %v, %v", z, err)
	}
	if _, err := ParseZone("bogus"); err == nil {
		t.Error("bogus zone should fail to parse")
	}
}

func TestEligibleFiltersLockedZones(t *testing.T) {
	account := models.NewAccount("fresh", "")
	tiers := []*models.PrizeTier{
		{ID: "epic", Rarity: models.RarityEpic},
		{ID: "gray", Rarity: models.RarityCommonGray, Zone: models.ZoneGrays},
		{ID: "warm", Rarity: models.RarityCommon, Zone: models.ZoneWarm},
		{ID: "cold", Rarity: models.RarityCommon, Zone: models.ZoneCold},
	}

	got := Eligible(account, tiers)
	if len(got) != 2 {
		t.Fatalf("eligible = %d tiers, want 2 (zoneless + grays)", len(got))
	}
	for _, tier := range got {
		if tier.Zone != "" && tier.Zone != models.ZoneGrays {
			t.Errorf("locked-zone tier %s leaked through", tier.ID)
		}
	}

	account.UnlockedZones = append(account.UnlockedZones, models.ZoneWarm)
	if got := Eligible(account, tiers); len(got) != 3 {
		t.Fatalf("after warm unlock eligible = %d tiers, want 3", len(got))
	}
}

func TestCheckAutoUnlock(t *testing.T) {
	cat := catalog.Build()
	rules := DefaultAutoUnlockRules()
	account := models.NewAccount("collector", "")

	grays := cat.ZoneTiers(models.ZoneGrays)

	// 23 of 30 grays: just below the 80% threshold
	for _, tier := range grays[:23] {
		account.Collection = append(account.Collection, tier.ID)
	}
	if zone, ok := CheckAutoUnlock(account, cat, rules); ok {
		t.Fatalf("unexpected auto-unlock of %s at 23/30 grays", zone)
	}

	account.Collection = append(account.Collection, grays[23].ID)
	zone, ok := CheckAutoUnlock(account, cat, rules)
	if !ok || zone != models.ZoneCold {
		t.Fatalf("expected cold to auto-unlock at 24/30 grays, got %v %v", zone, ok)
	}

	// rule must not re-trigger once the zone is held
	account.UnlockedZones = append(account.UnlockedZones, models.ZoneCold)
	if zone, ok := CheckAutoUnlock(account, cat, rules); ok {
		t.Fatalf("auto-unlock re-triggered for %s", zone)
	}
}
