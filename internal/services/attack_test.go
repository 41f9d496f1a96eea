package services_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"colorspin-backend/internal/models"
	"colorspin-backend/internal/services"
	"colorspin-backend/internal/spin"
)

func newTestResolver() (*services.AttackResolver, *fakeStore) {
	store := newFakeStore()
	ledger := services.NewLedger(store, zerolog.Nop())
	return services.NewAttackResolver(ledger, store, spin.NewSeededRNG(5), zerolog.Nop()), store
}

func TestAttackCost(t *testing.T) {
	cases := []struct {
		attacker, victim, want int
	}{
		{10, 2, 8},
		{2, 10, 1},
		{5, 5, 1},
		{1, 0, 1},
		{100, 1, 99},
	}
	for _, c := range cases {
		if got := services.AttackCost(c.attacker, c.victim); got != c.want {
			t.Errorf("AttackCost(%d, %d) = %d, want %d", c.attacker, c.victim, got, c.want)
		}
	}
}

func TestAttackDestroysVictimColor(t *testing.T) {
	resolver, store := newTestResolver()

	attacker := models.NewAccount("mallory", "")
	attacker.AttackCoins = 10
	attacker.Collection = []string{"c-g01", "c-g02", "c-g03"}
	store.accounts["mallory"] = attacker

	victim := models.NewAccount("victor", "")
	victim.Collection = []string{"c-g04", "c-g05"}
	store.accounts["victor"] = victim

	result, err := resolver.Attack("mallory", "victor")
	if err != nil {
		t.Fatal(err)
	}

	if result.Cost != 1 {
		t.Errorf("cost = %d, want 1 (attacker 3 vs victim 2)", result.Cost)
	}
	if attacker.AttackCoins != 9 {
		t.Errorf("attacker coins = %d, want 9", attacker.AttackCoins)
	}
	if len(victim.Collection) != 1 {
		t.Fatalf("victim collection = %v, want one color destroyed", victim.Collection)
	}
	if victim.Owns(result.DestroyedColorID) {
		t.Errorf("destroyed color %s still owned", result.DestroyedColorID)
	}
	if attacker.Owns(result.DestroyedColorID) {
		t.Errorf("destroyed color %s transferred to attacker", result.DestroyedColorID)
	}

	if len(victim.Attacks) != 1 {
		t.Fatalf("victim notifications = %v, want 1", victim.Attacks)
	}
	note := victim.Attacks[0]
	if note.From != "mallory" || note.ColorID != result.DestroyedColorID {
		t.Errorf("notification = %+v", note)
	}
}

func TestAttackEmptyVictim(t *testing.T) {
	resolver, store := newTestResolver()

	attacker := models.NewAccount("mallory", "")
	attacker.AttackCoins = 5
	attacker.Collection = []string{"c-g01"}
	store.accounts["mallory"] = attacker

	victim := models.NewAccount("victor", "")
	store.accounts["victor"] = victim

	_, err := resolver.Attack("mallory", "victor")
	if !errors.Is(err, models.ErrTargetEmpty) {
		t.Fatalf("expected ErrTargetEmpty, got %v", err)
	}
	if attacker.AttackCoins != 5 {
		t.Errorf("failed attack debited coins: %d", attacker.AttackCoins)
	}
}

func TestAttackInsufficientCoins(t *testing.T) {
	resolver, store := newTestResolver()

	attacker := models.NewAccount("mallory", "")
	attacker.AttackCoins = 2
	attacker.Collection = make([]string, 10)
	for i := range attacker.Collection {
		attacker.Collection[i] = "a"
	}
	store.accounts["mallory"] = attacker

	victim := models.NewAccount("victor", "")
	victim.Collection = []string{"c-g01", "c-g02"}
	store.accounts["victor"] = victim

	// cost is 10-2=8, attacker holds 2
	_, err := resolver.Attack("mallory", "victor")
	if !errors.Is(err, models.ErrInsufficientAttackCoins) {
		t.Fatalf("expected ErrInsufficientAttackCoins, got %v", err)
	}
	if attacker.AttackCoins != 2 || len(victim.Collection) != 2 {
		t.Error("failed attack mutated state")
	}
}

func TestAttackSelf(t *testing.T) {
	resolver, store := newTestResolver()
	account := models.NewAccount("mallory", "")
	store.accounts["mallory"] = account

	if _, err := resolver.Attack("mallory", "mallory"); !errors.Is(err, models.ErrSelfAttack) {
		t.Fatalf("expected ErrSelfAttack, got %v", err)
	}
}

func TestAttackUnknownVictim(t *testing.T) {
	resolver, store := newTestResolver()

	attacker := models.NewAccount("mallory", "")
	attacker.AttackCoins = 1
	store.accounts["mallory"] = attacker

	if _, err := resolver.Attack("mallory", "ghost"); !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
