package services

import (
	"time"

	"github.com/rs/zerolog"

	"colorspin-backend/internal/models"
	"colorspin-backend/internal/spin"
)

// AttackResolver performs the one operation that touches two accounts at
// once. Both accounts are locked in lexicographic order for the duration;
// cross-process writers still follow last-writer-wins.
type AttackResolver struct {
	ledger *Ledger
	store  AccountStore
	rng    spin.RandomSource
	log    zerolog.Logger
}

func NewAttackResolver(ledger *Ledger, store AccountStore, rng spin.RandomSource, logger zerolog.Logger) *AttackResolver {
	if rng == nil {
		rng = spin.DefaultRNG()
	}
	return &AttackResolver{ledger: ledger, store: store, rng: rng, log: logger}
}

// AttackCost prices an attack at max(1, attackerSize-victimSize). The cost
// grows with the attacker's lead; attacking a larger collection costs 1.
func AttackCost(attackerSize, victimSize int) int {
	diff := attackerSize - victimSize
	if diff <= 0 {
		return 1
	}
	return diff
}

// Attack debits the attacker's attack coins, destroys one random color in
// the victim's collection (not transferred) and queues a notification on
// the victim. Both accounts are persisted.
func (r *AttackResolver) Attack(attackerName, victimName string) (*models.AttackResult, error) {
	if attackerName == victimName {
		return nil, models.ErrSelfAttack
	}

	// lock in a fixed order so concurrent mutual attacks cannot deadlock
	first, second := attackerName, victimName
	if second < first {
		first, second = second, first
	}
	unlockFirst := r.ledger.Lock(first)
	defer unlockFirst()
	unlockSecond := r.ledger.Lock(second)
	defer unlockSecond()

	attacker, err := r.store.GetAccount(attackerName)
	if err != nil {
		return nil, err
	}
	victim, err := r.store.GetAccount(victimName)
	if err != nil {
		return nil, err
	}

	if len(victim.Collection) == 0 {
		return nil, models.ErrTargetEmpty
	}

	cost := AttackCost(len(attacker.Collection), len(victim.Collection))
	if attacker.AttackCoins < cost {
		return nil, models.ErrInsufficientAttackCoins
	}

	attacker.AttackCoins -= cost

	idx := r.rng.IntN(len(victim.Collection))
	destroyed := victim.Collection[idx]
	victim.Collection = append(victim.Collection[:idx], victim.Collection[idx+1:]...)

	victim.Attacks = append(victim.Attacks, models.AttackNotification{
		From:      attacker.Username,
		ColorID:   destroyed,
		Timestamp: time.Now().UnixMilli(),
	})

	r.persist(victim, "attack_victim")
	r.persist(attacker, "attack_attacker")

	r.ledger.recordTransaction(attacker, models.TransactionTypeAttack, 0, attacker.Coins, destroyed,
		"Attacked "+victim.Username)

	return &models.AttackResult{DestroyedColorID: destroyed, Cost: cost}, nil
}

func (r *AttackResolver) persist(account *models.Account, op string) {
	if err := r.store.SaveAccount(account); err != nil {
		r.log.Warn().
			Err(err).
			Str("username", account.Username).
			Str("op", op).
			Msg("account persistence failed, in-memory state kept")
	}
}
