package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"colorspin-backend/internal/models"
)

// AccountStore is the slice of the document store the ledger needs.
// *RedisService satisfies it; tests substitute an in-memory fake.
type AccountStore interface {
	GetAccount(username string) (*models.Account, error)
	SaveAccount(account *models.Account) error
	SaveTransaction(tx *models.Transaction) error
}

// Ledger owns every mutation of account state. Each operation mutates the
// in-memory copy and then persists the full snapshot best-effort: a failed
// write is logged and swallowed, the in-memory state stands. No rollback,
// last writer wins.
type Ledger struct {
	store AccountStore
	log   zerolog.Logger
	locks sync.Map // username -> *sync.Mutex
}

func NewLedger(store AccountStore, logger zerolog.Logger) *Ledger {
	return &Ledger{store: store, log: logger}
}

// Lock serializes operations on one account within this process. Returns
// the unlock func. Cross-process writers still race; the later write wins.
func (l *Ledger) Lock(username string) func() {
	mu, _ := l.locks.LoadOrStore(username, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// WithAccount runs fn against a freshly loaded copy of the account while
// holding its lock. The loaded copy is returned so callers can read the
// post-operation state.
func (l *Ledger) WithAccount(username string, fn func(*models.Account) error) (*models.Account, error) {
	unlock := l.Lock(username)
	defer unlock()

	account, err := l.store.GetAccount(username)
	if err != nil {
		return nil, err
	}
	if err := fn(account); err != nil {
		return account, err
	}
	return account, nil
}

// Award inserts the tier into the collection and credits its coin value,
// if not already owned. Reports whether the color is newly owned; awarding
// an owned tier is valid but issues nothing.
func (l *Ledger) Award(account *models.Account, tier *models.PrizeTier) bool {
	if account.Owns(tier.ID) {
		return false
	}
	account.Collection = append(account.Collection, tier.ID)
	account.Coins += tier.Value
	l.persist(account, "award")
	return true
}

// CreditCoins adds amount to the balance (may be negative, never bounded
// above) and records a transaction.
func (l *Ledger) CreditCoins(account *models.Account, amount int, txType models.TransactionType, description string) {
	before := account.Coins
	account.Coins += amount
	l.persist(account, "credit_coins")
	l.recordTransaction(account, txType, amount, before, "", description)
}

// CurrentMultiplier purges expired boosters and returns the product of the
// remaining factors (1 when none). Boosters stack multiplicatively.
func (l *Ledger) CurrentMultiplier(account *models.Account) float64 {
	purged := l.purgeExpiredBoosters(account)
	if purged {
		l.persist(account, "booster_cleanup")
	}
	mult := 1.0
	for _, b := range account.Boosters {
		mult *= b.Multiplier
	}
	return mult
}

// HasActiveBooster reports whether any unexpired booster remains. The
// one-booster-at-a-time rule lives in the calling layer, not here.
func (l *Ledger) HasActiveBooster(account *models.Account) bool {
	l.purgeExpiredBoosters(account)
	return len(account.Boosters) > 0
}

func (l *Ledger) purgeExpiredBoosters(account *models.Account) bool {
	now := time.Now().UnixMilli()
	kept := account.Boosters[:0]
	for _, b := range account.Boosters {
		if b.ExpiresAt > now {
			kept = append(kept, b)
		}
	}
	purged := len(kept) != len(account.Boosters)
	account.Boosters = kept
	return purged
}

// PurchaseMultiplier debits cost and appends a booster running for
// durationSeconds.
func (l *Ledger) PurchaseMultiplier(account *models.Account, factor float64, durationSeconds, cost int) error {
	if account.Coins < cost {
		return models.ErrInsufficientFunds
	}
	before := account.Coins
	account.Coins -= cost
	account.Boosters = append(account.Boosters, models.Booster{
		Multiplier: factor,
		ExpiresAt:  time.Now().UnixMilli() + int64(durationSeconds)*1000,
	})
	l.persist(account, "purchase_multiplier")
	l.recordTransaction(account, models.TransactionTypeBooster, -cost, before, "", "Booster purchase")
	return nil
}

// BuyAttackCoin converts cost coins into one attack coin.
func (l *Ledger) BuyAttackCoin(account *models.Account, cost int) error {
	if account.Coins < cost {
		return models.ErrInsufficientFunds
	}
	before := account.Coins
	account.Coins -= cost
	account.AttackCoins++
	l.persist(account, "buy_attack_coin")
	l.recordTransaction(account, models.TransactionTypeAttackCoin, -cost, before, "", "Attack coin purchase")
	return nil
}

// UnlockZone debits cost and adds the zone. Already-unlocked is a no-op
// success; insufficient funds returns false without mutating the balance.
func (l *Ledger) UnlockZone(account *models.Account, zone models.Zone, cost int) bool {
	if account.HasZone(zone) {
		return true
	}
	if account.Coins < cost {
		return false
	}
	before := account.Coins
	account.Coins -= cost
	account.UnlockedZones = append(account.UnlockedZones, zone)
	l.persist(account, "unlock_zone")
	l.recordTransaction(account, models.TransactionTypeZoneUnlock, -cost, before, "", "Unlocked zone "+string(zone))
	return true
}

// GrantZone adds a zone free of charge (auto-unlock path).
func (l *Ledger) GrantZone(account *models.Account, zone models.Zone) {
	if account.HasZone(zone) {
		return
	}
	account.UnlockedZones = append(account.UnlockedZones, zone)
	l.persist(account, "grant_zone")
}

// SetPFP stores the profile color.
func (l *Ledger) SetPFP(account *models.Account, hex string) {
	account.PFP = hex
	l.persist(account, "set_pfp")
}

// ResetProgress zeroes balances, collection, boosters and zones. The
// profile color survives the reset.
func (l *Ledger) ResetProgress(account *models.Account) {
	account.Coins = 0
	account.AttackCoins = 0
	account.Collection = []string{}
	account.Boosters = []models.Booster{}
	account.UnlockedZones = []models.Zone{models.ZoneGrays}
	l.persist(account, "reset_progress")
}

// DrainAttackNotifications returns the pending queue and clears it.
// Read-once: a drained notification is never redelivered, even if the
// client crashes before acting on it.
func (l *Ledger) DrainAttackNotifications(account *models.Account) []models.AttackNotification {
	attacks := account.Attacks
	if len(attacks) == 0 {
		return []models.AttackNotification{}
	}
	account.Attacks = []models.AttackNotification{}
	l.persist(account, "drain_notifications")
	return attacks
}

// persist writes the full snapshot. Failures are logged and swallowed.
func (l *Ledger) persist(account *models.Account, op string) {
	if err := l.store.SaveAccount(account); err != nil {
		l.log.Warn().
			Err(err).
			Str("username", account.Username).
			Str("op", op).
			Msg("account persistence failed, in-memory state kept")
	}
}

func (l *Ledger) recordTransaction(account *models.Account, txType models.TransactionType, amount, balanceBefore int, colorID, description string) {
	tx := &models.Transaction{
		ID:            models.GenerateTransactionID(),
		Username:      account.Username,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  account.Coins,
		ColorID:       colorID,
		Description:   description,
		CreatedAt:     time.Now().UnixMilli(),
	}
	if err := l.store.SaveTransaction(tx); err != nil {
		l.log.Warn().
			Err(err).
			Str("username", account.Username).
			Str("type", string(txType)).
			Msg("transaction record failed")
	}
}
