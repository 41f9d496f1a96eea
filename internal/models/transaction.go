package models

type TransactionType string

const (
	TransactionTypeSpin       TransactionType = "spin"
	TransactionTypeMegaSpin   TransactionType = "mega_spin"
	TransactionTypeBooster    TransactionType = "booster"
	TransactionTypeAttackCoin TransactionType = "attack_coin"
	TransactionTypeZoneUnlock TransactionType = "zone_unlock"
	TransactionTypeBonus      TransactionType = "bonus"
	TransactionTypeAttack     TransactionType = "attack"
	TransactionTypeReset      TransactionType = "reset"
)

// Transaction records one coin movement on an account. History is kept
// best-effort: a failed write never blocks the triggering operation.
type Transaction struct {
	ID            string          `json:"id" redis:"id"`
	Username      string          `json:"username" redis:"username"`
	Type          TransactionType `json:"type" redis:"type"`
	Amount        int             `json:"amount" redis:"amount"`
	BalanceBefore int             `json:"balance_before" redis:"balance_before"`
	BalanceAfter  int             `json:"balance_after" redis:"balance_after"`
	ColorID       string          `json:"color_id,omitempty" redis:"color_id"`
	Description   string          `json:"description" redis:"description"`
	CreatedAt     int64           `json:"created_at" redis:"created_at"`
}
