package models

import "time"

// Booster is a time-limited income multiplier.
type Booster struct {
	Multiplier float64 `json:"multiplier" redis:"multiplier"`
	ExpiresAt  int64   `json:"expires_at" redis:"expires_at"` // epoch ms
}

// AttackNotification is queued on the victim when another player destroys
// one of their colors. Notifications are drained read-once.
type AttackNotification struct {
	From      string `json:"from" redis:"from"`
	ColorID   string `json:"color_id" redis:"color_id"`
	Timestamp int64  `json:"timestamp" redis:"timestamp"` // epoch ms
}

// Account is the per-user document persisted in Redis, keyed by username.
type Account struct {
	Username     string `json:"username" redis:"username"`
	PasswordHash string `json:"-" redis:"password_hash"`

	Coins       int `json:"coins" redis:"coins"`
	AttackCoins int `json:"attack_coins" redis:"attack_coins"`

	Collection    []string             `json:"collection" redis:"collection"`
	Boosters      []Booster            `json:"boosters" redis:"boosters"`
	UnlockedZones []Zone               `json:"unlocked_zones" redis:"unlocked_zones"`
	PFP           string               `json:"pfp,omitempty" redis:"pfp"`
	Attacks       []AttackNotification `json:"attacks" redis:"attacks"`

	CreatedAt int64 `json:"created_at" redis:"created_at"`
	UpdatedAt int64 `json:"updated_at" redis:"updated_at"`
}

// NewAccount returns a fresh account: empty collection, zero balances,
// only the grays zone unlocked.
func NewAccount(username, passwordHash string) *Account {
	now := time.Now().UnixMilli()
	return &Account{
		Username:      username,
		PasswordHash:  passwordHash,
		Coins:         0,
		AttackCoins:   0,
		Collection:    []string{},
		Boosters:      []Booster{},
		UnlockedZones: []Zone{ZoneGrays},
		Attacks:       []AttackNotification{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Owns reports whether the color id is already in the collection.
func (a *Account) Owns(colorID string) bool {
	for _, id := range a.Collection {
		if id == colorID {
			return true
		}
	}
	return false
}

// HasZone reports whether the zone has been unlocked. Grays is always
// considered unlocked regardless of the stored set.
func (a *Account) HasZone(zone Zone) bool {
	if zone == ZoneGrays {
		return true
	}
	for _, z := range a.UnlockedZones {
		if z == zone {
			return true
		}
	}
	return false
}
