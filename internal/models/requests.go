package models

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ZoneUnlockRequest struct {
	Zone string `json:"zone" binding:"required"`
}

type AttackRequest struct {
	Target string `json:"target" binding:"required"`
}

type PFPRequest struct {
	ColorID string `json:"color_id" binding:"required"`
}

// SpinResult is the terminal outcome of one draw, after award and coin
// credit have been applied.
type SpinResult struct {
	Tier         *PrizeTier `json:"color"`
	NewColor     bool       `json:"new_color"`
	CoinsGained  int        `json:"coins_gained"`
	Multiplier   float64    `json:"multiplier"`
	UnlockedZone Zone       `json:"unlocked_zone,omitempty"`
	Balance      int        `json:"balance"`
}

// AttackResult reports a resolved PvP attack.
type AttackResult struct {
	DestroyedColorID string `json:"destroyed_color_id"`
	Cost             int    `json:"cost"`
}

type LeaderboardEntry struct {
	Username       string `json:"username"`
	Coins          int    `json:"coins"`
	CollectionSize int    `json:"collection_size"`
	PFP            string `json:"pfp,omitempty"`
}
