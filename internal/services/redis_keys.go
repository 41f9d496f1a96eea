package services

import "time"

const (
	KeyAccount          = "account:%s"
	KeyLeaderboard      = "accounts:by_coins"
	KeyUserSession      = "session:%s:%s"
	KeyTransaction      = "transaction:%s"
	KeyUserTransactions = "account:%s:transactions"
	KeyRateLimit        = "ratelimit:%s:%s"

	TTLUserSession = 24 * time.Hour
	TTLTransaction = 30 * 24 * time.Hour

	LeaderboardLimit = 100

	DefaultRateLimitSpins = 120 // max spins per minute
	DefaultRateLimitBonus = 10  // max bonus claims per minute
)
