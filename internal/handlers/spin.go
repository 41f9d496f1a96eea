package handlers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"colorspin-backend/internal/catalog"
	"colorspin-backend/internal/models"
	"colorspin-backend/internal/services"
	"colorspin-backend/internal/spin"
	"colorspin-backend/internal/zones"
)

const (
	boosterMultiplier      = 2.0
	boosterDurationSeconds = 30
	boosterCost            = 150

	attackCoinCost = 1000

	// +10% coin income per owned color
	collectionBonusPerColor = 0.1

	megaBoostFactor = 0.2
	megaCoinBonus   = 1.3

	bonusCoinsMin = 100
	bonusCoinsMax = 200
)

type SpinHandler struct {
	catalog      *catalog.Catalog
	ledger       *services.Ledger
	redisService *services.RedisService
	attacks      *services.AttackResolver
	hub          *WebSocketHandler
	rng          spin.RandomSource
	autoRules    []zones.AutoUnlockRule
}

func NewSpinHandler(cat *catalog.Catalog, ledger *services.Ledger, redisService *services.RedisService, attacks *services.AttackResolver, hub *WebSocketHandler) *SpinHandler {
	return &SpinHandler{
		catalog:      cat,
		ledger:       ledger,
		redisService: redisService,
		attacks:      attacks,
		hub:          hub,
		rng:          spin.DefaultRNG(),
		autoRules:    zones.DefaultAutoUnlockRules(),
	}
}

// Spin performs one weighted draw over the account's unlocked zones.
func (h *SpinHandler) Spin(c *gin.Context) {
	h.doSpin(c, 0, 1.0, models.TransactionTypeSpin)
}

// MegaSpin is the boosted draw: rare/epic weights scaled by 1.2 and a
// 30% coin bonus on the result.
func (h *SpinHandler) MegaSpin(c *gin.Context) {
	h.doSpin(c, megaBoostFactor, megaCoinBonus, models.TransactionTypeMegaSpin)
}

func (h *SpinHandler) doSpin(c *gin.Context, boost, coinBonus float64, txType models.TransactionType) {
	username := c.GetString("username")

	var result models.SpinResult
	_, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		eligible := zones.Eligible(account, h.catalog.Tiers)
		tier, err := spin.Pick(eligible, boost, h.rng)
		if err != nil {
			return err
		}

		result.Tier = tier
		result.NewColor = h.ledger.Award(account, tier)

		if zone, ok := zones.CheckAutoUnlock(account, h.catalog, h.autoRules); ok {
			h.ledger.GrantZone(account, zone)
			result.UnlockedZone = zone
		}

		multiplier := h.ledger.CurrentMultiplier(account)
		bonus := 1 + float64(len(account.Collection))*collectionBonusPerColor
		gained := int(math.Round(float64(tier.Value) * multiplier * bonus * coinBonus))
		h.ledger.CreditCoins(account, gained, txType, "Spin gain: "+tier.Name)

		result.CoinsGained = gained
		result.Multiplier = multiplier
		result.Balance = account.Coins
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spin failed", "details": err.Error()})
		return
	}

	h.hub.SendBalance(username, result.Balance)

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// Catalog returns the tiers currently visible to the account: zoneless
// tiers plus the unlocked zones.
func (h *SpinHandler) Catalog(c *gin.Context) {
	username := c.GetString("username")

	account, err := h.redisService.GetAccount(username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	visible := zones.Eligible(account, h.catalog.Tiers)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"colors":  visible,
		"count":   len(visible),
	})
}

// BuyBooster purchases the income multiplier. Only one booster may run at
// a time; the ledger itself would happily stack them.
func (h *SpinHandler) BuyBooster(c *gin.Context) {
	username := c.GetString("username")

	account, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		if h.ledger.HasActiveBooster(account) {
			return models.ErrBoosterActive
		}
		return h.ledger.PurchaseMultiplier(account, boosterMultiplier, boosterDurationSeconds, boosterCost)
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrInsufficientFunds) {
			status = http.StatusPaymentRequired
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"multiplier": boosterMultiplier,
		"expires_at": account.Boosters[len(account.Boosters)-1].ExpiresAt,
		"balance":    account.Coins,
	})
}

// BuyAttackCoin converts coins into one attack coin.
func (h *SpinHandler) BuyAttackCoin(c *gin.Context) {
	username := c.GetString("username")

	account, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		return h.ledger.BuyAttackCoin(account, attackCoinCost)
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrInsufficientFunds) {
			status = http.StatusPaymentRequired
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"attack_coins": account.AttackCoins,
		"balance":      account.Coins,
	})
}

// UnlockZone performs a paid zone unlock.
func (h *SpinHandler) UnlockZone(c *gin.Context) {
	username := c.GetString("username")

	var req models.ZoneUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	zone, err := zones.ParseZone(req.Zone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cost, _ := zones.UnlockCost(zone)

	unlocked := false
	account, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		unlocked = h.ledger.UnlockZone(account, zone, cost)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}
	if !unlocked {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": models.ErrInsufficientFunds.Error(),
			"cost":  cost,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"zone":    zone,
		"balance": account.Coins,
	})
}

// ClaimBonus credits a random 100-200 coins; rate limited per user.
func (h *SpinHandler) ClaimBonus(c *gin.Context) {
	username := c.GetString("username")

	allowed, err := h.redisService.CheckRateLimit(username, "bonus", services.DefaultRateLimitBonus, time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rate limit check failed"})
		return
	}
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many bonus claims. Please wait."})
		return
	}

	gain := bonusCoinsMin + h.rng.IntN(bonusCoinsMax-bonusCoinsMin+1)
	account, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		h.ledger.CreditCoins(account, gain, models.TransactionTypeBonus, "Gold bonus")
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	h.hub.SendBalance(username, account.Coins)

	c.JSON(http.StatusOK, gin.H{"success": true, "gained": gain, "balance": account.Coins})
}

// Leaderboard returns up to 100 accounts ranked by coin balance.
func (h *SpinHandler) Leaderboard(c *gin.Context) {
	accounts, err := h.redisService.ListTopAccounts(services.LeaderboardLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard", "details": err.Error()})
		return
	}

	entries := make([]models.LeaderboardEntry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, models.LeaderboardEntry{
			Username:       a.Username,
			Coins:          a.Coins,
			CollectionSize: len(a.Collection),
			PFP:            a.PFP,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ranking": entries, "count": len(entries)})
}

// Attack destroys one random color in the target's collection.
func (h *SpinHandler) Attack(c *gin.Context) {
	username := c.GetString("username")

	var req models.AttackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := h.attacks.Attack(username, req.Target)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			status = http.StatusNotFound
		case errors.Is(err, models.ErrInsufficientAttackCoins):
			status = http.StatusPaymentRequired
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.hub.NotifyAttack(req.Target, models.AttackNotification{
		From:      username,
		ColorID:   result.DestroyedColorID,
		Timestamp: time.Now().UnixMilli(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
