package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"colorspin-backend/internal/catalog"
	"colorspin-backend/internal/models"
	"colorspin-backend/internal/services"
)

type UserHandler struct {
	redisService *services.RedisService
	ledger       *services.Ledger
	catalog      *catalog.Catalog
}

func NewUserHandler(redisService *services.RedisService, ledger *services.Ledger, cat *catalog.Catalog) *UserHandler {
	return &UserHandler{
		redisService: redisService,
		ledger:       ledger,
		catalog:      cat,
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	username := c.GetString("username")

	account, err := h.redisService.GetAccount(username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"account": account,
		"stats": gin.H{
			"collection_size": len(account.Collection),
			"catalog_size":    len(h.catalog.Tiers),
		},
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	username := c.GetString("username")
	sessionID := c.GetString("session_id")

	if err := h.redisService.DeleteUserSession(username, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Successfully logged out"})
}

// Notifications drains the pending attack queue. Read-once: the queue is
// cleared as part of the read.
func (h *UserHandler) Notifications(c *gin.Context) {
	username := c.GetString("username")

	var drained []models.AttackNotification
	_, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		drained = h.ledger.DrainAttackNotifications(account)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attacks": drained, "count": len(drained)})
}

func (h *UserHandler) Transactions(c *gin.Context) {
	username := c.GetString("username")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	transactions, err := h.redisService.GetUserTransactions(username, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "transactions": transactions, "count": len(transactions)})
}

// SetPFP sets the profile color. The color must reference an owned tier.
func (h *UserHandler) SetPFP(c *gin.Context) {
	username := c.GetString("username")

	var req models.PFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	tier, ok := h.catalog.Tier(req.ColorID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown color id"})
		return
	}

	account, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		if !account.Owns(tier.ID) {
			return models.ErrColorNotOwned
		}
		h.ledger.SetPFP(account, tier.Hex)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "pfp": account.PFP})
}

// ResetProgress wipes balances, collection, boosters and zones. The
// profile color survives.
func (h *UserHandler) ResetProgress(c *gin.Context) {
	username := c.GetString("username")

	account, err := h.ledger.WithAccount(username, func(account *models.Account) error {
		h.ledger.ResetProgress(account)
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "account": account})
}
