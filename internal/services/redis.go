package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"colorspin-backend/internal/config"
	"colorspin-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisService is the document store for account records, keyed by
// username. It also maintains the leaderboard index, transaction history
// and per-user rate limits.
type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{client: client, ctx: ctx}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// accountDoc is the stored shape of an account. The API shape keeps the
// credential out of its JSON; the persisted document must carry it, so the
// hash is lifted into an explicit field here.
type accountDoc struct {
	*models.Account
	PasswordHash string `json:"password_hash"`
}

func encodeAccount(account *models.Account) ([]byte, error) {
	return json.Marshal(accountDoc{Account: account, PasswordHash: account.PasswordHash})
}

func decodeAccount(data []byte) (*models.Account, error) {
	doc := accountDoc{Account: &models.Account{}}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.Account.PasswordHash = doc.PasswordHash
	return doc.Account, nil
}

// GetAccount loads an account document. Returns models.ErrUserNotFound
// when no record exists for the username.
func (s *RedisService) GetAccount(username string) (*models.Account, error) {
	key := fmt.Sprintf(KeyAccount, username)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %v", err)
	}

	account, err := decodeAccount([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %v", err)
	}

	return account, nil
}

// AccountExists checks for a record without deserializing it.
func (s *RedisService) AccountExists(username string) (bool, error) {
	n, err := s.client.Exists(s.ctx, fmt.Sprintf(KeyAccount, username)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check account: %v", err)
	}
	return n > 0, nil
}

// SaveAccount persists the full account snapshot and refreshes the
// leaderboard index score.
func (s *RedisService) SaveAccount(account *models.Account) error {
	account.UpdatedAt = time.Now().UnixMilli()

	data, err := encodeAccount(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %v", err)
	}

	key := fmt.Sprintf(KeyAccount, account.Username)
	if err := s.client.Set(s.ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save account: %v", err)
	}

	return s.client.ZAdd(s.ctx, KeyLeaderboard, redis.Z{
		Score:  float64(account.Coins),
		Member: account.Username,
	}).Err()
}

// ListTopAccounts returns up to limit accounts from the store-side index.
// The ranking is recomputed here by coin balance rather than trusting the
// index score, which may lag a beat behind the documents.
func (s *RedisService) ListTopAccounts(limit int) ([]*models.Account, error) {
	if limit <= 0 || limit > LeaderboardLimit {
		limit = LeaderboardLimit
	}

	usernames, err := s.client.ZRevRange(s.ctx, KeyLeaderboard, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard index: %v", err)
	}
	if len(usernames) == 0 {
		return []*models.Account{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(usernames))
	for i, username := range usernames {
		cmds[i] = pipe.Get(s.ctx, fmt.Sprintf(KeyAccount, username))
	}
	_, err = pipe.Exec(s.ctx)
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("pipeline execution failed: %v", err)
	}

	var accounts []*models.Account
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			continue
		}
		account, err := decodeAccount([]byte(data))
		if err != nil {
			continue
		}
		accounts = append(accounts, account)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Coins > accounts[j].Coins
	})

	return accounts, nil
}

func (s *RedisService) StoreUserSession(username, sessionID string) error {
	key := fmt.Sprintf(KeyUserSession, username, sessionID)
	return s.client.Set(s.ctx, key, time.Now().UnixMilli(), TTLUserSession).Err()
}

func (s *RedisService) SessionExists(username, sessionID string) (bool, error) {
	n, err := s.client.Exists(s.ctx, fmt.Sprintf(KeyUserSession, username, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisService) DeleteUserSession(username, sessionID string) error {
	key := fmt.Sprintf(KeyUserSession, username, sessionID)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) SaveTransaction(tx *models.Transaction) error {
	txKey := fmt.Sprintf(KeyTransaction, tx.ID)

	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %v", err)
	}

	if err := s.client.Set(s.ctx, txKey, data, TTLTransaction).Err(); err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, tx.Username)
	if err := s.client.ZAdd(s.ctx, userTxKey, redis.Z{
		Score:  float64(tx.CreatedAt),
		Member: tx.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to user transactions: %v", err)
	}

	// Keep only last 100 transactions
	s.client.ZRemRangeByRank(s.ctx, userTxKey, 0, -101)

	return nil
}

func (s *RedisService) GetUserTransactions(username string, limit int64) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	userTxKey := fmt.Sprintf(KeyUserTransactions, username)

	txIDs, err := s.client.ZRevRange(s.ctx, userTxKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction IDs: %v", err)
	}

	var transactions []*models.Transaction
	for _, txID := range txIDs {
		data, err := s.client.Get(s.ctx, fmt.Sprintf(KeyTransaction, txID)).Result()
		if err != nil {
			continue
		}
		var tx models.Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			continue
		}
		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

func (s *RedisService) CheckRateLimit(username, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(KeyRateLimit, username, action)

	count, err := s.client.Incr(s.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %v", err)
	}

	if count == 1 {
		s.client.Expire(s.ctx, key, window)
	}

	return count <= int64(limit), nil
}

func (s *RedisService) DeleteAccount(username string) error {
	if err := s.client.Del(s.ctx, fmt.Sprintf(KeyAccount, username)).Err(); err != nil {
		return err
	}
	return s.client.ZRem(s.ctx, KeyLeaderboard, username).Err()
}
