package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mudra/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	return json.Unmarshal(data, dest)
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(parts ...interface{}) string {
	key := "mudra"
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

// User helpers

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if err := s.Set(ctx, s.GenerateKey("user", "id", user.ID), user); err != nil {
		return err
	}
	return s.Set(ctx, s.GenerateKey("user", "email", user.Email), user)
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	if err := s.Get(ctx, key, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, user *models.User) {
	_ = s.Delete(ctx,
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	)
}

// Wallet helpers

func (s *CacheService) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	return s.SetWithTTL(ctx, s.GenerateKey("wallet", "user", wallet.UserID), wallet, 5*time.Minute)
}

func (s *CacheService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.Get(ctx, s.GenerateKey("wallet", "user", userID), &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *CacheService) InvalidateWallet(ctx context.Context, userID uint) {
	_ = s.Delete(ctx, s.GenerateKey("wallet", "user", userID))
}
