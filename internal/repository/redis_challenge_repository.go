package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"rpg-server/internal/models"
)

// Compile-time checks
var _ ChallengeRepository = (*redisChallengeRepository)(nil)
var _ CooldownRepository = (*redisChallengeRepository)(nil)

type redisChallengeRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisChallengeRepository создает Redis-хранилище PVP-вызовов и
// кулдаунов команд.
func NewRedisChallengeRepository(client *redis.Client, logger *zap.Logger) *redisChallengeRepository {
	return &redisChallengeRepository{
		client: client,
		logger: logger.Named("RedisChallengeRepo"),
	}
}

func challengeKey(targetID string) string {
	return fmt.Sprintf("pvp_challenge:%s", targetID)
}

func cooldownKey(playerID, command string) string {
	return fmt.Sprintf("cooldown:%s:%s", command, playerID)
}

func (r *redisChallengeRepository) CreateChallenge(ctx context.Context, challengerID, targetID string, ttl time.Duration) error {
	key := challengeKey(targetID)
	// SETNX: повторный вызов той же цели не перезаписывает ожидающий
	ok, err := r.client.SetNX(ctx, key, challengerID, ttl).Result()
	if err != nil {
		r.logger.Error("Failed to create pvp challenge", zap.String("target", targetID), zap.Error(err))
		return fmt.Errorf("ошибка записи pvp-вызова: %w", err)
	}
	if !ok {
		return models.ErrChallengeExists
	}
	r.logger.Debug("PVP challenge created",
		zap.String("challenger", challengerID),
		zap.String("target", targetID),
		zap.Duration("ttl", ttl))
	return nil
}

func (r *redisChallengeRepository) TakeChallenge(ctx context.Context, targetID string) (string, error) {
	key := challengeKey(targetID)
	challengerID, err := r.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", models.ErrChallengeNotFound
		}
		r.logger.Error("Failed to take pvp challenge", zap.String("target", targetID), zap.Error(err))
		return "", fmt.Errorf("ошибка чтения pvp-вызова: %w", err)
	}
	return challengerID, nil
}

func (r *redisChallengeRepository) SetCooldown(ctx context.Context, playerID, command string, d time.Duration) error {
	if err := r.client.Set(ctx, cooldownKey(playerID, command), "1", d).Err(); err != nil {
		r.logger.Error("Failed to set cooldown",
			zap.String("playerID", playerID),
			zap.String("command", command),
			zap.Error(err))
		return fmt.Errorf("ошибка записи кулдауна: %w", err)
	}
	return nil
}

func (r *redisChallengeRepository) CooldownRemaining(ctx context.Context, playerID, command string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, cooldownKey(playerID, command)).Result()
	if err != nil {
		r.logger.Error("Failed to read cooldown",
			zap.String("playerID", playerID),
			zap.String("command", command),
			zap.Error(err))
		return 0, fmt.Errorf("ошибка чтения кулдауна: %w", err)
	}
	if ttl < 0 {
		// -1 без TTL, -2 ключа нет
		return 0, nil
	}
	return ttl, nil
}
