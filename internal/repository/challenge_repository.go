package repository

import (
	"context"
	"time"
)

// ChallengeRepository хранит ожидающие PVP-вызовы. Вызов живет
// ограниченное время и исчезает сам.
type ChallengeRepository interface {
	// CreateChallenge регистрирует вызов challenger -> target с TTL.
	// Если у цели уже есть ожидающий вызов, возвращается
	// models.ErrChallengeExists.
	CreateChallenge(ctx context.Context, challengerID, targetID string, ttl time.Duration) error
	// TakeChallenge атомарно забирает и удаляет вызов, ожидающий цель.
	// Если вызова нет (или он истек), возвращается
	// models.ErrChallengeNotFound.
	TakeChallenge(ctx context.Context, targetID string) (challengerID string, err error)
}

// CooldownRepository хранит кулдауны команд игроков.
type CooldownRepository interface {
	// SetCooldown ставит кулдаун команды для игрока.
	SetCooldown(ctx context.Context, playerID, command string, d time.Duration) error
	// CooldownRemaining возвращает оставшееся время кулдауна,
	// ноль - если кулдауна нет.
	CooldownRemaining(ctx context.Context, playerID, command string) (time.Duration, error)
}
