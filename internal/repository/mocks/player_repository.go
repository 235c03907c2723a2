package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rpg-server/internal/models"
	"rpg-server/internal/repository"
)

// Mock PlayerRepository
type PlayerRepository struct {
	mock.Mock
}

func (m *PlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

func (m *PlayerRepository) Create(ctx context.Context, player *models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *PlayerRepository) Save(ctx context.Context, player *models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *PlayerRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.Player, error) {
	args := m.Called(ctx, ids)
	res, _ := args.Get(0).(map[string]*models.Player)
	return res, args.Error(1)
}

func (m *PlayerRepository) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]repository.LeaderboardEntry)
	return res, args.Error(1)
}

// Mock ChallengeRepository
type ChallengeRepository struct {
	mock.Mock
}

func (m *ChallengeRepository) CreateChallenge(ctx context.Context, challengerID, targetID string, ttl time.Duration) error {
	args := m.Called(ctx, challengerID, targetID, ttl)
	return args.Error(0)
}

func (m *ChallengeRepository) TakeChallenge(ctx context.Context, targetID string) (string, error) {
	args := m.Called(ctx, targetID)
	return args.String(0), args.Error(1)
}

// Mock CooldownRepository
type CooldownRepository struct {
	mock.Mock
}

func (m *CooldownRepository) SetCooldown(ctx context.Context, playerID, command string, d time.Duration) error {
	args := m.Called(ctx, playerID, command, d)
	return args.Error(0)
}

func (m *CooldownRepository) CooldownRemaining(ctx context.Context, playerID, command string) (time.Duration, error) {
	args := m.Called(ctx, playerID, command)
	d, _ := args.Get(0).(time.Duration)
	return d, args.Error(1)
}
