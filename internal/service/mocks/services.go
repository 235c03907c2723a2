package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rpg-server/internal/models"
	"rpg-server/internal/repository"
)

// Mock PlayerService
type PlayerService struct {
	mock.Mock
}

func (m *PlayerService) Register(ctx context.Context, playerID, name, classID, raceID string) (*models.Player, error) {
	args := m.Called(ctx, playerID, name, classID, raceID)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

func (m *PlayerService) Profile(ctx context.Context, playerID string) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

func (m *PlayerService) EquipTitle(ctx context.Context, playerID, titleID string) (*models.Player, error) {
	args := m.Called(ctx, playerID, titleID)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

func (m *PlayerService) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	res, _ := args.Get(0).([]repository.LeaderboardEntry)
	return res, args.Error(1)
}

// Mock CombatService
type CombatService struct {
	mock.Mock
}

func (m *CombatService) Attack(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *CombatService) Defend(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *CombatService) Flee(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *CombatService) UseSkill(ctx context.Context, playerID, skillID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID, skillID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *CombatService) UseItem(ctx context.Context, playerID, itemID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID, itemID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

// Mock AdventureService
type AdventureService struct {
	mock.Mock
}

func (m *AdventureService) Hunt(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *AdventureService) Explore(ctx context.Context, playerID string) (*models.ExploreOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.ExploreOutcome)
	return out, args.Error(1)
}

func (m *AdventureService) Travel(ctx context.Context, playerID, regionID string) (*models.Player, error) {
	args := m.Called(ctx, playerID, regionID)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

// Mock DungeonService
type DungeonService struct {
	mock.Mock
}

func (m *DungeonService) Enter(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *DungeonService) Continue(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

func (m *DungeonService) Leave(ctx context.Context, playerID string) (*models.Player, error) {
	args := m.Called(ctx, playerID)
	p, _ := args.Get(0).(*models.Player)
	return p, args.Error(1)
}

// Mock PvpService
type PvpService struct {
	mock.Mock
}

func (m *PvpService) Challenge(ctx context.Context, challengerID, targetID string) error {
	args := m.Called(ctx, challengerID, targetID)
	return args.Error(0)
}

func (m *PvpService) Accept(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.EncounterOutcome)
	return out, args.Error(1)
}

// Mock WorldBossService
type WorldBossService struct {
	mock.Mock
}

func (m *WorldBossService) Spawn(ctx context.Context, bossID string) (*models.WorldBoss, error) {
	args := m.Called(ctx, bossID)
	b, _ := args.Get(0).(*models.WorldBoss)
	return b, args.Error(1)
}

func (m *WorldBossService) Current(ctx context.Context) (*models.WorldBoss, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(*models.WorldBoss)
	return b, args.Error(1)
}

func (m *WorldBossService) Fight(ctx context.Context, playerID string) (*models.WorldBossHitOutcome, error) {
	args := m.Called(ctx, playerID)
	out, _ := args.Get(0).(*models.WorldBossHitOutcome)
	return out, args.Error(1)
}

func (m *WorldBossService) RunSpawner(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}
