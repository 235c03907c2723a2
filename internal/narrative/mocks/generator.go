package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGenerator - это mock-объект для narrative.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) DungeonRoom(ctx context.Context, dungeonName string, floor int, roomType, monster, playerName, playerClass string) string {
	args := m.Called(ctx, dungeonName, floor, roomType, monster, playerName, playerClass)
	return args.String(0)
}

func (m *MockGenerator) MonsterIntro(ctx context.Context, monsterName, grade string, floor int) string {
	args := m.Called(ctx, monsterName, grade, floor)
	return args.String(0)
}

func (m *MockGenerator) BossIntro(ctx context.Context, bossName, playerName string) string {
	args := m.Called(ctx, bossName, playerName)
	return args.String(0)
}

func (m *MockGenerator) Victory(ctx context.Context, playerName, monsterName, loot string) string {
	args := m.Called(ctx, playerName, monsterName, loot)
	return args.String(0)
}

func (m *MockGenerator) Death(ctx context.Context, playerName, killerName string, floor int) string {
	args := m.Called(ctx, playerName, killerName, floor)
	return args.String(0)
}

func (m *MockGenerator) LevelUp(ctx context.Context, playerName string, newLevel int, newRank string) string {
	args := m.Called(ctx, playerName, newLevel, newRank)
	return args.String(0)
}

func (m *MockGenerator) ExploreEvent(ctx context.Context, region, playerName, eventType string) string {
	args := m.Called(ctx, region, playerName, eventType)
	return args.String(0)
}
