package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rpg-server/internal/messaging"
)

// Mock EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishWorldBossSpawned(ctx context.Context, payload messaging.WorldBossSpawnedEvent) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *EventPublisher) PublishWorldBossPhase(ctx context.Context, payload messaging.WorldBossPhaseEvent) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *EventPublisher) PublishWorldBossDefeated(ctx context.Context, payload messaging.WorldBossDefeatedEvent) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *EventPublisher) PublishTitleUnlocked(ctx context.Context, payload messaging.TitleUnlockedEvent) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
