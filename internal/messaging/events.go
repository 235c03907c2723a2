package messaging

import (
	"time"

	"rpg-server/internal/models"
)

// Routing keys событий. Консьюмер на стороне чат-транспорта
// подписывается на нужные.
const (
	RouteWorldBossSpawned  = "worldboss.spawned"
	RouteWorldBossPhase    = "worldboss.phase"
	RouteWorldBossDefeated = "worldboss.defeated"
	RouteTitleUnlocked     = "player.title_unlocked"
)

// WorldBossSpawnedEvent - мировой босс появился.
type WorldBossSpawnedEvent struct {
	EventID   string    `json:"event_id"`
	BossID    string    `json:"boss_id"`
	Name      string    `json:"name"`
	Grade     string    `json:"grade"`
	Region    string    `json:"region"`
	Desc      string    `json:"desc"`
	MaxHP     int64     `json:"max_hp"`
	SpawnedAt time.Time `json:"spawned_at"`
}

// WorldBossPhaseEvent - босс перешел в новую фазу.
type WorldBossPhaseEvent struct {
	EventID string  `json:"event_id"`
	BossID  string  `json:"boss_id"`
	Name    string  `json:"name"`
	HPPct   float64 `json:"hp_pct"`
	Message string  `json:"message"`
}

// WorldBossDefeatedEvent - босс повержен, с полной таблицей урона.
type WorldBossDefeatedEvent struct {
	EventID    string            `json:"event_id"`
	BossID     string            `json:"boss_id"`
	Name       string            `json:"name"`
	Ranking    []models.RaidRank `json:"ranking"`
	DefeatedAt time.Time         `json:"defeated_at"`
}

// TitleUnlockedEvent - игрок получил новый титул.
type TitleUnlockedEvent struct {
	EventID    string `json:"event_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	TitleID    string `json:"title_id"`
	TitleName  string `json:"title_name"`
}
