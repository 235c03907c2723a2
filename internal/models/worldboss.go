package models

import "time"

// BossPhase is one scripted stage of a raid boss fight, triggered the
// first time the boss drops below its HP percentage.
type BossPhase struct {
	HPPct   float64 `json:"hp_pct"`
	Message string  `json:"message"`
}

// WorldBoss is the single server-wide raid boss. All mutation goes
// through the manager that owns it.
type WorldBoss struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Index  string `json:"index"`
	Type   string `json:"type"`
	Grade  string `json:"grade"`
	Desc   string `json:"desc"`
	Region string `json:"region"`

	HP    int64 `json:"hp"`
	MaxHP int64 `json:"max_hp"`
	Atk   int   `json:"atk"`
	Def   int   `json:"def"`

	Phases         []BossPhase `json:"phases"`
	TriggeredPhase []bool      `json:"triggered_phase"`

	// DamageDealt tallies lifetime damage per player id for the
	// defeat ranking.
	DamageDealt map[string]int64 `json:"damage_dealt"`

	SpawnedAt time.Time `json:"spawned_at"`
}

// HPPercent returns remaining HP as a fraction of MaxHP.
func (b *WorldBoss) HPPercent() float64 {
	if b.MaxHP == 0 {
		return 0
	}
	return float64(b.HP) / float64(b.MaxHP)
}

// RaidRank is one row of the defeat ranking table.
type RaidRank struct {
	Position int    `json:"position"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Damage   int64  `json:"damage"`
	Gold     int64  `json:"gold"`
	Gems     int    `json:"gems"`
	Exp      int64  `json:"exp"`
}
