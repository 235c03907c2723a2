package models

// Outcome kinds of a single combat command.
const (
	OutcomeContinuing = "continuing"
	OutcomeVictory    = "victory"
	OutcomeDeath      = "death"
	OutcomeFled       = "fled"
)

// BattleStatus is the post-action snapshot rendered back to the player.
type BattleStatus struct {
	EnemyName   string   `json:"enemy_name"`
	EnemyGrade  string   `json:"enemy_grade"`
	EnemyHP     int      `json:"enemy_hp"`
	EnemyMaxHP  int      `json:"enemy_max_hp"`
	PlayerHP    int      `json:"player_hp"`
	PlayerMaxHP int      `json:"player_max_hp"`
	PlayerMP    int      `json:"player_mp"`
	PlayerMaxMP int      `json:"player_max_mp"`
	Turn        int      `json:"turn"`
	Floor       int      `json:"floor,omitempty"`
	Room        int      `json:"room,omitempty"`
	Effects     []string `json:"effects,omitempty"`
}

// RewardSummary describes what a victory paid out.
type RewardSummary struct {
	Exp       int64    `json:"exp"`
	Gold      int64    `json:"gold"`
	Loot      string   `json:"loot,omitempty"`
	LootLost  bool     `json:"loot_lost,omitempty"`
	LeveledUp bool     `json:"leveled_up"`
	NewLevel  int      `json:"new_level,omitempty"`
	NewRank   string   `json:"new_rank,omitempty"`
	NewSkills []string `json:"new_skills,omitempty"`
	NewTitles []string `json:"new_titles,omitempty"`
}

// DeathSummary describes the penalty applied when the player fell.
type DeathSummary struct {
	GoldLost     int64 `json:"gold_lost"`
	RevivedHP    int   `json:"revived_hp"`
	DungeonReset bool  `json:"dungeon_reset"`
	ResetToFloor int   `json:"reset_to_floor,omitempty"`
}

// EncounterOutcome is the full result of one combat command. Exactly
// one of Rewards or Penalty is set for victory and death outcomes.
type EncounterOutcome struct {
	Kind      string         `json:"kind"`
	Log       []string       `json:"log"`
	Status    *BattleStatus  `json:"status,omitempty"`
	Rewards   *RewardSummary `json:"rewards,omitempty"`
	Penalty   *DeathSummary  `json:"penalty,omitempty"`
	Narrative string         `json:"narrative,omitempty"`
}

// ExploreOutcome is the result of one exploration roll. When the roll
// produced a monster, Encounter carries the opened fight.
type ExploreOutcome struct {
	Event     string            `json:"event"`
	Log       []string          `json:"log"`
	Gold      int64             `json:"gold,omitempty"`
	Exp       int64             `json:"exp,omitempty"`
	Item      string            `json:"item,omitempty"`
	StatUp    string            `json:"stat_up,omitempty"`
	Damage    int               `json:"damage,omitempty"`
	Encounter *EncounterOutcome `json:"encounter,omitempty"`
	Narrative string            `json:"narrative,omitempty"`
}

// WorldBossHitOutcome is the result of one raid attack.
type WorldBossHitOutcome struct {
	Log        []string   `json:"log"`
	Damage     int64      `json:"damage"`
	Crit       bool       `json:"crit"`
	BossHP     int64      `json:"boss_hp"`
	BossMaxHP  int64      `json:"boss_max_hp"`
	PhaseNotes []string   `json:"phase_notes,omitempty"`
	KnockedOut bool       `json:"knocked_out"`
	Defeated   bool       `json:"defeated"`
	Ranking    []RaidRank `json:"ranking,omitempty"`
	Narrative  string     `json:"narrative,omitempty"`
}
