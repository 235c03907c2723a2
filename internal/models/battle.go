package models

// Encounter kinds.
const (
	EncounterHunt    = "hunt"
	EncounterDungeon = "dungeon"
	EncounterPvp     = "pvp"
)

// Enemy is the combat snapshot of whatever the player is fighting.
// For pvp duels this is built from the defender's document.
type Enemy struct {
	Name    string `json:"name"`
	Index   string `json:"index"`
	Type    string `json:"type"`
	Grade   string `json:"grade"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"max_hp"`
	Atk     int    `json:"atk"`
	Def     int    `json:"def"`
	IsBoss  bool   `json:"is_boss"`
	IsFinal bool   `json:"is_final,omitempty"`
	Phases  int    `json:"phases,omitempty"`
}

// PlayerEffects holds every temporary status on the player side of an
// encounter. Turn counters tick down once per round.
type PlayerEffects struct {
	Defending     bool `json:"defending"`
	PoisonTurns   int  `json:"poison_turns"`
	BuffStr       int  `json:"buff_str"`
	BuffStrTurns  int  `json:"buff_str_turns"`
	Vanished      bool `json:"vanished"`
	VanishTurns   int  `json:"vanish_turns"`
	EagleEye      int  `json:"eagle_eye"`
	Undying       bool `json:"undying"`
	UndyingTurns  int  `json:"undying_turns"`
	Berserk       bool `json:"berserk"`
	BerserkTurns  int  `json:"berserk_turns"`
	IronWill      bool `json:"iron_will"`
	IronWillTurns int  `json:"iron_will_turns"`
	Shielded      bool `json:"shielded"`
	DivineShield  int  `json:"divine_shield"`
	DivineTurns   int  `json:"divine_turns"`
	FirstTurn     bool `json:"first_turn"`
}

// EnemyEffects holds every temporary status on the enemy side.
type EnemyEffects struct {
	Stunned     bool `json:"stunned"`
	PoisonTurns int  `json:"poison_turns"`
	Cursed      bool `json:"cursed"`
	CursedTurns int  `json:"cursed_turns"`
	// DefCut is the armor shaved off by a full curse, restored on expiry.
	DefCut      int  `json:"def_cut,omitempty"`
	BurnTurns   int  `json:"burn_turns"`
	PlagueTurns int  `json:"plague_turns"`
	DeathMark   bool `json:"death_mark"`
	Trapped     bool `json:"trapped"`
	TrapTurns   int  `json:"trap_turns"`
}

// Ally is a summoned companion that strikes once per round.
type Ally struct {
	Active bool `json:"active"`
	Dmg    int  `json:"dmg"`
	Turns  int  `json:"turns"`
}

// BattleState is the full state of one active encounter. It is embedded
// in the player document so a crashed process can resume mid-fight.
type BattleState struct {
	Type  string `json:"type"`
	Floor int    `json:"floor,omitempty"`
	Room  int    `json:"room,omitempty"`

	// PvpDefenderID is set only for pvp duels.
	PvpDefenderID string `json:"pvp_defender_id,omitempty"`
	// PvpStake is the gold each side wagered.
	PvpStake int64 `json:"pvp_stake,omitempty"`

	Enemy Enemy `json:"enemy"`

	PlayerEffects PlayerEffects `json:"player_effects"`
	EnemyEffects  EnemyEffects  `json:"enemy_effects"`
	Ally          Ally          `json:"ally"`

	UltimateUsed bool `json:"ultimate_used"`
	Turn         int  `json:"turn"`
}

// NewBattleState returns a fresh encounter against the given enemy,
// with every effect cleared and the turn counter at 1.
func NewBattleState(kind string, enemy Enemy) *BattleState {
	return &BattleState{
		Type:          kind,
		Enemy:         enemy,
		PlayerEffects: PlayerEffects{FirstTurn: true},
		Turn:          1,
	}
}
