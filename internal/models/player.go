package models

import "time"

// Hard caps on the player document. A player can never exceed these
// regardless of level, buffs or rewards.
const (
	MaxSingleStat  = 100
	MaxTotalStats  = 500
	MaxHPCap       = 2000
	MaxMPCap       = 1000
	InventoryCap   = 30
	DungeonFloors  = 100
	CheckpointStep = 10
)

// Stats are the five core attributes of a player.
type Stats struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Defense      int `json:"defense"`
	Luck         int `json:"luck"`
}

// Total returns the aggregate of all five attributes.
func (s Stats) Total() int {
	return s.Strength + s.Agility + s.Intelligence + s.Defense + s.Luck
}

// InventoryItem is a stackable item slot in the player's bag.
type InventoryItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// DungeonProgress tracks where the player stands inside the endless dungeon.
type DungeonProgress struct {
	Floor      int `json:"floor"`
	Room       int `json:"room"`
	Checkpoint int `json:"checkpoint"`
}

// PvpRecord keeps lifetime duel results.
type PvpRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Counters are lifetime achievement counters used for title unlocks.
type Counters struct {
	MonstersKilled  int `json:"monsters_killed"`
	BossesKilled    int `json:"bosses_killed"`
	DungeonsCleared int `json:"dungeons_cleared"`
	WorldBossKills  int `json:"world_boss_kills"`
	Deaths          int `json:"deaths"`
	Flees           int `json:"flees"`
}

// Player is the full persistent document of one character. It is stored
// as a single JSONB row and always written back atomically after a command.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
	Race  string `json:"race"`

	Level int   `json:"level"`
	Exp   int64 `json:"exp"`
	Gold  int64 `json:"gold"`
	Gems  int   `json:"gems"`
	Loan  int64 `json:"loan"`

	Stats      Stats `json:"stats"`
	StatPoints int   `json:"stat_points"`

	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	MP    int `json:"mp"`
	MaxMP int `json:"max_mp"`

	Inventory []InventoryItem `json:"inventory"`
	Skills    []string        `json:"skills"`

	Titles      []string `json:"titles"`
	ActiveTitle string   `json:"active_title,omitempty"`
	Job         string   `json:"job,omitempty"`
	Region      string   `json:"region"`

	Dungeon DungeonProgress `json:"dungeon"`
	Pvp     PvpRecord       `json:"pvp"`
	Count   Counters        `json:"counters"`

	// KillCounts tallies kills per monster index for title unlocks.
	KillCounts map[string]int `json:"kill_counts"`

	InBattle  bool `json:"in_battle"`
	InDungeon bool `json:"in_dungeon"`
	InPvp     bool `json:"in_pvp"`

	// Battle is the active encounter snapshot, nil outside of combat.
	Battle *BattleState `json:"battle,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDead reports whether the player is out of HP.
func (p *Player) IsDead() bool { return p.HP <= 0 }

// RankFor maps a level to its rank name.
func RankFor(level int) string {
	switch {
	case level >= 100:
		return "Transcendent"
	case level >= 80:
		return "Mythic"
	case level >= 65:
		return "Legend"
	case level >= 50:
		return "Champion"
	case level >= 35:
		return "Elite"
	case level >= 20:
		return "Veteran"
	case level >= 10:
		return "Adventurer"
	default:
		return "Peasant"
	}
}

// Rank returns the player's current rank name.
func (p *Player) Rank() string { return RankFor(p.Level) }

// ExpToNext returns the exp threshold to leave the current level.
func (p *Player) ExpToNext() int64 { return int64(p.Level) * 200 }

// ClampVitals forces HP and MP back inside [0, max].
func (p *Player) ClampVitals() {
	if p.MaxHP > MaxHPCap {
		p.MaxHP = MaxHPCap
	}
	if p.MaxMP > MaxMPCap {
		p.MaxMP = MaxMPCap
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.HP < 0 {
		p.HP = 0
	}
	if p.MP > p.MaxMP {
		p.MP = p.MaxMP
	}
	if p.MP < 0 {
		p.MP = 0
	}
}

// VitalsForLevel recomputes MaxHP and MaxMP from the level formula,
// respecting the hard caps.
func (p *Player) VitalsForLevel() {
	p.MaxHP = 100 + 19*p.Level
	if p.MaxHP > MaxHPCap {
		p.MaxHP = MaxHPCap
	}
	p.MaxMP = 50 + 19*p.Level/2
	if p.MaxMP > MaxMPCap {
		p.MaxMP = MaxMPCap
	}
}

// HasSkill reports whether the player has learned the given skill.
func (p *Player) HasSkill(id string) bool {
	for _, s := range p.Skills {
		if s == id {
			return true
		}
	}
	return false
}

// HasTitle reports whether the player already owns the given title.
func (p *Player) HasTitle(id string) bool {
	for _, t := range p.Titles {
		if t == id {
			return true
		}
	}
	return false
}

// AddItem adds quantity of an item to the inventory, stacking onto an
// existing slot when possible. Returns false when the bag is full.
func (p *Player) AddItem(itemID string, qty int) bool {
	for i := range p.Inventory {
		if p.Inventory[i].ItemID == itemID {
			p.Inventory[i].Quantity += qty
			return true
		}
	}
	if len(p.Inventory) >= InventoryCap {
		return false
	}
	p.Inventory = append(p.Inventory, InventoryItem{ItemID: itemID, Quantity: qty})
	return true
}

// RemoveItem removes quantity of an item, dropping the slot when it
// reaches zero. Returns false when the player does not own enough.
func (p *Player) RemoveItem(itemID string, qty int) bool {
	for i := range p.Inventory {
		if p.Inventory[i].ItemID != itemID {
			continue
		}
		if p.Inventory[i].Quantity < qty {
			return false
		}
		p.Inventory[i].Quantity -= qty
		if p.Inventory[i].Quantity == 0 {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
		}
		return true
	}
	return false
}

// ItemCount returns how many of an item the player carries.
func (p *Player) ItemCount(itemID string) int {
	for _, it := range p.Inventory {
		if it.ItemID == itemID {
			return it.Quantity
		}
	}
	return 0
}
