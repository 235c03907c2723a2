package catalogue

import "rpg-server/internal/models"

// DungeonBoss is a boss-floor template. IsFinal marks the floor-100
// boss.
type DungeonBoss struct {
	ID      string
	Name    string
	Type    string
	HP      int
	Atk     int
	Def     int
	Phases  int
	IsFinal bool
}

var DungeonBosses = []DungeonBoss{
	{ID: "grave_warden", Name: "The Grave Warden", Type: "undead", HP: 450, Atk: 28, Def: 12, Phases: 2},
	{ID: "molten_behemoth", Name: "Molten Behemoth", Type: "elemental", HP: 550, Atk: 32, Def: 14, Phases: 2},
	{ID: "serpent_queen", Name: "The Serpent Queen", Type: "beast", HP: 500, Atk: 30, Def: 13, Phases: 2},
	{ID: "hollow_king", Name: "The Hollow King", Type: "undead", HP: 600, Atk: 35, Def: 15, Phases: 3},
	{ID: "abyssal_tyrant", Name: "Abyssal Tyrant", Type: "demon", HP: 650, Atk: 38, Def: 16, Phases: 3},
	{ID: "final_boss", Name: "Zereth, Devourer of Realms", Type: "demon", HP: 2500, Atk: 60, Def: 15, Phases: 3, IsFinal: true},
}

// WorldBossTemplate is a spawnable raid boss.
type WorldBossTemplate struct {
	ID     string
	Name   string
	Type   string
	Grade  string
	Region string
	Desc   string
	HP     int64
	Atk    int
	Def    int
	Phases []models.BossPhase
}

var WorldBosses = []WorldBossTemplate{
	{
		ID: "ragnaros", Name: "Ragnaros the Fire Dragon", Type: "dragon", Grade: "S",
		Region: "dragon_mountains", HP: 100000, Atk: 80, Def: 30,
		Desc: "An ancient fire dragon reborn from volcanic ash. Its breath melts steel.",
		Phases: []models.BossPhase{
			{HPPct: 0.75, Message: "Ragnaros ignites, his scales glow white hot!"},
			{HPPct: 0.50, Message: "Ragnaros takes to the skies! His fury doubles!"},
			{HPPct: 0.25, Message: "Apocalypse flame! Ragnaros attacks in a frenzy!"},
		},
	},
	{
		ID: "bone_colossus", Name: "The Bone Colossus", Type: "undead", Grade: "S",
		Region: "ancient_ruins", HP: 80000, Atk: 70, Def: 20,
		Desc: "Thousands of skeletal bodies fused into one unholy titan.",
		Phases: []models.BossPhase{
			{HPPct: 0.70, Message: "The Colossus absorbs nearby bones, growing larger!"},
			{HPPct: 0.40, Message: "Necrotic shockwaves! The ground cracks!"},
			{HPPct: 0.15, Message: "The Colossus unleashes bone shards in all directions!"},
		},
	},
	{
		ID: "archfiend_belzarak", Name: "Archfiend Belzarak", Type: "demon", Grade: "S",
		Region: "demon_realm", HP: 90000, Atk: 90, Def: 25,
		Desc: "A lord of the nine hells who has breached the mortal plane.",
		Phases: []models.BossPhase{
			{HPPct: 0.70, Message: "Belzarak summons shadow fiends from the abyss!"},
			{HPPct: 0.45, Message: "Hellfire rain! Flames blanket the battlefield!"},
			{HPPct: 0.20, Message: "True form revealed! Belzarak's power erupts!"},
		},
	},
	{
		ID: "celestial_void", Name: "The Celestial Void", Type: "celestial", Grade: "S",
		Region: "celestial_realm", HP: 120000, Atk: 100, Def: 40,
		Desc: "A tear in divine reality given malevolent consciousness.",
		Phases: []models.BossPhase{
			{HPPct: 0.65, Message: "Reality warps, the Void splits apart!"},
			{HPPct: 0.35, Message: "Erasure field! Attacks vanish into nothing!"},
			{HPPct: 0.10, Message: "The Void opens fully, its true magnitude revealed!"},
		},
	},
}

// WorldBossByID looks a raid boss template up by id.
func WorldBossByID(id string) (WorldBossTemplate, bool) {
	for _, b := range WorldBosses {
		if b.ID == id {
			return b, true
		}
	}
	return WorldBossTemplate{}, false
}
