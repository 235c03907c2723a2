package catalogue

import "rpg-server/internal/models"

// Class is one playable class with its base loadout.
type Class struct {
	ID     string
	Name   string
	Desc   string
	Stats  models.Stats
	BaseHP int
	BaseMP int
}

// Race grants flat stat bonuses on top of the class base.
type Race struct {
	ID      string
	Name    string
	Desc    string
	Bonus   models.Stats
	Passive string
}

var Classes = []Class{
	{ID: "warrior", Name: "Warrior", Desc: "Frontline fighter, hits hard and takes hits.", Stats: models.Stats{Strength: 15, Agility: 8, Intelligence: 5, Defense: 12, Luck: 5}, BaseHP: 120, BaseMP: 50},
	{ID: "mage", Name: "Mage", Desc: "Glass cannon, raw arcane damage.", Stats: models.Stats{Strength: 5, Agility: 7, Intelligence: 16, Defense: 6, Luck: 6}, BaseHP: 90, BaseMP: 90},
	{ID: "assassin", Name: "Assassin", Desc: "Fast, precise, lethal from the shadows.", Stats: models.Stats{Strength: 11, Agility: 15, Intelligence: 6, Defense: 6, Luck: 8}, BaseHP: 100, BaseMP: 60},
	{ID: "archer", Name: "Archer", Desc: "Ranged striker with unmatched accuracy.", Stats: models.Stats{Strength: 10, Agility: 14, Intelligence: 7, Defense: 7, Luck: 8}, BaseHP: 100, BaseMP: 60},
	{ID: "paladin", Name: "Paladin", Desc: "Holy knight, sustain and smite.", Stats: models.Stats{Strength: 12, Agility: 6, Intelligence: 10, Defense: 12, Luck: 5}, BaseHP: 115, BaseMP: 70},
	{ID: "necromancer", Name: "Necromancer", Desc: "Commands the dead and drains the living.", Stats: models.Stats{Strength: 6, Agility: 7, Intelligence: 15, Defense: 7, Luck: 7}, BaseHP: 95, BaseMP: 85},
}

var Races = []Race{
	{ID: "human", Name: "Human", Desc: "Adaptable and balanced.", Bonus: models.Stats{Strength: 1, Agility: 1, Intelligence: 1, Defense: 1, Luck: 1}, Passive: "+1 to all stats"},
	{ID: "elf", Name: "Elf", Desc: "Graceful and attuned to magic.", Bonus: models.Stats{Agility: 3, Intelligence: 2}, Passive: "+3 AGI, +2 INT"},
	{ID: "dwarf", Name: "Dwarf", Desc: "Stubborn as the mountain itself.", Bonus: models.Stats{Strength: 2, Defense: 3}, Passive: "+2 STR, +3 DEF"},
	{ID: "orc", Name: "Orc", Desc: "Born for battle.", Bonus: models.Stats{Strength: 4, Defense: 1}, Passive: "+4 STR, +1 DEF"},
	{ID: "halfling", Name: "Halfling", Desc: "Small, quick and unreasonably lucky.", Bonus: models.Stats{Agility: 2, Luck: 3}, Passive: "+2 AGI, +3 LCK"},
}

// ClassByID looks a class up by id.
func ClassByID(id string) (Class, bool) {
	for _, c := range Classes {
		if c.ID == id {
			return c, true
		}
	}
	return Class{}, false
}

// RaceByID looks a race up by id.
func RaceByID(id string) (Race, bool) {
	for _, r := range Races {
		if r.ID == id {
			return r, true
		}
	}
	return Race{}, false
}
