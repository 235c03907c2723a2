package catalogue

// MonsterTemplate is a static overworld monster entry.
type MonsterTemplate struct {
	Name  string
	Index string
	Type  string
	HP    int
	AC    int
	CR    float64
}

// OverworldMonsters is the hunt pool per grade.
var OverworldMonsters = map[string][]MonsterTemplate{
	"E": {
		{Name: "Baby Slime", Index: "baby_slime", Type: "ooze", HP: 20, AC: 8, CR: 0.25},
		{Name: "Forest Rat", Index: "forest_rat", Type: "beast", HP: 12, AC: 9, CR: 0.125},
	},
	"D": {
		{Name: "Goblin", Index: "goblin", Type: "humanoid", HP: 35, AC: 11, CR: 0.25},
		{Name: "Skeleton", Index: "skeleton", Type: "undead", HP: 50, AC: 12, CR: 0.5},
	},
	"C": {
		{Name: "Orc Warrior", Index: "orc_warrior", Type: "humanoid", HP: 80, AC: 13, CR: 2},
		{Name: "Zombie Troll", Index: "zombie_troll", Type: "undead", HP: 95, AC: 12, CR: 3},
	},
	"B": {
		{Name: "Werewolf", Index: "werewolf", Type: "beast", HP: 140, AC: 15, CR: 5},
		{Name: "Stone Golem", Index: "stone_golem", Type: "construct", HP: 180, AC: 16, CR: 7},
	},
	"A": {
		{Name: "Demon Knight", Index: "demon_knight", Type: "demon", HP: 220, AC: 17, CR: 11},
		{Name: "Ancient Wyvern", Index: "ancient_wyvern", Type: "dragon", HP: 200, AC: 16, CR: 12},
	},
	"S": {
		{Name: "Elder Dragon", Index: "elder_dragon", Type: "dragon", HP: 350, AC: 19, CR: 20},
		{Name: "Demon Lord", Index: "demon_lord", Type: "demon", HP: 400, AC: 18, CR: 22},
	},
}

// DungeonMonster is a dungeon pool entry whose vitals grow with the
// floor before the global floor scale applies.
type DungeonMonster struct {
	Name       string
	Index      string
	Type       string
	BaseHP     int
	HPPerFloor int
	AC         int
	BaseAtk    int
}

var DungeonMonsters = []DungeonMonster{
	{Name: "Skeleton Warrior", Index: "skeleton_warrior", Type: "undead", BaseHP: 50, HPPerFloor: 3, AC: 12, BaseAtk: 10},
	{Name: "Shadow Wraith", Index: "shadow_wraith", Type: "undead", BaseHP: 40, HPPerFloor: 2, AC: 13, BaseAtk: 12},
	{Name: "Stone Golem", Index: "stone_golem", Type: "construct", BaseHP: 80, HPPerFloor: 4, AC: 15, BaseAtk: 15},
	{Name: "Flame Imp", Index: "flame_imp", Type: "demon", BaseHP: 35, HPPerFloor: 2, AC: 11, BaseAtk: 8},
	{Name: "Vampire Lord", Index: "vampire_lord", Type: "undead", BaseHP: 90, HPPerFloor: 5, AC: 14, BaseAtk: 18},
}

// FloorScale is the multiplier applied to dungeon monster vitals.
func FloorScale(floor int) float64 { return 1 + float64(floor)/100 }
