package catalogue

// Region is one area of the overworld map.
type Region struct {
	ID            string
	Name          string
	MinLevel      int
	MaxLevel      int
	MonsterGrades []string
	SafeZone      bool
	DungeonName   string
}

var Regions = []Region{
	{ID: "starter_village", Name: "Starter Village", MinLevel: 1, MaxLevel: 10, MonsterGrades: []string{"E"}, SafeZone: true, DungeonName: "Beginner's Cavern"},
	{ID: "greenwood_forest", Name: "Greenwood Forest", MinLevel: 1, MaxLevel: 15, MonsterGrades: []string{"E", "D"}, DungeonName: "Greenwood Labyrinth"},
	{ID: "elven_kingdom", Name: "Elven Kingdom", MinLevel: 10, MaxLevel: 30, MonsterGrades: []string{"D", "C"}, DungeonName: "Elven Ruins"},
	{ID: "ancient_ruins", Name: "Ancient Ruins", MinLevel: 20, MaxLevel: 45, MonsterGrades: []string{"C", "B"}, DungeonName: "Tomb of the Forgotten"},
	{ID: "demon_realm", Name: "Demon Realm", MinLevel: 35, MaxLevel: 60, MonsterGrades: []string{"B", "A"}, DungeonName: "Inferno Pit"},
	{ID: "dragon_mountains", Name: "Dragon Mountains", MinLevel: 50, MaxLevel: 75, MonsterGrades: []string{"A"}, DungeonName: "Dragon's Lair"},
	{ID: "shadow_abyss", Name: "Shadow Abyss", MinLevel: 65, MaxLevel: 90, MonsterGrades: []string{"A", "S"}, DungeonName: "Shadow Abyss"},
	{ID: "celestial_realm", Name: "Celestial Realm", MinLevel: 80, MaxLevel: 100, MonsterGrades: []string{"S"}, DungeonName: "Divine Sanctum"},
}

// StartingRegion is where fresh characters spawn.
const StartingRegion = "starter_village"

// RegionByID looks a region up by id.
func RegionByID(id string) (Region, bool) {
	for _, r := range Regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}
