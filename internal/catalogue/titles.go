package catalogue

// Title requirement kinds.
const (
	TitleReqKills   = "kills"   // kill count of a specific monster index
	TitleReqCounter = "counter" // a lifetime counter reaching a threshold
	TitleReqLevel   = "level"   // character level
)

// Counter names usable in title requirements.
const (
	CounterBossKills       = "boss_kills"
	CounterWorldBossKills  = "world_boss_kills"
	CounterDeaths          = "deaths"
	CounterPvpWins         = "pvp_wins"
	CounterDungeonsCleared = "dungeons_cleared"
)

// Title is an unlockable honorific. BossDmgBonus applies while the
// title is equipped.
type Title struct {
	ID           string
	Name         string
	ReqKind      string
	Monster      string
	Counter      string
	Count        int
	Level        int
	Effect       string
	BossDmgBonus float64
}

var Titles = []Title{
	{ID: "goblin_hunter", Name: "Goblin Hunter", ReqKind: TitleReqKills, Monster: "goblin", Count: 100, Effect: "+5 ATK vs goblins"},
	{ID: "goblin_slayer", Name: "Slayer of Goblins", ReqKind: TitleReqKills, Monster: "goblin", Count: 1000, Effect: "+15 ATK vs goblins"},
	{ID: "dragon_slayer", Name: "Dragon Slayer", ReqKind: TitleReqKills, Monster: "elder_dragon", Count: 100, Effect: "+10 ATK vs dragons"},
	{ID: "boss_hunter", Name: "Boss Hunter", ReqKind: TitleReqCounter, Counter: CounterBossKills, Count: 50, Effect: "+10% raid boss damage", BossDmgBonus: 0.1},
	{ID: "legend_breaker", Name: "Legend Breaker", ReqKind: TitleReqCounter, Counter: CounterWorldBossKills, Count: 1, Effect: "Slew a world boss"},
	{ID: "cockroach", Name: "The Cockroach", ReqKind: TitleReqCounter, Counter: CounterDeaths, Count: 100, Effect: "Died a hundred times and keeps coming back"},
	{ID: "arena_champion", Name: "Arena Champion", ReqKind: TitleReqCounter, Counter: CounterPvpWins, Count: 100, Effect: "+10% PVP damage"},
	{ID: "dungeon_sovereign", Name: "Dungeon Sovereign", ReqKind: TitleReqCounter, Counter: CounterDungeonsCleared, Count: 1, Effect: "Conquered all 100 floors"},
	{ID: "transcendent_one", Name: "The Transcendent One", ReqKind: TitleReqLevel, Level: 100, Effect: "Reached the final rank"},
}

// TitleByID looks a title up by id.
func TitleByID(id string) (Title, bool) {
	for _, t := range Titles {
		if t.ID == id {
			return t, true
		}
	}
	return Title{}, false
}
