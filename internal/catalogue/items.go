package catalogue

// Battle item effect kinds.
const (
	ItemHealFlat   = "heal_flat"
	ItemHealFull   = "heal_full"
	ItemHealRatio  = "heal_ratio"
	ItemManaFlat   = "mana_flat"
	ItemManaFull   = "mana_full"
	ItemCurePoison = "cure_poison"
)

// Item is a consumable usable during an encounter.
type Item struct {
	ID     string
	Name   string
	Effect string
	Amount int
	// Ratio applies for heal_ratio items.
	Ratio float64
}

var Items = []Item{
	{ID: "health_potion", Name: "Health Potion", Effect: ItemHealFlat, Amount: 100},
	{ID: "mega_health", Name: "Mega Health", Effect: ItemHealFlat, Amount: 300},
	{ID: "elixir_of_life", Name: "Elixir of Life", Effect: ItemHealFull},
	{ID: "mana_potion", Name: "Mana Potion", Effect: ItemManaFlat, Amount: 80},
	{ID: "mega_mana", Name: "Mega Mana", Effect: ItemManaFull},
	{ID: "antidote", Name: "Antidote", Effect: ItemCurePoison},
	{ID: "revival_stone", Name: "Revival Stone", Effect: ItemHealRatio, Ratio: 0.5},
}

// ItemByID looks a battle item up by id.
func ItemByID(id string) (Item, bool) {
	for _, it := range Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// VictoryLootPool is drawn from once per victory. Empty slots mean no
// drop.
var VictoryLootPool = []string{"health_potion", "mana_potion", "antidote", "", "", "", ""}
