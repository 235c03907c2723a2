package catalogue

// EffectKind names one behaviour of a skill. The resolution engine
// switches over this closed set; adding a kind means touching the
// engine, which is intentional.
type EffectKind string

const (
	EffectDamage       EffectKind = "damage"
	EffectDamageStun   EffectKind = "damage_stun"
	EffectDamageBurn   EffectKind = "damage_burn"
	EffectDamagePoison EffectKind = "damage_poison"
	EffectDamageSlow   EffectKind = "damage_slow"
	EffectDamageDrain  EffectKind = "damage_drain"
	EffectStrBuff      EffectKind = "str_buff"
	EffectBerserk      EffectKind = "berserk"
	EffectIronWill     EffectKind = "iron_will"
	EffectCurseAtk     EffectKind = "curse_atk"
	EffectCurseAll     EffectKind = "curse_all"
	EffectManaShield   EffectKind = "mana_shield"
	EffectDivineShield EffectKind = "divine_shield"
	EffectVanish       EffectKind = "vanish"
	EffectEagleEye     EffectKind = "eagle_eye"
	EffectDeathMark    EffectKind = "death_mark"
	EffectFirstStrike  EffectKind = "first_strike"
	EffectTypeBonus    EffectKind = "type_bonus"
	EffectTrueDamage   EffectKind = "true_damage"
	EffectTrap         EffectKind = "trap"
	EffectExecute      EffectKind = "execute"
	EffectSummon       EffectKind = "summon"
	EffectPlague       EffectKind = "plague"
	EffectHeal         EffectKind = "heal"
	EffectUndying      EffectKind = "undying"
	EffectUltimate     EffectKind = "ultimate"
)

// Skill casting types. Magic skills scale off INT, everything else
// off STR. Ultimate skills may be used once per encounter.
const (
	SkillPhysical = "physical"
	SkillMagic    = "magic"
	SkillBuff     = "buff"
	SkillDebuff   = "debuff"
	SkillHeal     = "heal"
	SkillSpecial  = "special"
	SkillUltimate = "ultimate"
)

// EffectSpec is the parameter block of a skill effect. Which fields
// are meaningful depends on Kind.
type EffectSpec struct {
	Kind EffectKind
	// Turns is the duration of an applied status.
	Turns int
	// Charges counts uses for charge-based statuses.
	Charges int
	// Ratio is a kind-specific magnitude (buff fraction, heal
	// fraction, drain fraction, summon stat ratio, bonus multiplier,
	// execute threshold).
	Ratio float64
	// BonusType is the creature type a type-bonus skill punishes.
	BonusType string
}

// Skill is one entry of the static skill catalogue.
type Skill struct {
	ID     string
	Name   string
	Class  string
	Type   string
	MPCost int
	Mult   float64
	Effect EffectSpec
	Desc   string
}

// IsUltimate reports whether the skill is limited to one use per
// encounter.
func (s Skill) IsUltimate() bool { return s.Type == SkillUltimate }

// IsMagic reports whether damage scales off INT.
func (s Skill) IsMagic() bool { return s.Type == SkillMagic }

// Skills lists every skill in class order. The first StarterSkillCount
// entries of each class are granted at registration, the rest unlock
// in order every fifth level.
var Skills = []Skill{
	// Warrior
	{ID: "slash", Name: "Slash", Class: "warrior", Type: SkillPhysical, MPCost: 10, Mult: 1.3, Effect: EffectSpec{Kind: EffectDamage}, Desc: "A clean sword strike."},
	{ID: "shield_bash", Name: "Shield Bash", Class: "warrior", Type: SkillPhysical, MPCost: 15, Mult: 1.1, Effect: EffectSpec{Kind: EffectDamageStun}, Desc: "Slams the enemy, stunning it for a turn."},
	{ID: "battle_cry", Name: "Battle Cry", Class: "warrior", Type: SkillBuff, MPCost: 12, Effect: EffectSpec{Kind: EffectStrBuff, Ratio: 0.2, Turns: 3}, Desc: "Raises STR by 20% for 3 turns."},
	{ID: "power_strike", Name: "Power Strike", Class: "warrior", Type: SkillPhysical, MPCost: 20, Mult: 1.8, Effect: EffectSpec{Kind: EffectDamage}, Desc: "A heavy overhead blow."},
	{ID: "iron_will", Name: "Iron Will", Class: "warrior", Type: SkillBuff, MPCost: 18, Effect: EffectSpec{Kind: EffectIronWill, Turns: 2}, Desc: "Hardens resolve, damage taken -40% for 2 turns."},
	{ID: "war_shout", Name: "War Shout", Class: "warrior", Type: SkillDebuff, MPCost: 16, Effect: EffectSpec{Kind: EffectCurseAtk, Turns: 2}, Desc: "Intimidates the enemy, ATK -20% for 2 turns."},
	{ID: "whirlwind", Name: "Whirlwind", Class: "warrior", Type: SkillPhysical, MPCost: 25, Mult: 2.0, Effect: EffectSpec{Kind: EffectDamage}, Desc: "A spinning slash."},
	{ID: "berserk", Name: "Berserk", Class: "warrior", Type: SkillBuff, MPCost: 30, Effect: EffectSpec{Kind: EffectBerserk, Turns: 3}, Desc: "ATK doubled, DEF halved for 3 turns."},
	{ID: "titan_slam", Name: "Titan Slam", Class: "warrior", Type: SkillPhysical, MPCost: 35, Mult: 2.2, Effect: EffectSpec{Kind: EffectDamageStun}, Desc: "Ground-shattering slam that stuns."},
	{ID: "godlike_rage", Name: "Godlike Rage", Class: "warrior", Type: SkillUltimate, MPCost: 60, Mult: 3.0, Effect: EffectSpec{Kind: EffectUltimate}, Desc: "Unleashes everything in one devastating blow."},

	// Mage
	{ID: "fireball", Name: "Fireball", Class: "mage", Type: SkillMagic, MPCost: 12, Mult: 1.4, Effect: EffectSpec{Kind: EffectDamageBurn, Turns: 2}, Desc: "Hurls fire that keeps burning."},
	{ID: "ice_shard", Name: "Ice Shard", Class: "mage", Type: SkillMagic, MPCost: 12, Mult: 1.3, Effect: EffectSpec{Kind: EffectDamageSlow, Ratio: 0.3, Turns: 2}, Desc: "Frozen spike that slows the enemy's attacks."},
	{ID: "mana_shield", Name: "Mana Shield", Class: "mage", Type: SkillBuff, MPCost: 15, Effect: EffectSpec{Kind: EffectManaShield}, Desc: "Absorbs the next enemy attack."},
	{ID: "chain_lightning", Name: "Chain Lightning", Class: "mage", Type: SkillMagic, MPCost: 22, Mult: 1.8, Effect: EffectSpec{Kind: EffectDamage}, Desc: "Lightning arcs through the enemy."},
	{ID: "blizzard", Name: "Blizzard", Class: "mage", Type: SkillMagic, MPCost: 28, Mult: 1.6, Effect: EffectSpec{Kind: EffectDamageStun}, Desc: "A freezing storm that stuns."},
	{ID: "meteor", Name: "Meteor", Class: "mage", Type: SkillMagic, MPCost: 35, Mult: 2.3, Effect: EffectSpec{Kind: EffectDamage}, Desc: "Calls a burning rock from the sky."},
	{ID: "star_fall", Name: "Star Fall", Class: "mage", Type: SkillMagic, MPCost: 45, Mult: 2.6, Effect: EffectSpec{Kind: EffectDamage}, Desc: "A rain of falling stars."},
	{ID: "omega_burst", Name: "Omega Burst", Class: "mage", Type: SkillUltimate, MPCost: 70, Mult: 3.2, Effect: EffectSpec{Kind: EffectUltimate}, Desc: "Releases all stored mana at once."},

	// Assassin
	{ID: "backstab", Name: "Backstab", Class: "assassin", Type: SkillPhysical, MPCost: 12, Mult: 1.5, Effect: EffectSpec{Kind: EffectFirstStrike, Ratio: 2}, Desc: "Double damage when it opens the fight."},
	{ID: "poison_blade", Name: "Poison Blade", Class: "assassin", Type: SkillPhysical, MPCost: 15, Mult: 1.2, Effect: EffectSpec{Kind: EffectDamagePoison, Turns: 3}, Desc: "A coated blade that poisons for 3 turns."},
	{ID: "shadow_step", Name: "Shadow Step", Class: "assassin", Type: SkillSpecial, MPCost: 14, Effect: EffectSpec{Kind: EffectEagleEye, Charges: 1}, Desc: "The next attack is a guaranteed crit."},
	{ID: "shadow_clone", Name: "Shadow Clone", Class: "assassin", Type: SkillSpecial, MPCost: 18, Effect: EffectSpec{Kind: EffectManaShield}, Desc: "A clone absorbs the next hit."},
	{ID: "death_mark", Name: "Death Mark", Class: "assassin", Type: SkillDebuff, MPCost: 20, Effect: EffectSpec{Kind: EffectDeathMark}, Desc: "Marks the enemy, the next hit deals 200%."},
	{ID: "vanish", Name: "Vanish", Class: "assassin", Type: SkillSpecial, MPCost: 25, Effect: EffectSpec{Kind: EffectVanish, Turns: 2}, Desc: "Untargetable for 2 turns."},
	{ID: "assassinate", Name: "Assassinate", Class: "assassin", Type: SkillUltimate, MPCost: 60, Mult: 2.8, Effect: EffectSpec{Kind: EffectExecute, Ratio: 0.3}, Desc: "Executes a weakened non-boss enemy outright."},

	// Archer
	{ID: "multi_shot", Name: "Multi Shot", Class: "archer", Type: SkillPhysical, MPCost: 12, Mult: 1.4, Effect: EffectSpec{Kind: EffectDamage}, Desc: "Three arrows loosed at once."},
	{ID: "eagle_eye", Name: "Eagle Eye", Class: "archer", Type: SkillBuff, MPCost: 16, Effect: EffectSpec{Kind: EffectEagleEye, Charges: 3}, Desc: "The next 3 attacks are guaranteed crits."},
	{ID: "trap", Name: "Trap", Class: "archer", Type: SkillSpecial, MPCost: 15, Effect: EffectSpec{Kind: EffectTrap, Ratio: 1.2}, Desc: "A snare that wounds and wastes the enemy's turn."},
	{ID: "arrow_rain", Name: "Arrow Rain", Class: "archer", Type: SkillPhysical, MPCost: 24, Mult: 1.9, Effect: EffectSpec{Kind: EffectDamage}, Desc: "Darkens the sky with arrows."},
	{ID: "snipe", Name: "Snipe", Class: "archer", Type: SkillSpecial, MPCost: 30, Effect: EffectSpec{Kind: EffectTrueDamage}, Desc: "A perfect shot that ignores armor."},
	{ID: "storm_of_arrows", Name: "Storm of Arrows", Class: "archer", Type: SkillUltimate, MPCost: 65, Mult: 3.0, Effect: EffectSpec{Kind: EffectUltimate}, Desc: "Every arrow in the quiver, all at once."},

	// Paladin
	{ID: "holy_strike", Name: "Holy Strike", Class: "paladin", Type: SkillPhysical, MPCost: 14, Mult: 1.4, Effect: EffectSpec{Kind: EffectTypeBonus, Ratio: 2, BonusType: "undead"}, Desc: "Blessed steel, double damage to undead."},
	{ID: "heal", Name: "Heal", Class: "paladin", Type: SkillHeal, MPCost: 15, Effect: EffectSpec{Kind: EffectHeal, Ratio: 0.3}, Desc: "Restores 30% of max HP."},
	{ID: "divine_shield", Name: "Divine Shield", Class: "paladin", Type: SkillBuff, MPCost: 22, Effect: EffectSpec{Kind: EffectDivineShield, Charges: 3, Turns: 3}, Desc: "Blocks the next 3 attacks."},
	{ID: "smite", Name: "Smite", Class: "paladin", Type: SkillMagic, MPCost: 20, Mult: 1.6, Effect: EffectSpec{Kind: EffectTypeBonus, Ratio: 2, BonusType: "demon"}, Desc: "Holy lightning, double damage to demons."},
	{ID: "resurrection", Name: "Resurrection", Class: "paladin", Type: SkillHeal, MPCost: 40, Effect: EffectSpec{Kind: EffectHeal, Ratio: 0.5}, Desc: "Restores 50% of max HP."},
	{ID: "heavens_judgement", Name: "Heaven's Judgement", Class: "paladin", Type: SkillUltimate, MPCost: 70, Mult: 3.0, Effect: EffectSpec{Kind: EffectUltimate}, Desc: "The heavens themselves pass sentence."},

	// Necromancer
	{ID: "soul_drain", Name: "Soul Drain", Class: "necromancer", Type: SkillMagic, MPCost: 14, Mult: 1.3, Effect: EffectSpec{Kind: EffectDamageDrain, Ratio: 0.5}, Desc: "Steals HP equal to half the damage dealt."},
	{ID: "raise_dead", Name: "Raise Dead", Class: "necromancer", Type: SkillSpecial, MPCost: 18, Effect: EffectSpec{Kind: EffectSummon, Ratio: 0.5, Turns: 3}, Desc: "A skeleton fights beside you for 3 turns."},
	{ID: "curse", Name: "Curse", Class: "necromancer", Type: SkillDebuff, MPCost: 16, Effect: EffectSpec{Kind: EffectCurseAll, Ratio: 0.2, Turns: 3}, Desc: "All enemy stats -20% for 3 turns."},
	{ID: "death_coil", Name: "Death Coil", Class: "necromancer", Type: SkillMagic, MPCost: 24, Mult: 1.7, Effect: EffectSpec{Kind: EffectDamageStun}, Desc: "A coil of death energy that stuns."},
	{ID: "plague", Name: "Plague", Class: "necromancer", Type: SkillDebuff, MPCost: 28, Effect: EffectSpec{Kind: EffectPlague, Turns: 5}, Desc: "Infects the enemy, 15 damage per turn for 5 turns."},
	{ID: "army_of_dead", Name: "Army of Dead", Class: "necromancer", Type: SkillSpecial, MPCost: 40, Effect: EffectSpec{Kind: EffectSummon, Ratio: 0.8, Turns: 5}, Desc: "Skeletons rise and fight for 5 turns."},
	{ID: "undying", Name: "Undying", Class: "necromancer", Type: SkillUltimate, MPCost: 80, Effect: EffectSpec{Kind: EffectUndying, Turns: 3}, Desc: "Cannot drop below 1 HP for 3 turns."},
}

// StarterSkillCount is how many leading class skills a fresh character
// starts with.
const StarterSkillCount = 3

var skillByID = func() map[string]Skill {
	m := make(map[string]Skill, len(Skills))
	for _, s := range Skills {
		m[s.ID] = s
	}
	return m
}()

// SkillByID looks a skill up by id.
func SkillByID(id string) (Skill, bool) {
	s, ok := skillByID[id]
	return s, ok
}

// ClassSkills returns the skills of a class in unlock order.
func ClassSkills(classID string) []Skill {
	var out []Skill
	for _, s := range Skills {
		if s.Class == classID {
			out = append(out, s)
		}
	}
	return out
}

// StarterSkills returns the skill ids a new character of the class
// begins with.
func StarterSkills(classID string) []string {
	cs := ClassSkills(classID)
	n := StarterSkillCount
	if len(cs) < n {
		n = len(cs)
	}
	ids := make([]string, 0, n)
	for _, s := range cs[:n] {
		ids = append(ids, s.ID)
	}
	return ids
}

// SkillUnlockForLevel returns the class skill earned at the given
// level, or false when the level is not a milestone or the class list
// is exhausted. Milestones are every fifth level.
func SkillUnlockForLevel(classID string, level int) (Skill, bool) {
	if level%5 != 0 {
		return Skill{}, false
	}
	cs := ClassSkills(classID)
	idx := StarterSkillCount + level/5 - 1
	if idx < StarterSkillCount || idx >= len(cs) {
		return Skill{}, false
	}
	return cs[idx], true
}
