package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpg-server/internal/catalogue"
)

func mustSkill(t *testing.T, id string) catalogue.Skill {
	t.Helper()
	sk, ok := catalogue.SkillByID(id)
	require.True(t, ok, "skill %q must exist", id)
	return sk
}

func TestSkillDamage(t *testing.T) {
	t.Run("physical scales off strength", func(t *testing.T) {
		p, b := testFighter()
		rng := &scriptRand{ints: []int{0}, floats: []float64{0.5}}

		var log []string
		dmg := skillDamage(p, b, mustSkill(t, "slash"), 1.3, rng, &log)

		// (20 + floor(10*0.3)) * 1.3 - 10*0.3 = 29.9 - 3 = 26
		assert.Equal(t, 26, dmg)
	})

	t.Run("magic scales off intelligence", func(t *testing.T) {
		p, b := testFighter()
		p.Stats.Intelligence = 40
		rng := &scriptRand{ints: []int{0}, floats: []float64{0.5}}

		var log []string
		dmg := skillDamage(p, b, mustSkill(t, "fireball"), 1.4, rng, &log)

		// (40 + 3) * 1.4 - 3 = 57.2
		assert.Equal(t, 57, dmg)
	})

	t.Run("ultimate bonus replaces the crit roll", func(t *testing.T) {
		p, b := testFighter()
		b.PlayerEffects.EagleEye = 5
		rng := &scriptRand{ints: []int{0}}

		var log []string
		dmg := skillDamage(p, b, mustSkill(t, "godlike_rage"), 3.0, rng, &log)

		// (20+3)*3 - 3 = 66, затем *1.5 = 99; крит не накладывается
		assert.Equal(t, 99, dmg)
		assert.NotContains(t, log, "Critical strike!")
	})

	t.Run("berserk doubles physical only", func(t *testing.T) {
		p, b := testFighter()
		b.PlayerEffects.Berserk = true
		rng := &scriptRand{ints: []int{0, 0}, floats: []float64{0.5, 0.5}}

		var log []string
		phys := skillDamage(p, b, mustSkill(t, "slash"), 1.3, rng, &log)
		magic := skillDamage(p, b, mustSkill(t, "fireball"), 1.4, rng, &log)

		// физический: 23*1.3*2 - 3 = 56
		assert.Equal(t, 56, phys)
		// магия от интеллекта без удвоения: (10+3)*1.4 - 3 = 15
		assert.Equal(t, 15, magic)
	})
}

func TestResolveSkill(t *testing.T) {
	noCrit := func() *scriptRand { return &scriptRand{floats: []float64{0.5, 0.5}} }

	t.Run("stun lands with the damage", func(t *testing.T) {
		p, b := testFighter()
		var log []string
		resolveSkill(p, b, mustSkill(t, "shield_bash"), noCrit(), &log)

		assert.Less(t, b.Enemy.HP, 100)
		assert.True(t, b.EnemyEffects.Stunned)
	})

	t.Run("battle cry buffs strength", func(t *testing.T) {
		p, b := testFighter()
		var log []string
		resolveSkill(p, b, mustSkill(t, "battle_cry"), noCrit(), &log)

		assert.Equal(t, 4, b.PlayerEffects.BuffStr)
		assert.Equal(t, 3, b.PlayerEffects.BuffStrTurns)
	})

	t.Run("ice shard slows enemy attacks", func(t *testing.T) {
		p, b := testFighter()
		sk := mustSkill(t, "ice_shard")
		var log []string
		resolveSkill(p, b, sk, noCrit(), &log)

		assert.True(t, b.EnemyEffects.Cursed)
		// Длительность идет из каталога, не из кода эффекта
		assert.Equal(t, sk.Effect.Turns, b.EnemyEffects.CursedTurns)
		assert.Equal(t, 2, b.EnemyEffects.CursedTurns)
	})

	t.Run("full curse saps armor and restores it on expiry", func(t *testing.T) {
		p, b := testFighter()
		b.Enemy.Def = 30
		var log []string
		resolveSkill(p, b, mustSkill(t, "curse"), noCrit(), &log)

		// срез брони = int(30*0.2) = 6
		assert.True(t, b.EnemyEffects.Cursed)
		assert.Equal(t, 3, b.EnemyEffects.CursedTurns)
		assert.Equal(t, 6, b.EnemyEffects.DefCut)
		assert.Equal(t, 24, b.Enemy.Def)

		for i := 0; i < 3; i++ {
			tickEffects(p, b, &log)
		}
		assert.False(t, b.EnemyEffects.Cursed)
		assert.Equal(t, 0, b.EnemyEffects.DefCut)
		assert.Equal(t, 30, b.Enemy.Def)
	})

	t.Run("soul drain heals half the damage", func(t *testing.T) {
		p, b := testFighter()
		p.HP = 100
		var log []string
		resolveSkill(p, b, mustSkill(t, "soul_drain"), noCrit(), &log)

		dealt := 100 - b.Enemy.HP
		assert.Equal(t, 100+dealt/2, p.HP)
	})

	t.Run("backstab doubles on the opening turn only", func(t *testing.T) {
		p, b := testFighter()
		var log []string
		resolveSkill(p, b, mustSkill(t, "backstab"), noCrit(), &log)
		openers := 100 - b.Enemy.HP

		p2, b2 := testFighter()
		b2.Turn = 2
		var log2 []string
		resolveSkill(p2, b2, mustSkill(t, "backstab"), noCrit(), &log2)
		late := 100 - b2.Enemy.HP

		assert.Greater(t, openers, late)
	})

	t.Run("holy strike punishes undead", func(t *testing.T) {
		p, b := testFighter()
		b.Enemy.Type = "undead"
		var log []string
		resolveSkill(p, b, mustSkill(t, "holy_strike"), noCrit(), &log)
		vsUndead := 100 - b.Enemy.HP

		p2, b2 := testFighter()
		var log2 []string
		resolveSkill(p2, b2, mustSkill(t, "holy_strike"), noCrit(), &log2)
		vsBeast := 100 - b2.Enemy.HP

		assert.Greater(t, vsUndead, vsBeast)
	})

	t.Run("snipe ignores armor entirely", func(t *testing.T) {
		p, b := testFighter()
		b.Enemy.Def = 1000
		var log []string
		resolveSkill(p, b, mustSkill(t, "snipe"), noCrit(), &log)

		// floor(10*2.5 + 20*0.5) = 35
		assert.Equal(t, 65, b.Enemy.HP)
	})

	t.Run("trap wounds and wastes the enemy turn", func(t *testing.T) {
		p, b := testFighter()
		var log []string
		resolveSkill(p, b, mustSkill(t, "trap"), noCrit(), &log)

		// floor(10*1.2) = 12
		assert.Equal(t, 88, b.Enemy.HP)
		assert.True(t, b.EnemyEffects.Trapped)

		performEnemyAttack(p, b, noCrit(), &log)
		assert.Equal(t, 195, p.HP)
	})

	t.Run("execute finishes weakened regulars", func(t *testing.T) {
		p, b := testFighter()
		b.Enemy.HP = 25
		var log []string
		resolveSkill(p, b, mustSkill(t, "assassinate"), noCrit(), &log)

		assert.Zero(t, b.Enemy.HP)
	})

	t.Run("execute never instakills a boss", func(t *testing.T) {
		p, b := testFighter()
		b.Enemy.IsBoss = true
		b.Enemy.HP = 200
		b.Enemy.MaxHP = 1000
		var log []string
		resolveSkill(p, b, mustSkill(t, "assassinate"), &scriptRand{floats: []float64{0.5}}, &log)

		// ниже порога, но босс получает обычный урон вместо казни
		assert.Greater(t, b.Enemy.HP, 0)
		assert.Less(t, b.Enemy.HP, 200)
	})

	t.Run("resummoning refreshes the ally", func(t *testing.T) {
		p, b := testFighter()
		var log []string
		resolveSkill(p, b, mustSkill(t, "raise_dead"), noCrit(), &log)
		require.True(t, b.Ally.Active)
		first := b.Ally.Dmg
		b.Ally.Turns = 1

		resolveSkill(p, b, mustSkill(t, "raise_dead"), noCrit(), &log)
		assert.Equal(t, first, b.Ally.Dmg)
		assert.Equal(t, 3, b.Ally.Turns)
	})

	t.Run("heal caps at max hp", func(t *testing.T) {
		p, b := testFighter()
		p.HP = p.MaxHP - 10
		var log []string
		resolveSkill(p, b, mustSkill(t, "heal"), noCrit(), &log)

		assert.Equal(t, p.MaxHP, p.HP)
	})

	t.Run("divine shield stores its charges", func(t *testing.T) {
		p, b := testFighter()
		var log []string
		resolveSkill(p, b, mustSkill(t, "divine_shield"), noCrit(), &log)

		assert.Equal(t, 3, b.PlayerEffects.DivineShield)
		assert.Equal(t, 3, b.PlayerEffects.DivineTurns)
	})
}
