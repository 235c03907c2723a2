package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rpg-server/internal/models"
)

func newLevelledPlayer(level int) *models.Player {
	p := &models.Player{
		ID:         "p1",
		Name:       "Tester",
		Class:      "warrior",
		Level:      level,
		Stats:      models.Stats{Strength: 15, Agility: 12, Intelligence: 8, Defense: 12, Luck: 7},
		KillCounts: map[string]int{},
	}
	p.VitalsForLevel()
	p.HP = p.MaxHP
	p.MP = p.MaxMP
	return p
}

func TestApplyExp(t *testing.T) {
	t.Run("below threshold nothing changes", func(t *testing.T) {
		p := newLevelledPlayer(3)
		res := applyExp(p, 100)

		assert.False(t, res.LeveledUp)
		assert.Equal(t, 3, p.Level)
		assert.Equal(t, int64(100), p.Exp)
	})

	t.Run("level up distributes points and restores vitals", func(t *testing.T) {
		p := newLevelledPlayer(3)
		p.HP = 10
		p.MP = 1
		before := p.Stats.Total()

		res := applyExp(p, 600)

		require.True(t, res.LeveledUp)
		assert.Equal(t, 4, p.Level)
		assert.Equal(t, before+statGainPerLevel, p.Stats.Total())
		assert.Equal(t, 100+19*4, p.MaxHP)
		assert.Equal(t, p.MaxHP, p.HP)
		assert.Equal(t, p.MaxMP, p.MP)
	})

	t.Run("overflow exp rolls several levels", func(t *testing.T) {
		p := newLevelledPlayer(1)
		// 200 + 400 + 600 = 1200 to reach level 4.
		res := applyExp(p, 1200)

		assert.Equal(t, 4, p.Level)
		assert.Equal(t, 4, res.NewLevel)
		assert.Zero(t, p.Exp)
	})

	t.Run("skill unlock lands on the right level", func(t *testing.T) {
		p := newLevelledPlayer(4)
		p.Exp = 0
		res := applyExp(p, p.ExpToNext())

		require.Equal(t, 5, p.Level)
		require.Len(t, res.NewSkills, 1)
		assert.True(t, p.HasSkill(res.NewSkills[0]))
	})

	t.Run("rank changes are reported", func(t *testing.T) {
		p := newLevelledPlayer(9)
		oldRank := p.Rank()
		res := applyExp(p, p.ExpToNext())

		require.Equal(t, 10, p.Level)
		assert.NotEqual(t, oldRank, res.NewRank)
		assert.Equal(t, p.Rank(), res.NewRank)
	})
}

func TestDistributeStatPoints(t *testing.T) {
	t.Run("capped stat is skipped", func(t *testing.T) {
		p := newLevelledPlayer(1)
		p.Stats.Strength = models.MaxSingleStat

		distributeStatPoints(p)

		assert.Equal(t, models.MaxSingleStat, p.Stats.Strength)
		assert.Equal(t, 13, p.Stats.Agility)
		assert.Equal(t, 9, p.Stats.Intelligence)
		assert.Equal(t, 13, p.Stats.Defense)
		assert.Equal(t, 8, p.Stats.Luck)
	})

	t.Run("total cap burns the remainder", func(t *testing.T) {
		p := newLevelledPlayer(1)
		p.Stats = models.Stats{Strength: 100, Agility: 100, Intelligence: 100, Defense: 99, Luck: 99}
		// total 498: only two of the five points land
		distributeStatPoints(p)
		assert.Equal(t, models.MaxTotalStats, p.Stats.Total())
		assert.Equal(t, 100, p.Stats.Defense)
		assert.Equal(t, 100, p.Stats.Luck)
	})
}

func TestUnlockTitles(t *testing.T) {
	t.Run("kill count title unlocks once", func(t *testing.T) {
		p := newLevelledPlayer(5)
		p.KillCounts["goblin"] = 100

		first := unlockTitles(p)
		require.NotEmpty(t, first)
		for _, title := range first {
			assert.True(t, p.HasTitle(title.ID))
		}

		again := unlockTitles(p)
		assert.Empty(t, again)
	})

	t.Run("death counter title", func(t *testing.T) {
		p := newLevelledPlayer(5)
		p.Count.Deaths = 100

		unlocked := unlockTitles(p)
		require.Len(t, unlocked, 1)
		assert.Equal(t, "cockroach", unlocked[0].ID)
	})
}

func TestBossDamageBonus(t *testing.T) {
	p := newLevelledPlayer(5)
	assert.Equal(t, 1.0, bossDamageBonus(p))

	p.ActiveTitle = "no_such_title"
	assert.Equal(t, 1.0, bossDamageBonus(p))
}
