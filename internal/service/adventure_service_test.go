package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rpg-server/internal/models"
	narrativemocks "rpg-server/internal/narrative/mocks"
	repomocks "rpg-server/internal/repository/mocks"
)

type adventureFixture struct {
	svc       AdventureService
	repo      *repomocks.PlayerRepository
	cooldowns *repomocks.CooldownRepository
	narrator  *narrativemocks.MockGenerator
}

func newAdventureFixture(rng *scriptRand) *adventureFixture {
	repo := new(repomocks.PlayerRepository)
	cd := new(repomocks.CooldownRepository)
	nar := new(narrativemocks.MockGenerator)
	svc := NewAdventureService(repo, cd, nar, rng, NewPlayerLocks(), 15*time.Minute, 30*time.Minute, zap.NewNop())
	return &adventureFixture{svc: svc, repo: repo, cooldowns: cd, narrator: nar}
}

func TestHunt(t *testing.T) {
	t.Run("dead player cannot hunt", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		p.HP = 0
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Hunt(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrPlayerDead)
	})

	t.Run("busy player cannot hunt", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		p.InDungeon = true
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Hunt(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrAlreadyInDungeon)
	})

	t.Run("cooldown blocks the hunt", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.cooldowns.On("CooldownRemaining", mock.Anything, p.ID, "hunt").Return(5*time.Minute, nil)

		_, err := f.svc.Hunt(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrOnCooldown)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("redis failure does not block the hunt", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.cooldowns.On("CooldownRemaining", mock.Anything, p.ID, "hunt").
			Return(time.Duration(0), errors.New("redis down"))
		f.cooldowns.On("SetCooldown", mock.Anything, p.ID, "hunt", 15*time.Minute).Return(nil)
		f.narrator.On("MonsterIntro", mock.Anything, mock.Anything, mock.Anything, 0).Return("")

		_, err := f.svc.Hunt(context.Background(), p.ID)
		require.NoError(t, err)
	})

	t.Run("hunt opens a scaled regional battle", func(t *testing.T) {
		// грейд 1 -> "D", монстр 0 -> Goblin, бросок атаки 0
		f := newAdventureFixture(&scriptRand{ints: []int{1, 0, 0}})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.cooldowns.On("CooldownRemaining", mock.Anything, p.ID, "hunt").Return(time.Duration(0), nil)
		f.cooldowns.On("SetCooldown", mock.Anything, p.ID, "hunt", 15*time.Minute).Return(nil)
		f.narrator.On("MonsterIntro", mock.Anything, "Goblin", "D", 0).Return("it snarls")

		out, err := f.svc.Hunt(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeContinuing, out.Kind)
		require.NotNil(t, p.Battle)
		assert.True(t, p.InBattle)
		assert.Equal(t, models.EncounterHunt, p.Battle.Type)
		// 35 базовых + уровень*2
		assert.Equal(t, 45, p.Battle.Enemy.HP)
		assert.Equal(t, 10+p.Level, p.Battle.Enemy.Atk)
		f.cooldowns.AssertExpectations(t)
	})
}

func TestExplore(t *testing.T) {
	run := func(rng *scriptRand, mutate func(p *models.Player)) (*models.ExploreOutcome, *models.Player, error) {
		f := newAdventureFixture(rng)
		p := testIdlePlayer()
		if mutate != nil {
			mutate(p)
		}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.cooldowns.On("CooldownRemaining", mock.Anything, p.ID, "explore").Return(time.Duration(0), nil)
		f.cooldowns.On("SetCooldown", mock.Anything, p.ID, "explore", 30*time.Minute).Return(nil)
		f.narrator.On("ExploreEvent", mock.Anything, mock.Anything, p.Name, mock.Anything).Return("")
		out, err := f.svc.Explore(context.Background(), p.ID)
		return out, p, err
	}

	t.Run("treasure chest pays gold", func(t *testing.T) {
		// событие 3, золото 50+0, лут в пустом слоте 3
		out, p, err := run(&scriptRand{ints: []int{3, 0, 3}}, nil)

		require.NoError(t, err)
		assert.Equal(t, "treasure_chest", out.Event)
		assert.Equal(t, int64(50), out.Gold)
		assert.Equal(t, int64(550), p.Gold)
	})

	t.Run("monster encounter opens a battle", func(t *testing.T) {
		out, p, err := run(&scriptRand{ints: []int{0, 1, 0, 0}}, nil)

		require.NoError(t, err)
		assert.Equal(t, "monster_encounter", out.Event)
		require.NotNil(t, out.Encounter)
		assert.True(t, p.InBattle)
	})

	t.Run("trap never kills", func(t *testing.T) {
		// событие 7, урон 10+0
		out, p, err := run(&scriptRand{ints: []int{7, 0}}, func(p *models.Player) {
			p.HP = 5
		})

		require.NoError(t, err)
		assert.Equal(t, "trap", out.Event)
		assert.Equal(t, 10, out.Damage)
		assert.Equal(t, 1, p.HP)
	})

	t.Run("statue raises an uncapped stat", func(t *testing.T) {
		out, p, err := run(&scriptRand{ints: []int{6, 0}}, nil)

		require.NoError(t, err)
		assert.Equal(t, "STR", out.StatUp)
		assert.Equal(t, 21, p.Stats.Strength)
	})

	t.Run("statue is inert at the stat ceiling", func(t *testing.T) {
		out, _, err := run(&scriptRand{ints: []int{6}}, func(p *models.Player) {
			p.Stats = models.Stats{Strength: 100, Agility: 100, Intelligence: 100, Defense: 100, Luck: 100}
		})

		require.NoError(t, err)
		assert.Empty(t, out.StatUp)
	})

	t.Run("hidden passage grants exp", func(t *testing.T) {
		out, p, err := run(&scriptRand{ints: []int{8, 0}}, nil)

		require.NoError(t, err)
		assert.Equal(t, "hidden_passage", out.Event)
		assert.Equal(t, int64(20), out.Exp)
		assert.Equal(t, int64(20), p.Exp)
	})
}

func TestTravel(t *testing.T) {
	t.Run("unknown region", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Travel(context.Background(), p.ID, "atlantis")
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("level gate holds", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Travel(context.Background(), p.ID, "elven_kingdom")
		assert.ErrorIs(t, err, models.ErrLevelTooLow)
	})

	t.Run("travel moves and resets dungeon progress", func(t *testing.T) {
		f := newAdventureFixture(&scriptRand{})
		p := testIdlePlayer()
		p.Level = 12
		p.Dungeon = models.DungeonProgress{Floor: 23, Room: 2, Checkpoint: 20}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		moved, err := f.svc.Travel(context.Background(), p.ID, "elven_kingdom")

		require.NoError(t, err)
		assert.Equal(t, "elven_kingdom", moved.Region)
		assert.Equal(t, models.DungeonProgress{Floor: 1, Room: 1, Checkpoint: 1}, moved.Dungeon)
	})
}
