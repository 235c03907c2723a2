package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rpg-server/internal/models"
	narrativemocks "rpg-server/internal/narrative/mocks"
	repomocks "rpg-server/internal/repository/mocks"
)

type dungeonFixture struct {
	svc      DungeonService
	repo     *repomocks.PlayerRepository
	narrator *narrativemocks.MockGenerator
}

func newDungeonFixture(rng *scriptRand) *dungeonFixture {
	repo := new(repomocks.PlayerRepository)
	nar := new(narrativemocks.MockGenerator)
	svc := NewDungeonService(repo, nar, rng, NewPlayerLocks(), zap.NewNop())
	return &dungeonFixture{svc: svc, repo: repo, narrator: nar}
}

func TestDungeonEnter(t *testing.T) {
	t.Run("loan debt blocks the gate", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{})
		p := testIdlePlayer()
		p.Loan = 10001
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Enter(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrLoanDelinquent)
	})

	t.Run("region level gate holds", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{})
		p := testIdlePlayer()
		p.Region = "demon_realm"
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Enter(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrLevelTooLow)
	})

	t.Run("entry resumes from the checkpoint", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{ints: []int{0}, floats: []float64{0}})
		p := testIdlePlayer()
		p.Level = 30
		p.Dungeon = models.DungeonProgress{Floor: 27, Room: 3, Checkpoint: 20}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.narrator.On("BossIntro", mock.Anything, mock.Anything, p.Name).Return("")

		out, err := f.svc.Enter(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, 20, p.Dungeon.Floor)
		assert.Equal(t, 1, p.Dungeon.Room)
		assert.True(t, p.InDungeon)
		assert.True(t, p.InBattle)
		// двадцатый этаж - этаж босса
		assert.True(t, p.Battle.Enemy.IsBoss)
		assert.Equal(t, 20, out.Status.Floor)
	})
}

func TestDungeonContinue(t *testing.T) {
	t.Run("requires being inside", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Continue(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrNotInDungeon)
	})

	t.Run("cannot skip an open battle", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{})
		p := testIdlePlayer()
		p.InDungeon = true
		p.InBattle = true
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Continue(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrAlreadyInCombat)
	})

	t.Run("opens the current room", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{ints: []int{0}, floats: []float64{0, 0.5}})
		p := testIdlePlayer()
		p.InDungeon = true
		p.Dungeon = models.DungeonProgress{Floor: 3, Room: 2, Checkpoint: 1}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.narrator.On("DungeonRoom", mock.Anything, mock.Anything, 3, "combat", mock.Anything, p.Name, p.Class).Return("")

		out, err := f.svc.Continue(context.Background(), p.ID)

		require.NoError(t, err)
		require.NotNil(t, p.Battle)
		assert.False(t, p.Battle.Enemy.IsBoss)
		assert.Equal(t, 3, p.Battle.Floor)
		assert.Equal(t, 2, p.Battle.Room)
		assert.Equal(t, models.EncounterDungeon, p.Battle.Type)
		assert.Equal(t, 2, out.Status.Room)
	})
}

func TestDungeonLeave(t *testing.T) {
	t.Run("requires being inside", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Leave(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrNotInDungeon)
	})

	t.Run("leave keeps the floor", func(t *testing.T) {
		f := newDungeonFixture(&scriptRand{})
		p := testIdlePlayer()
		p.InDungeon = true
		p.Dungeon = models.DungeonProgress{Floor: 14, Room: 2, Checkpoint: 10}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		left, err := f.svc.Leave(context.Background(), p.ID)

		require.NoError(t, err)
		assert.False(t, left.InDungeon)
		assert.Equal(t, 14, left.Dungeon.Floor)
		assert.Equal(t, 10, left.Dungeon.Checkpoint)
	})
}

func TestRollDungeonBoss(t *testing.T) {
	f := newDungeonFixture(&scriptRand{ints: []int{0, 0, 0}})
	svc := f.svc.(*dungeonService)

	t.Run("floor hundred is the final guardian", func(t *testing.T) {
		boss := svc.rollDungeonBoss(100)
		assert.True(t, boss.IsFinal)
		assert.Equal(t, "S", boss.Grade)
		// масштаб 1 + 100/100
		assert.Equal(t, 5000, boss.HP)
	})

	t.Run("mid floors scale the regular pool", func(t *testing.T) {
		boss := svc.rollDungeonBoss(50)
		assert.False(t, boss.IsFinal)
		assert.True(t, boss.IsBoss)
		assert.Equal(t, "A", boss.Grade)
		assert.GreaterOrEqual(t, boss.Phases, 3)
		// масштаб 1 + 50/50
		assert.Equal(t, 900, boss.HP)
	})

	t.Run("early floors cap at two phases", func(t *testing.T) {
		boss := svc.rollDungeonBoss(10)
		assert.Equal(t, "C", boss.Grade)
		assert.Equal(t, 2, boss.Phases)
	})
}
