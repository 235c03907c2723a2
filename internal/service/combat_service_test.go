package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rpg-server/internal/catalogue"
	messagingmocks "rpg-server/internal/messaging/mocks"
	"rpg-server/internal/models"
	narrativemocks "rpg-server/internal/narrative/mocks"
	repomocks "rpg-server/internal/repository/mocks"
)

type combatFixture struct {
	svc       CombatService
	repo      *repomocks.PlayerRepository
	publisher *messagingmocks.EventPublisher
	narrator  *narrativemocks.MockGenerator
	rng       *scriptRand
}

func newCombatFixture(rng *scriptRand) *combatFixture {
	repo := new(repomocks.PlayerRepository)
	pub := new(messagingmocks.EventPublisher)
	nar := new(narrativemocks.MockGenerator)
	svc := NewCombatService(repo, pub, nar, rng, NewPlayerLocks(), zap.NewNop())
	return &combatFixture{svc: svc, repo: repo, publisher: pub, narrator: nar, rng: rng}
}

func TestCombatAttack(t *testing.T) {
	t.Run("not in battle", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Attack(context.Background(), p.ID)

		assert.ErrorIs(t, err, models.ErrNotInCombat)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("round continues with a single save", func(t *testing.T) {
		// atk roll 0, no crit; enemy roll 0, no crit.
		f := newCombatFixture(&scriptRand{ints: []int{0, 0}, floats: []float64{0.5, 0.5}})
		p, _ := testFighter()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		out, err := f.svc.Attack(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeContinuing, out.Kind)
		assert.Equal(t, 2, out.Status.Turn)
		assert.Less(t, out.Status.EnemyHP, 100)
		assert.Less(t, out.Status.PlayerHP, 195)
		f.repo.AssertExpectations(t)
	})

	t.Run("killing blow runs the victory pipeline", func(t *testing.T) {
		// atk roll, no crit, gold roll -> Min, loot slot 3 (empty).
		f := newCombatFixture(&scriptRand{ints: []int{0, 0, 3}, floats: []float64{0.5}})
		p, b := testFighter()
		b.Enemy.HP = 1
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.narrator.On("Victory", mock.Anything, p.Name, "Goblin", "").Return("a tale of glory")

		out, err := f.svc.Attack(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeVictory, out.Kind)
		require.NotNil(t, out.Rewards)
		assert.Equal(t, catalogue.ExpByGrade["D"], out.Rewards.Exp)
		assert.Equal(t, int64(catalogue.GoldByGrade["D"].Min), out.Rewards.Gold)
		assert.Equal(t, "a tale of glory", out.Narrative)

		assert.Nil(t, p.Battle)
		assert.False(t, p.InBattle)
		assert.Equal(t, 1, p.KillCounts["goblin"])
		assert.Equal(t, 1, p.Count.MonstersKilled)
		f.repo.AssertExpectations(t)
	})

	t.Run("death applies the penalty and resets the dungeon", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{ints: []int{0, 0}, floats: []float64{0.5, 0.5}})
		p, b := testFighter()
		p.Gold = 1000
		p.InDungeon = true
		p.Dungeon = models.DungeonProgress{Floor: 14, Room: 2, Checkpoint: 10}
		b.Type = models.EncounterDungeon
		b.Floor = 14
		b.Enemy.Atk = 1000
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.narrator.On("Death", mock.Anything, p.Name, "Goblin", 14).Return("darkness")

		out, err := f.svc.Attack(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeDeath, out.Kind)
		require.NotNil(t, out.Penalty)
		assert.Equal(t, int64(100), out.Penalty.GoldLost)
		assert.Equal(t, int64(900), p.Gold)
		assert.Equal(t, 3*p.MaxHP/10, p.HP)
		assert.Equal(t, 1, p.Count.Deaths)

		assert.True(t, out.Penalty.DungeonReset)
		assert.Equal(t, 10, out.Penalty.ResetToFloor)
		assert.Equal(t, 10, p.Dungeon.Floor)
		assert.Equal(t, 1, p.Dungeon.Room)
		assert.False(t, p.InDungeon)
		assert.Nil(t, p.Battle)
		f.repo.AssertExpectations(t)
	})
}

func TestCombatUseSkill(t *testing.T) {
	t.Run("unknown skill", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, _ := testFighter()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.UseSkill(context.Background(), p.ID, "no_such_skill")
		assert.ErrorIs(t, err, models.ErrUnknownSkill)
	})

	t.Run("unlearned skill is rejected", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, _ := testFighter()
		p.Skills = nil
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.UseSkill(context.Background(), p.ID, "slash")
		assert.ErrorIs(t, err, models.ErrUnknownSkill)
	})

	t.Run("mana rejection leaves the state untouched", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, b := testFighter()
		p.Skills = []string{"slash"}
		p.MP = 5
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.UseSkill(context.Background(), p.ID, "slash")

		assert.ErrorIs(t, err, models.ErrInsufficientMana)
		assert.Equal(t, 5, p.MP)
		assert.Equal(t, 1, b.Turn)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("ultimate fires only once per battle", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, b := testFighter()
		p.Skills = []string{"godlike_rage"}
		b.UltimateUsed = true
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.UseSkill(context.Background(), p.ID, "godlike_rage")
		assert.ErrorIs(t, err, models.ErrUltimateAlreadyUsed)
	})

	t.Run("skill spends mana and damages", func(t *testing.T) {
		// skill roll 0, no crit; enemy roll 0, no crit.
		f := newCombatFixture(&scriptRand{ints: []int{0, 0}, floats: []float64{0.5, 0.5}})
		p, b := testFighter()
		p.Skills = []string{"slash"}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		out, err := f.svc.UseSkill(context.Background(), p.ID, "slash")

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeContinuing, out.Kind)
		assert.Equal(t, 97-10, p.MP)
		assert.Less(t, b.Enemy.HP, 100)
	})
}

func TestCombatUseItem(t *testing.T) {
	t.Run("missing item", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, _ := testFighter()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.UseItem(context.Background(), p.ID, "health_potion")
		assert.ErrorIs(t, err, models.ErrUnknownItem)
	})

	t.Run("potion heals and is consumed", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{ints: []int{0}, floats: []float64{0.5}})
		p, _ := testFighter()
		p.HP = 50
		p.Inventory = []models.InventoryItem{{ItemID: "health_potion", Quantity: 2}}
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		out, err := f.svc.UseItem(context.Background(), p.ID, "health_potion")

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeContinuing, out.Kind)
		assert.Equal(t, 1, p.ItemCount("health_potion"))
		// +100 потом ответный удар врага
		assert.Greater(t, p.HP, 50)
	})
}

func TestCombatFlee(t *testing.T) {
	t.Run("bosses cannot be fled", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, b := testFighter()
		b.Enemy.IsBoss = true
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)

		_, err := f.svc.Flee(context.Background(), p.ID)
		assert.ErrorIs(t, err, models.ErrCannotFlee)
	})

	t.Run("successful flight clears battle and dungeon", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{ints: []int{0}})
		p, b := testFighter()
		p.InDungeon = true
		b.Type = models.EncounterDungeon
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		out, err := f.svc.Flee(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeFled, out.Kind)
		assert.Nil(t, p.Battle)
		assert.False(t, p.InBattle)
		assert.False(t, p.InDungeon)
		assert.Equal(t, 1, p.Count.Flees)
	})

	t.Run("fleeing a duel forfeits the stake and frees both sides", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{})
		p, b := testFighter()
		p.Gold = 300
		p.InPvp = true
		b.Type = models.EncounterPvp
		b.PvpStake = 120
		b.PvpDefenderID = "d1"

		defender := testIdlePlayer()
		defender.ID = "d1"
		defender.Gold = 200
		defender.InPvp = true

		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("GetByID", mock.Anything, "d1").Return(defender, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.repo.On("Save", mock.Anything, defender).Return(nil).Once()

		out, err := f.svc.Flee(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeFled, out.Kind)
		assert.Nil(t, p.Battle)
		assert.False(t, p.InBattle)
		assert.False(t, p.InPvp)
		assert.Equal(t, int64(180), p.Gold)
		assert.Equal(t, 1, p.Pvp.Losses)
		assert.Equal(t, 1, p.Count.Flees)

		assert.False(t, defender.InPvp)
		assert.Equal(t, int64(320), defender.Gold)
		assert.Equal(t, 1, defender.Pvp.Wins)
	})

	t.Run("failed flight costs a free enemy hit", func(t *testing.T) {
		// 99 >= 30+agi -> escape fails
		f := newCombatFixture(&scriptRand{ints: []int{99, 0}, floats: []float64{0.5}})
		p, b := testFighter()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()

		out, err := f.svc.Flee(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeContinuing, out.Kind)
		assert.Less(t, p.HP, 195)
		assert.Equal(t, 2, b.Turn)
		assert.True(t, p.InBattle)
	})
}

func TestCombatDefend(t *testing.T) {
	// enemy roll 3, no crit: 15 dmg, -5 def, halved to 5
	f := newCombatFixture(&scriptRand{ints: []int{3}, floats: []float64{0.5}})
	p, _ := testFighter()
	f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
	f.repo.On("Save", mock.Anything, p).Return(nil).Once()

	out, err := f.svc.Defend(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, models.OutcomeContinuing, out.Kind)
	assert.Equal(t, 190, p.HP)
	assert.False(t, p.Battle.PlayerEffects.Defending)
}

func TestCombatPvpSettlement(t *testing.T) {
	t.Run("duel victory pays the stake from the loser", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{ints: []int{0}, floats: []float64{0.5}})
		p, b := testFighter()
		p.Gold = 300
		p.InPvp = true
		b.Type = models.EncounterPvp
		b.PvpStake = 120
		b.PvpDefenderID = "d1"
		b.Enemy.HP = 1

		defender := testIdlePlayer()
		defender.ID = "d1"
		defender.Gold = 200
		defender.InPvp = true

		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("GetByID", mock.Anything, "d1").Return(defender, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.repo.On("Save", mock.Anything, defender).Return(nil).Once()

		out, err := f.svc.Attack(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeVictory, out.Kind)
		assert.Equal(t, int64(420), p.Gold)
		assert.Equal(t, 1, p.Pvp.Wins)
		assert.False(t, p.InPvp)

		assert.Equal(t, int64(80), defender.Gold)
		assert.Equal(t, 1, defender.Pvp.Losses)
		assert.False(t, defender.InPvp)
		f.repo.AssertExpectations(t)
	})

	t.Run("duel defeat costs only the stake", func(t *testing.T) {
		f := newCombatFixture(&scriptRand{ints: []int{0, 0}, floats: []float64{0.5, 0.5}})
		p, b := testFighter()
		p.Gold = 300
		p.HP = 2
		p.InPvp = true
		p.InDungeon = false
		b.Type = models.EncounterPvp
		b.PvpStake = 120
		b.PvpDefenderID = "d1"
		b.Enemy.Atk = 500

		defender := testIdlePlayer()
		defender.ID = "d1"
		defender.InPvp = true

		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("GetByID", mock.Anything, "d1").Return(defender, nil)
		f.repo.On("Save", mock.Anything, p).Return(nil).Once()
		f.repo.On("Save", mock.Anything, defender).Return(nil).Once()

		out, err := f.svc.Attack(context.Background(), p.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeDeath, out.Kind)
		assert.Equal(t, int64(180), p.Gold)
		assert.Equal(t, 1, p.HP)
		assert.Equal(t, 1, p.Pvp.Losses)
		// штраф смерти не применяется
		assert.Zero(t, p.Count.Deaths)

		assert.Equal(t, 1, defender.Pvp.Wins)
		assert.Equal(t, int64(620), defender.Gold)
		f.repo.AssertExpectations(t)
	})
}

func testIdlePlayer() *models.Player {
	p := &models.Player{
		ID:         "p1",
		Name:       "Tester",
		Class:      "warrior",
		Race:       "human",
		Level:      5,
		Gold:       500,
		Stats:      models.Stats{Strength: 20, Agility: 10, Intelligence: 10, Defense: 10, Luck: 5},
		Region:     "greenwood_forest",
		Dungeon:    models.DungeonProgress{Floor: 1, Room: 1, Checkpoint: 1},
		KillCounts: map[string]int{},
	}
	p.VitalsForLevel()
	p.HP = p.MaxHP
	p.MP = p.MaxMP
	return p
}
