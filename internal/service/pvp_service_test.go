package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rpg-server/internal/models"
	repomocks "rpg-server/internal/repository/mocks"
)

type pvpFixture struct {
	svc        PvpService
	repo       *repomocks.PlayerRepository
	challenges *repomocks.ChallengeRepository
	rng        *scriptRand
}

func newPvpFixture(rng *scriptRand) *pvpFixture {
	repo := new(repomocks.PlayerRepository)
	ch := new(repomocks.ChallengeRepository)
	svc := NewPvpService(repo, ch, rng, NewPlayerLocks(), 2*time.Minute, zap.NewNop())
	return &pvpFixture{svc: svc, repo: repo, challenges: ch, rng: rng}
}

func TestPvpChallenge(t *testing.T) {
	t.Run("self challenge is invalid", func(t *testing.T) {
		f := newPvpFixture(&scriptRand{})
		err := f.svc.Challenge(context.Background(), "p1", "p1")
		assert.ErrorIs(t, err, models.ErrInvalidTarget)
	})

	t.Run("unknown target is invalid", func(t *testing.T) {
		f := newPvpFixture(&scriptRand{})
		p := testIdlePlayer()
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("GetByID", mock.Anything, "ghost").Return(nil, models.ErrNotRegistered)

		err := f.svc.Challenge(context.Background(), p.ID, "ghost")
		assert.ErrorIs(t, err, models.ErrInvalidTarget)
	})

	t.Run("busy target is rejected", func(t *testing.T) {
		f := newPvpFixture(&scriptRand{})
		p := testIdlePlayer()
		target := testIdlePlayer()
		target.ID = "t1"
		target.InBattle = true
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("GetByID", mock.Anything, "t1").Return(target, nil)

		err := f.svc.Challenge(context.Background(), p.ID, "t1")
		assert.ErrorIs(t, err, models.ErrTargetBusy)
		f.challenges.AssertNotCalled(t, "CreateChallenge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid challenge is stored with ttl", func(t *testing.T) {
		f := newPvpFixture(&scriptRand{})
		p := testIdlePlayer()
		target := testIdlePlayer()
		target.ID = "t1"
		f.repo.On("GetByID", mock.Anything, p.ID).Return(p, nil)
		f.repo.On("GetByID", mock.Anything, "t1").Return(target, nil)
		f.challenges.On("CreateChallenge", mock.Anything, p.ID, "t1", 2*time.Minute).Return(nil)

		err := f.svc.Challenge(context.Background(), p.ID, "t1")
		require.NoError(t, err)
		f.challenges.AssertExpectations(t)
	})
}

func TestPvpAccept(t *testing.T) {
	t.Run("no pending challenge", func(t *testing.T) {
		f := newPvpFixture(&scriptRand{})
		f.challenges.On("TakeChallenge", mock.Anything, "p1").Return("", models.ErrChallengeNotFound)

		_, err := f.svc.Accept(context.Background(), "p1")
		assert.ErrorIs(t, err, models.ErrChallengeNotFound)
	})

	t.Run("challenger got busy since the challenge", func(t *testing.T) {
		f := newPvpFixture(&scriptRand{})
		accepter := testIdlePlayer()
		challenger := testIdlePlayer()
		challenger.ID = "c1"
		challenger.InDungeon = true
		f.challenges.On("TakeChallenge", mock.Anything, accepter.ID).Return("c1", nil)
		f.repo.On("GetByID", mock.Anything, accepter.ID).Return(accepter, nil)
		f.repo.On("GetByID", mock.Anything, "c1").Return(challenger, nil)

		_, err := f.svc.Accept(context.Background(), accepter.ID)
		assert.ErrorIs(t, err, models.ErrTargetBusy)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("accept opens the duel against a snapshot", func(t *testing.T) {
		// ставка: 50 + Intn(151) -> 50 + 30 = 80
		f := newPvpFixture(&scriptRand{ints: []int{30}})
		accepter := testIdlePlayer()
		challenger := testIdlePlayer()
		challenger.ID = "c1"
		challenger.Name = "Rival"
		challenger.Level = 25
		challenger.HP = 140
		challenger.Stats = models.Stats{Strength: 30, Agility: 20, Defense: 15}

		f.challenges.On("TakeChallenge", mock.Anything, accepter.ID).Return("c1", nil)
		f.repo.On("GetByID", mock.Anything, accepter.ID).Return(accepter, nil)
		f.repo.On("GetByID", mock.Anything, "c1").Return(challenger, nil)
		f.repo.On("Save", mock.Anything, challenger).Return(nil).Once()
		f.repo.On("Save", mock.Anything, accepter).Return(nil).Once()

		out, err := f.svc.Accept(context.Background(), accepter.ID)

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeContinuing, out.Kind)

		b := accepter.Battle
		require.NotNil(t, b)
		assert.Equal(t, models.EncounterPvp, b.Type)
		assert.Equal(t, "c1", b.PvpDefenderID)
		assert.Equal(t, int64(80), b.PvpStake)
		assert.True(t, accepter.InBattle)
		assert.True(t, accepter.InPvp)
		assert.True(t, challenger.InPvp)

		assert.Equal(t, "Rival", b.Enemy.Name)
		assert.Equal(t, 140, b.Enemy.HP)
		assert.Equal(t, 30+20/2, b.Enemy.Atk)
		assert.Equal(t, "C", b.Enemy.Grade)
		f.repo.AssertExpectations(t)
	})
}

func TestDuelGrade(t *testing.T) {
	assert.Equal(t, "E", duelGrade(5))
	assert.Equal(t, "D", duelGrade(10))
	assert.Equal(t, "C", duelGrade(25))
	assert.Equal(t, "B", duelGrade(40))
	assert.Equal(t, "A", duelGrade(79))
	assert.Equal(t, "S", duelGrade(100))
}
