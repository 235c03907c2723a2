package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rpg-server/internal/models"
	"rpg-server/internal/repository"
)

// PvpService управляет вызовами на дуэль. Сам бой после принятия
// вызова идет через обычный CombatService.
type PvpService interface {
	// Challenge регистрирует вызов challenger -> target с TTL.
	Challenge(ctx context.Context, challengerID, targetID string) error
	// Accept принимает ожидающий вызов и открывает дуэль для
	// принявшего. Противником выступает снимок бросившего вызов.
	Accept(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
}

type pvpService struct {
	playerRepo repository.PlayerRepository
	challenges repository.ChallengeRepository
	rng        Rand
	locks      *PlayerLocks
	ttl        time.Duration
	logger     *zap.Logger
}

// NewPvpService создает дуэльный сервис.
func NewPvpService(
	playerRepo repository.PlayerRepository,
	challenges repository.ChallengeRepository,
	rng Rand,
	locks *PlayerLocks,
	ttl time.Duration,
	logger *zap.Logger,
) PvpService {
	return &pvpService{
		playerRepo: playerRepo,
		challenges: challenges,
		rng:        rng,
		locks:      locks,
		ttl:        ttl,
		logger:     logger.Named("PvpService"),
	}
}

func (s *pvpService) Challenge(ctx context.Context, challengerID, targetID string) error {
	if targetID == "" || targetID == challengerID {
		return models.ErrInvalidTarget
	}

	challenger, err := s.playerRepo.GetByID(ctx, challengerID)
	if err != nil {
		return err
	}
	if err := guardIdle(challenger); err != nil {
		return err
	}

	target, err := s.playerRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotRegistered) {
			return models.ErrInvalidTarget
		}
		return err
	}
	if target.InBattle || target.InDungeon || target.InPvp {
		return models.ErrTargetBusy
	}

	return s.challenges.CreateChallenge(ctx, challengerID, targetID, s.ttl)
}

func (s *pvpService) Accept(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	challengerID, err := s.challenges.TakeChallenge(ctx, playerID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.LockPair(playerID, challengerID)
	defer unlock()

	accepter, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := guardIdle(accepter); err != nil {
		return nil, err
	}

	challenger, err := s.playerRepo.GetByID(ctx, challengerID)
	if err != nil {
		if errors.Is(err, models.ErrNotRegistered) {
			return nil, models.ErrChallengeNotFound
		}
		return nil, err
	}
	// Бросивший вызов мог успеть занять себя чем-то другим.
	if challenger.InBattle || challenger.InDungeon || challenger.InPvp {
		return nil, models.ErrTargetBusy
	}

	stake := int64(randRange(s.rng, 50, 200))
	enemy := buildDuelEnemy(challenger)

	b := models.NewBattleState(models.EncounterPvp, enemy)
	b.PvpDefenderID = challenger.ID
	b.PvpStake = stake
	accepter.Battle = b
	accepter.InBattle = true
	accepter.InPvp = true
	challenger.InPvp = true

	if err := s.playerRepo.Save(ctx, challenger); err != nil {
		return nil, fmt.Errorf("не удалось сохранить бросившего вызов: %w", err)
	}
	if err := s.playerRepo.Save(ctx, accepter); err != nil {
		return nil, fmt.Errorf("не удалось сохранить принявшего вызов: %w", err)
	}

	log := []string{
		fmt.Sprintf("The duel begins! %s versus %s, %d gold on the line.", accepter.Name, challenger.Name, stake),
	}
	return &models.EncounterOutcome{
		Kind:   models.OutcomeContinuing,
		Log:    log,
		Status: battleStatus(accepter, b),
	}, nil
}

// buildDuelEnemy делает боевой снимок игрока-противника.
func buildDuelEnemy(d *models.Player) models.Enemy {
	hp := d.HP
	if hp < 1 {
		hp = 1
	}
	return models.Enemy{
		Name:  d.Name,
		Index: "duelist",
		Type:  "humanoid",
		Grade: duelGrade(d.Level),
		HP:    hp,
		MaxHP: d.MaxHP,
		Atk:   d.Stats.Strength + d.Stats.Agility/2,
		Def:   d.Stats.Defense,
	}
}

func duelGrade(level int) string {
	switch {
	case level >= 80:
		return "S"
	case level >= 60:
		return "A"
	case level >= 40:
		return "B"
	case level >= 20:
		return "C"
	case level >= 10:
		return "D"
	default:
		return "E"
	}
}
