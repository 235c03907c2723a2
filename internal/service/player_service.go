package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rpg-server/internal/catalogue"
	"rpg-server/internal/models"
	"rpg-server/internal/repository"
)

// Стартовый кошелек нового персонажа.
const (
	startingGold = 500
	startingGems = 10
)

// PlayerService покрывает жизненный цикл персонажа вне боя:
// регистрацию, профиль, титулы и таблицу лидеров.
type PlayerService interface {
	// Register создает нового персонажа из класса и расы каталога.
	Register(ctx context.Context, playerID, name, classID, raceID string) (*models.Player, error)
	// Profile возвращает документ игрока.
	Profile(ctx context.Context, playerID string) (*models.Player, error)
	// EquipTitle надевает заработанный титул.
	EquipTitle(ctx context.Context, playerID, titleID string) (*models.Player, error)
	// Leaderboard возвращает топ игроков по уровню и опыту.
	Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error)
}

type playerService struct {
	playerRepo repository.PlayerRepository
	locks      *PlayerLocks
	logger     *zap.Logger
}

// NewPlayerService создает сервис персонажей.
func NewPlayerService(playerRepo repository.PlayerRepository, locks *PlayerLocks, logger *zap.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		locks:      locks,
		logger:     logger.Named("PlayerService"),
	}
}

func (s *playerService) Register(ctx context.Context, playerID, name, classID, raceID string) (*models.Player, error) {
	if playerID == "" || name == "" {
		return nil, models.ErrBadRequest
	}
	class, ok := catalogue.ClassByID(classID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown class %q", models.ErrBadRequest, classID)
	}
	race, ok := catalogue.RaceByID(raceID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown race %q", models.ErrBadRequest, raceID)
	}

	now := time.Now().UTC()
	p := &models.Player{
		ID:    playerID,
		Name:  name,
		Class: class.ID,
		Race:  race.ID,
		Level: 1,
		Gold:  startingGold,
		Gems:  startingGems,
		Stats: models.Stats{
			Strength:     class.Stats.Strength + race.Bonus.Strength,
			Agility:      class.Stats.Agility + race.Bonus.Agility,
			Intelligence: class.Stats.Intelligence + race.Bonus.Intelligence,
			Defense:      class.Stats.Defense + race.Bonus.Defense,
			Luck:         class.Stats.Luck + race.Bonus.Luck,
		},
		HP:         class.BaseHP,
		MaxHP:      class.BaseHP,
		MP:         class.BaseMP,
		MaxMP:      class.BaseMP,
		Skills:     catalogue.StarterSkills(class.ID),
		Region:     catalogue.StartingRegion,
		Dungeon:    models.DungeonProgress{Floor: 1, Room: 1, Checkpoint: 1},
		KillCounts: make(map[string]int),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.playerRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Зарегистрирован новый персонаж",
		zap.String("playerID", playerID), zap.String("class", class.ID), zap.String("race", race.ID))
	return p, nil
}

func (s *playerService) Profile(ctx context.Context, playerID string) (*models.Player, error) {
	return s.playerRepo.GetByID(ctx, playerID)
}

func (s *playerService) EquipTitle(ctx context.Context, playerID, titleID string) (*models.Player, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if titleID != "" {
		if _, ok := catalogue.TitleByID(titleID); !ok || !p.HasTitle(titleID) {
			return nil, fmt.Errorf("%w: title %q is not unlocked", models.ErrBadRequest, titleID)
		}
	}
	p.ActiveTitle = titleID
	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после смены титула: %w", err)
	}
	return p, nil
}

func (s *playerService) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.playerRepo.Leaderboard(ctx, limit)
}
