package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"rpg-server/internal/catalogue"
	"rpg-server/internal/models"
	"rpg-server/internal/narrative"
	"rpg-server/internal/repository"
)

const (
	roomsPerFloor = 3
	// loanEntryLimit - долг, с которым в подземелье не пускают.
	loanEntryLimit = 10000
)

// DungeonService ведет игрока по стоэтажному подземелью региона.
type DungeonService interface {
	// Enter заводит игрока в подземелье, возобновляя с чекпоинта.
	Enter(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
	// Continue открывает следующую комнату текущего этажа.
	Continue(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
	// Leave выводит игрока наружу, сохраняя этаж.
	Leave(ctx context.Context, playerID string) (*models.Player, error)
}

type dungeonService struct {
	playerRepo repository.PlayerRepository
	narrator   narrative.Generator
	rng        Rand
	locks      *PlayerLocks
	logger     *zap.Logger
}

// NewDungeonService создает сервис подземелий.
func NewDungeonService(
	playerRepo repository.PlayerRepository,
	narrator narrative.Generator,
	rng Rand,
	locks *PlayerLocks,
	logger *zap.Logger,
) DungeonService {
	return &dungeonService{
		playerRepo: playerRepo,
		narrator:   narrator,
		rng:        rng,
		locks:      locks,
		logger:     logger.Named("DungeonService"),
	}
}

func (s *dungeonService) Enter(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := guardIdle(p); err != nil {
		return nil, err
	}
	if p.Loan > loanEntryLimit {
		return nil, fmt.Errorf("%w: pay off your loan first", models.ErrLoanDelinquent)
	}

	region, ok := catalogue.RegionByID(p.Region)
	if !ok {
		region, _ = catalogue.RegionByID(catalogue.StartingRegion)
	}
	if p.Level < region.MinLevel {
		return nil, fmt.Errorf("%w: %s requires level %d", models.ErrLevelTooLow, region.DungeonName, region.MinLevel)
	}

	floor := p.Dungeon.Checkpoint
	if floor < 1 {
		floor = 1
	}
	p.Dungeon.Floor = floor
	p.Dungeon.Room = 1
	p.InDungeon = true

	out, err := s.openRoom(ctx, p, region)
	if err != nil {
		return nil, err
	}
	out.Log = append([]string{fmt.Sprintf("You descend into %s, floor %d.", region.DungeonName, floor)}, out.Log...)
	return out, nil
}

func (s *dungeonService) Continue(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !p.InDungeon {
		return nil, models.ErrNotInDungeon
	}
	if p.InBattle {
		return nil, models.ErrAlreadyInCombat
	}
	if p.IsDead() {
		return nil, models.ErrPlayerDead
	}

	region, ok := catalogue.RegionByID(p.Region)
	if !ok {
		region, _ = catalogue.RegionByID(catalogue.StartingRegion)
	}
	return s.openRoom(ctx, p, region)
}

func (s *dungeonService) Leave(ctx context.Context, playerID string) (*models.Player, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !p.InDungeon {
		return nil, models.ErrNotInDungeon
	}
	if p.InBattle {
		return nil, models.ErrAlreadyInCombat
	}

	// Этаж сохраняется, но возобновление идет с чекпоинта.
	p.InDungeon = false
	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока при выходе из подземелья: %w", err)
	}
	return p, nil
}

// openRoom генерирует врага текущей комнаты, привязывает бой и
// сохраняет игрока.
func (s *dungeonService) openRoom(ctx context.Context, p *models.Player, region catalogue.Region) (*models.EncounterOutcome, error) {
	floor := p.Dungeon.Floor
	bossFloor := floor%models.CheckpointStep == 0

	var enemy models.Enemy
	roomType := "combat"
	if bossFloor {
		roomType = "boss"
		enemy = s.rollDungeonBoss(floor)
	} else {
		enemy = s.rollDungeonMonster(floor)
	}

	b := models.NewBattleState(models.EncounterDungeon, enemy)
	b.Floor = floor
	b.Room = p.Dungeon.Room
	p.Battle = b
	p.InBattle = true

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока при входе в комнату: %w", err)
	}

	var log []string
	if bossFloor {
		log = append(log, fmt.Sprintf("FLOOR %d - BOSS ROOM. %s bars the way!", floor, enemy.Name))
	} else {
		log = append(log, fmt.Sprintf("Floor %d, room %d/%d. %s lunges at you!", floor, p.Dungeon.Room, roomsPerFloor, enemy.Name))
	}

	narrativeText := ""
	if bossFloor {
		narrativeText = s.narrator.BossIntro(ctx, enemy.Name, p.Name)
	} else {
		narrativeText = s.narrator.DungeonRoom(ctx, region.DungeonName, floor, roomType, enemy.Name, p.Name, p.Class)
	}

	return &models.EncounterOutcome{
		Kind:      models.OutcomeContinuing,
		Log:       log,
		Status:    battleStatus(p, b),
		Narrative: narrativeText,
	}, nil
}

// rollDungeonMonster выбирает и масштабирует рядового монстра этажа.
func (s *dungeonService) rollDungeonMonster(floor int) models.Enemy {
	tpl := catalogue.DungeonMonsters[s.rng.Intn(len(catalogue.DungeonMonsters))]
	scale := catalogue.FloorScale(floor)

	hp := int(float64(tpl.BaseHP+tpl.HPPerFloor*floor) * scale)
	atk := int(float64(tpl.BaseAtk) * scale)

	band := catalogue.FloorCR(floor)
	cr := band.Min + s.rng.Float64()*(band.Max-band.Min)

	return models.Enemy{
		Name:  tpl.Name,
		Index: tpl.Index,
		Type:  tpl.Type,
		Grade: catalogue.GradeForCR(cr),
		HP:    hp,
		MaxHP: hp,
		Atk:   atk,
		Def:   tpl.AC / 2,
	}
}

// rollDungeonBoss строит босса этажа. Сотый этаж сторожит финальный
// босс, остальные боссы растут вместе с этажом.
func (s *dungeonService) rollDungeonBoss(floor int) models.Enemy {
	var tpl catalogue.DungeonBoss
	var scale float64
	if floor >= models.DungeonFloors {
		for _, b := range catalogue.DungeonBosses {
			if b.IsFinal {
				tpl = b
				break
			}
		}
		scale = 1 + float64(floor)/100
	} else {
		pool := make([]catalogue.DungeonBoss, 0, len(catalogue.DungeonBosses))
		for _, b := range catalogue.DungeonBosses {
			if !b.IsFinal {
				pool = append(pool, b)
			}
		}
		tpl = pool[s.rng.Intn(len(pool))]
		scale = 1 + float64(floor)/50
	}

	grade := "C"
	switch {
	case floor >= 80:
		grade = "S"
	case floor >= 50:
		grade = "A"
	case floor >= 30:
		grade = "B"
	}

	phases := 2
	if floor >= 50 {
		phases = 3
	}
	if tpl.Phases > phases {
		phases = tpl.Phases
	}

	hp := int(float64(tpl.HP) * scale)
	return models.Enemy{
		Name:    tpl.Name,
		Index:   tpl.ID,
		Type:    tpl.Type,
		Grade:   grade,
		HP:      hp,
		MaxHP:   hp,
		Atk:     int(float64(tpl.Atk) * scale),
		Def:     int(float64(tpl.Def) * scale),
		IsBoss:  true,
		IsFinal: tpl.IsFinal,
		Phases:  phases,
	}
}
