package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rpg-server/internal/catalogue"
	"rpg-server/internal/models"
	"rpg-server/internal/narrative"
	"rpg-server/internal/repository"
)

// Команды с кулдауном в Redis.
const (
	cooldownHunt    = "hunt"
	cooldownExplore = "explore"
)

// AdventureService покрывает команды мира вне подземелий: охоту,
// исследование и переходы между регионами.
type AdventureService interface {
	// Hunt открывает бой со случайным монстром региона.
	Hunt(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
	// Explore разыгрывает случайное событие региона.
	Explore(ctx context.Context, playerID string) (*models.ExploreOutcome, error)
	// Travel перемещает игрока в другой регион.
	Travel(ctx context.Context, playerID, regionID string) (*models.Player, error)
}

type adventureService struct {
	playerRepo repository.PlayerRepository
	cooldowns  repository.CooldownRepository
	narrator   narrative.Generator
	rng        Rand
	locks      *PlayerLocks
	huntCD     time.Duration
	exploreCD  time.Duration
	logger     *zap.Logger
}

// NewAdventureService создает сервис приключений.
func NewAdventureService(
	playerRepo repository.PlayerRepository,
	cooldowns repository.CooldownRepository,
	narrator narrative.Generator,
	rng Rand,
	locks *PlayerLocks,
	huntCD, exploreCD time.Duration,
	logger *zap.Logger,
) AdventureService {
	return &adventureService{
		playerRepo: playerRepo,
		cooldowns:  cooldowns,
		narrator:   narrator,
		rng:        rng,
		locks:      locks,
		huntCD:     huntCD,
		exploreCD:  exploreCD,
		logger:     logger.Named("AdventureService"),
	}
}

// guardIdle проверяет, что игрок жив и не занят другим режимом.
func guardIdle(p *models.Player) error {
	switch {
	case p.IsDead():
		return models.ErrPlayerDead
	case p.InBattle:
		return models.ErrAlreadyInCombat
	case p.InDungeon:
		return models.ErrAlreadyInDungeon
	case p.InPvp:
		return models.ErrAlreadyInPvp
	}
	return nil
}

func (s *adventureService) checkCooldown(ctx context.Context, playerID, command string) error {
	remaining, err := s.cooldowns.CooldownRemaining(ctx, playerID, command)
	if err != nil {
		// Redis недоступен - не блокируем игру из-за кулдауна.
		s.logger.Warn("Не удалось проверить кулдаун", zap.String("command", command), zap.Error(err))
		return nil
	}
	if remaining > 0 {
		return fmt.Errorf("%w: %s ready in %s", models.ErrOnCooldown, command, remaining.Round(time.Second))
	}
	return nil
}

func (s *adventureService) setCooldown(ctx context.Context, playerID, command string, d time.Duration) {
	if err := s.cooldowns.SetCooldown(ctx, playerID, command, d); err != nil {
		s.logger.Warn("Не удалось поставить кулдаун", zap.String("command", command), zap.Error(err))
	}
}

func (s *adventureService) Hunt(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := guardIdle(p); err != nil {
		return nil, err
	}
	if err := s.checkCooldown(ctx, playerID, cooldownHunt); err != nil {
		return nil, err
	}

	region, ok := catalogue.RegionByID(p.Region)
	if !ok {
		region, _ = catalogue.RegionByID(catalogue.StartingRegion)
	}
	if len(region.MonsterGrades) == 0 {
		return nil, fmt.Errorf("%w: nothing to hunt in %s", models.ErrBadRequest, region.Name)
	}

	enemy := s.rollOverworldMonster(region, p.Level)
	p.Battle = models.NewBattleState(models.EncounterHunt, enemy)
	p.InBattle = true

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после начала охоты: %w", err)
	}
	s.setCooldown(ctx, playerID, cooldownHunt, s.huntCD)

	log := []string{fmt.Sprintf("A wild %s (Grade %s) appears!", enemy.Name, enemy.Grade)}
	return &models.EncounterOutcome{
		Kind:      models.OutcomeContinuing,
		Log:       log,
		Status:    battleStatus(p, p.Battle),
		Narrative: s.narrator.MonsterIntro(ctx, enemy.Name, enemy.Grade, 0),
	}, nil
}

// rollOverworldMonster выбирает монстра региона и масштабирует его под
// уровень игрока.
func (s *adventureService) rollOverworldMonster(region catalogue.Region, level int) models.Enemy {
	grade := region.MonsterGrades[s.rng.Intn(len(region.MonsterGrades))]
	pool := catalogue.OverworldMonsters[grade]
	tpl := pool[s.rng.Intn(len(pool))]

	hp := tpl.HP + level*2
	if hp < 20 {
		hp = 20
	}
	return models.Enemy{
		Name:  tpl.Name,
		Index: tpl.Index,
		Type:  tpl.Type,
		Grade: grade,
		HP:    hp,
		MaxHP: hp,
		Atk:   10 + level + s.rng.Intn(6),
		Def:   tpl.AC / 2,
	}
}

// Explore разыгрывает взвешенную таблицу событий. Встреча с монстром
// открывает обычный охотничий бой.
func (s *adventureService) Explore(ctx context.Context, playerID string) (*models.ExploreOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := guardIdle(p); err != nil {
		return nil, err
	}
	if err := s.checkCooldown(ctx, playerID, cooldownExplore); err != nil {
		return nil, err
	}

	region, ok := catalogue.RegionByID(p.Region)
	if !ok {
		region, _ = catalogue.RegionByID(catalogue.StartingRegion)
	}

	// Встреча с монстром весит втрое больше остальных событий.
	events := []string{
		"monster_encounter", "monster_encounter", "monster_encounter",
		"treasure_chest", "herb_patch", "mysterious_merchant",
		"ancient_statue", "trap", "hidden_passage", "nothing_special",
	}
	event := events[s.rng.Intn(len(events))]

	out := &models.ExploreOutcome{Event: event}

	switch event {
	case "monster_encounter":
		if len(region.MonsterGrades) == 0 {
			out.Event = "nothing_special"
			out.Log = append(out.Log, "The streets are quiet. Nothing stirs.")
			break
		}
		enemy := s.rollOverworldMonster(region, p.Level)
		p.Battle = models.NewBattleState(models.EncounterHunt, enemy)
		p.InBattle = true
		out.Log = append(out.Log, fmt.Sprintf("Something bursts from the undergrowth: %s (Grade %s)!", enemy.Name, enemy.Grade))
		out.Encounter = &models.EncounterOutcome{
			Kind:   models.OutcomeContinuing,
			Status: battleStatus(p, p.Battle),
		}

	case "treasure_chest":
		gold := int64(randRange(s.rng, 50, 200))
		p.Gold += gold
		out.Gold = gold
		out.Log = append(out.Log, fmt.Sprintf("You pry open a weathered chest: +%d gold!", gold))
		if loot := catalogue.VictoryLootPool[s.rng.Intn(len(catalogue.VictoryLootPool))]; loot != "" {
			if p.AddItem(loot, 1) {
				if it, itemOK := catalogue.ItemByID(loot); itemOK {
					out.Item = it.Name
					out.Log = append(out.Log, fmt.Sprintf("Inside you also find a %s.", it.Name))
				}
			}
		}

	case "herb_patch":
		bundles := randRange(s.rng, 2, 5)
		gold := int64(bundles * randRange(s.rng, 10, 25))
		p.Gold += gold
		out.Gold = gold
		out.Log = append(out.Log, fmt.Sprintf("You gather %d bundles of rare herbs, worth %d gold.", bundles, gold))

	case "mysterious_merchant":
		gold := int64(randRange(s.rng, 100, 400))
		p.Gold += gold
		out.Gold = gold
		out.Log = append(out.Log, fmt.Sprintf("A hooded merchant pays %d gold for directions, then vanishes.", gold))

	case "ancient_statue":
		if p.Stats.Total() < models.MaxTotalStats {
			stat := s.raiseRandomStat(p)
			out.StatUp = stat
			out.Log = append(out.Log, fmt.Sprintf("You touch an ancient statue. Power flows into you: +1 %s!", stat))
		} else {
			out.Log = append(out.Log, "An ancient statue hums, but your body can hold no more power.")
		}

	case "trap":
		maxDmg := int(float64(p.MaxHP) * 0.15)
		if maxDmg < 10 {
			maxDmg = 10
		}
		dmg := randRange(s.rng, 10, maxDmg)
		p.HP -= dmg
		if p.HP < 1 {
			p.HP = 1
		}
		out.Damage = dmg
		out.Log = append(out.Log, fmt.Sprintf("The ground gives way! Spikes tear at you for %d damage.", dmg))

	case "hidden_passage":
		exp := int64(randRange(s.rng, 20, 50))
		out.Exp = exp
		out.Log = append(out.Log, fmt.Sprintf("You map a hidden passage. The knowledge is worth %d exp.", exp))

	default:
		exp := int64(randRange(s.rng, 10, 30))
		out.Exp = exp
		out.Log = append(out.Log, fmt.Sprintf("You wander without incident, but the walk hardens you: +%d exp.", exp))
	}

	if out.Exp > 0 {
		if lvl := applyExp(p, out.Exp); lvl.LeveledUp {
			out.Log = append(out.Log, fmt.Sprintf("LEVEL UP! You are now level %d.", lvl.NewLevel))
		}
	}

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после исследования: %w", err)
	}
	s.setCooldown(ctx, playerID, cooldownExplore, s.exploreCD)

	out.Narrative = s.narrator.ExploreEvent(ctx, region.Name, p.Name, event)
	return out, nil
}

func (s *adventureService) raiseRandomStat(p *models.Player) string {
	type slot struct {
		name string
		v    *int
	}
	slots := []slot{
		{"STR", &p.Stats.Strength},
		{"AGI", &p.Stats.Agility},
		{"INT", &p.Stats.Intelligence},
		{"DEF", &p.Stats.Defense},
		{"LCK", &p.Stats.Luck},
	}
	// До пяти попыток найти некапнутую характеристику.
	for i := 0; i < 5; i++ {
		c := slots[s.rng.Intn(len(slots))]
		if *c.v < models.MaxSingleStat {
			*c.v++
			return c.name
		}
	}
	return ""
}

func (s *adventureService) Travel(ctx context.Context, playerID, regionID string) (*models.Player, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := guardIdle(p); err != nil {
		return nil, err
	}

	region, ok := catalogue.RegionByID(regionID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown region %q", models.ErrBadRequest, regionID)
	}
	if p.Level < region.MinLevel {
		return nil, fmt.Errorf("%w: %s requires level %d", models.ErrLevelTooLow, region.Name, region.MinLevel)
	}

	p.Region = region.ID
	// Переезд сбрасывает накопленный прогресс чужого подземелья.
	p.Dungeon = models.DungeonProgress{Floor: 1, Room: 1, Checkpoint: 1}

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после перехода: %w", err)
	}
	return p, nil
}
