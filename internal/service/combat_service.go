package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpg-server/internal/catalogue"
	"rpg-server/internal/messaging"
	"rpg-server/internal/models"
	"rpg-server/internal/narrative"
	"rpg-server/internal/repository"
)

// CombatService обрабатывает команды активного боя. Каждая команда -
// одна атомарная транзакция над документом игрока: прочитать,
// разыграть раунд, сохранить один раз.
type CombatService interface {
	Attack(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
	Defend(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
	Flee(ctx context.Context, playerID string) (*models.EncounterOutcome, error)
	UseSkill(ctx context.Context, playerID, skillID string) (*models.EncounterOutcome, error)
	UseItem(ctx context.Context, playerID, itemID string) (*models.EncounterOutcome, error)
}

type combatService struct {
	playerRepo repository.PlayerRepository
	publisher  messaging.EventPublisher
	narrator   narrative.Generator
	rng        Rand
	locks      *PlayerLocks
	logger     *zap.Logger
}

// NewCombatService создает боевой сервис.
func NewCombatService(
	playerRepo repository.PlayerRepository,
	publisher messaging.EventPublisher,
	narrator narrative.Generator,
	rng Rand,
	locks *PlayerLocks,
	logger *zap.Logger,
) CombatService {
	return &combatService{
		playerRepo: playerRepo,
		publisher:  publisher,
		narrator:   narrator,
		rng:        rng,
		locks:      locks,
		logger:     logger.Named("CombatService"),
	}
}

// loadFighter загружает игрока и проверяет, что у него есть активный
// бой в согласованном состоянии.
func (s *combatService) loadFighter(ctx context.Context, playerID string) (*models.Player, error) {
	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !p.InBattle || p.Battle == nil {
		return nil, models.ErrNotInCombat
	}
	return p, nil
}

func (s *combatService) Attack(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.loadFighter(ctx, playerID)
	if err != nil {
		return nil, err
	}

	var log []string
	performBasicAttack(p, p.Battle, s.rng, &log)
	return s.finishRound(ctx, p, log)
}

func (s *combatService) Defend(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.loadFighter(ctx, playerID)
	if err != nil {
		return nil, err
	}

	log := []string{"You raise your guard."}
	p.Battle.PlayerEffects.Defending = true
	return s.finishRound(ctx, p, log)
}

func (s *combatService) Flee(ctx context.Context, playerID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.loadFighter(ctx, playerID)
	if err != nil {
		return nil, err
	}
	b := p.Battle
	if b.Enemy.IsBoss {
		return nil, models.ErrCannotFlee
	}
	// Из дуэли не сбегают незаметно: бегство - капитуляция, ставка
	// уходит сопернику, оба участника освобождаются.
	if b.Type == models.EncounterPvp {
		log := []string{fmt.Sprintf("You turn and run. %s claims the duel!", b.Enemy.Name)}
		return s.concludePvpForfeit(ctx, p, log)
	}

	chance := 30 + p.Stats.Agility
	if s.rng.Intn(100) < chance {
		log := []string{fmt.Sprintf("You slip away from %s!", b.Enemy.Name)}
		wasDungeon := b.Type == models.EncounterDungeon
		p.Battle = nil
		p.InBattle = false
		if wasDungeon {
			p.InDungeon = false
			log = append(log, "You stumble back out of the dungeon empty-handed.")
		}
		p.Count.Flees++
		if err := s.playerRepo.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("не удалось сохранить игрока после побега: %w", err)
		}
		return &models.EncounterOutcome{Kind: models.OutcomeFled, Log: log}, nil
	}

	log := []string{fmt.Sprintf("%s blocks your escape!", b.Enemy.Name)}
	performEnemyAttack(p, b, s.rng, &log)
	b.Turn++
	if p.IsDead() {
		return s.concludeDeath(ctx, p, log)
	}
	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после неудачного побега: %w", err)
	}
	return &models.EncounterOutcome{
		Kind:   models.OutcomeContinuing,
		Log:    log,
		Status: battleStatus(p, b),
	}, nil
}

func (s *combatService) UseSkill(ctx context.Context, playerID, skillID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.loadFighter(ctx, playerID)
	if err != nil {
		return nil, err
	}
	sk, ok := catalogue.SkillByID(skillID)
	if !ok || !p.HasSkill(skillID) {
		return nil, models.ErrUnknownSkill
	}
	// Отказ по мане не трогает состояние: мана не списывается, ход не
	// продвигается.
	if p.MP < sk.MPCost {
		return nil, models.ErrInsufficientMana
	}
	if sk.IsUltimate() {
		if p.Battle.UltimateUsed {
			return nil, models.ErrUltimateAlreadyUsed
		}
		p.Battle.UltimateUsed = true
	}
	p.MP -= sk.MPCost

	var log []string
	resolveSkill(p, p.Battle, sk, s.rng, &log)
	return s.finishRound(ctx, p, log)
}

func (s *combatService) UseItem(ctx context.Context, playerID, itemID string) (*models.EncounterOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.loadFighter(ctx, playerID)
	if err != nil {
		return nil, err
	}
	item, ok := catalogue.ItemByID(itemID)
	if !ok {
		return nil, models.ErrItemNotUsable
	}
	if p.ItemCount(itemID) < 1 {
		return nil, models.ErrUnknownItem
	}

	var log []string
	switch item.Effect {
	case catalogue.ItemHealFlat:
		p.HP += item.Amount
		log = append(log, fmt.Sprintf("You drink the %s: +%d HP.", item.Name, item.Amount))
	case catalogue.ItemHealFull:
		p.HP = p.MaxHP
		log = append(log, fmt.Sprintf("The %s restores you completely!", item.Name))
	case catalogue.ItemHealRatio:
		heal := int(float64(p.MaxHP) * item.Ratio)
		p.HP += heal
		log = append(log, fmt.Sprintf("The %s surges with life: +%d HP.", item.Name, heal))
	case catalogue.ItemManaFlat:
		p.MP += item.Amount
		log = append(log, fmt.Sprintf("You drink the %s: +%d MP.", item.Name, item.Amount))
	case catalogue.ItemManaFull:
		p.MP = p.MaxMP
		log = append(log, fmt.Sprintf("The %s refills your mana!", item.Name))
	case catalogue.ItemCurePoison:
		p.Battle.PlayerEffects.PoisonTurns = 0
		log = append(log, fmt.Sprintf("The %s purges the poison from your veins.", item.Name))
	default:
		return nil, models.ErrItemNotUsable
	}
	p.ClampVitals()
	p.RemoveItem(itemID, 1)

	return s.finishRound(ctx, p, log)
}

// finishRound доигрывает раунд после действия игрока: проверка победы,
// тик эффектов, повторная проверка, ответный удар, проверка смерти и
// единственное сохранение.
func (s *combatService) finishRound(ctx context.Context, p *models.Player, log []string) (*models.EncounterOutcome, error) {
	b := p.Battle

	if b.Enemy.HP <= 0 {
		return s.concludeVictory(ctx, p, log)
	}
	tickEffects(p, b, &log)
	if b.Enemy.HP <= 0 {
		return s.concludeVictory(ctx, p, log)
	}

	performEnemyAttack(p, b, s.rng, &log)
	b.Turn++

	if p.IsDead() {
		return s.concludeDeath(ctx, p, log)
	}

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после раунда: %w", err)
	}
	return &models.EncounterOutcome{
		Kind:   models.OutcomeContinuing,
		Log:    log,
		Status: battleStatus(p, b),
	}, nil
}

// concludeVictory проводит победу через общий конвейер наград.
func (s *combatService) concludeVictory(ctx context.Context, p *models.Player, log []string) (*models.EncounterOutcome, error) {
	b := p.Battle
	if b.Type == models.EncounterPvp {
		return s.concludePvpVictory(ctx, p, log)
	}

	enemy := b.Enemy
	log = append(log, fmt.Sprintf("%s is defeated!", enemy.Name))

	rewards := &models.RewardSummary{}

	exp := catalogue.ExpByGrade[enemy.Grade]
	gr := catalogue.GoldByGrade[enemy.Grade]
	var gold int64
	if enemy.IsBoss {
		exp *= 3
		gold = int64(randRange(s.rng, 2*gr.Min, 3*gr.Max))
	} else {
		gold = int64(randRange(s.rng, gr.Min, gr.Max))
	}
	rewards.Exp = exp
	rewards.Gold = gold
	p.Gold += gold

	if loot := catalogue.VictoryLootPool[s.rng.Intn(len(catalogue.VictoryLootPool))]; loot != "" {
		if p.AddItem(loot, 1) {
			if it, ok := catalogue.ItemByID(loot); ok {
				rewards.Loot = it.Name
			}
		} else {
			rewards.LootLost = true
			log = append(log, "Your bag is full, the loot is left behind.")
		}
	}

	if p.KillCounts == nil {
		p.KillCounts = make(map[string]int)
	}
	p.KillCounts[enemy.Index]++
	p.Count.MonstersKilled++
	if enemy.IsBoss {
		p.Count.BossesKilled++
	}

	// Победа возвращает немного маны.
	p.MP += p.MaxMP / 10
	p.ClampVitals()

	wasDungeon := b.Type == models.EncounterDungeon
	p.Battle = nil
	p.InBattle = false

	if wasDungeon {
		s.advanceDungeon(p, enemy, rewards, &log)
	}

	lvl := applyExp(p, exp)
	if lvl.LeveledUp {
		rewards.LeveledUp = true
		rewards.NewLevel = lvl.NewLevel
		rewards.NewRank = lvl.NewRank
		rewards.NewSkills = lvl.NewSkills
		log = append(log, fmt.Sprintf("LEVEL UP! You are now level %d.", lvl.NewLevel))
	}

	for _, t := range unlockTitles(p) {
		rewards.NewTitles = append(rewards.NewTitles, t.ID)
		log = append(log, fmt.Sprintf("Title unlocked: %s!", t.Name))
		s.announceTitle(ctx, p, t)
	}

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после победы: %w", err)
	}

	return &models.EncounterOutcome{
		Kind:      models.OutcomeVictory,
		Log:       log,
		Rewards:   rewards,
		Narrative: s.narrator.Victory(ctx, p.Name, enemy.Name, rewards.Loot),
	}, nil
}

// advanceDungeon двигает игрока по подземелью после зачистки комнаты.
func (s *combatService) advanceDungeon(p *models.Player, enemy models.Enemy, rewards *models.RewardSummary, log *[]string) {
	if enemy.IsFinal {
		// Сотый этаж пройден, подземелье покорено.
		p.Gold += 5000
		p.Gems += 50
		p.Count.DungeonsCleared++
		p.InDungeon = false
		p.Dungeon = models.DungeonProgress{Floor: 1, Room: 1, Checkpoint: 1}
		rewards.Gold += 5000
		*log = append(*log, "THE DUNGEON IS CONQUERED! +5000 gold, +50 gems.")
		return
	}

	if enemy.IsBoss && p.Dungeon.Floor%models.CheckpointStep == 0 {
		p.Dungeon.Checkpoint = p.Dungeon.Floor
		*log = append(*log, fmt.Sprintf("Checkpoint reached: floor %d.", p.Dungeon.Floor))
	}

	p.Dungeon.Room++
	if p.Dungeon.Room > roomsPerFloor {
		p.Dungeon.Floor++
		p.Dungeon.Room = 1
		// Короткая передышка между этажами.
		p.HP += int(float64(p.MaxHP) * 0.15)
		p.MP += int(float64(p.MaxMP) * 0.15)
		p.ClampVitals()
		*log = append(*log, fmt.Sprintf("You descend to floor %d, recovering some strength on the way.", p.Dungeon.Floor))
	}
}

// concludeDeath применяет штраф за смерть и завершает бой.
func (s *combatService) concludeDeath(ctx context.Context, p *models.Player, log []string) (*models.EncounterOutcome, error) {
	b := p.Battle
	if b != nil && b.Type == models.EncounterPvp {
		return s.concludePvpDefeat(ctx, p, log)
	}

	killer := "the enemy"
	floor := 0
	if b != nil {
		killer = b.Enemy.Name
		floor = b.Floor
	}
	log = append(log, "Darkness takes you...")

	penalty := &models.DeathSummary{}
	lost := p.Gold / 10
	p.Gold -= lost
	penalty.GoldLost = lost

	p.HP = 3 * p.MaxHP / 10
	if p.HP < 1 {
		p.HP = 1
	}
	penalty.RevivedHP = p.HP
	p.Count.Deaths++

	if p.InDungeon {
		cp := p.Dungeon.Checkpoint
		if cp < 1 {
			cp = 1
		}
		p.Dungeon.Floor = cp
		p.Dungeon.Room = 1
		p.InDungeon = false
		penalty.DungeonReset = true
		penalty.ResetToFloor = cp
		log = append(log, fmt.Sprintf("The dungeon spits you out. You will resume from floor %d.", cp))
	}

	p.Battle = nil
	p.InBattle = false

	for _, t := range unlockTitles(p) {
		log = append(log, fmt.Sprintf("Title unlocked: %s!", t.Name))
		s.announceTitle(ctx, p, t)
	}

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после смерти: %w", err)
	}
	return &models.EncounterOutcome{
		Kind:      models.OutcomeDeath,
		Log:       log,
		Penalty:   penalty,
		Narrative: s.narrator.Death(ctx, p.Name, killer, floor),
	}, nil
}

// concludePvpVictory завершает дуэль победой атакующего: ставка
// переходит победителю, оба участника освобождаются.
func (s *combatService) concludePvpVictory(ctx context.Context, p *models.Player, log []string) (*models.EncounterOutcome, error) {
	b := p.Battle
	stake := b.PvpStake
	defenderID := b.PvpDefenderID

	log = append(log, fmt.Sprintf("%s falls! You win the duel and %d gold.", b.Enemy.Name, stake))

	p.Gold += stake
	p.Pvp.Wins++
	p.Battle = nil
	p.InBattle = false
	p.InPvp = false

	for _, t := range unlockTitles(p) {
		log = append(log, fmt.Sprintf("Title unlocked: %s!", t.Name))
		s.announceTitle(ctx, p, t)
	}
	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить победителя дуэли: %w", err)
	}

	// Освобождаем и наказываем защитника отдельным сохранением: его
	// документ не участвовал в раунде.
	s.settlePvpOpponent(ctx, defenderID, -stake, false)

	return &models.EncounterOutcome{
		Kind:    models.OutcomeVictory,
		Log:     log,
		Rewards: &models.RewardSummary{Gold: stake},
	}, nil
}

// concludePvpDefeat завершает дуэль поражением атакующего. Смертельный
// штраф в дуэлях не применяется: проигравший теряет только ставку.
func (s *combatService) concludePvpDefeat(ctx context.Context, p *models.Player, log []string) (*models.EncounterOutcome, error) {
	b := p.Battle
	stake := b.PvpStake
	defenderID := b.PvpDefenderID

	log = append(log, fmt.Sprintf("%s stands over you. The duel is lost, along with %d gold.", b.Enemy.Name, stake))

	p.Gold -= stake
	if p.Gold < 0 {
		p.Gold = 0
	}
	p.Pvp.Losses++
	p.HP = 1
	p.Battle = nil
	p.InBattle = false
	p.InPvp = false

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить проигравшего дуэль: %w", err)
	}

	s.settlePvpOpponent(ctx, defenderID, stake, true)

	return &models.EncounterOutcome{
		Kind:    models.OutcomeDeath,
		Log:     log,
		Penalty: &models.DeathSummary{GoldLost: stake, RevivedHP: p.HP},
	}, nil
}

// concludePvpForfeit завершает дуэль бегством атакующего: засчитывается
// поражение, ставка переходит защитнику, оба участника освобождаются.
func (s *combatService) concludePvpForfeit(ctx context.Context, p *models.Player, log []string) (*models.EncounterOutcome, error) {
	b := p.Battle
	stake := b.PvpStake
	defenderID := b.PvpDefenderID

	log = append(log, fmt.Sprintf("The stake of %d gold is forfeit.", stake))

	p.Gold -= stake
	if p.Gold < 0 {
		p.Gold = 0
	}
	p.Pvp.Losses++
	p.Count.Flees++
	p.Battle = nil
	p.InBattle = false
	p.InPvp = false

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить сбежавшего из дуэли: %w", err)
	}

	s.settlePvpOpponent(ctx, defenderID, stake, true)

	return &models.EncounterOutcome{
		Kind:    models.OutcomeFled,
		Log:     log,
		Penalty: &models.DeathSummary{GoldLost: stake},
	}, nil
}

// settlePvpOpponent закрывает дуэль со стороны защитника: переводит
// ставку, обновляет счет и снимает флаг занятости. Ошибки здесь не
// роняют исход дуэли, только логируются.
func (s *combatService) settlePvpOpponent(ctx context.Context, defenderID string, goldDelta int64, won bool) {
	if defenderID == "" {
		return
	}
	unlock := s.locks.Lock(defenderID)
	defer unlock()

	d, err := s.playerRepo.GetByID(ctx, defenderID)
	if err != nil {
		s.logger.Error("Не удалось загрузить защитника для расчета дуэли",
			zap.String("defenderID", defenderID), zap.Error(err))
		return
	}
	d.Gold += goldDelta
	if d.Gold < 0 {
		d.Gold = 0
	}
	if won {
		d.Pvp.Wins++
	} else {
		d.Pvp.Losses++
	}
	d.InPvp = false

	for _, t := range unlockTitles(d) {
		s.announceTitle(ctx, d, t)
	}
	if err := s.playerRepo.Save(ctx, d); err != nil {
		s.logger.Error("Не удалось сохранить защитника после дуэли",
			zap.String("defenderID", defenderID), zap.Error(err))
	}
}

// announceTitle рассылает событие о новом титуле. Ошибка публикации не
// ломает игровую команду.
func (s *combatService) announceTitle(ctx context.Context, p *models.Player, t catalogue.Title) {
	err := s.publisher.PublishTitleUnlocked(ctx, messaging.TitleUnlockedEvent{
		EventID:    uuid.NewString(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		TitleID:    t.ID,
		TitleName:  t.Name,
	})
	if err != nil {
		s.logger.Warn("Не удалось опубликовать событие титула", zap.Error(err))
	}
}
