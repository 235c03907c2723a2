package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rpg-server/internal/catalogue"
	"rpg-server/internal/messaging"
	"rpg-server/internal/models"
	"rpg-server/internal/narrative"
	"rpg-server/internal/repository"
)

// WorldBossService владеет единственным на сервер рейдовым боссом.
// Все удары со всего сервера проходят через его мьютекс, поэтому
// таблица урона и фазы никогда не расходятся.
type WorldBossService interface {
	// Spawn призывает босса. Пустой id выбирает случайный шаблон.
	Spawn(ctx context.Context, bossID string) (*models.WorldBoss, error)
	// Current возвращает активного босса.
	Current(ctx context.Context) (*models.WorldBoss, error)
	// Fight наносит боссу один удар от имени игрока.
	Fight(ctx context.Context, playerID string) (*models.WorldBossHitOutcome, error)
	// RunSpawner призывает нового босса по расписанию, пока жив ctx.
	RunSpawner(ctx context.Context, interval time.Duration)
}

type worldBossService struct {
	playerRepo repository.PlayerRepository
	publisher  messaging.EventPublisher
	narrator   narrative.Generator
	rng        Rand
	locks      *PlayerLocks
	logger     *zap.Logger

	mu   sync.Mutex
	boss *models.WorldBoss
}

// NewWorldBossService создает менеджер мирового босса.
func NewWorldBossService(
	playerRepo repository.PlayerRepository,
	publisher messaging.EventPublisher,
	narrator narrative.Generator,
	rng Rand,
	locks *PlayerLocks,
	logger *zap.Logger,
) WorldBossService {
	return &worldBossService{
		playerRepo: playerRepo,
		publisher:  publisher,
		narrator:   narrator,
		rng:        rng,
		locks:      locks,
		logger:     logger.Named("WorldBossService"),
	}
}

func (s *worldBossService) Spawn(ctx context.Context, bossID string) (*models.WorldBoss, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.boss != nil {
		return nil, models.ErrWorldBossActive
	}

	var tpl catalogue.WorldBossTemplate
	if bossID == "" {
		tpl = catalogue.WorldBosses[s.rng.Intn(len(catalogue.WorldBosses))]
	} else {
		t, ok := catalogue.WorldBossByID(bossID)
		if !ok {
			return nil, fmt.Errorf("%w: unknown world boss %q", models.ErrBadRequest, bossID)
		}
		tpl = t
	}

	boss := &models.WorldBoss{
		ID:             tpl.ID,
		Name:           tpl.Name,
		Index:          tpl.ID,
		Type:           tpl.Type,
		Grade:          tpl.Grade,
		Desc:           tpl.Desc,
		Region:         tpl.Region,
		HP:             tpl.HP,
		MaxHP:          tpl.HP,
		Atk:            tpl.Atk,
		Def:            tpl.Def,
		Phases:         tpl.Phases,
		TriggeredPhase: make([]bool, len(tpl.Phases)),
		DamageDealt:    make(map[string]int64),
		SpawnedAt:      time.Now().UTC(),
	}
	s.boss = boss

	s.logger.Info("Мировой босс призван",
		zap.String("bossID", boss.ID), zap.Int64("maxHP", boss.MaxHP))

	err := s.publisher.PublishWorldBossSpawned(ctx, messaging.WorldBossSpawnedEvent{
		EventID:   uuid.NewString(),
		BossID:    boss.ID,
		Name:      boss.Name,
		Grade:     boss.Grade,
		Region:    boss.Region,
		Desc:      boss.Desc,
		MaxHP:     boss.MaxHP,
		SpawnedAt: boss.SpawnedAt,
	})
	if err != nil {
		s.logger.Warn("Не удалось опубликовать появление босса", zap.Error(err))
	}
	return boss, nil
}

func (s *worldBossService) Current(ctx context.Context) (*models.WorldBoss, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.boss == nil {
		return nil, models.ErrNoWorldBoss
	}
	return s.boss, nil
}

func (s *worldBossService) Fight(ctx context.Context, playerID string) (*models.WorldBossHitOutcome, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	p, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.IsDead() {
		return nil, models.ErrPlayerDead
	}
	if p.InBattle || p.InPvp {
		return nil, models.ErrAlreadyInCombat
	}

	s.mu.Lock()
	boss := s.boss
	if boss == nil {
		s.mu.Unlock()
		return nil, models.ErrNoWorldBoss
	}

	out := &models.WorldBossHitOutcome{BossMaxHP: boss.MaxHP}

	// Удар игрока.
	base := p.Stats.Strength + p.Stats.Agility/2 + s.rng.Intn(11)
	dmg := int64(base + randRange(s.rng, 5, 20))
	if s.rng.Float64() < critChance {
		dmg *= 2
		out.Crit = true
	}
	dmg = int64(float64(dmg) * bossDamageBonus(p))
	if dmg < 1 {
		dmg = 1
	}

	boss.HP -= dmg
	if boss.HP < 0 {
		boss.HP = 0
	}
	boss.DamageDealt[p.ID] += dmg
	out.Damage = dmg
	out.BossHP = boss.HP
	if out.Crit {
		out.Log = append(out.Log, fmt.Sprintf("CRITICAL! You tear into %s for %d damage!", boss.Name, dmg))
	} else {
		out.Log = append(out.Log, fmt.Sprintf("You strike %s for %d damage.", boss.Name, dmg))
	}

	// Фазы срабатывают по одному разу при пересечении порога.
	pct := boss.HPPercent()
	for i, ph := range boss.Phases {
		if !boss.TriggeredPhase[i] && pct <= ph.HPPct {
			boss.TriggeredPhase[i] = true
			out.PhaseNotes = append(out.PhaseNotes, ph.Message)
			s.publishPhase(ctx, boss, ph)
		}
	}

	if boss.HP <= 0 {
		ranking := s.settleDefeat(ctx, boss)
		s.boss = nil
		s.mu.Unlock()

		out.Defeated = true
		out.Ranking = ranking
		out.Log = append(out.Log, fmt.Sprintf("%s COLLAPSES! The realm is saved!", boss.Name))
		out.Narrative = s.narrator.Victory(ctx, p.Name, boss.Name, "")

		// Награда бьющего применяется в settleDefeat вместе со всеми,
		// здесь остается только перечитать документ для ответа.
		return out, nil
	}

	// Ответный удар. Вместо смерти - нокаут до четверти здоровья.
	counter := int(float64(boss.Atk)*0.6) + s.rng.Intn(11) - int(float64(p.Stats.Defense)*0.5)
	if counter < 1 {
		counter = 1
	}
	s.mu.Unlock()

	if p.HP-counter <= 0 {
		p.HP = p.MaxHP / 4
		if p.HP < 1 {
			p.HP = 1
		}
		out.KnockedOut = true
		out.Log = append(out.Log, fmt.Sprintf("%s swats you aside! You crawl back with %d HP.", boss.Name, p.HP))
	} else {
		p.HP -= counter
		out.Log = append(out.Log, fmt.Sprintf("%s retaliates for %d damage.", boss.Name, counter))
	}

	if err := s.playerRepo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("не удалось сохранить игрока после рейдового удара: %w", err)
	}
	return out, nil
}

// settleDefeat раздает награды всем участникам по месту в таблице
// урона и рассылает итоговый рейтинг. Вызывается под мьютексом босса.
func (s *worldBossService) settleDefeat(ctx context.Context, boss *models.WorldBoss) []models.RaidRank {
	ids := make([]string, 0, len(boss.DamageDealt))
	for id := range boss.DamageDealt {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if boss.DamageDealt[ids[i]] != boss.DamageDealt[ids[j]] {
			return boss.DamageDealt[ids[i]] > boss.DamageDealt[ids[j]]
		}
		return ids[i] < ids[j]
	})

	participants, err := s.playerRepo.GetMany(ctx, ids)
	if err != nil {
		s.logger.Error("Не удалось загрузить участников рейда", zap.Error(err))
		participants = map[string]*models.Player{}
	}

	ranking := make([]models.RaidRank, 0, len(ids))
	for pos, id := range ids {
		rank := models.RaidRank{
			Position: pos + 1,
			PlayerID: id,
			Damage:   boss.DamageDealt[id],
			Exp:      2000,
		}
		switch {
		case pos == 0:
			rank.Gold = 5000
			rank.Gems = 5
		case pos <= 2:
			rank.Gold = 2500
			rank.Gems = 2
		default:
			rank.Gold = 1000
		}

		p, ok := participants[id]
		if ok {
			rank.Name = p.Name
			p.Gold += rank.Gold
			p.Gems += rank.Gems
			p.HP = p.MaxHP
			p.Count.WorldBossKills++
			applyExp(p, rank.Exp)
			for _, t := range unlockTitles(p) {
				s.announceTitle(ctx, p, t)
			}
			if err := s.playerRepo.Save(ctx, p); err != nil {
				s.logger.Error("Не удалось сохранить участника рейда",
					zap.String("playerID", id), zap.Error(err))
			}
		}
		ranking = append(ranking, rank)
	}

	err = s.publisher.PublishWorldBossDefeated(ctx, messaging.WorldBossDefeatedEvent{
		EventID:    uuid.NewString(),
		BossID:     boss.ID,
		Name:       boss.Name,
		Ranking:    ranking,
		DefeatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("Не удалось опубликовать победу над боссом", zap.Error(err))
	}
	return ranking
}

func (s *worldBossService) publishPhase(ctx context.Context, boss *models.WorldBoss, ph models.BossPhase) {
	err := s.publisher.PublishWorldBossPhase(ctx, messaging.WorldBossPhaseEvent{
		EventID: uuid.NewString(),
		BossID:  boss.ID,
		Name:    boss.Name,
		HPPct:   ph.HPPct,
		Message: ph.Message,
	})
	if err != nil {
		s.logger.Warn("Не удалось опубликовать фазу босса", zap.Error(err))
	}
}

func (s *worldBossService) announceTitle(ctx context.Context, p *models.Player, t catalogue.Title) {
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

func (s *worldBossService) RunSpawner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Spawn(ctx, ""); err != nil {
				if !errors.Is(err, models.ErrWorldBossActive) {
					s.logger.Error("Плановый призыв босса не удался", zap.Error(err))
				}
			}
		}
	}
}
