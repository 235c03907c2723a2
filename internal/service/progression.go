package service

import (
	"rpg-server/internal/catalogue"
	"rpg-server/internal/models"
)

// LevelUpResult описывает, что дал начисленный опыт.
type LevelUpResult struct {
	LeveledUp bool
	NewLevel  int
	NewRank   string
	NewSkills []string
}

// statGainPerLevel - сколько очков характеристик дает один уровень.
const statGainPerLevel = 5

// applyExp начисляет опыт и прокручивает все накопившиеся уровни.
// Каждый уровень раздает очки характеристик, пересчитывает максимумы
// и полностью восстанавливает игрока.
func applyExp(p *models.Player, exp int64) LevelUpResult {
	res := LevelUpResult{}
	p.Exp += exp

	oldRank := p.Rank()
	for p.Exp >= p.ExpToNext() {
		p.Exp -= p.ExpToNext()
		p.Level++
		res.LeveledUp = true
		res.NewLevel = p.Level

		distributeStatPoints(p)
		p.VitalsForLevel()
		p.HP = p.MaxHP
		p.MP = p.MaxMP

		if sk, ok := catalogue.SkillUnlockForLevel(p.Class, p.Level); ok && !p.HasSkill(sk.ID) {
			p.Skills = append(p.Skills, sk.ID)
			res.NewSkills = append(res.NewSkills, sk.ID)
		}
	}
	if res.LeveledUp && p.Rank() != oldRank {
		res.NewRank = p.Rank()
	}
	return res
}

// distributeStatPoints раздает очки уровня по одному на характеристику
// в фиксированном порядке, пропуская уже капнутые. При достигнутом
// общем пределе очки сгорают.
func distributeStatPoints(p *models.Player) {
	targets := []*int{
		&p.Stats.Strength,
		&p.Stats.Agility,
		&p.Stats.Intelligence,
		&p.Stats.Defense,
		&p.Stats.Luck,
	}
	for i := 0; i < statGainPerLevel; i++ {
		if p.Stats.Total() >= models.MaxTotalStats {
			return
		}
		if *targets[i] < models.MaxSingleStat {
			*targets[i]++
		}
	}
}

// unlockTitles проверяет все титулы против текущего документа и
// выдает заслуженные. Возвращает только новые.
func unlockTitles(p *models.Player) []catalogue.Title {
	var unlocked []catalogue.Title
	for _, t := range catalogue.Titles {
		if p.HasTitle(t.ID) {
			continue
		}
		if titleEarned(p, t) {
			p.Titles = append(p.Titles, t.ID)
			unlocked = append(unlocked, t)
		}
	}
	return unlocked
}

func titleEarned(p *models.Player, t catalogue.Title) bool {
	switch t.ReqKind {
	case catalogue.TitleReqKills:
		return p.KillCounts[t.Monster] >= t.Count
	case catalogue.TitleReqLevel:
		return p.Level >= t.Level
	case catalogue.TitleReqCounter:
		return counterValue(p, t.Counter) >= t.Count
	}
	return false
}

func counterValue(p *models.Player, name string) int {
	switch name {
	case catalogue.CounterBossKills:
		return p.Count.BossesKilled
	case catalogue.CounterWorldBossKills:
		return p.Count.WorldBossKills
	case catalogue.CounterDeaths:
		return p.Count.Deaths
	case catalogue.CounterPvpWins:
		return p.Pvp.Wins
	case catalogue.CounterDungeonsCleared:
		return p.Count.DungeonsCleared
	}
	return 0
}

// bossDamageBonus возвращает множитель рейдового урона от надетого
// титула.
func bossDamageBonus(p *models.Player) float64 {
	if p.ActiveTitle == "" {
		return 1
	}
	t, ok := catalogue.TitleByID(p.ActiveTitle)
	if !ok {
		return 1
	}
	return 1 + t.BossDmgBonus
}
