package service

import (
	"fmt"

	"rpg-server/internal/models"
)

// Боевые константы. Подобраны под кривую роста персонажа: базовый крит
// не зависит от удачи, щиты поглощают удар целиком.
const (
	critChance     = 0.10
	critMultiplier = 1.75
	poisonDamage   = 10
	burnDamage     = 15
	plagueDamage   = 15
)

// dealToEnemy наносит врагу урон, детонируя метку смерти, если она
// стоит. Возвращает фактически нанесенный урон.
func dealToEnemy(b *models.BattleState, dmg int, log *[]string) int {
	if b.EnemyEffects.DeathMark {
		dmg *= 2
		b.EnemyEffects.DeathMark = false
		*log = append(*log, "The death mark detonates, doubling the blow!")
	}
	b.Enemy.HP -= dmg
	if b.Enemy.HP < 0 {
		b.Enemy.HP = 0
	}
	return dmg
}

// performBasicAttack разыгрывает обычную атаку игрока. Атака снимает
// стойку защиты.
func performBasicAttack(p *models.Player, b *models.BattleState, rng Rand, log *[]string) {
	pe := &b.PlayerEffects
	pe.Defending = false

	atk := p.Stats.Strength + pe.BuffStr + rng.Intn(9)
	if pe.Berserk {
		atk *= 2
	}

	dmg := atk - int(float64(b.Enemy.Def)*0.4)
	if dmg < 1 {
		dmg = 1
	}

	crit := pe.EagleEye > 0 || rng.Float64() < critChance
	if crit {
		dmg = int(float64(dmg) * critMultiplier)
	}

	dealt := dealToEnemy(b, dmg, log)
	if crit {
		*log = append(*log, fmt.Sprintf("Critical hit! %s takes %d damage.", b.Enemy.Name, dealt))
	} else {
		*log = append(*log, fmt.Sprintf("%s takes %d damage.", b.Enemy.Name, dealt))
	}
}

// performEnemyAttack разыгрывает ответный удар врага. Оглушение, капкан
// и невидимость игрока полностью отменяют удар; щиты поглощают его.
func performEnemyAttack(p *models.Player, b *models.BattleState, rng Rand, log *[]string) {
	pe := &b.PlayerEffects
	ee := &b.EnemyEffects

	switch {
	case ee.Stunned:
		ee.Stunned = false
		*log = append(*log, fmt.Sprintf("%s is stunned and cannot act!", b.Enemy.Name))
		return
	case ee.Trapped:
		*log = append(*log, fmt.Sprintf("%s struggles in the trap!", b.Enemy.Name))
		return
	case pe.Vanished:
		*log = append(*log, fmt.Sprintf("%s strikes at shadows. You are untouchable.", b.Enemy.Name))
		return
	case pe.DivineShield > 0:
		pe.DivineShield--
		*log = append(*log, "A divine barrier absorbs the attack!")
		return
	case pe.Shielded:
		pe.Shielded = false
		*log = append(*log, "Your shield shatters, absorbing the attack!")
		return
	}

	dmg := float64(b.Enemy.Atk + rng.Intn(6))
	if ee.Cursed {
		dmg *= 0.8
	}
	if b.Enemy.IsBoss && b.Enemy.HP*2 < b.Enemy.MaxHP {
		// Разъяренный босс ниже половины здоровья.
		dmg *= 1.3
	}

	def := p.Stats.Defense
	if pe.Berserk {
		// Берсерк: атака удвоена, защита срезана вдвое.
		def = int(float64(def) * 0.5)
	}
	if pe.IronWill {
		def += int(float64(def) * 0.4)
	}

	final := int(dmg) - int(float64(def)*0.5)
	if final < 1 {
		final = 1
	}
	if pe.Defending {
		final /= 2
		if final < 1 {
			final = 1
		}
		pe.Defending = false
		*log = append(*log, "You brace behind your guard, halving the blow.")
	}
	if rng.Float64() < critChance {
		final += final / 2
		*log = append(*log, fmt.Sprintf("%s lands a vicious critical!", b.Enemy.Name))
	}

	p.HP -= final
	if pe.Undying && p.HP < 1 {
		p.HP = 1
		*log = append(*log, "Death refuses you. You cling to 1 HP!")
	}
	if p.HP < 0 {
		p.HP = 0
	}
	*log = append(*log, fmt.Sprintf("%s hits you for %d damage.", b.Enemy.Name, final))
}

// tickEffects продвигает все длящиеся эффекты на один ход. Порядок
// фиксирован: сначала эффекты на игроке, потом на враге, последним
// бьет призванный союзник.
func tickEffects(p *models.Player, b *models.BattleState, log *[]string) {
	pe := &b.PlayerEffects
	ee := &b.EnemyEffects

	if pe.PoisonTurns > 0 {
		pe.PoisonTurns--
		p.HP -= poisonDamage
		if pe.Undying && p.HP < 1 {
			p.HP = 1
		}
		if p.HP < 0 {
			p.HP = 0
		}
		*log = append(*log, fmt.Sprintf("Poison courses through you: -%d HP.", poisonDamage))
	}
	if pe.BuffStrTurns > 0 {
		pe.BuffStrTurns--
		if pe.BuffStrTurns == 0 {
			pe.BuffStr = 0
			*log = append(*log, "Your battle fervor fades.")
		}
	}
	if pe.VanishTurns > 0 {
		pe.VanishTurns--
		if pe.VanishTurns == 0 {
			pe.Vanished = false
			*log = append(*log, "You step back out of the shadows.")
		}
	}
	if pe.EagleEye > 0 {
		pe.EagleEye--
	}
	if pe.UndyingTurns > 0 {
		pe.UndyingTurns--
		if pe.UndyingTurns == 0 {
			pe.Undying = false
			*log = append(*log, "The undying pact expires.")
		}
	}
	if pe.BerserkTurns > 0 {
		pe.BerserkTurns--
		if pe.BerserkTurns == 0 {
			pe.Berserk = false
			*log = append(*log, "The red haze lifts, berserk ends.")
		}
	}
	if pe.IronWillTurns > 0 {
		pe.IronWillTurns--
		if pe.IronWillTurns == 0 {
			pe.IronWill = false
			*log = append(*log, "Iron will wavers.")
		}
	}
	if pe.DivineTurns > 0 {
		pe.DivineTurns--
		if pe.DivineTurns == 0 && pe.DivineShield > 0 {
			pe.DivineShield = 0
			*log = append(*log, "The divine barrier dissolves.")
		}
	}

	if ee.PoisonTurns > 0 {
		ee.PoisonTurns--
		b.Enemy.HP -= poisonDamage
		*log = append(*log, fmt.Sprintf("%s suffers %d poison damage.", b.Enemy.Name, poisonDamage))
	}
	if ee.BurnTurns > 0 {
		ee.BurnTurns--
		b.Enemy.HP -= burnDamage
		*log = append(*log, fmt.Sprintf("%s burns for %d damage.", b.Enemy.Name, burnDamage))
	}
	if ee.PlagueTurns > 0 {
		ee.PlagueTurns--
		b.Enemy.HP -= plagueDamage
		*log = append(*log, fmt.Sprintf("Plague rots %s for %d damage.", b.Enemy.Name, plagueDamage))
	}
	if ee.CursedTurns > 0 {
		ee.CursedTurns--
		if ee.CursedTurns == 0 {
			ee.Cursed = false
			b.Enemy.Def += ee.DefCut
			ee.DefCut = 0
			*log = append(*log, "The curse lifts.")
		}
	}
	if ee.TrapTurns > 0 {
		ee.TrapTurns--
		if ee.TrapTurns == 0 {
			ee.Trapped = false
		}
	}
	if b.Enemy.HP < 0 {
		b.Enemy.HP = 0
	}

	if b.Ally.Active {
		dealt := dealToEnemy(b, b.Ally.Dmg, log)
		*log = append(*log, fmt.Sprintf("Your summon claws %s for %d damage.", b.Enemy.Name, dealt))
		b.Ally.Turns--
		if b.Ally.Turns <= 0 {
			b.Ally = models.Ally{}
			*log = append(*log, "Your summon crumbles to dust.")
		}
	}

	pe.FirstTurn = false
}

// activeEffectLabels собирает короткие подписи активных эффектов для
// статусной строки.
func activeEffectLabels(b *models.BattleState) []string {
	var out []string
	pe := b.PlayerEffects
	ee := b.EnemyEffects
	if pe.Defending {
		out = append(out, "defending")
	}
	if pe.PoisonTurns > 0 {
		out = append(out, fmt.Sprintf("poisoned (%d)", pe.PoisonTurns))
	}
	if pe.BuffStrTurns > 0 {
		out = append(out, fmt.Sprintf("empowered (%d)", pe.BuffStrTurns))
	}
	if pe.Vanished {
		out = append(out, fmt.Sprintf("vanished (%d)", pe.VanishTurns))
	}
	if pe.EagleEye > 0 {
		out = append(out, fmt.Sprintf("eagle eye (%d)", pe.EagleEye))
	}
	if pe.Undying {
		out = append(out, fmt.Sprintf("undying (%d)", pe.UndyingTurns))
	}
	if pe.Berserk {
		out = append(out, fmt.Sprintf("berserk (%d)", pe.BerserkTurns))
	}
	if pe.IronWill {
		out = append(out, fmt.Sprintf("iron will (%d)", pe.IronWillTurns))
	}
	if pe.Shielded {
		out = append(out, "shielded")
	}
	if pe.DivineShield > 0 {
		out = append(out, fmt.Sprintf("divine shield (%d)", pe.DivineShield))
	}
	if ee.Stunned {
		out = append(out, "enemy stunned")
	}
	if ee.PoisonTurns > 0 {
		out = append(out, fmt.Sprintf("enemy poisoned (%d)", ee.PoisonTurns))
	}
	if ee.Cursed {
		out = append(out, fmt.Sprintf("enemy cursed (%d)", ee.CursedTurns))
	}
	if ee.BurnTurns > 0 {
		out = append(out, fmt.Sprintf("enemy burning (%d)", ee.BurnTurns))
	}
	if ee.PlagueTurns > 0 {
		out = append(out, fmt.Sprintf("enemy plagued (%d)", ee.PlagueTurns))
	}
	if ee.DeathMark {
		out = append(out, "enemy marked")
	}
	if ee.Trapped {
		out = append(out, "enemy trapped")
	}
	if b.Ally.Active {
		out = append(out, fmt.Sprintf("summon (%d)", b.Ally.Turns))
	}
	return out
}

// battleStatus делает снимок боя для ответа игроку.
func battleStatus(p *models.Player, b *models.BattleState) *models.BattleStatus {
	return &models.BattleStatus{
		EnemyName:   b.Enemy.Name,
		EnemyGrade:  b.Enemy.Grade,
		EnemyHP:     b.Enemy.HP,
		EnemyMaxHP:  b.Enemy.MaxHP,
		PlayerHP:    p.HP,
		PlayerMaxHP: p.MaxHP,
		PlayerMP:    p.MP,
		PlayerMaxMP: p.MaxMP,
		Turn:        b.Turn,
		Floor:       b.Floor,
		Room:        b.Room,
		Effects:     activeEffectLabels(b),
	}
}
