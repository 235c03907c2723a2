package service

import (
	"fmt"

	"rpg-server/internal/catalogue"
	"rpg-server/internal/models"
)

// skillDamage считает урон навыка. Маги бьют от интеллекта, остальные
// от силы; ловкость дает всем небольшую добавку. Крит и ультимативный
// бонус взаимоисключающи.
func skillDamage(p *models.Player, b *models.BattleState, sk catalogue.Skill, mult float64, rng Rand, log *[]string) int {
	stat := p.Stats.Strength + b.PlayerEffects.BuffStr
	if sk.IsMagic() {
		stat = p.Stats.Intelligence
	}
	base := stat + int(float64(p.Stats.Agility)*0.3) + rng.Intn(6)

	dmg := float64(base) * mult
	if b.PlayerEffects.Berserk && !sk.IsMagic() {
		dmg *= 2
	}
	dmg -= float64(b.Enemy.Def) * 0.3

	if sk.IsUltimate() {
		dmg *= 1.5
	} else if b.PlayerEffects.EagleEye > 0 || rng.Float64() < critChance {
		dmg *= critMultiplier
		*log = append(*log, "Critical strike!")
	}

	if dmg < 1 {
		dmg = 1
	}
	return int(dmg)
}

// resolveSkill применяет навык к текущему бою. Предусловия (владение,
// мана, ультимейт) проверяет вызывающий; здесь только сама механика.
func resolveSkill(p *models.Player, b *models.BattleState, sk catalogue.Skill, rng Rand, log *[]string) {
	pe := &b.PlayerEffects
	ee := &b.EnemyEffects
	pe.Defending = false

	*log = append(*log, fmt.Sprintf("%s uses %s!", p.Name, sk.Name))

	switch sk.Effect.Kind {
	case catalogue.EffectDamage, catalogue.EffectUltimate:
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		*log = append(*log, fmt.Sprintf("%s takes %d damage.", b.Enemy.Name, dealt))

	case catalogue.EffectDamageStun:
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		ee.Stunned = true
		*log = append(*log, fmt.Sprintf("%s takes %d damage and is stunned!", b.Enemy.Name, dealt))

	case catalogue.EffectDamageBurn:
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		ee.BurnTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("%s takes %d damage and catches fire!", b.Enemy.Name, dealt))

	case catalogue.EffectDamagePoison:
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		ee.PoisonTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("%s takes %d damage and is poisoned!", b.Enemy.Name, dealt))

	case catalogue.EffectDamageSlow:
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		ee.Cursed = true
		ee.CursedTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("%s takes %d damage, frost slows its attacks!", b.Enemy.Name, dealt))

	case catalogue.EffectDamageDrain:
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		heal := int(float64(dealt) * sk.Effect.Ratio)
		p.HP += heal
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
		*log = append(*log, fmt.Sprintf("%s takes %d damage. You drain %d HP.", b.Enemy.Name, dealt, heal))

	case catalogue.EffectStrBuff:
		pe.BuffStr = int(float64(p.Stats.Strength) * sk.Effect.Ratio)
		pe.BuffStrTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("Your strength surges by %d for %d turns!", pe.BuffStr, sk.Effect.Turns))

	case catalogue.EffectBerserk:
		pe.Berserk = true
		pe.BerserkTurns = sk.Effect.Turns
		*log = append(*log, "You see red. Attack doubled, defenses down!")

	case catalogue.EffectIronWill:
		pe.IronWill = true
		pe.IronWillTurns = sk.Effect.Turns
		*log = append(*log, "Your resolve hardens, incoming damage reduced!")

	case catalogue.EffectCurseAtk:
		ee.Cursed = true
		ee.CursedTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("%s falters, its attacks weakened!", b.Enemy.Name))

	case catalogue.EffectCurseAll:
		// Помимо атаки проклятие снимает и долю брони; срез
		// возвращается, когда проклятие спадает.
		cut := int(float64(b.Enemy.Def) * sk.Effect.Ratio)
		b.Enemy.Def -= cut
		ee.DefCut = cut
		ee.Cursed = true
		ee.CursedTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("A withering curse settles over %s, sapping strength and armor!", b.Enemy.Name))

	case catalogue.EffectManaShield:
		pe.Shielded = true
		*log = append(*log, "A shimmering shield forms around you.")

	case catalogue.EffectDivineShield:
		pe.DivineShield = sk.Effect.Charges
		pe.DivineTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("Holy light wraps you, blocking the next %d attacks.", sk.Effect.Charges))

	case catalogue.EffectVanish:
		pe.Vanished = true
		pe.VanishTurns = sk.Effect.Turns
		*log = append(*log, "You melt into the shadows.")

	case catalogue.EffectEagleEye:
		pe.EagleEye = sk.Effect.Charges
		if sk.Effect.Charges == 1 {
			*log = append(*log, "Your next strike will not miss its mark.")
		} else {
			*log = append(*log, fmt.Sprintf("Your next %d strikes will not miss their mark.", sk.Effect.Charges))
		}

	case catalogue.EffectDeathMark:
		ee.DeathMark = true
		*log = append(*log, fmt.Sprintf("A black sigil brands %s. The next hit will be devastating.", b.Enemy.Name))

	case catalogue.EffectFirstStrike:
		mult := sk.Mult
		if b.Turn == 1 {
			mult *= sk.Effect.Ratio
			*log = append(*log, "You strike before the fight truly begins!")
		}
		dmg := skillDamage(p, b, sk, mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		*log = append(*log, fmt.Sprintf("%s takes %d damage.", b.Enemy.Name, dealt))

	case catalogue.EffectTypeBonus:
		mult := sk.Mult
		if b.Enemy.Type == sk.Effect.BonusType {
			mult *= sk.Effect.Ratio
			*log = append(*log, fmt.Sprintf("The %s recoils from the holy power!", b.Enemy.Type))
		}
		dmg := skillDamage(p, b, sk, mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		*log = append(*log, fmt.Sprintf("%s takes %d damage.", b.Enemy.Name, dealt))

	case catalogue.EffectTrueDamage:
		dmg := int(float64(p.Stats.Agility)*2.5 + float64(p.Stats.Strength)*0.5)
		if dmg < 1 {
			dmg = 1
		}
		dealt := dealToEnemy(b, dmg, log)
		*log = append(*log, fmt.Sprintf("A perfect shot pierces all armor: %d damage.", dealt))

	case catalogue.EffectTrap:
		dmg := int(float64(p.Stats.Agility) * sk.Effect.Ratio)
		if dmg < 1 {
			dmg = 1
		}
		dealt := dealToEnemy(b, dmg, log)
		ee.Trapped = true
		ee.TrapTurns = 1
		*log = append(*log, fmt.Sprintf("%s is caught in the snare for %d damage and loses its turn!", b.Enemy.Name, dealt))

	case catalogue.EffectExecute:
		threshold := int(float64(b.Enemy.MaxHP) * sk.Effect.Ratio)
		if !b.Enemy.IsBoss && b.Enemy.HP < threshold {
			b.Enemy.HP = 0
			*log = append(*log, fmt.Sprintf("You appear behind %s. It never sees the blade. EXECUTED.", b.Enemy.Name))
			return
		}
		dmg := skillDamage(p, b, sk, sk.Mult, rng, log)
		dealt := dealToEnemy(b, dmg, log)
		*log = append(*log, fmt.Sprintf("%s takes %d damage.", b.Enemy.Name, dealt))

	case catalogue.EffectSummon:
		// Повторный призыв обновляет союзника, а не складывается с ним.
		b.Ally = models.Ally{
			Active: true,
			Dmg:    int(float64(p.Stats.Intelligence) * sk.Effect.Ratio),
			Turns:  sk.Effect.Turns,
		}
		if b.Ally.Dmg < 1 {
			b.Ally.Dmg = 1
		}
		*log = append(*log, fmt.Sprintf("The dead rise to fight for you (%d damage, %d turns).", b.Ally.Dmg, b.Ally.Turns))

	case catalogue.EffectPlague:
		ee.PlagueTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("A creeping plague infects %s.", b.Enemy.Name))

	case catalogue.EffectHeal:
		heal := int(float64(p.MaxHP) * sk.Effect.Ratio)
		p.HP += heal
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
		*log = append(*log, fmt.Sprintf("Warm light knits your wounds: +%d HP.", heal))

	case catalogue.EffectUndying:
		pe.Undying = true
		pe.UndyingTurns = sk.Effect.Turns
		*log = append(*log, fmt.Sprintf("You bind your soul to this plane. You cannot die for %d turns.", sk.Effect.Turns))
	}
}
