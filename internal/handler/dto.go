package handler

import (
	"fmt"
	"strconv"
)

// RegisterRequest - тело запроса регистрации персонажа.
type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Class string `json:"class" binding:"required"`
	Race  string `json:"race" binding:"required"`
}

// EquipTitleRequest - смена надетого титула. Пустой id снимает титул.
type EquipTitleRequest struct {
	TitleID string `json:"title_id"`
}

// UseSkillRequest - применение навыка в бою.
type UseSkillRequest struct {
	SkillID string `json:"skill_id" binding:"required"`
}

// UseItemRequest - применение предмета в бою.
type UseItemRequest struct {
	ItemID string `json:"item_id" binding:"required"`
}

// TravelRequest - переход в другой регион.
type TravelRequest struct {
	RegionID string `json:"region_id" binding:"required"`
}

// PvpChallengeRequest - вызов на дуэль.
type PvpChallengeRequest struct {
	TargetID string `json:"target_id" binding:"required"`
}

// SpawnBossRequest - ручной призыв мирового босса.
type SpawnBossRequest struct {
	BossID string `json:"boss_id"`
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("value must be positive: %d", n)
	}
	return n, nil
}
