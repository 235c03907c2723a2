package repository

import (
	"context"

	"rpg-server/internal/models"
)

// LeaderboardEntry - строка таблицы лидеров.
type LeaderboardEntry struct {
	PlayerID string `db:"player_id" json:"player_id"`
	Name     string `db:"name" json:"name"`
	Level    int    `db:"level" json:"level"`
	Exp      int64  `db:"exp" json:"exp"`
	Rank     string `db:"-" json:"rank"`
}

// PlayerRepository определяет интерфейс для работы с хранилищем игроков.
// Документ игрока читается и сохраняется целиком; одна команда - одно
// сохранение.
type PlayerRepository interface {
	// GetByID возвращает документ игрока. Если игрок не найден,
	// возвращается models.ErrNotRegistered.
	GetByID(ctx context.Context, id string) (*models.Player, error)
	// Create вставляет нового игрока. Если игрок уже существует,
	// возвращается models.ErrPlayerAlreadyExists.
	Create(ctx context.Context, player *models.Player) error
	// Save перезаписывает документ игрока целиком.
	Save(ctx context.Context, player *models.Player) error
	// GetMany возвращает документы перечисленных игроков (для наград
	// мирового босса). Отсутствующие id молча пропускаются.
	GetMany(ctx context.Context, ids []string) (map[string]*models.Player, error)
	// Leaderboard возвращает топ игроков по уровню и опыту.
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
