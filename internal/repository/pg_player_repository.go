package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rpg-server/internal/models"
)

// Compile-time check
var _ PlayerRepository = (*pgPlayerRepository)(nil)

type pgPlayerRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgPlayerRepository создает репозиторий игроков поверх PostgreSQL.
func NewPgPlayerRepository(db *pgxpool.Pool, logger *zap.Logger) PlayerRepository {
	return &pgPlayerRepository{
		db:     db,
		logger: logger.Named("PgPlayerRepo"),
	}
}

func (r *pgPlayerRepository) GetByID(ctx context.Context, id string) (*models.Player, error) {
	query := `SELECT doc FROM players WHERE id = $1`

	var doc []byte
	err := r.db.QueryRow(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotRegistered
		}
		r.logger.Error("Failed to get player", zap.String("playerID", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка чтения игрока: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal(doc, &player); err != nil {
		r.logger.Error("Failed to unmarshal player doc", zap.String("playerID", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка декодирования документа игрока: %w", err)
	}
	return &player, nil
}

func (r *pgPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `INSERT INTO players (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $3)`

	player.CreatedAt = time.Now().UTC()
	player.UpdatedAt = player.CreatedAt
	doc, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("ошибка кодирования документа игрока: %w", err)
	}

	_, err = r.db.Exec(ctx, query, player.ID, doc, player.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrPlayerAlreadyExists
		}
		r.logger.Error("Failed to create player", zap.String("playerID", player.ID), zap.Error(err))
		return fmt.Errorf("ошибка создания игрока: %w", err)
	}
	r.logger.Info("Player created", zap.String("playerID", player.ID), zap.String("name", player.Name))
	return nil
}

func (r *pgPlayerRepository) Save(ctx context.Context, player *models.Player) error {
	query := `UPDATE players SET doc = $2, updated_at = $3 WHERE id = $1`

	player.UpdatedAt = time.Now().UTC()
	doc, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("ошибка кодирования документа игрока: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, player.ID, doc, player.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to save player", zap.String("playerID", player.ID), zap.Error(err))
		return fmt.Errorf("ошибка сохранения игрока: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotRegistered
	}
	return nil
}

func (r *pgPlayerRepository) GetMany(ctx context.Context, ids []string) (map[string]*models.Player, error) {
	if len(ids) == 0 {
		return map[string]*models.Player{}, nil
	}
	query := `SELECT doc FROM players WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error("Failed to get players batch", zap.Int("count", len(ids)), zap.Error(err))
		return nil, fmt.Errorf("ошибка чтения игроков: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.Player, len(ids))
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки игрока: %w", err)
		}
		var player models.Player
		if err := json.Unmarshal(doc, &player); err != nil {
			return nil, fmt.Errorf("ошибка декодирования документа игрока: %w", err)
		}
		out[player.ID] = &player
	}
	return out, rows.Err()
}

func (r *pgPlayerRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	query := `
        SELECT id AS player_id,
               doc->>'name' AS name,
               (doc->>'level')::int AS level,
               (doc->>'exp')::bigint AS exp
        FROM players
        ORDER BY (doc->>'level')::int DESC, (doc->>'exp')::bigint DESC
        LIMIT $1
    `

	var entries []LeaderboardEntry
	if err := pgxscan.Select(ctx, r.db, &entries, query, limit); err != nil {
		r.logger.Error("Failed to load leaderboard", zap.Error(err))
		return nil, fmt.Errorf("ошибка чтения таблицы лидеров: %w", err)
	}
	for i := range entries {
		entries[i].Rank = models.RankFor(entries[i].Level)
	}
	return entries, nil
}
