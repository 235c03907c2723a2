package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rpg-server/internal/middleware"
	"rpg-server/internal/models"
	"rpg-server/internal/service"
)

// APIError представляет стандартизированный ответ об ошибке.
type APIError struct {
	Message string `json:"message"`
}

// GameHandler обрабатывает HTTP-команды игрового движка. Личность
// игрока приходит из JWT, тело запроса несет только аргументы команды.
type GameHandler struct {
	players   service.PlayerService
	combat    service.CombatService
	adventure service.AdventureService
	dungeon   service.DungeonService
	pvp       service.PvpService
	worldBoss service.WorldBossService
	logger    *zap.Logger
}

// NewGameHandler создает новый GameHandler.
func NewGameHandler(
	players service.PlayerService,
	combat service.CombatService,
	adventure service.AdventureService,
	dungeon service.DungeonService,
	pvp service.PvpService,
	worldBoss service.WorldBossService,
	logger *zap.Logger,
) *GameHandler {
	return &GameHandler{
		players:   players,
		combat:    combat,
		adventure: adventure,
		dungeon:   dungeon,
		pvp:       pvp,
		worldBoss: worldBoss,
		logger:    logger.Named("GameHandler"),
	}
}

// RegisterRoutes регистрирует игровые маршруты под общей JWT-защитой.
func (h *GameHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	api := r.Group("/api/v1", auth)
	{
		api.POST("/players/register", h.register)
		api.GET("/players/me", h.profile)
		api.PUT("/players/me/title", h.equipTitle)
		api.GET("/leaderboard", h.leaderboard)

		combat := api.Group("/combat")
		{
			combat.POST("/attack", h.attack)
			combat.POST("/defend", h.defend)
			combat.POST("/flee", h.flee)
			combat.POST("/skill", h.useSkill)
			combat.POST("/item", h.useItem)
		}

		api.POST("/hunt", h.hunt)
		api.POST("/explore", h.explore)
		api.POST("/travel", h.travel)

		dungeon := api.Group("/dungeon")
		{
			dungeon.POST("/enter", h.dungeonEnter)
			dungeon.POST("/continue", h.dungeonContinue)
			dungeon.POST("/leave", h.dungeonLeave)
		}

		pvp := api.Group("/pvp")
		{
			pvp.POST("/challenge", h.pvpChallenge)
			pvp.POST("/accept", h.pvpAccept)
		}

		boss := api.Group("/worldboss")
		{
			boss.GET("", h.worldBossStatus)
			boss.POST("/fight", h.worldBossFight)
			boss.POST("/spawn", h.worldBossSpawn)
		}
	}
}

// playerID достает идентификатор игрока, положенный auth middleware.
func playerID(c *gin.Context) string {
	id, _ := middleware.PlayerIDFromContext(c)
	return id
}

// respondError переводит ошибку сервиса в HTTP-статус.
func (h *GameHandler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotRegistered),
		errors.Is(err, models.ErrChallengeNotFound),
		errors.Is(err, models.ErrNoWorldBoss):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, models.ErrInvalidTarget),
		errors.Is(err, models.ErrUnknownSkill),
		errors.Is(err, models.ErrUnknownItem),
		errors.Is(err, models.ErrItemNotUsable):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrOnCooldown):
		status = http.StatusTooManyRequests
	case errors.Is(err, models.ErrPlayerAlreadyExists),
		errors.Is(err, models.ErrAlreadyInCombat),
		errors.Is(err, models.ErrAlreadyInDungeon),
		errors.Is(err, models.ErrAlreadyInPvp),
		errors.Is(err, models.ErrNotInCombat),
		errors.Is(err, models.ErrNotInDungeon),
		errors.Is(err, models.ErrPlayerDead),
		errors.Is(err, models.ErrCannotFlee),
		errors.Is(err, models.ErrUltimateAlreadyUsed),
		errors.Is(err, models.ErrInsufficientMana),
		errors.Is(err, models.ErrTargetBusy),
		errors.Is(err, models.ErrChallengeExists),
		errors.Is(err, models.ErrWorldBossActive),
		errors.Is(err, models.ErrLoanDelinquent),
		errors.Is(err, models.ErrLevelTooLow),
		errors.Is(err, models.ErrInventoryFull):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("Команда завершилась внутренней ошибкой",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, APIError{Message: "internal server error"})
		return
	}
	c.JSON(status, APIError{Message: err.Error()})
}

func (h *GameHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}
	p, err := h.players.Register(c.Request.Context(), playerID(c), req.Name, req.Class, req.Race)
	if err != nil {
		h.respondError(c, err)
		return
	}
	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, p)
}

func (h *GameHandler) profile(c *gin.Context) {
	p, err := h.players.Profile(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *GameHandler) equipTitle(c *gin.Context) {
	var req EquipTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}
	p, err := h.players.EquipTitle(c.Request.Context(), playerID(c), req.TitleID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *GameHandler) leaderboard(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			limit = n
		}
	}
	entries, err := h.players.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *GameHandler) attack(c *gin.Context) {
	h.respondOutcome(c)(h.combat.Attack(c.Request.Context(), playerID(c)))
}

func (h *GameHandler) defend(c *gin.Context) {
	h.respondOutcome(c)(h.combat.Defend(c.Request.Context(), playerID(c)))
}

func (h *GameHandler) flee(c *gin.Context) {
	h.respondOutcome(c)(h.combat.Flee(c.Request.Context(), playerID(c)))
}

func (h *GameHandler) useSkill(c *gin.Context) {
	var req UseSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}
	h.respondOutcome(c)(h.combat.UseSkill(c.Request.Context(), playerID(c), req.SkillID))
}

func (h *GameHandler) useItem(c *gin.Context) {
	var req UseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}
	h.respondOutcome(c)(h.combat.UseItem(c.Request.Context(), playerID(c), req.ItemID))
}

func (h *GameHandler) hunt(c *gin.Context) {
	h.respondOutcome(c)(h.adventure.Hunt(c.Request.Context(), playerID(c)))
}

func (h *GameHandler) explore(c *gin.Context) {
	out, err := h.adventure.Explore(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *GameHandler) travel(c *gin.Context) {
	var req TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}
	p, err := h.adventure.Travel(c.Request.Context(), playerID(c), req.RegionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *GameHandler) dungeonEnter(c *gin.Context) {
	h.respondOutcome(c)(h.dungeon.Enter(c.Request.Context(), playerID(c)))
}

func (h *GameHandler) dungeonContinue(c *gin.Context) {
	h.respondOutcome(c)(h.dungeon.Continue(c.Request.Context(), playerID(c)))
}

func (h *GameHandler) dungeonLeave(c *gin.Context) {
	p, err := h.dungeon.Leave(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *GameHandler) pvpChallenge(c *gin.Context) {
	var req PvpChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "invalid request body"})
		return
	}
	if err := h.pvp.Challenge(c.Request.Context(), playerID(c), req.TargetID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "challenge sent"})
}

func (h *GameHandler) pvpAccept(c *gin.Context) {
	out, err := h.pvp.Accept(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	pvpDuelsTotal.Inc()
	encounterOutcomesTotal.WithLabelValues(out.Kind).Inc()
	c.JSON(http.StatusOK, out)
}

func (h *GameHandler) worldBossStatus(c *gin.Context) {
	boss, err := h.worldBoss.Current(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boss)
}

func (h *GameHandler) worldBossFight(c *gin.Context) {
	out, err := h.worldBoss.Fight(c.Request.Context(), playerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *GameHandler) worldBossSpawn(c *gin.Context) {
	var req SpawnBossRequest
	// Тело опционально: пустое означает случайного босса.
	_ = c.ShouldBindJSON(&req)
	boss, err := h.worldBoss.Spawn(c.Request.Context(), req.BossID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	worldBossSpawnsTotal.Inc()
	c.JSON(http.StatusCreated, boss)
}

// respondOutcome сводит пары (исход, ошибка) боевых команд к одному
// ответу.
func (h *GameHandler) respondOutcome(c *gin.Context) func(*models.EncounterOutcome, error) {
	return func(out *models.EncounterOutcome, err error) {
		if err != nil {
			h.respondError(c, err)
			return
		}
		encounterOutcomesTotal.WithLabelValues(out.Kind).Inc()
		c.JSON(http.StatusOK, out)
	}
}
