package narrative

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Generator выдает короткие художественные вставки для игровых событий.
// Любая ошибка генерации прозрачно заменяется заготовленной фразой:
// бой никогда не ждет нарратив и никогда не падает из-за него.
type Generator interface {
	DungeonRoom(ctx context.Context, dungeonName string, floor int, roomType, monster, playerName, playerClass string) string
	MonsterIntro(ctx context.Context, monsterName, grade string, floor int) string
	BossIntro(ctx context.Context, bossName, playerName string) string
	Victory(ctx context.Context, playerName, monsterName, loot string) string
	Death(ctx context.Context, playerName, killerName string, floor int) string
	LevelUp(ctx context.Context, playerName string, newLevel int, newRank string) string
	ExploreEvent(ctx context.Context, region, playerName, eventType string) string
}

// Config настраивает клиент генерации.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type client struct {
	openaiClient *openai.Client
	model        string
	timeout      time.Duration
	logger       *zap.Logger
}

// NewClient создает генератор нарратива поверх OpenAI-совместимого API.
// С пустым ключом генератор сразу работает в режиме заготовок.
func NewClient(cfg Config, logger *zap.Logger) Generator {
	var oc *openai.Client
	if cfg.APIKey != "" {
		config := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			config.BaseURL = cfg.BaseURL
		}
		config.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		oc = openai.NewClientWithConfig(config)
	}
	return &client{
		openaiClient: oc,
		model:        cfg.Model,
		timeout:      cfg.Timeout,
		logger:       logger.Named("Narrative"),
	}
}

// ask выполняет один запрос. Пустая строка означает "возьми заготовку".
func (c *client) ask(ctx context.Context, prompt string) string {
	if c.openaiClient == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.logger.Warn("Narrative generation failed, using fallback", zap.Error(err))
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func (c *client) DungeonRoom(ctx context.Context, dungeonName string, floor int, roomType, monster, playerName, playerClass string) string {
	prompt := fmt.Sprintf(`You are a dark fantasy dungeon master narrator for a chat RPG.
Write a SHORT atmospheric dungeon room description (max 4 lines).
Keep it dramatic and immersive.
Dungeon: %s, Floor: %d/100, Room type: %s
Monster: %s, Player: %s (%s)
Write ONLY the narrative.`, dungeonName, floor, roomType, monster, playerName, playerClass)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return fmt.Sprintf("The darkness thickens on Floor %d... Something lurks ahead.", floor)
}

func (c *client) MonsterIntro(ctx context.Context, monsterName, grade string, floor int) string {
	prompt := fmt.Sprintf(`Dark fantasy monster dialogue for a chat RPG.
ONE menacing line spoken by %s (Grade %s, Floor %d).
Write ONLY the monster's dialogue.`, monsterName, grade, floor)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return `"You dare enter my domain?!"`
}

func (c *client) BossIntro(ctx context.Context, bossName, playerName string) string {
	prompt := fmt.Sprintf(`Dark fantasy boss encounter for a chat RPG (max 5 lines).
Boss: %s, Player: %s
Make it epic and terrifying. Write ONLY the narrative.`, bossName, playerName)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return fmt.Sprintf("THE GROUND TREMBLES. %s AWAKENS!", strings.ToUpper(bossName))
}

func (c *client) Victory(ctx context.Context, playerName, monsterName, loot string) string {
	prompt := fmt.Sprintf("Dark fantasy RPG victory (2-3 lines). %s defeated %s. Loot: %s. Write ONLY the narrative.", playerName, monsterName, loot)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return fmt.Sprintf("%s stands victorious!", playerName)
}

func (c *client) Death(ctx context.Context, playerName, killerName string, floor int) string {
	prompt := fmt.Sprintf("Dark fantasy RPG death (2-3 lines). %s defeated by %s on floor %d. Write ONLY the narrative.", playerName, killerName, floor)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return fmt.Sprintf("%s has fallen... Darkness claims another soul.", playerName)
}

func (c *client) LevelUp(ctx context.Context, playerName string, newLevel int, newRank string) string {
	prompt := fmt.Sprintf("Dark fantasy RPG level up (3 lines max). Player: %s, Level: %d, Rank: %s. Write ONLY the narrative.", playerName, newLevel, newRank)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return fmt.Sprintf("%s grows stronger!", playerName)
}

func (c *client) ExploreEvent(ctx context.Context, region, playerName, eventType string) string {
	prompt := fmt.Sprintf("Dark fantasy RPG exploration event (3-4 lines). Region: %s, Player: %s, Event: %s. Write ONLY the event.", region, playerName, eventType)
	if out := c.ask(ctx, prompt); out != "" {
		return out
	}
	return "The mist rolls in as you venture deeper..."
}
