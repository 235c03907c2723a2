package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing game events to the
// chat transport side.
type EventPublisher interface {
	PublishWorldBossSpawned(ctx context.Context, payload WorldBossSpawnedEvent) error
	PublishWorldBossPhase(ctx context.Context, payload WorldBossPhaseEvent) error
	PublishWorldBossDefeated(ctx context.Context, payload WorldBossDefeatedEvent) error
	PublishTitleUnlocked(ctx context.Context, payload TitleUnlockedEvent) error
}

// rabbitMQPublisher implements EventPublisher for RabbitMQ.
type rabbitMQPublisher struct {
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewRabbitMQEventPublisher открывает канал и объявляет topic exchange
// для игровых событий.
func NewRabbitMQEventPublisher(conn *amqp.Connection, exchange string, logger *zap.Logger) (EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("event publisher: не удалось открыть канал: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("event publisher: не удалось объявить exchange '%s': %w", exchange, err)
	}
	return &rabbitMQPublisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger.Named("EventPublisher"),
	}, nil
}

func (p *rabbitMQPublisher) PublishWorldBossSpawned(ctx context.Context, payload WorldBossSpawnedEvent) error {
	return p.publish(ctx, RouteWorldBossSpawned, payload)
}

func (p *rabbitMQPublisher) PublishWorldBossPhase(ctx context.Context, payload WorldBossPhaseEvent) error {
	return p.publish(ctx, RouteWorldBossPhase, payload)
}

func (p *rabbitMQPublisher) PublishWorldBossDefeated(ctx context.Context, payload WorldBossDefeatedEvent) error {
	return p.publish(ctx, RouteWorldBossDefeated, payload)
}

func (p *rabbitMQPublisher) PublishTitleUnlocked(ctx context.Context, payload TitleUnlockedEvent) error {
	return p.publish(ctx, RouteTitleUnlocked, payload)
}

func (p *rabbitMQPublisher) publish(ctx context.Context, routingKey string, payload any) error {
	if p.channel == nil {
		return errors.New("канал RabbitMQ не инициализирован")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события '%s': %w", routingKey, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Попытка публикации с retry до 3 раз
	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			p.exchange,
			routingKey,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "rpg-server",
			},
		)
		if err == nil {
			p.logger.Debug("Event published",
				zap.String("routingKey", routingKey),
				zap.Int("attempt", attempt))
			return nil
		}
		p.logger.Warn("Event publish attempt failed",
			zap.String("routingKey", routingKey),
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	return fmt.Errorf("ошибка публикации события '%s': %w", routingKey, err)
}
