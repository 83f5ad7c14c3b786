package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"creatorhub_backend/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Ключи маршрутизации доменных событий
const (
	ReviewCreated        = "review.created"
	CreatorStatusChanged = "creator.status_changed"
	CreatorRemoved       = "creator.removed"
)

// Publisher публикует доменные события после фиксации транзакции
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// AMQPPublisher публикует JSON в topic exchange RabbitMQ
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex // amqp.Channel не потокобезопасен для publish
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         b,
	})
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Message - событие, сохраненное MemoryPublisher
type Message struct {
	Key     string
	Payload any
}

// MemoryPublisher хранит события в памяти (без брокера и в тестах)
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, Message{Key: key, Payload: payload})
	return nil
}

func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}

func (p *MemoryPublisher) Close() error { return nil }

// NoopPublisher отбрасывает события, когда брокер не настроен
type NoopPublisher struct{}

func NewNoopPublisher() NoopPublisher { return NoopPublisher{} }

func (NoopPublisher) Publish(ctx context.Context, key string, _ any) error {
	logger.CtxDebug(ctx, "Event dropped, no broker configured", "key", key)
	return nil
}

func (NoopPublisher) Close() error { return nil }
