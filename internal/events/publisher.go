package events

import (
	"encoding/json"
	"fmt"
	"log"

	"socialnet/internal/config"
)

// Publisher sends domain events. Delivery is fire-and-forget: callers log
// failures and carry on.
type Publisher interface {
	Publish(subject string, event any) error
	Close()
}

type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type EventPublisher struct {
	conn conn
}

func NewEventPublisher(c conn) *EventPublisher {
	return &EventPublisher{conn: c}
}

// NewPublisher connects to NATS when NATS_URL is set and falls back to a
// publisher that drops every event.
func NewPublisher(cfg config.NATS) (Publisher, error) {
	if cfg.URL == "" {
		log.Println("NATS_URL не задан, публикация событий отключена")
		return NopPublisher{}, nil
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	log.Printf("NATS подключен: %s", cfg.URL)
	return NewEventPublisher(client), nil
}

func (p *EventPublisher) Publish(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка сериализации события %s: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("ошибка публикации события %s: %w", subject, err)
	}

	return nil
}

func (p *EventPublisher) Close() {
	p.conn.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(string, any) error { return nil }

func (NopPublisher) Close() {}
