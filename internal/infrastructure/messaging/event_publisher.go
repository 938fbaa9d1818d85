// Package messaging moves domain events between the API and the
// notification worker over RabbitMQ.
package messaging

import (
	"context"
	"time"

	"github.com/oksasatya/go-ddd-content-platform/internal/application"
)

const publishTimeout = 3 * time.Second

// JSONPublisher is satisfied by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// EventPublisher writes each event as one JSON message, typed by event name.
type EventPublisher struct {
	pub JSONPublisher
}

func NewEventPublisher(pub JSONPublisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (p *EventPublisher) Publish(ctx context.Context, e application.Event) error {
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	return p.pub.PublishJSON(c, e.Name, e)
}

var _ application.EventPublisher = (*EventPublisher)(nil)
