// Package events publishes launch lifecycle notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"launchplane/internal/store"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Event types. Each one is published on the subject of the same name.
const (
	TypeScheduled = "launches.scheduled"
	TypeAborted   = "launches.aborted"
	TypeImported  = "launches.imported"
)

// Event is the JSON payload published for every lifecycle change.
type Event struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	FlightNumber int           `json:"flightNumber,omitempty"`
	Count        int           `json:"count,omitempty"` // Imported launches, for TypeImported
	Launch       *store.Launch `json:"launch,omitempty"`
	OccurredAt   time.Time     `json:"occurredAt"`
}

// New builds an event with a fresh ID and timestamp.
func New(eventType string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. Delivery is best effort; callers log failures
// and carry on because the store is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Noop discards every event. It is used when no NATS URL is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// NATSPublisher publishes events to NATS core subjects.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// Connect dials NATS. Subjects are prefixed with prefix plus a dot when
// prefix is not empty.
func Connect(url, prefix string, logger *slog.Logger) (*NATSPublisher, error) {
	opts := []nats.Option{
		nats.Name("launchplane"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected from NATS", "error", err)
			}
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Subject returns the subject an event type is published on.
func (p *NATSPublisher) Subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := nats.NewMsg(p.Subject(event.Type))
	msg.Data = data
	msg.Header.Set("Event-Id", event.ID)
	if err := p.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
