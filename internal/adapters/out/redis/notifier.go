// Package redis publishes invoice events to Redis pub/sub. Downstream
// consumers (dashboards, SSE fan-out) subscribe to the channel; the engine
// itself never reads it back.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"fulfillment/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// DefaultChannel is the pub/sub channel invoice events are published on.
const DefaultChannel = "fulfillment.invoice.events"

// EventNotifier implements ports.EventNotifier on Redis pub/sub.
type EventNotifier struct {
	client  *redis.Client
	channel string
}

// NewEventNotifier creates a notifier publishing on the given channel.
// An empty channel selects DefaultChannel.
func NewEventNotifier(client *redis.Client, channel string) *EventNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &EventNotifier{
		client:  client,
		channel: channel,
	}
}

// Notify publishes the event as JSON. Callers treat failures as
// best-effort: command handlers log and continue.
func (n *EventNotifier) Notify(ctx context.Context, event ports.InvoiceEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal invoice event: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish invoice event: %w", err)
	}
	return nil
}
