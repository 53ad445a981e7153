package mq

import (
	"context"
	"encoding/json"
	"log"

	"sabor/rdx"
)

// Channel carries change events to the admin dashboard live feed.
const Channel = "dashboard-events"

// Event is published whenever a reservation or the schedule changes.
type Event struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Emit publishes a dashboard event. Publish failures are logged and never
// fail the operation that produced the event.
func Emit(ctx context.Context, eventType, id string) {
	if rdx.Conn == nil {
		return
	}
	data, err := json.Marshal(Event{Type: eventType, ID: id})
	if err != nil {
		log.Printf("mq: marshal failed: %v", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, Channel, data).Err(); err != nil {
		log.Printf("mq: publish %s failed: %v", eventType, err)
	}
}
