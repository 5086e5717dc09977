package mq

import (
	"context"
	"encoding/json"
	"log"

	"savora/rdx"
)

type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}

const channel = "savora:events"

// Emit publishes an entity lifecycle event to the Redis event
// channel. Events are best-effort; a failed publish never fails the
// request that produced it.
func Emit(eventName string, content Index) error {
	if rdx.Conn == nil {
		log.Println(eventName, "emitted (no broker)", content.EntityType, content.EntityId)
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event": eventName,
		"data":  content,
	})
	if err != nil {
		return err
	}

	if err := rdx.Conn.Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("event publish failed: %v", err)
		return err
	}
	return nil
}
