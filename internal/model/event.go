package model

import "time"

// Item event types.
const (
	EventTypeCreated = "item.created"
	EventTypeUpdated = "item.updated"
	EventTypeDeleted = "item.deleted"
)

// ItemEvent describes a change to the item collection.
type ItemEvent struct {
	Type      string    `json:"type"`
	ItemID    int64     `json:"item_id,omitempty"`
	Item      *Item     `json:"item,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewItemEvent creates an event of the given type for item.
func NewItemEvent(eventType string, item Item) ItemEvent {
	return ItemEvent{
		Type:      eventType,
		ItemID:    item.ID,
		Item:      &item,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeletedEvent creates an event for a removed item.
func NewDeletedEvent(id int64) ItemEvent {
	return ItemEvent{
		Type:      EventTypeDeleted,
		ItemID:    id,
		Timestamp: time.Now().UTC(),
	}
}
