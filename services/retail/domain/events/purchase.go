package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicPurchaseRecorded is the Watermill topic published when a purchase is
// committed.
const TopicPurchaseRecorded = "purchase.recorded"

// PurchaseRecordedEvent is published in the same transaction that persists a
// purchase, so it exists if and only if the purchase does.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicPurchaseRecorded).
type PurchaseRecordedEvent struct {
	EventID    uuid.UUID   `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int         `json:"version"`  // Schema version; increment on breaking changes
	PurchaseID int64       `json:"purchase_id"`
	CustomerID int64       `json:"customer_id"`
	Lines      []EventLine `json:"lines"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// EventLine mirrors a persisted line item in the event payload.
type EventLine struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
}
