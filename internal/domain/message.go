package domain

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// DeliveryStatus tracks whether a locally-appended message has been
// confirmed by the server. Server-loaded history is always delivered.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "pending"
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
)

// Message is a single entry in a chat transcript. IDs are server-assigned
// for persisted messages and locally generated for optimistic ones; once
// appended an ID never changes for the lifetime of the session.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	Status    DeliveryStatus
}
