package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an immutable record of one administrative action. An entry
// is durable once written to either audit sink.
type AuditEntry struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Note       string    `json:"note,omitempty"`
	SourceIP   string    `json:"source_ip,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
