package audit

import (
	"context"
	"time"

	id "partyhub/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing per sink.
type EventCategory string

const (
	// CategoryCompliance covers events with legal or regulatory significance,
	// such as creating or erasing a party record.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to abuse monitoring.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine changes useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	PartyKind string
	PartyID   id.PartyID
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	ClientIP  string
	// UserAgent is a short browser/OS summary, not the raw header.
	UserAgent string
	Reason    string
}

type AuditEvent string

const (
	EventPartyCreated  AuditEvent = "party_created"
	EventPartyUpdated  AuditEvent = "party_updated"
	EventPartyDeleted  AuditEvent = "party_deleted"
	EventEmailConflict AuditEvent = "party_email_conflict"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventPartyCreated:  CategoryCompliance,
	EventPartyDeleted:  CategoryCompliance,
	EventPartyUpdated:  CategoryOperations,
	EventEmailConflict: CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
