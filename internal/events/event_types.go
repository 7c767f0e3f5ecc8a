package events

import (
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClaimCreated          EventType = "claim_created"
	EventClaimStatusChanged    EventType = "claim_status_changed"
	EventClaimNoteAdded        EventType = "claim_note_added"
	EventClaimDocumentUploaded EventType = "claim_document_uploaded"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ClaimID   string      `json:"claim_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ClaimCreatedPayload payload.
type ClaimCreatedPayload struct {
	ClaimNumber string    `json:"claim_number"`
	PolicyID    string    `json:"policy_id"`
	CustomerID  string    `json:"customer_id"`
	IncidentAt  time.Time `json:"incident_at"`
}

// ClaimStatusChangedPayload payload.
type ClaimStatusChangedPayload struct {
	FromStatus         domain.ClaimStatus `json:"from_status"`
	ToStatus           domain.ClaimStatus `json:"to_status"`
	AssignedAdjusterID *string            `json:"assigned_adjuster_id,omitempty"`
	ApprovedAmount     *float64           `json:"approved_amount,omitempty"`
}

// ClaimNoteAddedPayload payload.
type ClaimNoteAddedPayload struct {
	NoteID         string `json:"note_id"`
	ContentPreview string `json:"content_preview"`
}

// ClaimDocumentUploadedPayload payload.
type ClaimDocumentUploadedPayload struct {
	DocumentID string `json:"document_id"`
	FileName   string `json:"file_name"`
	SizeBytes  int64  `json:"size_bytes"`
}
