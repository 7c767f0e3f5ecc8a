package dto

import (
	"time"

	"github.com/spec-kit/claims-service/internal/domain"
)

// CreateClaimRequest payload.
type CreateClaimRequest struct {
	PolicyID            string    `json:"policy_id"`
	IncidentDate        time.Time `json:"incident_date"`
	IncidentDescription string    `json:"incident_description"`
	IncidentLocation    string    `json:"incident_location"`
	EstimatedDamage     *float64  `json:"estimated_damage"`
}

// TransitionRequest payload for a workflow transition. The supplemental
// fields are required only when the chosen action demands them.
type TransitionRequest struct {
	Target             domain.ClaimStatus `json:"target"`
	AssignedAdjusterID *string            `json:"assigned_adjuster_id"`
	ApprovedAmount     *float64           `json:"approved_amount"`
}

// ClaimSummary response.
type ClaimSummary struct {
	ID                 string             `json:"id"`
	ClaimNumber        string             `json:"claim_number"`
	PolicyID           string             `json:"policy_id"`
	CustomerID         string             `json:"customer_id"`
	AssignedAdjusterID *string            `json:"assigned_adjuster_id"`
	Status             domain.ClaimStatus `json:"status"`
	IncidentDate       time.Time          `json:"incident_date"`
	EstimatedDamage    *float64           `json:"estimated_damage"`
	ApprovedAmount     *float64           `json:"approved_amount"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ClaimDetailResponse provides full claim info.
type ClaimDetailResponse struct {
	ClaimSummary
	IncidentDescription string `json:"incident_description"`
	IncidentLocation    string `json:"incident_location"`
}

// AuditEntryResponse represents one history entry.
type AuditEntryResponse struct {
	ID         string             `json:"id"`
	ActorID    string             `json:"actor_id"`
	ActorRole  domain.Role        `json:"actor_role"`
	FromStatus domain.ClaimStatus `json:"from_status"`
	ToStatus   domain.ClaimStatus `json:"to_status"`
	Payload    map[string]any     `json:"payload,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NoteRequest payload.
type NoteRequest struct {
	Content string `json:"content"`
}

// NoteResponse represents a claim note.
type NoteResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentRequest describes uploaded document metadata.
type DocumentRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// DocumentResponse metadata.
type DocumentResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedByID string    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// PolicyResponse public policy view.
type PolicyResponse struct {
	ID             string    `json:"id"`
	PolicyNumber   string    `json:"policy_number"`
	CustomerID     string    `json:"customer_id"`
	VehicleMake    string    `json:"vehicle_make"`
	VehicleModel   string    `json:"vehicle_model"`
	VehicleYear    int       `json:"vehicle_year"`
	LicensePlate   string    `json:"license_plate"`
	CoverageAmount float64   `json:"coverage_amount"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}
