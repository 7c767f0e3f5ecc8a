package domain

import "time"

// ClaimStatus enumerates lifecycle states for claims.
type ClaimStatus string

const (
	ClaimStatusSubmitted     ClaimStatus = "submitted"
	ClaimStatusUnderReview   ClaimStatus = "under_review"
	ClaimStatusAssigned      ClaimStatus = "assigned"
	ClaimStatusInvestigating ClaimStatus = "investigating"
	ClaimStatusApproved      ClaimStatus = "approved"
	ClaimStatusRejected      ClaimStatus = "rejected"
	ClaimStatusSettled       ClaimStatus = "settled"
)

// AllClaimStatuses lists every status in lifecycle order. The order is
// load-bearing: action enumeration for administrators follows it.
var AllClaimStatuses = []ClaimStatus{
	ClaimStatusSubmitted,
	ClaimStatusUnderReview,
	ClaimStatusAssigned,
	ClaimStatusInvestigating,
	ClaimStatusApproved,
	ClaimStatusRejected,
	ClaimStatusSettled,
}

// Valid reports whether s is a member of the closed status set.
func (s ClaimStatus) Valid() bool {
	for _, known := range AllClaimStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether s is an end state of the ordinary workflow.
// Administrators may still move claims out of terminal states.
func (s ClaimStatus) Terminal() bool {
	return s == ClaimStatusRejected || s == ClaimStatusSettled
}

// Claim is the aggregate for insurance claims.
type Claim struct {
	ID                  string
	ClaimNumber         string
	PolicyID            string
	CustomerID          string
	AssignedAdjusterID  *string
	Status              ClaimStatus
	IncidentDate        time.Time
	IncidentDescription string
	IncidentLocation    string
	EstimatedDamage     *float64
	ApprovedAmount      *float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
