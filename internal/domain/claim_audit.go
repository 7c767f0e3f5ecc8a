package domain

import "time"

// ClaimAudit is an immutable audit trail entry recording one executed
// transition. Entries are append-only and never rewritten.
type ClaimAudit struct {
	ID         string
	ClaimID    string
	ActorID    string
	ActorRole  Role
	FromStatus ClaimStatus
	ToStatus   ClaimStatus
	Payload    map[string]any
	CreatedAt  time.Time
}
