package domain

import "time"

// ClaimNote is a free-form comment attached to a claim by any actor with
// access to it.
type ClaimNote struct {
	ID        string
	ClaimID   string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}
