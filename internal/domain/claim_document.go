package domain

import "time"

// ClaimDocument records metadata for a file attached to a claim. The binary
// itself lives in external storage addressed by StorageKey.
type ClaimDocument struct {
	ID           string
	ClaimID      string
	FileName     string
	ContentType  string
	StorageKey   string
	SizeBytes    int64
	UploadedByID string
	CreatedAt    time.Time
}
