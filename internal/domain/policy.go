package domain

import "time"

// Policy represents the insurance policy a claim is filed against.
type Policy struct {
	ID             string
	PolicyNumber   string
	CustomerID     string
	VehicleMake    string
	VehicleModel   string
	VehicleYear    int
	LicensePlate   string
	CoverageAmount float64
	Active         bool
	CreatedAt      time.Time
}
