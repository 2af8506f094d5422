package models

import "time"

// DonationStatus is the lifecycle tag of a food donation. Any status may
// replace any other; there is no enforced ordering.
type DonationStatus string

const (
	StatusAvailable DonationStatus = "available"
	StatusClaimed   DonationStatus = "claimed"
	StatusCompleted DonationStatus = "completed"
)

// DonationStatuses lists every accepted status value
var DonationStatuses = []DonationStatus{StatusAvailable, StatusClaimed, StatusCompleted}

// Valid reports whether s is one of the known statuses
func (s DonationStatus) Valid() bool {
	for _, known := range DonationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type FoodDonation struct {
	DonationID   uint           `json:"donation_id" gorm:"primaryKey"`
	DonorID      uint           `json:"donor_id" gorm:"not null;index"`
	Donor        *Donor         `json:"-" gorm:"constraint:OnUpdate:CASCADE"`
	FoodType     string         `json:"food_type" gorm:"not null"`
	QuantityLbs  float64        `json:"quantity_lbs" gorm:"not null"`
	AllergenInfo string         `json:"allergen_info"`
	PickupStart  *time.Time     `json:"pickup_start"`
	PickupEnd    *time.Time     `json:"pickup_end"`
	Status       DonationStatus `json:"status" gorm:"not null;default:'available';index"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
}

// DonationWithDonor is a donation joined with the listing donor's name and address
type DonationWithDonor struct {
	FoodDonation
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
}

// DonationStats is the dashboard aggregate over all donations
type DonationStats struct {
	TotalDonations     int64   `json:"total_donations"`
	TotalPounds        float64 `json:"total_pounds"`
	AvailableDonations int64   `json:"available_donations"`
	ClaimedDonations   int64   `json:"claimed_donations"`
	CompletedDonations int64   `json:"completed_donations"`
}
