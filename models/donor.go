package models

import "time"

// Donor is a business that lists food donations. It is unrelated to User accounts.
type Donor struct {
	DonorID        uint      `json:"donor_id" gorm:"primaryKey"`
	BusinessName   string    `json:"business_name" gorm:"not null"`
	BusinessType   string    `json:"business_type"`
	Address        string    `json:"address" gorm:"not null"`
	ContactPerson  string    `json:"contact_person"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone          string    `json:"phone"`
	OperatingHours string    `json:"operating_hours"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}
