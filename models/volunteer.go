package models

import "time"

type Volunteer struct {
	VolunteerID  uint      `json:"volunteer_id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string    `json:"phone"`
	VehicleType  string    `json:"vehicle_type"`
	Availability string    `json:"availability"`
	TotalHours   float64   `json:"total_hours" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
