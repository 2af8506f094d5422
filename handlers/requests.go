package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"food-rescue-api/models"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role" binding:"max=50"`
	UserType  string `json:"user_type" binding:"max=50"`
}

// role prefers the explicit role field over the user_type alias.
func (r RegisterRequest) role() models.UserRole {
	if r.Role != "" {
		return models.UserRole(r.Role)
	}
	return models.UserRole(r.UserType)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type DonorRequest struct {
	BusinessName   string `json:"business_name" binding:"required,max=255"`
	BusinessType   string `json:"business_type" binding:"max=100"`
	Address        string `json:"address" binding:"required"`
	ContactPerson  string `json:"contact_person" binding:"max=255"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"max=50"`
	OperatingHours string `json:"operating_hours" binding:"max=255"`
}

func (r DonorRequest) model() *models.Donor {
	return &models.Donor{
		BusinessName:   strings.TrimSpace(r.BusinessName),
		BusinessType:   r.BusinessType,
		Address:        r.Address,
		ContactPerson:  r.ContactPerson,
		Email:          strings.TrimSpace(r.Email),
		Phone:          r.Phone,
		OperatingHours: r.OperatingHours,
	}
}

type VolunteerRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"max=50"`
	VehicleType  string `json:"vehicle_type" binding:"max=50"`
	Availability string `json:"availability" binding:"max=255"`
}

func (r VolunteerRequest) model() *models.Volunteer {
	return &models.Volunteer{
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		Email:        strings.TrimSpace(r.Email),
		Phone:        r.Phone,
		VehicleType:  r.VehicleType,
		Availability: r.Availability,
	}
}

// VolunteerUpdateRequest also carries the logged hours, which only
// change through an edit.
type VolunteerUpdateRequest struct {
	VolunteerRequest
	TotalHours float64 `json:"total_hours" binding:"gte=0"`
}

type DonationRequest struct {
	DonorID      uint       `json:"donor_id" binding:"required,gt=0"`
	FoodType     string     `json:"food_type" binding:"required,max=255"`
	QuantityLbs  float64    `json:"quantity_lbs" binding:"required,gt=0"`
	AllergenInfo string     `json:"allergen_info"`
	PickupStart  *Timestamp `json:"pickup_start"`
	PickupEnd    *Timestamp `json:"pickup_end"`
	Status       string     `json:"status" binding:"omitempty,donation_status"`
}

var errPickupWindow = errors.New("pickup_end must not be before pickup_start")

func (r DonationRequest) model() (*models.FoodDonation, error) {
	start, end := r.PickupStart.timePtr(), r.PickupEnd.timePtr()
	if start != nil && end != nil && end.Before(*start) {
		return nil, errPickupWindow
	}
	return &models.FoodDonation{
		DonorID:      r.DonorID,
		FoodType:     strings.TrimSpace(r.FoodType),
		QuantityLbs:  r.QuantityLbs,
		AllergenInfo: r.AllergenInfo,
		PickupStart:  start,
		PickupEnd:    end,
		Status:       models.DonationStatus(r.Status),
	}, nil
}

var errInvalidTimestamp = errors.New("pickup times must be ISO-8601 timestamps")

// timestampLayouts are tried in order. Values without an offset are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Timestamp accepts RFC 3339 as well as the zone-less form HTML
// datetime-local inputs submit.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errInvalidTimestamp
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return errInvalidTimestamp
}

func (t *Timestamp) timePtr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.UTC()
	return &v
}
