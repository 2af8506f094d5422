package repository

import (
	"context"
	"fmt"

	"food-rescue-api/models"

	"gorm.io/gorm"
)

type VolunteerRepository struct {
	db *gorm.DB
}

func NewVolunteerRepository(db *gorm.DB) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

func (r *VolunteerRepository) List(ctx context.Context) ([]models.Volunteer, error) {
	volunteers := []models.Volunteer{}
	if err := r.db.WithContext(ctx).Order("created_at desc, volunteer_id desc").Find(&volunteers).Error; err != nil {
		return nil, fmt.Errorf("list volunteers: %w", err)
	}
	return volunteers, nil
}

func (r *VolunteerRepository) Get(ctx context.Context, id uint) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := r.db.WithContext(ctx).First(&volunteer, id).Error; err != nil {
		return nil, fmt.Errorf("get volunteer %d: %w", id, translate(err))
	}
	return &volunteer, nil
}

func (r *VolunteerRepository) Create(ctx context.Context, volunteer *models.Volunteer) error {
	volunteer.VolunteerID = 0
	if err := r.db.WithContext(ctx).Create(volunteer).Error; err != nil {
		return fmt.Errorf("create volunteer: %w", translate(err))
	}
	return nil
}

// Update replaces every editable column, total_hours included.
func (r *VolunteerRepository) Update(ctx context.Context, id uint, volunteer *models.Volunteer) (*models.Volunteer, error) {
	res := r.db.WithContext(ctx).Model(&models.Volunteer{}).Where("volunteer_id = ?", id).Updates(map[string]interface{}{
		"first_name":   volunteer.FirstName,
		"last_name":    volunteer.LastName,
		"email":        volunteer.Email,
		"phone":        volunteer.Phone,
		"vehicle_type": volunteer.VehicleType,
		"availability": volunteer.Availability,
		"total_hours":  volunteer.TotalHours,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update volunteer %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update volunteer %d: %w", id, ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *VolunteerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Volunteer{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete volunteer %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete volunteer %d: %w", id, ErrNotFound)
	}
	return nil
}
