package repository

import (
	"context"
	"errors"
	"fmt"

	"food-rescue-api/models"

	"gorm.io/gorm"
)

type DonorRepository struct {
	db *gorm.DB
}

func NewDonorRepository(db *gorm.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

// List returns every donor, newest first
func (r *DonorRepository) List(ctx context.Context) ([]models.Donor, error) {
	donors := []models.Donor{}
	if err := r.db.WithContext(ctx).Order("created_at desc, donor_id desc").Find(&donors).Error; err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	return donors, nil
}

func (r *DonorRepository) Get(ctx context.Context, id uint) (*models.Donor, error) {
	var donor models.Donor
	if err := r.db.WithContext(ctx).First(&donor, id).Error; err != nil {
		return nil, fmt.Errorf("get donor %d: %w", id, translate(err))
	}
	return &donor, nil
}

// Create inserts donor; the id and creation time are assigned by the store.
func (r *DonorRepository) Create(ctx context.Context, donor *models.Donor) error {
	donor.DonorID = 0
	if err := r.db.WithContext(ctx).Create(donor).Error; err != nil {
		return fmt.Errorf("create donor: %w", translate(err))
	}
	return nil
}

// Update replaces every editable column of donor id with the values in donor.
func (r *DonorRepository) Update(ctx context.Context, id uint, donor *models.Donor) (*models.Donor, error) {
	res := r.db.WithContext(ctx).Model(&models.Donor{}).Where("donor_id = ?", id).Updates(map[string]interface{}{
		"business_name":   donor.BusinessName,
		"business_type":   donor.BusinessType,
		"address":         donor.Address,
		"contact_person":  donor.ContactPerson,
		"email":           donor.Email,
		"phone":           donor.Phone,
		"operating_hours": donor.OperatingHours,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update donor %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update donor %d: %w", id, ErrNotFound)
	}
	return r.Get(ctx, id)
}

// Delete removes donor id. Donors that still have donations are kept and
// ErrInUse is returned.
func (r *DonorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Donor{}, id)
	if res.Error != nil {
		err := translate(res.Error)
		if errors.Is(err, ErrInvalidReference) {
			err = ErrInUse
		}
		return fmt.Errorf("delete donor %d: %w", id, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete donor %d: %w", id, ErrNotFound)
	}
	return nil
}
