package repository

import (
	"context"
	"fmt"

	"food-rescue-api/models"

	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// List returns the bare donation rows, newest first
func (r *DonationRepository) List(ctx context.Context) ([]models.FoodDonation, error) {
	donations := []models.FoodDonation{}
	if err := r.db.WithContext(ctx).Order("created_at desc, donation_id desc").Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}

func (r *DonationRepository) withDonor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("food_donations").
		Select("food_donations.*, donors.business_name, donors.address").
		Joins("JOIN donors ON donors.donor_id = food_donations.donor_id")
}

// ListWithDonorInfo returns every donation with its donor's business name and address
func (r *DonationRepository) ListWithDonorInfo(ctx context.Context) ([]models.DonationWithDonor, error) {
	rows := []models.DonationWithDonor{}
	err := r.withDonor(ctx).
		Order("food_donations.created_at desc, food_donations.donation_id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list donations with donor: %w", err)
	}
	return rows, nil
}

func (r *DonationRepository) GetWithDonorInfo(ctx context.Context, id uint) (*models.DonationWithDonor, error) {
	var row models.DonationWithDonor
	res := r.withDonor(ctx).Where("food_donations.donation_id = ?", id).Limit(1).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("get donation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("get donation %d: %w", id, ErrNotFound)
	}
	return &row, nil
}

func (r *DonationRepository) Get(ctx context.Context, id uint) (*models.FoodDonation, error) {
	var donation models.FoodDonation
	if err := r.db.WithContext(ctx).First(&donation, id).Error; err != nil {
		return nil, fmt.Errorf("get donation %d: %w", id, translate(err))
	}
	return &donation, nil
}

// Create inserts donation. A missing status defaults to available and an
// unknown donor yields ErrInvalidReference.
func (r *DonationRepository) Create(ctx context.Context, donation *models.FoodDonation) error {
	donation.DonationID = 0
	if donation.Status == "" {
		donation.Status = models.StatusAvailable
	}
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		return fmt.Errorf("create donation: %w", translate(err))
	}
	return nil
}

// Update replaces every editable column. Status changes are unconstrained.
func (r *DonationRepository) Update(ctx context.Context, id uint, donation *models.FoodDonation) (*models.FoodDonation, error) {
	status := donation.Status
	if status == "" {
		status = models.StatusAvailable
	}
	res := r.db.WithContext(ctx).Model(&models.FoodDonation{}).Where("donation_id = ?", id).Updates(map[string]interface{}{
		"donor_id":      donation.DonorID,
		"food_type":     donation.FoodType,
		"quantity_lbs":  donation.QuantityLbs,
		"allergen_info": donation.AllergenInfo,
		"pickup_start":  donation.PickupStart,
		"pickup_end":    donation.PickupEnd,
		"status":        status,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("update donation %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("update donation %d: %w", id, ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *DonationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.FoodDonation{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete donation %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete donation %d: %w", id, ErrNotFound)
	}
	return nil
}

// StatsOverview aggregates counts and pounds over all donations. Every
// figure is zero when the table is empty.
func (r *DonationRepository) StatsOverview(ctx context.Context) (*models.DonationStats, error) {
	var stats models.DonationStats
	err := r.db.WithContext(ctx).Model(&models.FoodDonation{}).Select(
		`COUNT(*) AS total_donations,
		COALESCE(SUM(quantity_lbs), 0) AS total_pounds,
		COUNT(CASE WHEN status = ? THEN 1 END) AS available_donations,
		COUNT(CASE WHEN status = ? THEN 1 END) AS claimed_donations,
		COUNT(CASE WHEN status = ? THEN 1 END) AS completed_donations`,
		string(models.StatusAvailable), string(models.StatusClaimed), string(models.StatusCompleted),
	).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("donation stats: %w", err)
	}
	return &stats, nil
}
