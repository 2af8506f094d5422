package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-rescue-api/models"
	"food-rescue-api/password"

	"gorm.io/gorm"
)

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      models.UserRole
}

// UserRepository is the credential store. It only ever inserts and reads.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// NormalizeEmail makes email lookups case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new account with a bcrypt hash of the password.
func (r *UserRepository) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := NormalizeEmail(in.Email)

	var existing int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadyExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	role := models.UserRole(strings.TrimSpace(string(in.Role)))
	if role == "" {
		role = models.DefaultRole
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race with a concurrent registration
		if errors.Is(translate(err), ErrConflict) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Verify returns the account for email when plain matches its stored hash.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (r *UserRepository) Verify(ctx context.Context, email, plain string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		password.CompareDummy(plain)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := password.Compare(user.PasswordHash, plain); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, translate(err))
	}
	return &user, nil
}
