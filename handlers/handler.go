package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"food-rescue-api/models"
	"food-rescue-api/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserStore is the credential store used by the auth endpoints
type UserStore interface {
	Register(ctx context.Context, in repository.RegisterInput) (*models.User, error)
	Verify(ctx context.Context, email, plain string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type DonorStore interface {
	List(ctx context.Context) ([]models.Donor, error)
	Get(ctx context.Context, id uint) (*models.Donor, error)
	Create(ctx context.Context, donor *models.Donor) error
	Update(ctx context.Context, id uint, donor *models.Donor) (*models.Donor, error)
	Delete(ctx context.Context, id uint) error
}

type VolunteerStore interface {
	List(ctx context.Context) ([]models.Volunteer, error)
	Get(ctx context.Context, id uint) (*models.Volunteer, error)
	Create(ctx context.Context, volunteer *models.Volunteer) error
	Update(ctx context.Context, id uint, volunteer *models.Volunteer) (*models.Volunteer, error)
	Delete(ctx context.Context, id uint) error
}

type DonationStore interface {
	ListWithDonorInfo(ctx context.Context) ([]models.DonationWithDonor, error)
	GetWithDonorInfo(ctx context.Context, id uint) (*models.DonationWithDonor, error)
	Get(ctx context.Context, id uint) (*models.FoodDonation, error)
	Create(ctx context.Context, donation *models.FoodDonation) error
	Update(ctx context.Context, id uint, donation *models.FoodDonation) (*models.FoodDonation, error)
	Delete(ctx context.Context, id uint) error
	StatsOverview(ctx context.Context) (*models.DonationStats, error)
}

// TokenIssuer signs bearer tokens for freshly authenticated users
type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

// Handler serves every API endpoint.
type Handler struct {
	Users      UserStore
	Donors     DonorStore
	Volunteers VolunteerStore
	Donations  DonationStore
	Tokens     TokenIssuer
	Logger     *zap.Logger

	// ExposeErrors adds the underlying error text to 500 responses.
	ExposeErrors bool
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.L()
	}
	return h.Logger
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError maps repository failures onto HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, repository.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referenced donor does not exist"})
	case errors.Is(err, repository.ErrInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Donor still has donations and cannot be deleted"})
	default:
		h.serverError(c, err)
	}
}

func (h *Handler) serverError(c *gin.Context, err error) {
	h.logger().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	body := gin.H{"error": "Server error"}
	if h.ExposeErrors {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
}
