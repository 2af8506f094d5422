package handlers

import (
	"errors"
	"net/http"

	"food-rescue-api/models"
	"food-rescue-api/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const donationNotFound = "Donation not found"

// ListDonations returns every donation joined with its donor's name and address.
func (h *Handler) ListDonations(c *gin.Context) {
	donations, err := h.Donations.ListWithDonorInfo(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, donations)
}

func (h *Handler) GetDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": donationNotFound})
		return
	}
	donation, err := h.Donations.GetWithDonorInfo(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, donationNotFound)
		return
	}
	c.JSON(http.StatusOK, donation)
}

// CreateDonation records a new offer; status starts as available unless given.
func (h *Handler) CreateDonation(c *gin.Context) {
	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	donation, err := req.model()
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Donations.Create(c.Request.Context(), donation); err != nil {
		h.respondError(c, err, donationNotFound)
		return
	}
	h.logger().Info("donation created",
		zap.Uint("donation_id", donation.DonationID),
		zap.Uint("donor_id", donation.DonorID),
	)
	c.JSON(http.StatusCreated, donation)
}

func (h *Handler) UpdateDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": donationNotFound})
		return
	}
	var req DonationRequest
	err := c.ShouldBindJSON(&req)
	var replacement *models.FoodDonation
	if err == nil {
		replacement, err = req.model()
	}
	if err != nil {
		if _, getErr := h.Donations.Get(c.Request.Context(), id); errors.Is(getErr, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": donationNotFound})
			return
		}
		badRequest(c, err)
		return
	}
	donation, err := h.Donations.Update(c.Request.Context(), id, replacement)
	if err != nil {
		h.respondError(c, err, donationNotFound)
		return
	}
	c.JSON(http.StatusOK, donation)
}

func (h *Handler) DeleteDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": donationNotFound})
		return
	}
	if err := h.Donations.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, donationNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donation deleted successfully"})
}

// DonationStats reports totals and per-status counts across all donations
func (h *Handler) DonationStats(c *gin.Context) {
	stats, err := h.Donations.StatsOverview(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
