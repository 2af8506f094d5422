package handlers

import (
	"errors"
	"net/http"

	"food-rescue-api/repository"

	"github.com/gin-gonic/gin"
)

const donorNotFound = "Donor not found"

func (h *Handler) ListDonors(c *gin.Context) {
	donors, err := h.Donors.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, donors)
}

func (h *Handler) GetDonor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": donorNotFound})
		return
	}
	donor, err := h.Donors.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, donorNotFound)
		return
	}
	c.JSON(http.StatusOK, donor)
}

func (h *Handler) CreateDonor(c *gin.Context) {
	var req DonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	donor := req.model()
	if err := h.Donors.Create(c.Request.Context(), donor); err != nil {
		h.respondError(c, err, donorNotFound)
		return
	}
	c.JSON(http.StatusCreated, donor)
}

// UpdateDonor replaces a donor record. An unknown id is reported as 404
// even when the body would not validate.
func (h *Handler) UpdateDonor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": donorNotFound})
		return
	}
	var req DonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, getErr := h.Donors.Get(c.Request.Context(), id); errors.Is(getErr, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": donorNotFound})
			return
		}
		badRequest(c, err)
		return
	}
	donor, err := h.Donors.Update(c.Request.Context(), id, req.model())
	if err != nil {
		h.respondError(c, err, donorNotFound)
		return
	}
	c.JSON(http.StatusOK, donor)
}

func (h *Handler) DeleteDonor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": donorNotFound})
		return
	}
	if err := h.Donors.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, donorNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donor deleted successfully"})
}
