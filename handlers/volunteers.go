package handlers

import (
	"errors"
	"net/http"

	"food-rescue-api/repository"

	"github.com/gin-gonic/gin"
)

const volunteerNotFound = "Volunteer not found"

func (h *Handler) ListVolunteers(c *gin.Context) {
	volunteers, err := h.Volunteers.List(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, volunteers)
}

func (h *Handler) GetVolunteer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": volunteerNotFound})
		return
	}
	volunteer, err := h.Volunteers.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusOK, volunteer)
}

func (h *Handler) CreateVolunteer(c *gin.Context) {
	var req VolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	volunteer := req.model()
	if err := h.Volunteers.Create(c.Request.Context(), volunteer); err != nil {
		h.respondError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusCreated, volunteer)
}

// UpdateVolunteer mirrors UpdateDonor; total_hours falls back to zero when omitted.
func (h *Handler) UpdateVolunteer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": volunteerNotFound})
		return
	}
	var req VolunteerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if _, getErr := h.Volunteers.Get(c.Request.Context(), id); errors.Is(getErr, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": volunteerNotFound})
			return
		}
		badRequest(c, err)
		return
	}
	replacement := req.model()
	replacement.TotalHours = req.TotalHours
	volunteer, err := h.Volunteers.Update(c.Request.Context(), id, replacement)
	if err != nil {
		h.respondError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusOK, volunteer)
}

func (h *Handler) DeleteVolunteer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": volunteerNotFound})
		return
	}
	if err := h.Volunteers.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, volunteerNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Volunteer deleted successfully"})
}
