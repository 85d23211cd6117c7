package handler

import (
	"net/http"

	"github.com/Smirnov-studio/property-store/internal/repository"

	"github.com/gin-gonic/gin"
)

// AmenitiesHandler exposes the seeded amenity names the catalog filter and
// the admin form draw from.
type AmenitiesHandler struct {
	repo repository.AmenityRepository
}

func NewAmenitiesHandler(repo repository.AmenityRepository) *AmenitiesHandler {
	return &AmenitiesHandler{repo: repo}
}

// List GET /api/amenities
func (h *AmenitiesHandler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	names := make([]string, 0, len(rows))
	for _, a := range rows {
		names = append(names, a.Name)
	}
	c.JSON(http.StatusOK, gin.H{"amenities": names})
}
