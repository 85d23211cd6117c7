package handler

import (
	"errors"
	"net/http"

	"github.com/Smirnov-studio/property-store/internal/apierror"
	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/middleware"
	"github.com/Smirnov-studio/property-store/internal/repository"
	"github.com/Smirnov-studio/property-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplexesHandler struct{ svc service.ComplexService }

func NewComplexesHandler(svc service.ComplexService) *ComplexesHandler {
	return &ComplexesHandler{svc: svc}
}

// List godoc
// @Summary      Catalog of published residential complexes
// @Description  Paginated, filterable by construction stage and price-per-square range. Newest first.
// @Tags         complexes
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Per page (default 10, max 100)"
// @Param        stage    query string false "planning | construction | completed"
// @Param        minPrice query number false "Lower price bound (applied with maxPrice)"
// @Param        maxPrice query number false "Upper price bound (applied with minPrice)"
// @Success      200 {object} dto.ComplexListResponse
// @Failure      400 {object} apierror.ValidationError
// @Router       /api/complexes [get]
func (h *ComplexesHandler) List(c *gin.Context) {
	var filter dto.ComplexFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID GET /api/complexes/:id
func (h *ComplexesHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Complex not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a complex with its price and amenity links (admin)
// @Description  One atomic unit: the complex row, exactly one price row, and a join row per resolved amenity name.
// @Tags         complexes
// @Security     BearerAuth
// @Param        body body dto.ComplexRequest true "Aggregate payload"
// @Success      201 {object} dto.ComplexDetail
// @Failure      400 {object} apierror.ValidationError
// @Router       /api/complexes [post]
func (h *ComplexesHandler) Create(c *gin.Context) {
	var req dto.ComplexRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actorID, ok := actorID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAmenity) {
			c.JSON(http.StatusBadRequest, apierror.NewValidation([]apierror.FieldError{
				{Field: "amenities", Message: err.Error()},
			}))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update PUT /api/complexes/:id
// Price-history append and amenity-link replacement happen inside the same
// transaction as the field update; see ComplexRepository.Update.
func (h *ComplexesHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ComplexRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actorID, ok := actorID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, apierror.New("Complex not found"))
		case errors.Is(err, repository.ErrUnknownAmenity):
			c.JSON(http.StatusBadRequest, apierror.NewValidation([]apierror.FieldError{
				{Field: "amenities", Message: err.Error()},
			}))
		default:
			_ = c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete DELETE /api/complexes/:id
func (h *ComplexesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Complex not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Message: "Complex deleted", ID: id.String()})
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Complex not found"))
		return uuid.Nil, false
	}
	return id, true
}

func actorID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return uuid.Nil, false
	}
	return id, true
}
