package handler

import (
	"errors"
	"net/http"

	"github.com/Smirnov-studio/property-store/internal/apierror"
	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LayoutsHandler struct{ svc service.ComplexService }

func NewLayoutsHandler(svc service.ComplexService) *LayoutsHandler {
	return &LayoutsHandler{svc: svc}
}

// Add POST /api/complexes/:id/layouts
func (h *LayoutsHandler) Add(c *gin.Context) {
	complexID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AddLayoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddLayout(c.Request.Context(), complexID, req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Remove DELETE /api/complexes/:id/layouts/:layoutId
func (h *LayoutsHandler) Remove(c *gin.Context) {
	complexID, ok := parseID(c, "id")
	if !ok {
		return
	}
	layoutID, err := uuid.Parse(c.Param("layoutId"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Layout not found"))
		return
	}
	if err := h.svc.RemoveLayout(c.Request.Context(), complexID, layoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Layout not found"))
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Message: "Layout removed", ID: layoutID.String()})
}
