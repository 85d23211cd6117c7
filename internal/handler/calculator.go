package handler

import (
	"errors"
	"net/http"

	"github.com/Smirnov-studio/property-store/internal/apierror"
	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/middleware"
	"github.com/Smirnov-studio/property-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalculatorHandler struct{ svc service.CalculatorService }

func NewCalculatorHandler(svc service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{svc: svc}
}

// Calculate godoc
// @Summary      Price calculation for a complex
// @Description  totalPrice = pricePerSquare * area. Authenticated callers get a calculation-history record as a best-effort side effect.
// @Tags         calculator
// @Param        body body dto.CalculateRequest true "complexId, rooms, area"
// @Success      200 {object} dto.CalculateResponse
// @Failure      404 {object} apierror.APIError
// @Router       /api/complexes/calculate [post]
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	// Anonymous callers get the result too — only the history write needs identity.
	var userID *uuid.UUID
	if claims := middleware.GetOptionalClaims(c); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			userID = &id
		}
	}

	resp, err := h.svc.Calculate(c.Request.Context(), req, userID)
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
