package handler

import (
	"net/http"
	"time"

	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/model"
	"github.com/Smirnov-studio/property-store/internal/repository"

	"github.com/gin-gonic/gin"
)

// PriceHistoryHandler serves the immutable price-change log of one complex.
type PriceHistoryHandler struct {
	repo repository.PriceHistoryRepository
}

func NewPriceHistoryHandler(repo repository.PriceHistoryRepository) *PriceHistoryHandler {
	return &PriceHistoryHandler{repo: repo}
}

// ListByComplex godoc
// @Summary      Price history of a complex
// @Description  Immutable change log, newest first, joined with the changing user's email.
// @Tags         complexes
// @Param        id path string true "Complex UUID"
// @Success      200 {array} dto.PriceHistoryItem
// @Router       /api/complexes/{id}/price-history [get]
func (h *PriceHistoryHandler) ListByComplex(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.repo.ListByComplex(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]dto.PriceHistoryItem, 0, len(rows))
	for i := range rows {
		items = append(items, historyToDTO(&rows[i]))
	}
	c.JSON(http.StatusOK, items)
}

func historyToDTO(h *model.PriceHistory) dto.PriceHistoryItem {
	item := dto.PriceHistoryItem{
		ID:         h.ID.String(),
		ComplexID:  h.ComplexID.String(),
		OldPrice:   h.OldPrice,
		NewPrice:   h.NewPrice,
		ChangeDate: h.ChangeDate.UTC().Format(time.RFC3339),
	}
	if h.Actor != nil {
		email := h.Actor.Email
		item.ChangedByEmail = &email
	}
	return item
}
