package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/handler"
	"github.com/Smirnov-studio/property-store/internal/middleware"
	"github.com/Smirnov-studio/property-store/internal/repository"
	"github.com/Smirnov-studio/property-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calculatorRouter(repo repository.ComplexRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := service.NewCalculatorService(repo, nil)
	h := handler.NewCalculatorHandler(svc)
	r.POST("/api/complexes/calculate", middleware.OptionalJWTAuth(testSecret), h.Calculate)
	return r
}

func seedPricedComplex(t *testing.T, repo *stubComplexRepo, price int64) string {
	t.Helper()
	cx, err := repo.Create(context.Background(), repository.ComplexWrite{
		Name:              "Riverside Towers",
		Description:       "Two towers",
		Location:          "Moscow",
		ConstructionStage: "construction",
		PricePerSquare:    decimal.NewFromInt(price),
	}, uuid.New())
	require.NoError(t, err)
	return cx.ID.String()
}

func TestCalculate_ExactTotal(t *testing.T) {
	repo := newStubComplexRepo(false)
	id := seedPricedComplex(t, repo, 120000)
	r := calculatorRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/complexes/calculate", map[string]any{
		"complexId": id, "rooms": 2, "area": 65,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Riverside Towers", resp.ComplexName)
	assert.Equal(t, 2, resp.Rooms)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(7800000)),
		"120000 * 65 must be exact, got %s", resp.TotalPrice)
}

func TestCalculate_FractionalAreaNoRounding(t *testing.T) {
	repo := newStubComplexRepo(false)
	id := seedPricedComplex(t, repo, 120000)
	r := calculatorRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/complexes/calculate", map[string]any{
		"complexId": id, "rooms": 1, "area": 37.35,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("4482000")),
		"got %s", resp.TotalPrice)
}

func TestCalculate_UnknownComplex(t *testing.T) {
	repo := newStubComplexRepo(false)
	r := calculatorRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/complexes/calculate", map[string]any{
		"complexId": uuid.NewString(), "rooms": 2, "area": 65,
	}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Complex not found", resp["error"])
}

func TestCalculate_ValidationErrors(t *testing.T) {
	repo := newStubComplexRepo(false)
	r := calculatorRouter(repo)

	for name, body := range map[string]map[string]any{
		"missing complexId": {"rooms": 2, "area": 65},
		"bad uuid":          {"complexId": "nope", "rooms": 2, "area": 65},
		"zero rooms":        {"complexId": uuid.NewString(), "rooms": 0, "area": 65},
		"zero area":         {"complexId": uuid.NewString(), "rooms": 2, "area": 0},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/complexes/calculate", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCalculate_MalformedTokenStillAnswers(t *testing.T) {
	repo := newStubComplexRepo(false)
	id := seedPricedComplex(t, repo, 100000)
	r := calculatorRouter(repo)

	// Identity only gates the history side effect, never the calculation.
	w := doJSON(t, r, http.MethodPost, "/api/complexes/calculate", map[string]any{
		"complexId": id, "rooms": 3, "area": 80,
	}, "garbage-token")
	assert.Equal(t, http.StatusOK, w.Code)
}
