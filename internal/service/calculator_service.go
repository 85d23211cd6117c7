package service

import (
	"context"

	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/repository"
	"github.com/Smirnov-studio/property-store/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CalculatorService computes totalPrice = pricePerSquare * area for a complex.
// No rounding is applied — decimal multiplication is exact and the result is
// returned as-is. For authenticated callers a calculation-history job is
// enqueued; that side effect is best-effort and never fails the calculation.
type CalculatorService interface {
	Calculate(ctx context.Context, req dto.CalculateRequest, userID *uuid.UUID) (*dto.CalculateResponse, error)
}

type calculatorService struct {
	repo       repository.ComplexRepository
	dispatcher *worker.Dispatcher // nil in unit tests — history is skipped
}

func NewCalculatorService(repo repository.ComplexRepository, dispatcher *worker.Dispatcher) CalculatorService {
	return &calculatorService{repo: repo, dispatcher: dispatcher}
}

func (s *calculatorService) Calculate(ctx context.Context, req dto.CalculateRequest, userID *uuid.UUID) (*dto.CalculateResponse, error) {
	complexID, err := uuid.Parse(req.ComplexID)
	if err != nil {
		return nil, err
	}

	cx, err := s.repo.FindWithPrice(ctx, complexID)
	if err != nil {
		return nil, err
	}

	total := cx.Price.PricePerSquare.Mul(req.Area)
	resp := &dto.CalculateResponse{
		ComplexName:    cx.Name,
		PricePerSquare: cx.Price.PricePerSquare,
		Area:           req.Area,
		TotalPrice:     total,
		Rooms:          req.Rooms,
	}

	if userID != nil && s.dispatcher != nil {
		uid := userID.String()
		job := worker.CalculationJob{
			UserID:         &uid,
			ComplexID:      complexID.String(),
			Rooms:          req.Rooms,
			Area:           req.Area,
			PricePerSquare: cx.Price.PricePerSquare,
			TotalPrice:     total,
		}
		if err := s.dispatcher.EnqueueCalculation(ctx, job); err != nil {
			log.Warn().Err(err).Str("complex_id", req.ComplexID).Msg("calculation history enqueue failed")
		}
	}

	return resp, nil
}
