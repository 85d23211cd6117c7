package worker

import (
	"context"
	"encoding/json"

	"github.com/Smirnov-studio/property-store/internal/model"
	"github.com/Smirnov-studio/property-store/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CalculationJob is the queue payload for one calculator-history row.
type CalculationJob struct {
	UserID         *string         `json:"user_id"`
	ComplexID      string          `json:"complex_id"`
	Rooms          int             `json:"rooms"`
	Area           decimal.Decimal `json:"area"`
	PricePerSquare decimal.Decimal `json:"price_per_square"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// CalculationWorker persists calculation_history rows dequeued from Redis.
// Failures are logged and dropped — the audit trail is best-effort and the
// originating request has long since been answered.
type CalculationWorker struct {
	repo repository.CalculationRepository
}

func NewCalculationWorker(repo repository.CalculationRepository) *CalculationWorker {
	return &CalculationWorker{repo: repo}
}

func (w *CalculationWorker) Process(ctx context.Context, payload json.RawMessage) {
	var job CalculationJob
	if err := json.Unmarshal(payload, &job); err != nil {
		log.Error().Err(err).Msg("calculation job: bad payload")
		return
	}

	complexID, err := uuid.Parse(job.ComplexID)
	if err != nil {
		log.Error().Str("complex_id", job.ComplexID).Msg("calculation job: bad complex id")
		return
	}

	row := &model.CalculationHistory{
		ComplexID:      complexID,
		Rooms:          job.Rooms,
		Area:           job.Area,
		PricePerSquare: job.PricePerSquare,
		TotalPrice:     job.TotalPrice,
	}
	if job.UserID != nil {
		if uid, err := uuid.Parse(*job.UserID); err == nil {
			row.UserID = &uid
		}
	}

	if err := w.repo.Create(ctx, row); err != nil {
		log.Error().Err(err).Str("complex_id", job.ComplexID).Msg("calculation job: insert failed")
	}
}
