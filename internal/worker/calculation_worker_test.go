package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Smirnov-studio/property-store/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCalculationRepo struct {
	rows []*model.CalculationHistory
	err  error
}

func (s *stubCalculationRepo) Create(_ context.Context, c *model.CalculationHistory) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, c)
	return nil
}

func calcPayload(t *testing.T, job CalculationJob) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestCalculationWorker_InsertsRow(t *testing.T) {
	repo := &stubCalculationRepo{}
	w := NewCalculationWorker(repo)
	userID := uuid.NewString()
	complexID := uuid.New()

	w.Process(context.Background(), calcPayload(t, CalculationJob{
		UserID:         &userID,
		ComplexID:      complexID.String(),
		Rooms:          2,
		Area:           decimal.RequireFromString("65"),
		PricePerSquare: decimal.RequireFromString("120000"),
		TotalPrice:     decimal.RequireFromString("7800000"),
	}))

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, complexID, row.ComplexID)
	require.NotNil(t, row.UserID)
	assert.Equal(t, userID, row.UserID.String())
	assert.Equal(t, 2, row.Rooms)
	assert.True(t, row.TotalPrice.Equal(decimal.RequireFromString("7800000")))
}

func TestCalculationWorker_MissingUserIDStillInserts(t *testing.T) {
	repo := &stubCalculationRepo{}
	w := NewCalculationWorker(repo)

	w.Process(context.Background(), calcPayload(t, CalculationJob{
		ComplexID:      uuid.NewString(),
		Rooms:          1,
		Area:           decimal.RequireFromString("40"),
		PricePerSquare: decimal.RequireFromString("100000"),
		TotalPrice:     decimal.RequireFromString("4000000"),
	}))

	require.Len(t, repo.rows, 1)
	assert.Nil(t, repo.rows[0].UserID)
}

func TestCalculationWorker_BadPayloadDropped(t *testing.T) {
	repo := &stubCalculationRepo{}
	w := NewCalculationWorker(repo)

	w.Process(context.Background(), json.RawMessage(`{not json`))
	assert.Empty(t, repo.rows)
}

func TestCalculationWorker_BadComplexIDDropped(t *testing.T) {
	repo := &stubCalculationRepo{}
	w := NewCalculationWorker(repo)

	w.Process(context.Background(), calcPayload(t, CalculationJob{
		ComplexID: "not-a-uuid",
		Rooms:     1,
		Area:      decimal.RequireFromString("40"),
	}))
	assert.Empty(t, repo.rows)
}

func TestCalculationWorker_InsertFailureIsSwallowed(t *testing.T) {
	repo := &stubCalculationRepo{err: errors.New("db down")}
	w := NewCalculationWorker(repo)

	// Must not panic or retry — the audit row is best-effort.
	w.Process(context.Background(), calcPayload(t, CalculationJob{
		ComplexID: uuid.NewString(),
		Rooms:     3,
		Area:      decimal.RequireFromString("80"),
	}))
	assert.Empty(t, repo.rows)
}

func TestProcessJob_DispatchesByType(t *testing.T) {
	repo := &stubCalculationRepo{}
	handlers := &Handlers{Calculation: NewCalculationWorker(repo)}

	payload := calcPayload(t, CalculationJob{
		ComplexID: uuid.NewString(),
		Rooms:     2,
		Area:      decimal.RequireFromString("50"),
	})
	job, err := json.Marshal(Job{Type: "calculation", Payload: payload})
	require.NoError(t, err)

	processJob(context.Background(), handlers, QueueCalculations, string(job))
	assert.Len(t, repo.rows, 1)

	// Unknown types and garbage envelopes are dropped, never processed.
	unknown, err := json.Marshal(Job{Type: "mystery", Payload: payload})
	require.NoError(t, err)
	processJob(context.Background(), handlers, QueueCalculations, string(unknown))
	processJob(context.Background(), handlers, QueueCalculations, "{broken")
	assert.Len(t, repo.rows, 1)
}
