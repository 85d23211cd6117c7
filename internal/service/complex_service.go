package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/Smirnov-studio/property-store/internal/dto"
	"github.com/Smirnov-studio/property-store/internal/model"
	"github.com/Smirnov-studio/property-store/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const detailCachePrefix = "complex:"

// ComplexService orchestrates the catalog: DTO shaping, filter parsing, and
// the Redis read-through cache for the public detail endpoint.
type ComplexService interface {
	Create(ctx context.Context, req dto.ComplexRequest, actorID uuid.UUID) (*dto.ComplexDetail, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ComplexRequest, actorID uuid.UUID) (*dto.ComplexDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ComplexDetail, error)
	List(ctx context.Context, f dto.ComplexFilter) (*dto.ComplexListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddLayout(ctx context.Context, complexID uuid.UUID, req dto.AddLayoutRequest) (*dto.LayoutResponse, error)
	RemoveLayout(ctx context.Context, complexID, layoutID uuid.UUID) error
}

type complexService struct {
	repo     repository.ComplexRepository
	rdb      *redis.Client // nil in unit tests — cache is skipped
	cacheTTL time.Duration
}

func NewComplexService(repo repository.ComplexRepository, rdb *redis.Client, cacheTTL time.Duration) ComplexService {
	return &complexService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *complexService) Create(ctx context.Context, req dto.ComplexRequest, actorID uuid.UUID) (*dto.ComplexDetail, error) {
	data, err := toWrite(req)
	if err != nil {
		return nil, err
	}
	cx, err := s.repo.Create(ctx, data, actorID)
	if err != nil {
		return nil, err
	}
	// Read the committed aggregate back so the response carries resolved
	// amenities rather than the raw request list.
	full, err := s.repo.FindByID(ctx, cx.ID)
	if err != nil {
		return nil, err
	}
	detail := toDetail(full)
	return &detail, nil
}

func (s *complexService) Update(ctx context.Context, id uuid.UUID, req dto.ComplexRequest, actorID uuid.UUID) (*dto.ComplexDetail, error) {
	data, err := toWrite(req)
	if err != nil {
		return nil, err
	}
	cx, err := s.repo.Update(ctx, id, data, actorID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	detail := toDetail(cx)
	return &detail, nil
}

func (s *complexService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ComplexDetail, error) {
	cacheKey := detailCachePrefix + id.String()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var detail dto.ComplexDetail
			if jsonErr := json.Unmarshal(cached, &detail); jsonErr == nil {
				return &detail, nil
			}
		}
	}

	cx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := toDetail(cx)

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(detail); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, s.cacheTTL).Err()
		}
	}
	return &detail, nil
}

func (s *complexService) List(ctx context.Context, f dto.ComplexFilter) (*dto.ComplexListResponse, error) {
	q := repository.ComplexListQuery{
		Stage: f.Stage,
		Page:  f.Page,
		Limit: f.Limit,
	}
	// Range filter applies only with both bounds present.
	if f.MinPrice != "" && f.MaxPrice != "" {
		minP, err := decimal.NewFromString(f.MinPrice)
		if err != nil {
			return nil, err
		}
		maxP, err := decimal.NewFromString(f.MaxPrice)
		if err != nil {
			return nil, err
		}
		q.MinPrice = &minP
		q.MaxPrice = &maxP
	}

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	complexes := make([]dto.ComplexSummary, 0, len(rows))
	for i := range rows {
		complexes = append(complexes, toSummary(&rows[i]))
	}
	return &dto.ComplexListResponse{
		Complexes: complexes,
		Pagination: dto.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}

func (s *complexService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *complexService) AddLayout(ctx context.Context, complexID uuid.UUID, req dto.AddLayoutRequest) (*dto.LayoutResponse, error) {
	features := req.Features
	if len(features) == 0 {
		features = json.RawMessage(`{}`)
	}
	l := &model.ApartmentLayout{
		ComplexID:       complexID,
		Rooms:           req.Rooms,
		Area:            req.Area,
		TotalApartments: req.TotalApartments,
		Features:        features,
	}
	if err := s.repo.AddLayout(ctx, l); err != nil {
		return nil, err
	}
	s.invalidate(ctx, complexID)
	resp := layoutToDTO(l)
	return &resp, nil
}

func (s *complexService) RemoveLayout(ctx context.Context, complexID, layoutID uuid.UUID) error {
	if err := s.repo.RemoveLayout(ctx, layoutID); err != nil {
		return err
	}
	s.invalidate(ctx, complexID)
	return nil
}

func (s *complexService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, detailCachePrefix+id.String()).Err(); err != nil {
		log.Warn().Err(err).Str("complex_id", id.String()).Msg("detail cache invalidation failed")
	}
}

// ─── DTO mapping ─────────────────────────────────────────────────────────────

func toWrite(req dto.ComplexRequest) (repository.ComplexWrite, error) {
	data := repository.ComplexWrite{
		Name:              req.Name,
		Description:       req.Description,
		Location:          req.Location,
		Address:           req.Address,
		Developer:         req.Developer,
		ConstructionStage: req.ConstructionStage,
		PricePerSquare:    req.PricePerSquare,
		Amenities:         req.Amenities,
	}
	if req.DeliveryDate != nil {
		d, err := time.Parse("2006-01-02", *req.DeliveryDate)
		if err != nil {
			return data, err
		}
		data.DeliveryDate = &d
	}
	return data, nil
}

func toSummary(cx *model.Complex) dto.ComplexSummary {
	s := dto.ComplexSummary{
		ID:                cx.ID.String(),
		Name:              cx.Name,
		Description:       cx.Description,
		Location:          cx.Location,
		Address:           cx.Address,
		Developer:         cx.Developer,
		ConstructionStage: cx.ConstructionStage,
		Amenities:         make([]string, 0, len(cx.Amenities)),
		LayoutsCount:      len(cx.Layouts),
		CreatedAt:         cx.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         cx.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if cx.DeliveryDate != nil {
		d := cx.DeliveryDate.Format("2006-01-02")
		s.DeliveryDate = &d
	}
	if cx.Price != nil {
		p := cx.Price.PricePerSquare
		s.PricePerSquare = &p
	}
	for _, a := range cx.Amenities {
		s.Amenities = append(s.Amenities, a.Name)
	}
	return s
}

func toDetail(cx *model.Complex) dto.ComplexDetail {
	d := dto.ComplexDetail{
		ComplexSummary: toSummary(cx),
		Layouts:        make([]dto.LayoutResponse, 0, len(cx.Layouts)),
	}
	for i := range cx.Layouts {
		d.Layouts = append(d.Layouts, layoutToDTO(&cx.Layouts[i]))
	}
	return d
}

func layoutToDTO(l *model.ApartmentLayout) dto.LayoutResponse {
	return dto.LayoutResponse{
		ID:              l.ID.String(),
		ComplexID:       l.ComplexID.String(),
		Rooms:           l.Rooms,
		Area:            l.Area,
		TotalApartments: l.TotalApartments,
		Features:        l.Features,
	}
}
