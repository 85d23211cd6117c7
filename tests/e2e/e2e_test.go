//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - admin creates a complex, the public catalog serves it back with price
//     and resolved amenities
//   - a price update appends exactly one price-history row; a no-op update
//     appends none
//   - anonymous price calculation returns the exact decimal product
//   - an authenticated calculation lands a calculation_history row through
//     the Redis queue and worker pool
//   - unknown ids come back as clean 404s

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Smirnov-studio/property-store/internal/config"
	"github.com/Smirnov-studio/property-store/internal/infra"
	"github.com/Smirnov-studio/property-store/internal/repository"
	"github.com/Smirnov-studio/property-store/internal/router"
	"github.com/Smirnov-studio/property-store/internal/worker"

	"gorm.io/gorm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// assertDecimal compares numerically — numeric(12,2) columns read back with
// trailing zeros ("120000.00"), which string equality would reject.
func assertDecimal(t *testing.T, want, got string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	g := decimal.RequireFromString(got)
	assert.True(t, w.Equal(g), "want %s, got %s", want, got)
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	db     *gorm.DB
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("property_test"),
		tcPostgres.WithUsername("property"),
		tcPostgres.WithPassword("property"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               3001,
		Env:                "test",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "e2e-test-secret",
		JWTExpirationDays:  7,
		AmenityPolicy:      "skip",
		DetailCacheTTLMins: 1,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed an admin (register grants only the user role).
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	require.NoError(t, err)
	err = db.Exec(`INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active, created_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', ?, 'Admin', 'E2E', 'admin', true, NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error
	require.NoError(t, err)

	// Drain the calculation-history queue like cmd/server does.
	workerCtx, workerCancel := context.WithCancel(ctx)
	t.Cleanup(workerCancel)
	worker.StartWorkerPool(workerCtx, rdb, &worker.Handlers{
		Calculation: worker.NewCalculationWorker(repository.NewCalculationRepository(db)),
	}, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "admin123"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		Token string `json:"token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.Token)

	return &testEnv{server: srv, token: loginBody.Token, db: db}
}

func createComplex(t *testing.T, env *testEnv, price float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/complexes",
		jsonBody(t, map[string]any{
			"name":              "Riverside Towers",
			"description":       "Two 24-floor towers on the embankment",
			"location":          "Moscow",
			"address":           "Naberezhnaya st. 10",
			"developer":         "Stroyinvest",
			"constructionStage": "construction",
			"deliveryDate":      "2027-06-30",
			"pricePerSquare":    price,
			// "parking" repeated on purpose: it must collapse to one link
			"amenities": []string{"parking", "parking", "playground"},
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.ID)
	return body.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CreateAndReadBack(t *testing.T) {
	env := setupTestEnv(t)
	id := createComplex(t, env, 120000)

	resp := do(t, env.server, "GET", "/api/complexes/"+id, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Name           string   `json:"name"`
		PricePerSquare string   `json:"pricePerSquare"`
		Amenities      []string `json:"amenities"`
		DeliveryDate   string   `json:"deliveryDate"`
	}
	decodeJSON(t, resp, &detail)
	assert.Equal(t, "Riverside Towers", detail.Name)
	assertDecimal(t, "120000", detail.PricePerSquare)
	assert.ElementsMatch(t, []string{"parking", "playground"}, detail.Amenities)
	assert.Equal(t, "2027-06-30", detail.DeliveryDate)

	// And it shows up in the public catalog.
	listResp := do(t, env.server, "GET", "/api/complexes", nil, "")
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Complexes []struct {
			ID string `json:"id"`
		} `json:"complexes"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	decodeJSON(t, listResp, &list)
	require.Equal(t, int64(1), list.Pagination.Total)
	assert.Equal(t, id, list.Complexes[0].ID)
}

func TestE2E_PriceHistoryOnUpdate(t *testing.T) {
	env := setupTestEnv(t)
	id := createComplex(t, env, 120000)

	update := func(price float64) *http.Response {
		return do(t, env.server, "PUT", "/api/complexes/"+id,
			jsonBody(t, map[string]any{
				"name":              "Riverside Towers",
				"description":       "Two 24-floor towers on the embankment",
				"location":          "Moscow",
				"constructionStage": "construction",
				"pricePerSquare":    price,
				"amenities":         []string{"parking"},
			}),
			env.token,
		)
	}

	// Change 120000 → 135000: exactly one history row.
	resp := update(135000)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	histResp := do(t, env.server, "GET", "/api/complexes/"+id+"/price-history", nil, "")
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var hist []struct {
		OldPrice       string  `json:"oldPrice"`
		NewPrice       string  `json:"newPrice"`
		ChangedByEmail *string `json:"changedByEmail"`
	}
	decodeJSON(t, histResp, &hist)
	require.Len(t, hist, 1)
	assertDecimal(t, "120000", hist[0].OldPrice)
	assertDecimal(t, "135000", hist[0].NewPrice)
	require.NotNil(t, hist[0].ChangedByEmail)
	assert.Equal(t, "admin@e2e.test", *hist[0].ChangedByEmail)

	// Same price again: the log stays untouched.
	resp = update(135000)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	histResp = do(t, env.server, "GET", "/api/complexes/"+id+"/price-history", nil, "")
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	decodeJSON(t, histResp, &hist)
	assert.Len(t, hist, 1)
}

func TestE2E_AnonymousCalculation(t *testing.T) {
	env := setupTestEnv(t)
	id := createComplex(t, env, 120000)

	resp := do(t, env.server, "POST", "/api/complexes/calculate",
		jsonBody(t, map[string]any{"complexId": id, "rooms": 2, "area": 65}),
		"",
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var calc struct {
		ComplexName    string `json:"complexName"`
		PricePerSquare string `json:"pricePerSquare"`
		TotalPrice     string `json:"totalPrice"`
		Rooms          int    `json:"rooms"`
	}
	decodeJSON(t, resp, &calc)
	assert.Equal(t, "Riverside Towers", calc.ComplexName)
	assertDecimal(t, "120000", calc.PricePerSquare)
	assertDecimal(t, "7800000", calc.TotalPrice)
	assert.Equal(t, 2, calc.Rooms)
}

func TestE2E_AuthenticatedCalculationRecorded(t *testing.T) {
	env := setupTestEnv(t)
	id := createComplex(t, env, 120000)

	resp := do(t, env.server, "POST", "/api/complexes/calculate",
		jsonBody(t, map[string]any{"complexId": id, "rooms": 2, "area": 65}),
		env.token,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The row is written off the request path: enqueue → BRPOP → insert.
	// Poll until the worker has drained the job.
	var count int64
	require.Eventually(t, func() bool {
		err := env.db.Raw(
			`SELECT COUNT(*) FROM calculation_history WHERE complex_id = ? AND user_id IS NOT NULL`,
			id,
		).Scan(&count).Error
		return err == nil && count == 1
	}, 10*time.Second, 200*time.Millisecond, "calculation_history row never appeared")

	var total string
	require.NoError(t, env.db.Raw(
		`SELECT total_price FROM calculation_history WHERE complex_id = ?`, id,
	).Scan(&total).Error)
	assertDecimal(t, "7800000", total)
}

func TestE2E_UnknownIDs(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/api/complexes/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/api/complexes/calculate",
		jsonBody(t, map[string]any{"complexId": uuid.NewString(), "rooms": 2, "area": 65}),
		"",
	)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_AdminGate(t *testing.T) {
	env := setupTestEnv(t)

	// Register a regular user and try to create a complex with their token.
	regResp := do(t, env.server, "POST", "/api/auth/register",
		jsonBody(t, map[string]any{
			"email": "user@e2e.test", "password": "secret1",
			"firstName": "Regular", "lastName": "User",
		}),
		"",
	)
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	var reg struct {
		Token string `json:"token"`
	}
	decodeJSON(t, regResp, &reg)

	resp := do(t, env.server, "POST", "/api/complexes",
		jsonBody(t, map[string]any{
			"name": "Nope", "description": "d", "location": "l",
			"constructionStage": "planning", "pricePerSquare": 100000,
		}),
		reg.Token,
	)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
