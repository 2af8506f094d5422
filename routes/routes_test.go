package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"food-rescue-api/config"
	"food-rescue-api/handlers"
	"food-rescue-api/middleware"
	"food-rescue-api/repository"
	"food-rescue-api/token"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

type testAPI struct {
	router *gin.Engine
	tokens *token.Service
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := config.SQLiteDSN(filepath.Join(t.TempDir(), "api.db"))
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig(gormlogger.Discard))
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tokens := token.NewService(testSecret, time.Hour)
	h := &handlers.Handler{
		Users:        repository.NewUserRepository(db),
		Donors:       repository.NewDonorRepository(db),
		Volunteers:   repository.NewVolunteerRepository(db),
		Donations:    repository.NewDonationRepository(db),
		Tokens:       tokens,
		Logger:       zap.NewNop(),
		ExposeErrors: true,
	}
	router := NewRouter(Deps{
		Config: config.Config{
			Environment: config.EnvTest,
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Handler:  h,
		Verifier: tokens,
		Logger:   zap.NewNop(),
		Metrics:  middleware.NewMetrics(),
	})
	return &testAPI{router: router, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// register signs up a fresh account and returns its token.
func (a *testAPI) register(t *testing.T, email string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":      email,
		"password":   "secret123",
		"first_name": "Jo",
		"last_name":  "Rivera",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["token"].(string)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["message"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/api/nothing-here", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{
		"error":  "Route not found",
		"path":   "/api/nothing-here",
		"method": "GET",
	}, decode(t, rec))
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email":      "a@b.co",
		"password":   "secret123",
		"first_name": "A",
		"last_name":  "B",
		"user_type":  "donor-admin",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "a@b.co", user["email"])
	assert.Equal(t, "donor-admin", user["user_type"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	rec = api.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "a@b.co", "password": "another1", "first_name": "A", "last_name": "B",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@b.co", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, "Login successful", body["message"])
	tok := body["token"].(string)

	wrong := api.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "a@b.co", "password": "wrong-pass"}, "")
	unknown := api.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@b.co", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, wrong.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, `{"error":"Invalid credentials"}`, wrong.Body.String())
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	rec = api.do(t, http.MethodGet, "/api/auth/me", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@b.co", decode(t, rec)["user"].(map[string]any)["email"])
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "a@b.co", "password": "123", "first_name": "A", "last_name": "B",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password must be at least 6 characters", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPost, "/api/auth/register", gin.H{
		"email": "not-an-email", "password": "secret123", "first_name": "A",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg := decode(t, rec)["error"].(string)
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "last_name is required")

	rec = api.do(t, http.MethodPost, "/api/auth/register", "{not json", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec)["error"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/donors", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided", decode(t, rec)["error"])

	rec = api.do(t, http.MethodGet, "/api/donations/stats/overview", nil, "garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec)["error"])

	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := api.tokens.WithClock(past).Issue(1, "a@b.co")
	require.NoError(t, err)
	rec = api.do(t, http.MethodGet, "/api/volunteers", nil, expired)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, rec)["error"])

	forged, err := token.NewService("other-secret", time.Hour).Issue(1, "a@b.co")
	require.NoError(t, err)
	rec = api.do(t, http.MethodGet, "/api/volunteers", nil, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDonationScenario(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "donor@b.co")

	rec := api.do(t, http.MethodPost, "/api/donors", gin.H{
		"business_name": "Corner Bakery",
		"address":       "12 Main St",
		"email":         "bakery@b.co",
	}, tok)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donorID := decode(t, rec)["donor_id"].(float64)

	rec = api.do(t, http.MethodPost, "/api/donations", gin.H{
		"donor_id":     donorID,
		"food_type":    "bread",
		"quantity_lbs": 10,
		"pickup_start": "2025-11-01T10:00",
		"pickup_end":   "2025-11-01T12:00:00Z",
	}, tok)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	donation := decode(t, rec)
	assert.Equal(t, "available", donation["status"])
	donationID := int(donation["donation_id"].(float64))

	rec = api.do(t, http.MethodGet, "/api/donations/stats/overview", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.Equal(t, float64(1), stats["total_donations"])
	assert.Equal(t, float64(10), stats["total_pounds"])
	assert.Equal(t, float64(1), stats["available_donations"])
	assert.Equal(t, float64(0), stats["claimed_donations"])

	path := "/api/donations/" + strconv.Itoa(donationID)
	rec = api.do(t, http.MethodGet, path, nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	joined := decode(t, rec)
	assert.Equal(t, "Corner Bakery", joined["business_name"])
	assert.Equal(t, "12 Main St", joined["address"])

	rec = api.do(t, http.MethodGet, "/api/donations", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"business_name":"Corner Bakery"`)

	rec = api.do(t, http.MethodPut, path, gin.H{
		"donor_id": donorID, "food_type": "bread", "quantity_lbs": 10, "status": "claimed",
	}, tok)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "claimed", decode(t, rec)["status"])

	rec = api.do(t, http.MethodPut, path, gin.H{
		"donor_id": donorID, "food_type": "bread", "quantity_lbs": 10, "status": "spoiled",
	}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status must be one of available, claimed, completed", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPost, "/api/donations", gin.H{
		"donor_id": 999, "food_type": "soup", "quantity_lbs": 2,
	}, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/donations", gin.H{
		"donor_id": donorID, "food_type": "soup", "quantity_lbs": 0,
	}, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/donations", gin.H{
		"donor_id": donorID, "food_type": "soup", "quantity_lbs": 2,
		"pickup_start": "2025-11-01T12:00:00Z", "pickup_end": "2025-11-01T10:00:00Z",
	}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "pickup_end must not be before pickup_start", decode(t, rec)["error"])

	rec = api.do(t, http.MethodDelete, "/api/donors/"+strconv.Itoa(int(donorID)), nil, tok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodDelete, path, nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodDelete, path, nil, tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Donation not found", decode(t, rec)["error"])
}

func TestDonorUpdateUnknownID(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "jo@b.co")

	valid := gin.H{"business_name": "X", "address": "Y", "email": "x@b.co"}
	rec := api.do(t, http.MethodPut, "/api/donors/999", valid, tok)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Donor not found", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPut, "/api/donors/999", gin.H{}, tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/donors/abc", nil, tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDonorCRUD(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "jo@b.co")

	rec := api.do(t, http.MethodGet, "/api/donors", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(t, http.MethodPost, "/api/donors", gin.H{
		"business_name": "Deli", "address": "1 Elm", "email": "deli@b.co", "phone": "555",
	}, tok)
	require.Equal(t, http.StatusCreated, rec.Code)
	path := "/api/donors/" + strconv.Itoa(int(decode(t, rec)["donor_id"].(float64)))

	rec = api.do(t, http.MethodPost, "/api/donors", gin.H{
		"business_name": "Deli 2", "address": "2 Elm", "email": "deli@b.co",
	}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPut, path, gin.H{"business_name": "Deli", "address": "1 Elm"}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is required", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPut, path, gin.H{
		"business_name": "Deli & Co", "address": "1 Elm", "email": "deli@b.co",
	}, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Deli & Co", body["business_name"])
	assert.Equal(t, "", body["phone"])

	rec = api.do(t, http.MethodDelete, path, nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Donor deleted successfully", decode(t, rec)["message"])

	rec = api.do(t, http.MethodGet, path, nil, tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVolunteerCRUD(t *testing.T) {
	api := newTestAPI(t)
	tok := api.register(t, "jo@b.co")

	rec := api.do(t, http.MethodPost, "/api/volunteers", gin.H{
		"first_name": "Ada", "last_name": "Park", "email": "ada@b.co", "vehicle_type": "van",
	}, tok)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, float64(0), created["total_hours"])
	path := "/api/volunteers/" + strconv.Itoa(int(created["volunteer_id"].(float64)))

	rec = api.do(t, http.MethodPut, path, gin.H{
		"first_name": "Ada", "last_name": "Park", "email": "ada@b.co", "total_hours": -1,
	}, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "total_hours must be at least 0", decode(t, rec)["error"])

	rec = api.do(t, http.MethodPut, path, gin.H{
		"first_name": "Ada", "last_name": "Park", "email": "ada@b.co", "total_hours": 6.5,
	}, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6.5, decode(t, rec)["total_hours"])

	rec = api.do(t, http.MethodGet, "/api/volunteers", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = api.do(t, http.MethodDelete, path, nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(t, http.MethodDelete, path, nil, tok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Volunteer not found", decode(t, rec)["error"])
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/donors", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, http.MethodGet, "/api/health", nil, "")

	rec := api.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `food_rescue_http_requests_total{method="GET",route="/api/health",status="200"} 1`))
}

func TestMetricsCountPanics(t *testing.T) {
	api := newTestAPI(t)
	api.router.GET("/api/boom", func(c *gin.Context) { panic("kaboom") })

	rec := api.do(t, http.MethodGet, "/api/boom", nil, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "kaboom", decode(t, rec)["error"])

	rec = api.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `food_rescue_http_requests_total{method="GET",route="/api/boom",status="500"} 1`)
}
