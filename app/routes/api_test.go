package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/routes"
	"github.com/tracechain/tracechain/app/services"
	"github.com/tracechain/tracechain/pkg/auth"
	"github.com/tracechain/tracechain/pkg/router"
	"github.com/tracechain/tracechain/pkg/storage"
	"github.com/tracechain/tracechain/pkg/testkit"
)

var bootOnce sync.Once

// newHandler mounts the full API against the embedded fixture. No
// database or Redis is required: persistence-backed paths degrade to
// fixture-only reads.
func newHandler(t *testing.T) http.Handler {
	t.Helper()
	bootOnce.Do(storage.Connect)

	r := router.New()
	routes.RegisterAPI(r, repositories.DefaultDirectory(), services.NewActivityBroker(), services.DefaultActivityWindow)
	return r.Handler()
}

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, h http.Handler, method, target, token, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env apiEnvelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func TestProductsIndex(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 3)
}

func TestProductsIndexStatusFilter(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products?status=in-transit", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "prod-003", products[0]["id"])
}

func TestProductsIndexUnknownStatusReturnsAll(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products?status=bogus", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 3)
}

func TestProductShowAndMissing(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products/prod-001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var product map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, "Organic Apples", product["name"])

	rec, _ = doJSON(t, h, http.MethodGet, "/api/products/prod-999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJourneyEndpoint(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products/prod-001/journey", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Timeline []map[string]any `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Len(t, body.Timeline, 6)
	assert.Equal(t, "milestone", body.Timeline[0]["kind"])
	assert.Equal(t, "milestone", body.Timeline[len(body.Timeline)-1]["kind"])
}

func TestQRCodeEndpoint(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products/prod-002/qrcode", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Payload services.QRPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "prod-002", body.Payload.ProductID)
	assert.Equal(t, "/api/products/prod-002/journey", body.Payload.JourneyURL)
}

func TestOverviewEndpoint(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/overview", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		StatusTally    map[string]int   `json:"statusTally"`
		RecentActivity []map[string]any `json:"recentActivity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, 1, body.StatusTally["at-retailer"])
	assert.Equal(t, 1, body.StatusTally["in-warehouse"])
	assert.Equal(t, 1, body.StatusTally["in-transit"])
	assert.Equal(t, 0, body.StatusTally["at-farm"])
	assert.Len(t, body.RecentActivity, 5)
}

func TestFeedbackIndex(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodGet, "/api/feedback/prod-001", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var feedback []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &feedback))
	require.Len(t, feedback, 1)
	assert.Equal(t, "feedback-001", feedback[0]["id"])
}

func TestProfileRequiresToken(t *testing.T) {
	h := newHandler(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := doJSON(t, h, http.MethodGet, "/api/profile", tokenFor(t, "farmer-1", "farmer"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "John Smith", user["name"])
}

func TestLoginWithoutDatabaseRejects(t *testing.T) {
	h := newHandler(t)

	body := `{"email":"john@farm.com","password":"password123"}`
	rec, _ := doJSON(t, h, http.MethodPost, "/api/login", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	h := newHandler(t)

	rec, env := doJSON(t, h, http.MethodPost, "/api/logout", tokenFor(t, "consumer-1", "consumer"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "Logged out", body["message"])

	// The emptied session is written back to the browser.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "tracechain_session", cookies[0].Name)
}

func TestDashboardRoleGuard(t *testing.T) {
	h := newHandler(t)

	// Wrong role is rejected.
	rec, _ := doJSON(t, h, http.MethodGet, "/api/dashboard/farmer", tokenFor(t, "consumer-1", "consumer"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Matching role sees its own products.
	rec, env := doJSON(t, h, http.MethodGet, "/api/dashboard/farmer", tokenFor(t, "farmer-1", "farmer"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Len(t, body.Products, 3)
}

func TestUsersCRUDIsAdminOnly(t *testing.T) {
	h := newHandler(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/users", tokenFor(t, "farmer-1", "farmer"), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGraphQLProductsQuery(t *testing.T) {
	h := newHandler(t)

	query := `{"query":"{ products { id currentStatus } }"}`
	rec, _ := doJSON(t, h, http.MethodPost, "/api/graphql", "", query)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Data struct {
			Products []map[string]any `json:"products"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Data.Products, 3)
}

func TestHealthEndpoint(t *testing.T) {
	h := newHandler(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

// TestScenarios drives the JSON scenario files in testdata/ against the full
// router. Request and expected-response payloads live under
// testdata/payloads/ so the scenario glob does not pick them up.
func TestScenarios(t *testing.T) {
	h := newHandler(t)
	testkit.RunDir(t, h, "testdata")
}
