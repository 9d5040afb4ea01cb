package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Apurer/go-orders-api/internal/shared/errors"

	"github.com/Apurer/go-orders-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-orders-api/internal/domains/orders/adapters/persistence/relational"
	"github.com/Apurer/go-orders-api/internal/domains/orders/application"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	service := application.NewService(memory.NewRepository())
	NewOrderAPI(service).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOrderLifecycle(t *testing.T) {
	router := setupRouter()

	createBody := `{"customer_name":"Alice","email":"alice@example.com","items":[{"name":"Widget","qty":2,"unit_price_cents":500}]}`
	rec := doRequest(t, router, http.MethodPost, "/orders", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, int64(1000), created.TotalCents)
	require.Equal(t, "Created", created.Status)
	require.Len(t, created.Items, 1)

	rec = doRequest(t, router, http.MethodGet, "/orders/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, created.TotalCents, fetched.TotalCents)

	time.Sleep(time.Millisecond)
	rec = doRequest(t, router, http.MethodPatch, "/orders/"+created.ID+"/status", `{"status":"Shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Shipped", updated.Status)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	rec = doRequest(t, router, http.MethodDelete, "/orders/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/orders/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodPost, "/orders", `{"customer_name":"Alice","email":"alice@example.com","items":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	// Nothing may be persisted on a rejected create.
	rec = doRequest(t, router, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateOrder_MalformedEmail(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodPost, "/orders", `{"customer_name":"Bob","email":"invalid","items":[{"name":"Widget","qty":1,"unit_price_cents":100}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, apierrors.TypeValidation, problem.Type)
}

func TestCreateOrder_MalformedJSON(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodPost, "/orders", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_UnknownValueLeavesRecordUnchanged(t *testing.T) {
	router := setupRouter()

	createBody := `{"customer_name":"Alice","email":"alice@example.com","items":[{"name":"Widget","qty":2,"unit_price_cents":500}]}`
	rec := doRequest(t, router, http.MethodPost, "/orders", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(t, router, http.MethodPatch, "/orders/"+created.ID+"/status", `{"status":"Bogus"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/orders/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.Equal(t, "Created", fetched.Status)
}

func TestUpdateStatus_UnknownID(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodPatch, "/orders/missing/status", `{"status":"Paid"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteOrder_UnknownID(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodDelete, "/orders/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrder_UnknownIDProblemBody(t *testing.T) {
	router := setupRouter()

	rec := doRequest(t, router, http.MethodGet, "/orders/no-such-id", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, apierrors.TypeNotFound, problem.Type)
	require.Equal(t, http.StatusNotFound, problem.Status)
	require.Equal(t, "/orders/no-such-id", problem.Instance)
	require.Contains(t, problem.Detail, "no-such-id")
	require.Equal(t, "order", problem.Extensions["resourceType"])
	require.Equal(t, "no-such-id", problem.Extensions["identifier"])
}

func TestStorageUnavailableIs503(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	service := application.NewService(relational.NewRepository(nil))
	NewOrderAPI(service).RegisterRoutes(router)

	createBody := `{"customer_name":"Alice","email":"alice@example.com","items":[{"name":"Widget","qty":1,"unit_price_cents":100}]}`
	for _, req := range []struct{ method, path, body string }{
		{http.MethodPost, "/orders", createBody},
		{http.MethodGet, "/orders", ""},
		{http.MethodGet, "/orders/some-id", ""},
	} {
		rec := doRequest(t, router, req.method, req.path, req.body)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, "%s %s", req.method, req.path)
		require.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

		var problem apierrors.ProblemDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		require.Equal(t, apierrors.TypeUnavailable, problem.Type)
	}
}

func TestListOrders(t *testing.T) {
	router := setupRouter()

	for i := 0; i < 3; i++ {
		rec := doRequest(t, router, http.MethodPost, "/orders", `{"customer_name":"Alice","email":"alice@example.com","items":[{"name":"Widget","qty":1,"unit_price_cents":100}]}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
}
