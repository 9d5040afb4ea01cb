package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-orders-api/internal/app/api"
	"github.com/Apurer/go-orders-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-orders-api/internal/domains/orders/application"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := api.NewRouter(application.NewService(memory.NewRepository()))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestClient_OrderLifecycle(t *testing.T) {
	server := setupServer(t)
	c, err := New(server.URL, WithTimeout(5*time.Second))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	created, err := c.CreateOrder(ctx, CreateOrderRequest{
		CustomerName: "Alice",
		Email:        "alice@example.com",
		Items:        []OrderItem{{Name: "Widget", Qty: 2, UnitPriceCents: 500}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, int64(1000), created.TotalCents)
	require.Equal(t, "Created", created.Status)

	fetched, err := c.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)

	list, err := c.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := c.UpdateOrderStatus(ctx, created.ID, "Shipped")
	require.NoError(t, err)
	require.Equal(t, "Shipped", updated.Status)

	require.NoError(t, c.DeleteOrder(ctx, created.ID))

	_, err = c.GetOrder(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_ValidationErrorDecoded(t *testing.T) {
	server := setupServer(t)
	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = c.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName: "Bob",
		Email:        "invalid",
		Items:        []OrderItem{{Name: "Widget", Qty: 1, UnitPriceCents: 100}},
	})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.NotEmpty(t, apiErr.Detail)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
}
