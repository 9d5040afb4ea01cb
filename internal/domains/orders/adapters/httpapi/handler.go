// Package httpapi wires the gin transport to the orders service.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-orders-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-orders-api/internal/shared/errors"
)

// OrderAPI exposes the orders service over HTTP.
type OrderAPI struct {
	service   ports.Service
	responder *apierrors.ChainedResponder
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ports.Service) *OrderAPI {
	return &OrderAPI{
		service:   service,
		responder: apierrors.NewChainedResponder("", OrderErrorMapper),
	}
}

// RegisterRoutes mounts the order endpoints and the repository-independent
// health probe on the router.
func (api *OrderAPI) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", api.Health)
	router.POST("/orders", api.CreateOrder)
	router.GET("/orders", api.ListOrders)
	router.GET("/orders/:id", api.GetOrder)
	router.PATCH("/orders/:id/status", api.UpdateOrderStatus)
	router.DELETE("/orders/:id", api.DeleteOrder)
}

// Get /health
func (api *OrderAPI) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Post /orders
// Create an order from a customer request
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), toCreateInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomain(order))
}

// Get /orders/:id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		api.respondOrderError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, fromDomain(order))
}

// Get /orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainList(orders))
}

// Patch /orders/:id/status
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	var payload UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	id := c.Param("id")
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		api.respondOrderError(c, err, id)
		return
	}
	c.JSON(http.StatusOK, fromDomain(order))
}

// Delete /orders/:id
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := api.service.DeleteOrder(c.Request.Context(), id); err != nil {
		api.respondOrderError(c, err, id)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondOrderError enriches missing-order failures with the requested id
// before falling back to the mapper chain.
func (api *OrderAPI) respondOrderError(c *gin.Context, err error, id string) {
	if errors.Is(err, ports.ErrNotFound) {
		api.responder.Respond(c, apierrors.NewNotFoundProblem("order", id))
		return
	}
	api.responder.RespondError(c, err)
}
