package httpapi

import (
	"time"

	"github.com/Apurer/go-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-orders-api/internal/domains/orders/ports"
)

// CreateOrderRequest is the POST /orders payload. Binding tags cover the
// structural shape; domain invariants are enforced again by the service.
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required"`
	Email        string             `json:"email" binding:"required"`
	Items        []OrderItemPayload `json:"items" binding:"required"`
}

// OrderItemPayload is the transport shape of a single order line.
type OrderItemPayload struct {
	Name           string `json:"name"`
	Qty            int32  `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// UpdateStatusRequest is the PATCH /orders/{id}/status payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse is the transport representation of an order.
type OrderResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name"`
	Email        string             `json:"email"`
	Items        []OrderItemPayload `json:"items"`
	TotalCents   int64              `json:"total_cents"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func toCreateInput(req CreateOrderRequest) ports.CreateOrderInput {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			Name:           item.Name,
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return ports.CreateOrderInput{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Items:        items,
	}
}

func fromDomain(order *domain.Order) OrderResponse {
	if order == nil {
		return OrderResponse{}
	}
	items := make([]OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemPayload{
			Name:           item.Name,
			Qty:            item.Qty,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Items:        items,
		TotalCents:   order.TotalCents,
		Status:       string(order.Status),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func fromDomainList(orders []*domain.Order) []OrderResponse {
	list := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		list = append(list, fromDomain(order))
	}
	return list
}
