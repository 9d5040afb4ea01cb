package ports

import (
	"context"

	"github.com/Apurer/go-orders-api/internal/domains/orders/domain"
)

// CreateOrderInput carries the validated-at-the-domain create request.
type CreateOrderInput struct {
	CustomerName string
	Email        string
	Items        []domain.OrderItem
}

// Service exposes order use cases to inbound adapters.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, rawStatus string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}
