package application

import (
	"context"

	"github.com/Apurer/go-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-orders-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases over an injected repository. The
// repository is selected once at startup; the service never branches on
// the backend identity.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateOrder validates the request, persists the resulting order, and
// returns it. Domain violations surface as ErrInvalidInput; a repository
// conflict means id generation misbehaved and passes through as a server
// fault.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(input.CustomerName, input.Email, input.Items)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// UpdateOrderStatus parses the raw status against the closed enumeration
// before touching storage, so an unknown value never reaches the adapter.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, rawStatus string) (*domain.Order, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ ports.Service = (*Service)(nil)
