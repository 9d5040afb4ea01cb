package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-orders-api/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals the referenced order id does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrConflict signals an insert hit an already-used id. Ids are
	// generated by the domain, so this indicates an internal fault.
	ErrConflict = errors.New("order id already exists")
	// ErrUnavailable signals the backing store could not serve the
	// operation for infrastructure reasons. Callers may retry.
	ErrUnavailable = errors.New("order storage unavailable")
)

// Repository persists orders. Implementations must be safe for concurrent
// use and atomic per order: no call may observe a partially-updated record.
type Repository interface {
	// Insert stores a new order, failing with ErrConflict on a duplicate id.
	Insert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns all orders in a stable, implementation-defined order.
	List(ctx context.Context) ([]*domain.Order, error)
	// UpdateStatus sets the status and refreshes updated_at, returning the
	// updated record.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
