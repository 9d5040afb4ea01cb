// Package relational persists orders in a relational database through GORM.
// It works with any dialector wired in internal/platform (PostgreSQL in
// production, SQLite for the lightweight profile).
package relational

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-orders-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is the relational order persistence adapter. The caller owns
// the DB lifecycle; the connection must be opened with error translation
// enabled so duplicate keys surface as gorm.ErrDuplicatedKey.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to the orders table. Items carry no
// independent query need, so they serialize as a JSON column.
type OrderRecord struct {
	ID           string             `gorm:"primaryKey;column:id;size:36"`
	CustomerName string             `gorm:"column:customer_name"`
	Email        string             `gorm:"column:email"`
	TotalCents   int64              `gorm:"column:total_cents"`
	Status       string             `gorm:"column:status;type:varchar(32);index"`
	Items        []domain.OrderItem `gorm:"column:items;serializer:json"`
	CreatedAt    time.Time          `gorm:"column:created_at;index"`
	UpdatedAt    time.Time          `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "orders" }

func (r *Repository) Insert(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if order == nil {
		return errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return storageError("insert order", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, storageError("load order", err)
	}
	return record.toDomain(), nil
}

// List orders deterministically by creation time then id, so results stay
// stable under backend paging or caching.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []OrderRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, storageError("list orders", err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&OrderRecord{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, storageError("update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	// The read-back is a separate statement: it may observe writes that
	// landed after the UPDATE, including a concurrent delete of this id.
	return r.GetByID(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&OrderRecord{})
	if result.Error != nil {
		return storageError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return fmt.Errorf("%w: relational order repository not configured", ports.ErrUnavailable)
	}
	return nil
}

// storageError labels backend failures without leaking them past the port.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ports.ErrUnavailable, op, err)
}

func toRecord(order *domain.Order) OrderRecord {
	return OrderRecord{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		TotalCents:   order.TotalCents,
		Status:       string(order.Status),
		Items:        append([]domain.OrderItem(nil), order.Items...),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}

func (r OrderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Items:        append([]domain.OrderItem(nil), r.Items...),
		TotalCents:   r.TotalCents,
		Status:       domain.Status(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
