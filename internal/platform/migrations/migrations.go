// Package migrations applies the relational schema for the orders context.
package migrations

import (
	"gorm.io/gorm"

	"github.com/Apurer/go-orders-api/internal/domains/orders/adapters/persistence/relational"
)

// Run applies the orders schema. The migration is idempotent and safe to
// run on every startup.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&relational.OrderRecord{})
}
