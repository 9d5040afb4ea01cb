package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InMemoryDSN keeps the whole database in process memory. Suitable for
// tests and the dev profile; contents are lost on close.
const InMemoryDSN = "file::memory:?cache=shared"

// Open opens a SQLite database via GORM, creating the parent directory for
// on-disk files. Error translation is enabled so key violations surface as
// gorm.ErrDuplicatedKey for the repositories.
func Open(path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != InMemoryDSN && !strings.HasPrefix(path, "file::memory:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
}
