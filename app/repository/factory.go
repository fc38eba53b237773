package repository

import (
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// mutateLocked loads the row with id under a row lock, applies fn and saves
// the result in the same transaction. Concurrent mutations of one document are
// serialized by the lock instead of overwriting each other.
func mutateLocked[T any](db *gorm.DB, id string, fn func(*T) error) (*T, error) {
	var out T
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&out, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&out); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// deleteByID removes the row with id, reporting gorm.ErrRecordNotFound when
// nothing matched.
func deleteByID[T any](db *gorm.DB, id string) error {
	var model T
	result := db.Where("id = ?", id).Delete(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
