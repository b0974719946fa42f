package persistence

import (
	"gorm.io/gorm"
)

// Repository is the row-level gateway shared by every entity. Each entity
// package instantiates it with its own record type; not-found surfaces as
// gorm.ErrRecordNotFound.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// Create inserts the record (and any attached owned rows).
func (r *Repository[T]) Create(record *T) error {
	return r.db.Create(record).Error
}

// FindByID fetches one record by primary key, preloading the named
// associations.
func (r *Repository[T]) FindByID(id int, preloads ...string) (*T, error) {
	tx := r.db
	for _, assoc := range preloads {
		tx = tx.Preload(assoc)
	}
	var record T
	if err := tx.First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// All returns every record in the table.
func (r *Repository[T]) All(preloads ...string) ([]T, error) {
	tx := r.db
	for _, assoc := range preloads {
		tx = tx.Preload(assoc)
	}
	var records []T
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Where returns every record matching the condition.
func (r *Repository[T]) Where(query string, args ...any) ([]T, error) {
	var records []T
	if err := r.db.Where(query, args...).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save writes every field of the record back to its row.
func (r *Repository[T]) Save(record *T) error {
	return r.db.Save(record).Error
}

// DeleteWhere removes every matching row and reports how many were removed.
// Zero matches is not an error.
func (r *Repository[T]) DeleteWhere(query string, args ...any) (int64, error) {
	result := r.db.Where(query, args...).Delete(new(T))
	return result.RowsAffected, result.Error
}
