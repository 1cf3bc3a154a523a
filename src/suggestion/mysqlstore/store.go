package mysqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stake-plus/suggestions/src/suggestion"
	"gorm.io/gorm"
)

// Store persists suggestions in MySQL through gorm. Soft deletion is a
// plain timestamp column, not gorm's DeletedAt, so tombstoned rows stay
// visible to counting, ordering and resolution without Unscoped calls.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, rec *suggestion.Suggestion) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicateKey(err) {
			return suggestion.ErrConflict
		}
		return fmt.Errorf("insert suggestion: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, ns suggestion.Namespace, number int64) (*suggestion.Suggestion, error) {
	var rec suggestion.Suggestion
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND number = ?", ns, number).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, suggestion.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}
	return &rec, nil
}

func (s *Store) CountTopLevel(ctx context.Context, ns suggestion.Namespace) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&suggestion.Suggestion{}).
		Where("namespace = ? AND extends IS NULL", ns).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count suggestions: %w", err)
	}
	return count, nil
}

func (s *Store) ListExtensions(ctx context.Context, ns suggestion.Namespace, extends int64) ([]*suggestion.Suggestion, error) {
	var recs []*suggestion.Suggestion
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND extends = ?", ns, extends).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}
	return recs, nil
}

func (s *Store) ListByAuthor(ctx context.Context, ns suggestion.Namespace, author string) ([]*suggestion.Suggestion, error) {
	var recs []*suggestion.Suggestion
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND author = ?", ns, author).
		Order("created_at DESC, id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("list by author: %w", err)
	}
	return recs, nil
}

func (s *Store) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	err := s.db.WithContext(ctx).
		Model(&suggestion.Suggestion{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update suggestion: %w", err)
	}
	return nil
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "1062")
}
