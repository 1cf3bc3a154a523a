package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stake-plus/suggestions/src/suggestion"
)

// Store keeps suggestions in memory behind a mutex. It is used by tests
// and local development and follows the same visibility rules as the MySQL
// store: soft-deleted records stay in every query, and extension ordering
// ties on creation time break by insertion order (ascending ID).
type Store struct {
	mu      sync.RWMutex
	nextID  uint64
	records map[uint64]*suggestion.Suggestion
}

func New() *Store {
	return &Store{records: make(map[uint64]*suggestion.Suggestion)}
}

func (s *Store) Insert(ctx context.Context, rec *suggestion.Suggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Number != nil {
		for _, existing := range s.records {
			if existing.Namespace == rec.Namespace && existing.Number != nil && *existing.Number == *rec.Number {
				return suggestion.ErrConflict
			}
		}
	}

	s.nextID++
	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	clone := *rec
	s.records[rec.ID] = &clone
	return nil
}

func (s *Store) Get(ctx context.Context, ns suggestion.Namespace, number int64) (*suggestion.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Namespace == ns && rec.Number != nil && *rec.Number == number {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, suggestion.ErrNotFound
}

func (s *Store) CountTopLevel(ctx context.Context, ns suggestion.Namespace) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, rec := range s.records {
		if rec.Namespace == ns && rec.Extends == nil {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListExtensions(ctx context.Context, ns suggestion.Namespace, extends int64) ([]*suggestion.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*suggestion.Suggestion
	for _, rec := range s.records {
		if rec.Namespace == ns && rec.Extends != nil && *rec.Extends == extends {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) ListByAuthor(ctx context.Context, ns suggestion.Namespace, author string) ([]*suggestion.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*suggestion.Suggestion
	for _, rec := range s.records {
		if rec.Namespace == ns && rec.Author == author {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Update(ctx context.Context, id uint64, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return suggestion.ErrNotFound
	}

	for col, val := range fields {
		switch col {
		case "status":
			st := val.(suggestion.Status)
			rec.Status = &st
		case "status_updater":
			u := val.(string)
			rec.StatusUpdater = &u
		case "status_reason":
			if val == nil {
				rec.StatusReason = nil
			} else {
				r := val.(string)
				rec.StatusReason = &r
			}
		case "deleted_at":
			t := val.(time.Time)
			rec.DeletedAt = &t
		case "deleter":
			d := val.(string)
			rec.Deleter = &d
		case "message":
			rec.Message = val.(string)
		default:
			return fmt.Errorf("memory: unknown column %q", col)
		}
	}
	return nil
}
