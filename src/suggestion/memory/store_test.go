package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stake-plus/suggestions/src/suggestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(ns suggestion.Namespace, number int64) *suggestion.Suggestion {
	return &suggestion.Suggestion{
		Namespace: ns,
		Number:    &number,
		Author:    "user-1",
		Title:     "title",
		Body:      "body",
	}
}

func TestInsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	store := New()

	a := newRecord(suggestion.NamespaceMain, 1)
	b := newRecord(suggestion.NamespaceMain, 2)
	require.NoError(t, store.Insert(ctx, a))
	require.NoError(t, store.Insert(ctx, b))

	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint64(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestInsertDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Insert(ctx, newRecord(suggestion.NamespaceMain, 7)))
	err := store.Insert(ctx, newRecord(suggestion.NamespaceMain, 7))
	assert.ErrorIs(t, err, suggestion.ErrConflict)

	// Same number in another namespace is fine.
	assert.NoError(t, store.Insert(ctx, newRecord(suggestion.NamespaceStaff, 7)))
}

func TestCountTopLevel(t *testing.T) {
	ctx := context.Background()
	store := New()

	first := newRecord(suggestion.NamespaceMain, 1)
	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, newRecord(suggestion.NamespaceMain, 2)))

	base := int64(1)
	ext := &suggestion.Suggestion{
		Namespace: suggestion.NamespaceMain,
		Extends:   &base,
		Author:    "user-2",
		Title:     "extension",
		Body:      "body",
	}
	require.NoError(t, store.Insert(ctx, ext))

	// Extensions never count toward the sequence.
	count, err := store.CountTopLevel(ctx, suggestion.NamespaceMain)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Soft-deleted records still do.
	now := time.Now().UTC()
	require.NoError(t, store.Update(ctx, first.ID, map[string]interface{}{
		"deleted_at": now,
		"deleter":    "user-1",
	}))
	count, err = store.CountTopLevel(ctx, suggestion.NamespaceMain)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestListExtensionsOrdering(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Insert(ctx, newRecord(suggestion.NamespaceMain, 1)))

	base := int64(1)
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mk := func(author string, created time.Time) *suggestion.Suggestion {
		return &suggestion.Suggestion{
			Namespace: suggestion.NamespaceMain,
			Extends:   &base,
			Author:    author,
			Title:     "extension",
			Body:      "body",
			CreatedAt: created,
		}
	}

	// Inserted out of chronological order; the same timestamp ties break
	// by insertion order.
	late := mk("late", at.Add(time.Hour))
	early := mk("early", at)
	tied := mk("tied", at)
	require.NoError(t, store.Insert(ctx, late))
	require.NoError(t, store.Insert(ctx, early))
	require.NoError(t, store.Insert(ctx, tied))

	recs, err := store.ListExtensions(ctx, suggestion.NamespaceMain, base)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "early", recs[0].Author)
	assert.Equal(t, "tied", recs[1].Author)
	assert.Equal(t, "late", recs[2].Author)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Insert(ctx, newRecord(suggestion.NamespaceMain, 5)))

	rec, err := store.Get(ctx, suggestion.NamespaceMain, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), *rec.Number)

	_, err = store.Get(ctx, suggestion.NamespaceMain, 6)
	assert.ErrorIs(t, err, suggestion.ErrNotFound)
	_, err = store.Get(ctx, suggestion.NamespaceStaff, 5)
	assert.ErrorIs(t, err, suggestion.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := newRecord(suggestion.NamespaceMain, 1)
	require.NoError(t, store.Insert(ctx, rec))

	require.NoError(t, store.Update(ctx, rec.ID, map[string]interface{}{
		"status":         suggestion.StatusApproved,
		"status_updater": "mod-1",
		"status_reason":  nil,
	}))

	got, err := store.Get(ctx, suggestion.NamespaceMain, 1)
	require.NoError(t, err)
	require.NotNil(t, got.Status)
	assert.Equal(t, suggestion.StatusApproved, *got.Status)
	assert.Nil(t, got.StatusReason)

	err = store.Update(ctx, 999, map[string]interface{}{"message": "m"})
	assert.ErrorIs(t, err, suggestion.ErrNotFound)

	err = store.Update(ctx, rec.ID, map[string]interface{}{"bogus": 1})
	assert.Error(t, err)
}

func TestInsertDoesNotAliasCaller(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := newRecord(suggestion.NamespaceMain, 1)
	require.NoError(t, store.Insert(ctx, rec))

	// Mutating the caller's copy must not reach stored state.
	rec.Title = "changed"
	got, err := store.Get(ctx, suggestion.NamespaceMain, 1)
	require.NoError(t, err)
	assert.Equal(t, "title", got.Title)
}
