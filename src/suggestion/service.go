package suggestion

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Service implements suggestion creation, identifier resolution and the
// moderation lifecycle on top of a Store.
//
// Sequence allocation is count-then-insert, so two concurrent submissions
// to the same namespace could read the same count and collide on a number.
// The same applies to extension ranking within one base record. Both paths
// are therefore serialized through per-key mutexes spanning the read and
// the insert; the store's unique (namespace, number) index backstops the
// lock and surfaces any remaining race as ErrConflict.
type Service struct {
	store    Store
	offsets  map[Namespace]int64
	sanitize *bluemonday.Policy

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a Service. offsets holds the configured per-namespace
// starting number (count zero allocates exactly the offset).
func NewService(store Store, offsets map[Namespace]int64) *Service {
	if offsets == nil {
		offsets = map[Namespace]int64{}
	}
	return &Service{
		store:    store,
		offsets:  offsets,
		sanitize: bluemonday.StrictPolicy(),
		locks:    make(map[string]*sync.Mutex),
	}
}

// lock returns the mutex for a serialization key, creating it on first use.
// Keys are "number:<ns>" for top-level allocation and "extends:<ns>:<n>"
// for extension ranking.
func (s *Service) lock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

// CreateParams carries a new submission. Extends, when set, makes the
// record an extension of the top-level suggestion with that number.
type CreateParams struct {
	Namespace Namespace
	Author    string
	Title     string
	Body      string
	Teams     string
	Anonymous bool
	Extends   *int64
}

// Create validates and persists a new submission. Top-level submissions
// are numbered count+offset inside the namespace's critical section;
// extension submissions are ranked inside the base record's critical
// section. Identity is fixed at this moment and never changes.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Suggestion, error) {
	if !p.Namespace.Valid() {
		return nil, validationErr("namespace", fmt.Sprintf("unknown namespace %q", p.Namespace))
	}
	if p.Author == "" {
		return nil, validationErr("author", "an author is required")
	}

	title := strings.TrimSpace(s.sanitize.Sanitize(p.Title))
	if title == "" {
		return nil, validationErr("title", "a title is required")
	}
	if len(title) > MaxTitleLen {
		return nil, validationErr("title", fmt.Sprintf("longer than %d characters", MaxTitleLen))
	}

	body := strings.TrimSpace(s.sanitize.Sanitize(p.Body))
	if body == "" {
		return nil, validationErr("body", "a suggestion body is required")
	}
	if len(body) > MaxBodyLen {
		return nil, validationErr("body", fmt.Sprintf("longer than %d characters", MaxBodyLen))
	}

	teams := strings.TrimSpace(s.sanitize.Sanitize(p.Teams))
	if len(teams) > MaxTeamsLen {
		return nil, validationErr("teams", fmt.Sprintf("longer than %d characters", MaxTeamsLen))
	}

	rec := &Suggestion{
		Namespace: p.Namespace,
		Author:    p.Author,
		Anonymous: p.Anonymous,
		Title:     title,
		Body:      body,
	}
	if teams != "" {
		rec.Teams = &teams
	}

	if p.Extends != nil {
		return s.createExtension(ctx, rec, *p.Extends)
	}
	return s.createTopLevel(ctx, rec)
}

func (s *Service) createTopLevel(ctx context.Context, rec *Suggestion) (*Suggestion, error) {
	mu := s.lock("number:" + string(rec.Namespace))
	mu.Lock()
	defer mu.Unlock()

	count, err := s.store.CountTopLevel(ctx, rec.Namespace)
	if err != nil {
		return nil, fmt.Errorf("count suggestions: %w", err)
	}

	number := count + s.offsets[rec.Namespace]
	rec.Number = &number
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) createExtension(ctx context.Context, rec *Suggestion, extends int64) (*Suggestion, error) {
	if _, err := s.store.Get(ctx, rec.Namespace, extends); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, validationErr("extends", fmt.Sprintf("suggestion #%d does not exist", extends))
		}
		return nil, fmt.Errorf("load extends target: %w", err)
	}

	mu := s.lock("extends:" + string(rec.Namespace) + ":" + strconv.FormatInt(extends, 10))
	mu.Lock()
	defer mu.Unlock()

	siblings, err := s.store.ListExtensions(ctx, rec.Namespace, extends)
	if err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}
	// The new record ranks after every existing sibling; its letter index
	// is rank+1 and must stay within the alphabet.
	if len(siblings)+1 >= len(Alphabet) {
		return nil, ErrExtensionRange
	}

	rec.Extends = &extends
	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// LetterFor computes the display letter of an extension record from its
// chronological rank among siblings sharing the same base: the first
// extension ever created is "b" (the unlettered base record is
// conceptually "a").
func (s *Service) LetterFor(ctx context.Context, rec *Suggestion) (string, error) {
	if rec.Extends == nil {
		return "", fmt.Errorf("suggestion %d is top-level: %w", rec.ID, ErrInvalidIdentifier)
	}
	siblings, err := s.store.ListExtensions(ctx, rec.Namespace, *rec.Extends)
	if err != nil {
		return "", fmt.Errorf("list extensions: %w", err)
	}
	rank := -1
	for i, sib := range siblings {
		if sib.ID == rec.ID {
			rank = i
			break
		}
	}
	if rank < 0 {
		return "", ErrNotFound
	}
	if rank+1 >= len(Alphabet) {
		return "", ErrExtensionRange
	}
	return string(Alphabet[rank+1]), nil
}

// DisplayIdentifier renders the external identifier of a record: the bare
// number for top-level records, base number plus letter for extensions.
func (s *Service) DisplayIdentifier(ctx context.Context, rec *Suggestion) (string, error) {
	if rec.Extends == nil {
		if rec.Number == nil {
			return "", ErrInvalidIdentifier
		}
		return strconv.FormatInt(*rec.Number, 10), nil
	}
	letter, err := s.LetterFor(ctx, rec)
	if err != nil {
		return "", err
	}
	return FormatIdentifier(*rec.Extends, letter), nil
}

// Resolve looks up the record named by a parsed identifier. Letter "b"
// maps to the first-created extension (rank 0), "c" to the second, and so
// on; "a" never resolves because the base record is addressed by its bare
// number. Resolve is the exact inverse of LetterFor: resolving the output
// of DisplayIdentifier yields the same record.
func (s *Service) Resolve(ctx context.Context, ident Identifier, ns Namespace) (*Suggestion, error) {
	if ident.Number == nil {
		return nil, ErrInvalidIdentifier
	}
	if ident.Extension == "" {
		return s.store.Get(ctx, ns, *ident.Number)
	}

	rank := strings.Index(Alphabet, ident.Extension) - 1
	if rank < 0 {
		return nil, ErrInvalidIdentifier
	}
	siblings, err := s.store.ListExtensions(ctx, ns, *ident.Number)
	if err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}
	if rank >= len(siblings) {
		return nil, ErrNotFound
	}
	return siblings[rank], nil
}

// ResolveText parses free-form input and resolves it.
func (s *Service) ResolveText(ctx context.Context, text string, ns Namespace) (*Suggestion, error) {
	return s.Resolve(ctx, ParseIdentifier(text), ns)
}

// SetStatus applies a moderation transition. Status, updater and reason
// are written as one atomic update; an absent reason clears any previous
// one rather than leaving it dangling. Tombstoned records cannot change
// status, and a status can never be cleared back to unset.
func (s *Service) SetStatus(ctx context.Context, rec *Suggestion, updater string, status Status, reason string) error {
	if rec.Deleted() {
		return ErrAlreadyDeleted
	}
	if status == "" {
		return ErrInvalidTransition
	}
	if !status.Valid() {
		return validationErr("status", fmt.Sprintf("unknown status %q", status))
	}
	if updater == "" {
		return validationErr("updater", "an updater is required")
	}

	reason = strings.TrimSpace(s.sanitize.Sanitize(reason))
	if len(reason) > MaxReasonLen {
		return validationErr("reason", fmt.Sprintf("longer than %d characters", MaxReasonLen))
	}

	fields := map[string]interface{}{
		"status":         status,
		"status_updater": updater,
		"status_reason":  nil,
	}
	var reasonPtr *string
	if reason != "" {
		fields["status_reason"] = reason
		reasonPtr = &reason
	}
	if err := s.store.Update(ctx, rec.ID, fields); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	rec.Status = &status
	rec.StatusUpdater = &updater
	rec.StatusReason = reasonPtr
	return nil
}

// SoftDelete tombstones a record. The record stays in storage so numbering
// and extension ranks keep their meaning; only the tombstone pair is ever
// written after deletion. Irreversible.
func (s *Service) SoftDelete(ctx context.Context, rec *Suggestion, deleter string) error {
	if rec.Deleted() {
		return ErrAlreadyDeleted
	}
	if deleter == "" {
		return validationErr("deleter", "a deleter is required")
	}

	now := time.Now().UTC()
	if err := s.store.Update(ctx, rec.ID, map[string]interface{}{
		"deleted_at": now,
		"deleter":    deleter,
	}); err != nil {
		return fmt.Errorf("delete suggestion: %w", err)
	}

	rec.DeletedAt = &now
	rec.Deleter = &deleter
	return nil
}

// SetMessage records the posted chat message backing a suggestion so the
// embed can be re-rendered after moderation.
func (s *Service) SetMessage(ctx context.Context, rec *Suggestion, messageID string) error {
	if rec.Deleted() {
		return ErrAlreadyDeleted
	}
	if err := s.store.Update(ctx, rec.ID, map[string]interface{}{"message": messageID}); err != nil {
		return fmt.Errorf("update message ref: %w", err)
	}
	rec.Message = messageID
	return nil
}

// ListByAuthor returns a user's suggestions, newest first. Unless
// includeAnonymous is set (self-lookups and moderators), anonymous records
// are filtered out.
func (s *Service) ListByAuthor(ctx context.Context, ns Namespace, author string, includeAnonymous bool) ([]*Suggestion, error) {
	recs, err := s.store.ListByAuthor(ctx, ns, author)
	if err != nil {
		return nil, fmt.Errorf("list by author: %w", err)
	}
	if includeAnonymous {
		return recs, nil
	}
	filtered := make([]*Suggestion, 0, len(recs))
	for _, rec := range recs {
		if !rec.Anonymous {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}
