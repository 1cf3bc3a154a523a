package suggestion

import "time"

// Namespace is an independent numbering and lookup partition. Each namespace
// has its own guild, suggestions channel and numbering offset; numbers are
// only unique within a namespace.
type Namespace string

const (
	NamespaceMain  Namespace = "main"
	NamespaceStaff Namespace = "staff"
)

// Valid reports whether ns is one of the configured partitions.
func (ns Namespace) Valid() bool {
	return ns == NamespaceMain || ns == NamespaceStaff
}

// Alphabet indexes extension letters. The base record is conceptually
// letter "a", so the first-created extension displays as "b".
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

const (
	MaxTitleLen  = 256
	MaxBodyLen   = 2048
	MaxTeamsLen  = 256
	MaxReasonLen = 1024
)

// Suggestion is a community proposal. Exactly one of Number and Extends is
// set: top-level records carry their own sequence number, extension records
// reference the number of the top-level record they extend or duplicate.
//
// Soft deletion is a plain timestamp column rather than gorm's DeletedAt on
// purpose: tombstoned rows must stay visible to counting, extension ordering
// and identifier resolution. Content fields are never written again after
// creation; moderation writes the status group, deletion writes the
// tombstone pair, and nothing else.
type Suggestion struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Namespace Namespace `gorm:"size:16;not null;index:idx_namespace_number,unique,priority:1;index:idx_namespace_extends,priority:1"`
	Number    *int64    `gorm:"index:idx_namespace_number,unique,priority:2"`
	Extends   *int64    `gorm:"index:idx_namespace_extends,priority:2"`
	Author    string    `gorm:"size:64;not null"`
	Anonymous bool
	Title     string  `gorm:"size:256;not null"`
	Body      string  `gorm:"size:2048;not null"`
	Teams     *string `gorm:"size:256"`

	Status        *Status `gorm:"size:16"`
	StatusUpdater *string `gorm:"size:64;column:status_updater"`
	StatusReason  *string `gorm:"size:1024;column:status_reason"`

	// Message references the posted chat representation for re-rendering.
	Message string `gorm:"size:64"`

	CreatedAt time.Time  `gorm:"type:datetime(6);index:idx_namespace_extends,priority:3"`
	DeletedAt *time.Time `gorm:"type:datetime(6)"`
	Deleter   *string    `gorm:"size:64"`
}

func (Suggestion) TableName() string { return "suggestions" }

// TopLevel reports whether the record carries its own sequence number.
func (s *Suggestion) TopLevel() bool { return s.Extends == nil }

// Deleted reports whether the record has been tombstoned.
func (s *Suggestion) Deleted() bool { return s.DeletedAt != nil }
