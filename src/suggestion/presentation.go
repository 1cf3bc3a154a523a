package suggestion

// PresentationKind classifies how a record should be rendered.
type PresentationKind int

const (
	// PresentationUnset is a live record that has never been moderated.
	PresentationUnset PresentationKind = iota
	// PresentationActive is a live record with a moderation status.
	PresentationActive
	// PresentationTombstone is a soft-deleted record. Only the deleter is
	// exposed; title, body, teams and status are suppressed.
	PresentationTombstone
)

// Presentation is the pure projection handed to renderers. Tombstones
// distinguish a self-delete by the original author from a moderator
// delete.
type Presentation struct {
	Kind          PresentationKind
	Status        Status
	StatusLabel   string
	StatusUpdater string
	StatusReason  string
	Deleter       string
	SelfDeleted   bool
}

// Present projects a record's lifecycle state for rendering. No I/O.
func Present(rec *Suggestion) Presentation {
	if rec.DeletedAt != nil {
		p := Presentation{Kind: PresentationTombstone}
		if rec.Deleter != nil {
			p.Deleter = *rec.Deleter
			p.SelfDeleted = *rec.Deleter == rec.Author
		}
		return p
	}

	if rec.Status == nil {
		return Presentation{Kind: PresentationUnset}
	}

	p := Presentation{
		Kind:        PresentationActive,
		Status:      *rec.Status,
		StatusLabel: rec.Status.Label(),
	}
	if rec.StatusUpdater != nil {
		p.StatusUpdater = *rec.StatusUpdater
	}
	if rec.StatusReason != nil {
		p.StatusReason = *rec.StatusReason
	}
	return p
}
