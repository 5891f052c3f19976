// Package formstate holds the in-progress record list of one form session.
package formstate

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/garyjia/badge-intake/internal/models"
)

var (
	ErrEntryNotFound = errors.New("form entry not found")
	ErrIndexRange    = errors.New("insert index out of range")
)

type entry[R models.Record] struct {
	key    uuid.UUID
	record R
}

// Form is an ordered list of records keyed by stable identifiers. Every
// document put into a slot gets a preview handle, revoked when the slot is
// replaced, the entry is removed, the form is replaced or closed.
type Form[R models.Record] struct {
	entries  []entry[R]
	previews *Previews
}

// New creates an empty form that issues previews from p; nil creates a private registry
func New[R models.Record](p *Previews) *Form[R] {
	if p == nil {
		p = NewPreviews()
	}
	return &Form[R]{previews: p}
}

// Previews exposes the handle registry of the form
func (f *Form[R]) Previews() *Previews {
	return f.previews
}

// Len returns the number of entries
func (f *Form[R]) Len() int {
	return len(f.entries)
}

// Keys returns entry keys in order
func (f *Form[R]) Keys() []uuid.UUID {
	keys := make([]uuid.UUID, len(f.entries))
	for i, e := range f.entries {
		keys[i] = e.key
	}
	return keys
}

// Records returns the records in order
func (f *Form[R]) Records() []R {
	records := make([]R, len(f.entries))
	for i, e := range f.entries {
		records[i] = e.record
	}
	return records
}

// Get returns the record stored under key
func (f *Form[R]) Get(key uuid.UUID) (R, bool) {
	if i := f.index(key); i >= 0 {
		return f.entries[i].record, true
	}
	var zero R
	return zero, false
}

// Append adds r at the end and returns its key
func (f *Form[R]) Append(r R) uuid.UUID {
	key := uuid.New()
	f.entries = append(f.entries, entry[R]{key: key, record: r})
	f.previewAll(key, r)
	return key
}

// Insert places r at position i, shifting later entries
func (f *Form[R]) Insert(i int, r R) (uuid.UUID, error) {
	if i < 0 || i > len(f.entries) {
		return uuid.Nil, fmt.Errorf("%w: %d", ErrIndexRange, i)
	}
	key := uuid.New()
	f.entries = append(f.entries, entry[R]{})
	copy(f.entries[i+1:], f.entries[i:])
	f.entries[i] = entry[R]{key: key, record: r}
	f.previewAll(key, r)
	return key, nil
}

// Remove deletes the entry under key and revokes its previews
func (f *Form[R]) Remove(key uuid.UUID) error {
	i := f.index(key)
	if i < 0 {
		return ErrEntryNotFound
	}
	f.previews.RevokeEntry(key)
	f.entries = append(f.entries[:i:i], f.entries[i+1:]...)
	return nil
}

// SetDocument replaces the document in slot, revoking the old preview. It
// returns the new preview handle, or "" when doc is nil.
func (f *Form[R]) SetDocument(key uuid.UUID, slot models.Slot, doc *models.Document) (string, error) {
	i := f.index(key)
	if i < 0 {
		return "", ErrEntryNotFound
	}
	if err := f.entries[i].record.SetDocument(slot, doc); err != nil {
		return "", err
	}
	f.previews.Revoke(key, slot)
	if doc.IsEmpty() {
		return "", nil
	}
	return f.previews.Create(key, slot, doc), nil
}

// Replace swaps the whole record list in one step, as an import does. Every
// outstanding preview of the old list is revoked first.
func (f *Form[R]) Replace(records []R) []uuid.UUID {
	for _, e := range f.entries {
		f.previews.RevokeEntry(e.key)
	}
	f.entries = make([]entry[R], 0, len(records))
	keys := make([]uuid.UUID, len(records))
	for i, r := range records {
		keys[i] = uuid.New()
		f.entries = append(f.entries, entry[R]{key: keys[i], record: r})
		f.previewAll(keys[i], r)
	}
	return keys
}

// Close revokes every preview and empties the form
func (f *Form[R]) Close() {
	for _, e := range f.entries {
		f.previews.RevokeEntry(e.key)
	}
	f.entries = nil
}

func (f *Form[R]) previewAll(key uuid.UUID, r R) {
	for _, slot := range r.Slots() {
		if doc := r.Document(slot); !doc.IsEmpty() {
			f.previews.Create(key, slot, doc)
		}
	}
}

func (f *Form[R]) index(key uuid.UUID) int {
	for i, e := range f.entries {
		if e.key == key {
			return i
		}
	}
	return -1
}
