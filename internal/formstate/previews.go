package formstate

import (
	"github.com/google/uuid"

	"github.com/garyjia/badge-intake/internal/models"
)

// HandlePrefix starts every preview handle
const HandlePrefix = "blob:"

type slotKey struct {
	entry uuid.UUID
	slot  models.Slot
}

// Previews tracks display handles derived from documents. Each handle is
// released exactly once; releasing an unknown or released handle does nothing.
type Previews struct {
	live     map[slotKey]string
	docs     map[string]*models.Document
	revoked  []string
	onRevoke func(handle string)
}

// NewPreviews creates an empty registry
func NewPreviews() *Previews {
	return &Previews{
		live: make(map[slotKey]string),
		docs: make(map[string]*models.Document),
	}
}

// OnRevoke registers a callback run once per released handle
func (p *Previews) OnRevoke(fn func(handle string)) {
	p.onRevoke = fn
}

// Create issues a handle for doc in (entry, slot), releasing any previous one there
func (p *Previews) Create(entry uuid.UUID, slot models.Slot, doc *models.Document) string {
	p.Revoke(entry, slot)
	handle := HandlePrefix + uuid.NewString()
	p.live[slotKey{entry, slot}] = handle
	p.docs[handle] = doc
	return handle
}

// Handle returns the live handle of (entry, slot)
func (p *Previews) Handle(entry uuid.UUID, slot models.Slot) (string, bool) {
	h, ok := p.live[slotKey{entry, slot}]
	return h, ok
}

// Resolve returns the document behind a live handle
func (p *Previews) Resolve(handle string) (*models.Document, bool) {
	doc, ok := p.docs[handle]
	return doc, ok
}

// Revoke releases the handle of (entry, slot) if one is live
func (p *Previews) Revoke(entry uuid.UUID, slot models.Slot) {
	k := slotKey{entry, slot}
	handle, ok := p.live[k]
	if !ok {
		return
	}
	delete(p.live, k)
	p.release(handle)
}

// RevokeEntry releases every handle of entry
func (p *Previews) RevokeEntry(entry uuid.UUID) {
	for k, handle := range p.live {
		if k.entry != entry {
			continue
		}
		delete(p.live, k)
		p.release(handle)
	}
}

// Live returns the number of outstanding handles
func (p *Previews) Live() int {
	return len(p.live)
}

// Revoked lists released handles in release order
func (p *Previews) Revoked() []string {
	return append([]string(nil), p.revoked...)
}

func (p *Previews) release(handle string) {
	delete(p.docs, handle)
	p.revoked = append(p.revoked, handle)
	if p.onRevoke != nil {
		p.onRevoke(handle)
	}
}
