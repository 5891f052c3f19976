package models

// Document is a binary blob attached to one slot of one record.
// Its canonical archive name is derived from the owning record, never stored.
type Document struct {
	Name        string `json:"name"`                  // original upload name, or canonical name after import
	ContentType string `json:"contentType,omitempty"` // detected MIME type
	Data        []byte `json:"data"`
}

// NewDocument creates a document from raw bytes
func NewDocument(name, contentType string, data []byte) *Document {
	return &Document{
		Name:        name,
		ContentType: contentType,
		Data:        data,
	}
}

// Size returns the blob length in bytes
func (d *Document) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Data)
}

// IsEmpty reports whether the slot holding d should be treated as unpopulated
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Data) == 0
}
