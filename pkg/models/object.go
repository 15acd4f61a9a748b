package models

import "github.com/google/uuid"

// Object is one record in a collection: its identity, its typed
// properties, an optional vector (single or named), optional references,
// and, on a read path, decoded metadata.
type Object struct {
	UUID       string
	Properties map[string]PropertyValue
	Vector     []float32
	NamedVectors map[string][]float32
	References map[string]Reference
	Metadata   *MetadataReturn
	Tenant     string
}

// EnsureUUID returns o.UUID if set (it is not validated), otherwise generates and
// assigns a fresh v4 UUID, per spec.md §3 ("Missing UUID on ingest ⇒ the
// client generates a fresh v4 and reports it back as the success value").
func (o *Object) EnsureUUID() string {
	if o.UUID != "" {
		return o.UUID
	}
	o.UUID = uuid.NewString()
	return o.UUID
}

// ValidUUID reports whether s parses as a UUID of any version, matching
// spec.md §3's "version-agnostic" requirement.
func ValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
