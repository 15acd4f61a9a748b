package models

// MetadataReturn carries the optional, independently-present metadata
// fields a search or fetch result may include. Every field is a pointer
// (or has an explicit presence flag for zero-value-ambiguous types) so
// "not returned by server or not requested" is distinguishable from a
// legitimate zero value, per spec.md §3.
type MetadataReturn struct {
	UUID               *string
	Vector             []float32
	NamedVectors       map[string][]float32
	CreationTimeUnix   *int64
	LastUpdateTimeUnix *int64
	Distance           *float64
	Certainty          *float64
	Score              *float64
	ExplainScore       *string
	IsConsistent       *bool
	Generative         *string
}

// IsEmpty reports whether no metadata field was populated, used by the
// search decoder to decide whether to attach a nil MetadataReturn instead
// of an all-nil struct.
func (m *MetadataReturn) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.UUID == nil && m.Vector == nil && m.NamedVectors == nil &&
		m.CreationTimeUnix == nil && m.LastUpdateTimeUnix == nil &&
		m.Distance == nil && m.Certainty == nil && m.Score == nil &&
		m.ExplainScore == nil && m.IsConsistent == nil && m.Generative == nil
}
