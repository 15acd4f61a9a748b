// Package models holds the wire-agnostic domain types shared by every
// package in the client: collections, properties, objects, references,
// tenants, and batch result shapes. It mirrors the plain-struct style of
// the teacher repo's pkg/types, generalized from cluster/node entities to
// the vector database's object model.
package models

// Collection describes a named schema collection. Names are always
// capitalized on first letter by NormalizeCollectionName; comparisons in
// admin paths are case-insensitive, but data paths use the exact
// normalized form.
type Collection struct {
	Name                string
	Description         string
	Properties          []Property
	VectorizerConfig     map[string]any
	MultiTenancyEnabled bool
	ReplicationFactor   int
}

// NormalizeCollectionName capitalizes the first rune of name, leaving the
// rest untouched, matching the server's canonical collection naming.
func NormalizeCollectionName(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - ('a' - 'A')
	}
	return string(r)
}

// DataType is a scalar, array, or reference property type tag.
type DataType string

const (
	DataTypeText   DataType = "text"
	DataTypeInt    DataType = "int"
	DataTypeNumber DataType = "number"
	DataTypeBool   DataType = "bool"
	DataTypeDate   DataType = "date"
	DataTypeUUID   DataType = "uuid"
	DataTypeBlob   DataType = "blob"
	DataTypeGeo    DataType = "geo"
	DataTypePhone  DataType = "phone"

	DataTypeTextArray   DataType = "text[]"
	DataTypeIntArray    DataType = "int[]"
	DataTypeNumberArray DataType = "number[]"
	DataTypeBoolArray   DataType = "bool[]"
	DataTypeDateArray   DataType = "date[]"
	DataTypeUUIDArray   DataType = "uuid[]"

	// DataTypeNested is the supplemented nested-object property type,
	// grounded on original_source's collection.classes module, carrying
	// its own nested property list.
	DataTypeNested DataType = "object"

	// DataTypeReference marks a property whose DataType is a reference;
	// TargetCollections holds one (single-target) or many (multi-target)
	// collection names.
	DataTypeReference DataType = "cref"
)

// Property is one field of a Collection's schema.
type Property struct {
	Name              string
	DataType          DataType
	TargetCollections []string // only set when DataType == DataTypeReference
	NestedProperties  []Property // only set when DataType == DataTypeNested
	IndexFilterable   *bool
	IndexSearchable   *bool
	Tokenization      string
	Description       string
	VectorizerConfig  map[string]any
}
