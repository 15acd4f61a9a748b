package search

import (
	"github.com/cuemby/vecta-go/pkg/models"
	"github.com/cuemby/vecta-go/pkg/rpc"
)

// Result is one decoded search hit, pairing an Object with any nested
// reference expansions the server returned.
type Result struct {
	Object models.Object
}

// GroupResult is one named bucket of a group_by search, per spec.md §4.7.
type GroupResult struct {
	Name        string
	MinDistance float64
	MaxDistance float64
	Count       int64
	Objects     []Result
}

// Decoded is the fully decoded outcome of one Search call.
type Decoded struct {
	Results               []Result
	Groups                []GroupResult
	GenerativeGroupedResult string
}

// DecodeReply implements spec.md §4.7's five-step decode: assemble
// Properties from the typed arrays, recursively decode ref_props,
// build MetadataReturn from *_present sentinels, decode group_by, and
// attach generative results.
func DecodeReply(reply *rpc.SearchReply) Decoded {
	out := Decoded{
		Results:                 make([]Result, 0, len(reply.Results)),
		GenerativeGroupedResult: reply.GenerativeGroupedResult,
	}
	for _, item := range reply.Results {
		out.Results = append(out.Results, decodeItem(item))
	}
	for _, g := range reply.GroupByResults {
		group := GroupResult{Name: g.GroupName, MinDistance: g.MinDistance, MaxDistance: g.MaxDistance, Count: g.Count}
		for _, item := range g.Objects {
			group.Objects = append(group.Objects, decodeItem(item))
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}

func decodeItem(item rpc.SearchResultItem) Result {
	return Result{Object: decodeObject(item)}
}

// decodeObject decodes one SearchResultItem into an Object, recursing into
// ref_props so that a reference traversal requested via ReturnProperties
// comes back with its linked objects fully decoded rather than as bare
// UUIDs, per spec.md §4.7 step 2 ("Reference objects carry their own
// metadata and may carry further nested references").
func decodeObject(item rpc.SearchResultItem) models.Object {
	props := make(map[string]models.PropertyValue, len(item.NonRefProperties))
	for name, v := range item.NonRefProperties {
		props[name] = decodeScalar(v)
	}
	for name, arr := range item.IntArrayProps {
		props[name] = models.PropertyValue{Kind: models.PropertyValueArray, IntArray: arr}
	}
	for name, arr := range item.NumberArrayProps {
		props[name] = models.PropertyValue{Kind: models.PropertyValueArray, NumberArray: arr}
	}
	for name, arr := range item.TextArrayProps {
		props[name] = models.PropertyValue{Kind: models.PropertyValueArray, TextArray: arr}
	}
	for name, arr := range item.BoolArrayProps {
		props[name] = models.PropertyValue{Kind: models.PropertyValueArray, BoolArray: arr}
	}

	var refs map[string]models.Reference
	if len(item.RefProps) > 0 {
		refs = make(map[string]models.Reference, len(item.RefProps))
		for name, rp := range item.RefProps {
			var uuids []string
			objects := make([]models.Object, 0, len(rp.Objects))
			for _, nested := range rp.Objects {
				if nested.Metadata.UUID != "" {
					uuids = append(uuids, nested.Metadata.UUID)
				}
				objects = append(objects, decodeObject(nested))
			}
			refs[name] = models.Reference{UUIDs: uuids, Objects: objects}
		}
	}

	obj := models.Object{
		Properties: props,
		References: refs,
		Metadata:   decodeMetadata(item.Metadata),
	}
	if item.Metadata.UUIDPresent {
		obj.UUID = item.Metadata.UUID
	}
	if item.Metadata.VectorPresent {
		obj.Vector = item.Metadata.Vector
	}
	return obj
}

// decodeScalar converts an untyped non_ref_properties value. Without a
// typed data-model hint, values pass through as given (spec.md §4.7 step
// 4: "When no hint is present, values pass through as given").
func decodeScalar(v any) models.PropertyValue {
	switch t := v.(type) {
	case string:
		return models.PropertyValue{Kind: models.PropertyValueText, Text: t}
	case float64:
		return models.PropertyValue{Kind: models.PropertyValueNumber, Number: t}
	case bool:
		return models.PropertyValue{Kind: models.PropertyValueBool, Bool: t}
	default:
		return models.PropertyValue{Kind: models.PropertyValueText}
	}
}

// decodeMetadata builds a MetadataReturn copying only the fields whose
// *_present sentinel is set, per spec.md §4.7 step 3.
func decodeMetadata(raw rpc.RawMetadata) *models.MetadataReturn {
	m := &models.MetadataReturn{}
	if raw.UUIDPresent {
		uuid := raw.UUID
		m.UUID = &uuid
	}
	if raw.VectorPresent {
		m.Vector = raw.Vector
	}
	if len(raw.NamedVectors) > 0 {
		m.NamedVectors = raw.NamedVectors
	}
	if raw.CreationTimePresent {
		v := raw.CreationTimeUnix
		m.CreationTimeUnix = &v
	}
	if raw.LastUpdateTimePresent {
		v := raw.LastUpdateTimeUnix
		m.LastUpdateTimeUnix = &v
	}
	if raw.DistancePresent {
		v := raw.Distance
		m.Distance = &v
	}
	if raw.CertaintyPresent {
		v := raw.Certainty
		m.Certainty = &v
	}
	if raw.ScorePresent {
		v := raw.Score
		m.Score = &v
	}
	if raw.ExplainScorePresent {
		v := raw.ExplainScore
		m.ExplainScore = &v
	}
	if raw.IsConsistentPresent {
		v := raw.IsConsistent
		m.IsConsistent = &v
	}
	if raw.GenerativePresent {
		v := raw.Generative
		m.Generative = &v
	}
	if m.IsEmpty() {
		return nil
	}
	return m
}
