// Package search implements the fluent search request builder and its
// result decoder, per spec.md §4.6/§4.7. Grounded on the teacher's
// pkg/api/server.go proto-conversion-helper style (building one wire
// message from several optional Go-side fields), generalized from cluster
// RPC requests to search requests.
package search

import (
	"github.com/cuemby/vecta-go/pkg/capability"
	"github.com/cuemby/vecta-go/pkg/filter"
	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/cuemby/vecta-go/pkg/verrors"
)

// Builder assembles a single rpc.SearchRequest from mutually compatible
// parts. At most one probe (hybrid, bm25, near_vector, near_object,
// near_text, near_media) may be set; Build enforces this.
type Builder struct {
	collection string
	tenant     string

	hybrid     *rpc.HybridSearch
	bm25       *rpc.BM25Search
	nearVector *rpc.NearVectorSearch
	nearObject *rpc.NearObjectSearch
	nearText   *rpc.NearTextSearch
	nearMedia  *rpc.NearMediaSearch

	limit     *int64
	offset    *int64
	after     string
	autoLimit *int64
	sort      []rpc.SortBy
	filterAST filter.Node

	groupBy    *rpc.GroupBy
	generative *rpc.Generative

	returnMetadata   []string
	returnProperties []rpc.ReturnPropertyNode

	probesSet int
}

// NewBuilder starts a search against collection.
func NewBuilder(collection string) *Builder {
	return &Builder{collection: collection}
}

// WithTenant scopes the search to a tenant.
func (b *Builder) WithTenant(tenant string) *Builder {
	b.tenant = tenant
	return b
}

// Hybrid sets the hybrid keyword+vector probe.
func (b *Builder) Hybrid(h rpc.HybridSearch) *Builder {
	b.hybrid = &h
	b.probesSet++
	return b
}

// BM25 sets the keyword-only probe.
func (b *Builder) BM25(q rpc.BM25Search) *Builder {
	b.bm25 = &q
	b.probesSet++
	return b
}

// NearVector sets the raw/named-vector probe.
func (b *Builder) NearVector(n rpc.NearVectorSearch) *Builder {
	b.nearVector = &n
	b.probesSet++
	return b
}

// NearObject sets the existing-object-vector probe.
func (b *Builder) NearObject(n rpc.NearObjectSearch) *Builder {
	b.nearObject = &n
	b.probesSet++
	return b
}

// NearText sets the concept probe, validating move_to/move_away per
// spec.md §4.6 ("require at least one of concepts or objects").
func (b *Builder) NearText(n rpc.NearTextSearch) (*Builder, error) {
	if n.MoveTo != nil && len(n.MoveTo.Concepts) == 0 && len(n.MoveTo.Objects) == 0 {
		return b, &verrors.InvalidInputError{Field: "move_to", Reason: "requires at least one of concepts or objects"}
	}
	if n.MoveAway != nil && len(n.MoveAway.Concepts) == 0 && len(n.MoveAway.Objects) == 0 {
		return b, &verrors.InvalidInputError{Field: "move_away", Reason: "requires at least one of concepts or objects"}
	}
	b.nearText = &n
	b.probesSet++
	return b, nil
}

// NearMedia sets a media probe (image/audio/video/thumbnail/imu/depth).
func (b *Builder) NearMedia(n rpc.NearMediaSearch) *Builder {
	b.nearMedia = &n
	b.probesSet++
	return b
}

// Limit sets the result page size.
func (b *Builder) Limit(n int64) *Builder {
	b.limit = &n
	return b
}

// Offset sets the result page offset.
func (b *Builder) Offset(n int64) *Builder {
	b.offset = &n
	return b
}

// After sets a cursor-by-UUID, incompatible with vector/keyword probes per
// spec.md §4.6.
func (b *Builder) After(uuid string) *Builder {
	b.after = uuid
	return b
}

// AutoLimit sets autocut; 0 disables it, per spec.md §4.6.
func (b *Builder) AutoLimit(n int64) *Builder {
	b.autoLimit = &n
	return b
}

// Sort appends one sort key.
func (b *Builder) Sort(property string, ascending bool) *Builder {
	b.sort = append(b.sort, rpc.SortBy{Property: property, Ascending: ascending})
	return b
}

// Filter sets the filter tree.
func (b *Builder) Filter(f filter.Node) *Builder {
	b.filterAST = f
	return b
}

// GroupBy requests server-side grouping.
func (b *Builder) GroupBy(property string, numberOfGroups, objectsPerGroup int64) *Builder {
	b.groupBy = &rpc.GroupBy{Property: property, NumberOfGroups: numberOfGroups, ObjectsPerGroup: objectsPerGroup}
	return b
}

// Generative requests RAG augmentation.
func (b *Builder) Generative(g rpc.Generative) *Builder {
	b.generative = &g
	return b
}

// ReturnMetadata selects which metadata fields come back.
func (b *Builder) ReturnMetadata(fields ...string) *Builder {
	b.returnMetadata = fields
	return b
}

// ReturnProperties selects which properties (and reference traversals)
// come back.
func (b *Builder) ReturnProperties(nodes ...rpc.ReturnPropertyNode) *Builder {
	b.returnProperties = nodes
	return b
}

// Build validates and assembles the final SearchRequest, gating
// capability-sensitive fields through gate.
func (b *Builder) Build(gate *capability.Gate) (*rpc.SearchRequest, error) {
	if b.probesSet > 1 {
		return nil, &verrors.InvalidInputError{Field: "probe", Reason: "at most one of hybrid, bm25, near_vector, near_object, near_text, near_media may be set"}
	}
	if b.after != "" && b.probesSet > 0 {
		return nil, &verrors.InvalidInputError{Field: "after", Reason: "cursor pagination is incompatible with vector/keyword probes"}
	}

	if b.nearVector != nil && len(b.nearVector.NamedVectors) > 0 {
		if err := gate.RequireNamedVectors(); err != nil {
			return nil, err
		}
	}
	if b.nearVector != nil && len(b.nearVector.TargetVectors) > 1 {
		if err := gate.RequireMultiTargetVectorJoin(); err != nil {
			return nil, err
		}
	}

	req := &rpc.SearchRequest{
		Collection: b.collection,
		Tenant:     b.tenant,
		Hybrid:     b.hybrid,
		BM25:       b.bm25,
		NearVector: b.nearVector,
		NearObject: b.nearObject,
		NearText:   b.nearText,
		NearMedia:  b.nearMedia,
		Limit:      b.limit,
		Offset:     b.offset,
		After:      b.after,
		AutoLimit:  b.autoLimit,
		Sort:       b.sort,
		GroupBy:    b.groupBy,
		Generative: b.generative,
	}

	if b.filterAST != nil {
		if hasReferenceTraversal(b.filterAST) {
			if err := gate.RequireReferenceFilters(); err != nil {
				return nil, err
			}
		}
		encoded, err := filter.EncodeRPC(b.filterAST)
		if err != nil {
			return nil, err
		}
		req.Filters = &encoded
	}

	// If neither return_metadata nor return_properties is specified, ask
	// for all properties and all metadata except vector, per spec.md §4.6.
	if len(b.returnMetadata) == 0 && len(b.returnProperties) == 0 {
		req.ReturnMetadata = defaultMetadataFields()
	} else {
		req.ReturnMetadata = b.returnMetadata
		req.ReturnProperties = b.returnProperties
	}

	return req, nil
}

func defaultMetadataFields() []string {
	return []string{"uuid", "creation_time_unix", "last_update_time_unix", "distance", "certainty", "score", "explain_score", "is_consistent", "generative"}
}

func hasReferenceTraversal(n filter.Node) bool {
	switch v := n.(type) {
	case filter.And:
		for _, op := range v.Operands {
			if hasReferenceTraversal(op) {
				return true
			}
		}
	case filter.Or:
		for _, op := range v.Operands {
			if hasReferenceTraversal(op) {
				return true
			}
		}
	case filter.Value:
		return v.Target.IsReference
	}
	return false
}
