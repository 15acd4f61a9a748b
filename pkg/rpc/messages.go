package rpc

import (
	"github.com/cuemby/vecta-go/pkg/filter"
)

// SearchRequest is the wire shape of a composed search, per spec.md §4.6.
// Fields mirror the Search Builder's assembled state one-to-one; the
// builder is responsible for enforcing that at most one probe is set.
type SearchRequest struct {
	Collection string `json:"collection"`
	Tenant     string `json:"tenant,omitempty"`

	Hybrid     *HybridSearch     `json:"hybrid,omitempty"`
	BM25       *BM25Search       `json:"bm25,omitempty"`
	NearVector *NearVectorSearch `json:"near_vector,omitempty"`
	NearObject *NearObjectSearch `json:"near_object,omitempty"`
	NearText   *NearTextSearch   `json:"near_text,omitempty"`
	NearMedia  *NearMediaSearch  `json:"near_media,omitempty"`

	Limit     *int64   `json:"limit,omitempty"`
	Offset    *int64   `json:"offset,omitempty"`
	After     string   `json:"after,omitempty"`
	AutoLimit *int64   `json:"autocut,omitempty"`
	Sort      []SortBy `json:"sort,omitempty"`

	Filters *filter.RPCFilters `json:"filters,omitempty"`

	GroupBy    *GroupBy    `json:"group_by,omitempty"`
	Generative *Generative `json:"generative,omitempty"`

	ReturnMetadata   []string             `json:"return_metadata,omitempty"`
	ReturnProperties []ReturnPropertyNode `json:"return_properties,omitempty"`
}

// HybridSearch fuses keyword and vector search.
type HybridSearch struct {
	Query       string    `json:"query"`
	Alpha       float64   `json:"alpha"`
	Vector      []float32 `json:"vector,omitempty"`
	TargetVectors []string `json:"target_vectors,omitempty"`
}

// BM25Search is a pure keyword probe.
type BM25Search struct {
	Query      string   `json:"query"`
	Properties []string `json:"properties,omitempty"`
}

// NearVectorSearch probes by raw vector or named vectors.
type NearVectorSearch struct {
	Vector        []float32            `json:"vector,omitempty"`
	NamedVectors  map[string][]float32 `json:"named_vectors,omitempty"`
	Certainty     *float64             `json:"certainty,omitempty"`
	Distance      *float64             `json:"distance,omitempty"`
	TargetVectors []string             `json:"target_vectors,omitempty"`
	JoinStrategy  string               `json:"join_strategy,omitempty"`
}

// NearObjectSearch probes by an existing object's vector.
type NearObjectSearch struct {
	UUID      string   `json:"uuid"`
	Certainty *float64 `json:"certainty,omitempty"`
	Distance  *float64 `json:"distance,omitempty"`
}

// NearTextSearch probes by concepts, with optional move_to/move_away.
type NearTextSearch struct {
	Concepts  []string      `json:"concepts"`
	Certainty *float64      `json:"certainty,omitempty"`
	Distance  *float64      `json:"distance,omitempty"`
	MoveTo    *NearTextMove `json:"move_to,omitempty"`
	MoveAway  *NearTextMove `json:"move_away,omitempty"`
}

// NearTextMove is a move_to/move_away operand: at least one of Concepts or
// Objects must be set, per spec.md §4.6.
type NearTextMove struct {
	Concepts []string `json:"concepts,omitempty"`
	Objects  []string `json:"objects,omitempty"`
	Force    float32  `json:"force"`
}

// NearMediaKind names which media probe variant is active.
type NearMediaKind string

const (
	NearMediaImage     NearMediaKind = "image"
	NearMediaAudio     NearMediaKind = "audio"
	NearMediaVideo     NearMediaKind = "video"
	NearMediaThumbnail NearMediaKind = "thumbnail"
	NearMediaIMU       NearMediaKind = "imu"
	NearMediaDepth     NearMediaKind = "depth"
)

// NearMediaSearch probes by a base64-encoded media blob.
type NearMediaSearch struct {
	Kind      NearMediaKind `json:"kind"`
	Media     string        `json:"media"` // base64
	Certainty *float64      `json:"certainty,omitempty"`
	Distance  *float64      `json:"distance,omitempty"`
}

// SortBy is one sort key in the request's sort list.
type SortBy struct {
	Property  string `json:"property"`
	Ascending bool   `json:"ascending"`
}

// GroupBy requests server-side grouping of results.
type GroupBy struct {
	Property        string `json:"property"`
	NumberOfGroups   int64  `json:"number_of_groups"`
	ObjectsPerGroup  int64  `json:"objects_per_group"`
}

// Generative requests RAG-style augmentation of results.
type Generative struct {
	SinglePrompt      string   `json:"single_prompt,omitempty"`
	GroupedTask       string   `json:"grouped_task,omitempty"`
	GroupedProperties []string `json:"grouped_properties,omitempty"`
}

// ReturnPropertyNode is one entry of return_properties: a plain property
// name, or a reference traversal carrying its own nested metadata and
// properties, per spec.md §4.6.
type ReturnPropertyNode struct {
	Name string `json:"name"`

	IsReference      bool                 `json:"is_reference,omitempty"`
	ReturnMetadata   []string             `json:"return_metadata,omitempty"`
	ReturnProperties []ReturnPropertyNode `json:"return_properties,omitempty"`
}

// SearchReply is the raw decoded wire response for a Search call.
type SearchReply struct {
	Results              []SearchResultItem `json:"results"`
	GroupByResults       []GroupByResult    `json:"group_by_results,omitempty"`
	GenerativeGroupedResult string          `json:"generative_grouped_result,omitempty"`
}

// SearchResultItem is one object in a SearchReply, in the raw shape
// pkg/search's decoder consumes (typed arrays keyed by property name,
// plus *_present sentinels for metadata), per spec.md §4.7.
type SearchResultItem struct {
	NonRefProperties map[string]any      `json:"non_ref_properties,omitempty"`
	IntArrayProps    map[string][]int64  `json:"int_array,omitempty"`
	NumberArrayProps map[string][]float64 `json:"number_array,omitempty"`
	TextArrayProps   map[string][]string `json:"text_array,omitempty"`
	BoolArrayProps   map[string][]bool   `json:"boolean_array,omitempty"`
	RefProps         map[string]RefPropResult `json:"ref_props,omitempty"`

	Metadata RawMetadata `json:"metadata"`
}

// RefPropResult is the raw nested shape of one return_properties reference
// traversal entry: the linked objects, recursively in the same shape.
type RefPropResult struct {
	Objects []SearchResultItem `json:"objects"`
}

// RawMetadata carries every optional metadata field alongside an explicit
// presence sentinel, matching spec.md §4.7's "copy only the fields whose
// *_present sentinel is set".
type RawMetadata struct {
	UUID               string  `json:"uuid,omitempty"`
	UUIDPresent        bool    `json:"uuid_present,omitempty"`
	Vector             []float32 `json:"vector,omitempty"`
	VectorPresent      bool    `json:"vector_present,omitempty"`
	NamedVectors       map[string][]float32 `json:"named_vectors,omitempty"`
	CreationTimeUnix   int64   `json:"creation_time_unix,omitempty"`
	CreationTimePresent bool   `json:"creation_time_unix_present,omitempty"`
	LastUpdateTimeUnix int64   `json:"last_update_time_unix,omitempty"`
	LastUpdateTimePresent bool `json:"last_update_time_unix_present,omitempty"`
	Distance           float64 `json:"distance,omitempty"`
	DistancePresent    bool    `json:"distance_present,omitempty"`
	Certainty          float64 `json:"certainty,omitempty"`
	CertaintyPresent   bool    `json:"certainty_present,omitempty"`
	Score              float64 `json:"score,omitempty"`
	ScorePresent       bool    `json:"score_present,omitempty"`
	ExplainScore       string  `json:"explain_score,omitempty"`
	ExplainScorePresent bool   `json:"explain_score_present,omitempty"`
	IsConsistent       bool    `json:"is_consistent,omitempty"`
	IsConsistentPresent bool   `json:"is_consistent_present,omitempty"`
	Generative         string  `json:"generative,omitempty"`
	GenerativePresent  bool    `json:"generative_present,omitempty"`
}

// GroupByResult is one named group in a grouped search reply.
type GroupByResult struct {
	GroupName   string              `json:"group_name"`
	MinDistance float64             `json:"min_distance"`
	MaxDistance float64             `json:"max_distance"`
	Count       int64               `json:"count"`
	Objects     []SearchResultItem  `json:"objects"`
}

// BatchObjectsRequest carries one flush's worth of objects to ingest.
type BatchObjectsRequest struct {
	Collection string            `json:"collection"`
	Tenant     string            `json:"tenant,omitempty"`
	Objects    []BatchObjectWire `json:"objects"`
}

// BatchObjectWire is one object's wire form for batch ingest.
type BatchObjectWire struct {
	UUID       string         `json:"uuid"`
	Properties map[string]any `json:"properties"`
	Vector     []float32      `json:"vector,omitempty"`
	NamedVectors map[string][]float32 `json:"named_vectors,omitempty"`
	References map[string][]string   `json:"references,omitempty"` // property -> beacons
}

// BatchObjectsReply is the per-item outcome of a BatchObjects call.
type BatchObjectsReply struct {
	Results []BatchItemOutcome `json:"results"`
}

// BatchItemOutcome is one item's raw result, matched by index to the
// request's Objects slice.
type BatchItemOutcome struct {
	UUID   string   `json:"uuid,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TenantsGetRequest lists tenants of a collection.
type TenantsGetRequest struct {
	Collection string `json:"collection"`
}

// TenantsGetReply is the raw tenant list.
type TenantsGetReply struct {
	Tenants []TenantWire `json:"tenants"`
}

// TenantWire is one tenant's wire form.
type TenantWire struct {
	Name           string `json:"name"`
	ActivityStatus string `json:"activity_status"`
}

// AggregateRequest composes an aggregate query over the RPC transport,
// available from server 1.29.0 onward per the capability gate.
type AggregateRequest struct {
	Collection  string              `json:"collection"`
	Tenant      string              `json:"tenant,omitempty"`
	Filters     *filter.RPCFilters  `json:"filters,omitempty"`
	GroupBy     *GroupBy            `json:"group_by,omitempty"`
	ObjectLimit *int64              `json:"object_limit,omitempty"`
}

// AggregateReply is the raw aggregate response.
type AggregateReply struct {
	Groups []AggregateGroup `json:"groups"`
}

// AggregateGroup is one aggregated bucket.
type AggregateGroup struct {
	GroupedBy map[string]any            `json:"grouped_by,omitempty"`
	Metrics   map[string]map[string]any `json:"metrics"`
	Count     int64                     `json:"count"`
}

// HealthCheckRequest carries no fields; the RPC name alone identifies it.
type HealthCheckRequest struct{}

// HealthCheckReply is the server's liveness response.
type HealthCheckReply struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}
