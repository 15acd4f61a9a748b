package filter

import (
	"fmt"

	"github.com/cuemby/vecta-go/pkg/verrors"
)

// RPCFilters is the wire shape of the recursive Filters message the RPC
// transport sends, per spec.md §4.5. It is a plain struct rather than a
// generated protobuf type because the retrieval pack carries no .proto
// sources for this service; pkg/rpc's codec marshals it with
// encoding/json, using the json field tags below, instead of protobuf wire format. See
// DESIGN.md for the grounding of this decision.
type RPCFilters struct {
	Operator string `json:"operator"`

	// Set when Operator is "and"/"or".
	Operands []RPCFilters `json:"operands,omitempty"`

	// Set on a leaf node.
	On               string   `json:"on,omitempty"`
	SingleTargetOn    string   `json:"single_target_on,omitempty"`
	SingleTargetLink  string   `json:"single_target_link,omitempty"`
	MultiTargetOn     string   `json:"multi_target_on,omitempty"`
	MultiTargetLink   string   `json:"multi_target_link,omitempty"`
	MultiTargetCollection string `json:"multi_target_collection,omitempty"`

	ValueText        *string   `json:"value_text,omitempty"`
	ValueTextArray   []string  `json:"value_text_array,omitempty"`
	ValueInt         *int64    `json:"value_int,omitempty"`
	ValueIntArray    []int64   `json:"value_int_array,omitempty"`
	ValueNumber      *float64  `json:"value_number,omitempty"`
	ValueNumberArray []float64 `json:"value_number_array,omitempty"`
	ValueBoolean     *bool     `json:"value_boolean,omitempty"`
	ValueBooleanArray []bool   `json:"value_boolean_array,omitempty"`
	ValueGeo         *RPCGeoRange `json:"value_geo,omitempty"`
}

// RPCGeoRange mirrors GeoRange on the wire.
type RPCGeoRange struct {
	Latitude  float32 `json:"latitude"`
	Longitude float32 `json:"longitude"`
	Distance  float32 `json:"distance"`
}

// EncodeRPC renders a filter tree into its RPC message form. Dates and
// UUIDs are plain strings in ValueText/ValueTextArray; the caller is
// responsible for having already formatted them canonically.
func EncodeRPC(n Node) (RPCFilters, error) {
	switch v := n.(type) {
	case And:
		operands, err := encodeOperandsRPC(v.Operands)
		if err != nil {
			return RPCFilters{}, err
		}
		return RPCFilters{Operator: "and", Operands: operands}, nil
	case Or:
		operands, err := encodeOperandsRPC(v.Operands)
		if err != nil {
			return RPCFilters{}, err
		}
		return RPCFilters{Operator: "or", Operands: operands}, nil
	case Value:
		return encodeValueRPC(v)
	default:
		return RPCFilters{}, fmt.Errorf("filter: unknown node type %T", n)
	}
}

func encodeOperandsRPC(nodes []Node) ([]RPCFilters, error) {
	out := make([]RPCFilters, len(nodes))
	for i, n := range nodes {
		f, err := EncodeRPC(n)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func encodeValueRPC(v Value) (RPCFilters, error) {
	out := RPCFilters{Operator: string(v.Operator)}

	if v.Target.IsReference {
		if v.Target.Inner == nil {
			return RPCFilters{}, &verrors.InvalidInputError{Field: "target", Reason: "reference traversal requires an inner target"}
		}
		if v.Target.MultiTarget {
			out.MultiTargetOn = v.Target.LinkOn
			out.MultiTargetLink = joinPath(v.Target.Inner.Path)
			out.MultiTargetCollection = v.Target.TargetCollection
		} else {
			out.SingleTargetOn = v.Target.LinkOn
			out.SingleTargetLink = joinPath(v.Target.Inner.Path)
		}
	} else {
		out.On = joinPath(v.Target.Path)
	}

	out.ValueText = v.Text
	out.ValueTextArray = v.TextArray
	out.ValueInt = v.Int
	out.ValueIntArray = v.IntArray
	out.ValueNumber = v.Number
	out.ValueNumberArray = v.NumberArray
	out.ValueBoolean = v.Bool
	out.ValueBooleanArray = v.BoolArray
	if v.Geo != nil {
		out.ValueGeo = &RPCGeoRange{Latitude: v.Geo.Latitude, Longitude: v.Geo.Longitude, Distance: v.Geo.Distance}
	}
	return out, nil
}

func joinPath(path []string) string {
	if len(path) == 1 {
		return path[0]
	}
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
