package filter

import "github.com/cuemby/vecta-go/pkg/verrors"

// RESTFilter is the legacy JSON shape: {operator, path, valueX}, understood
// by servers predating the RPC filter message, per spec.md §4.5.
type RESTFilter struct {
	Operator string       `json:"operator"`
	Operands []RESTFilter `json:"operands,omitempty"`
	Path     []string     `json:"path,omitempty"`

	ValueText        *string   `json:"valueText,omitempty"`
	ValueTextArray   []string  `json:"valueTextArray,omitempty"`
	ValueInt         *int64    `json:"valueInt,omitempty"`
	ValueIntArray    []int64   `json:"valueIntArray,omitempty"`
	ValueNumber      *float64  `json:"valueNumber,omitempty"`
	ValueNumberArray []float64 `json:"valueNumberArray,omitempty"`
	ValueBoolean     *bool     `json:"valueBoolean,omitempty"`
	ValueBooleanArray []bool   `json:"valueBooleanArray,omitempty"`
	ValueGeoRange    *RESTGeoRange `json:"valueGeoRange,omitempty"`
}

// RESTGeoRange mirrors GeoRange in the legacy shape.
type RESTGeoRange struct {
	GeoCoordinates struct {
		Latitude  float32 `json:"latitude"`
		Longitude float32 `json:"longitude"`
	} `json:"geoCoordinates"`
	Distance struct {
		Max float32 `json:"max"`
	} `json:"distance"`
}

// EncodeREST renders a filter tree into the legacy REST/GraphQL shape.
// Reference traversal is rejected outright: servers old enough to need
// this encoder predate reference-traversal filter support, per spec.md §4.5.
func EncodeREST(n Node) (RESTFilter, error) {
	switch v := n.(type) {
	case And:
		operands, err := encodeOperandsREST(v.Operands)
		if err != nil {
			return RESTFilter{}, err
		}
		return RESTFilter{Operator: "And", Operands: operands}, nil
	case Or:
		operands, err := encodeOperandsREST(v.Operands)
		if err != nil {
			return RESTFilter{}, err
		}
		return RESTFilter{Operator: "Or", Operands: operands}, nil
	case Value:
		return encodeValueREST(v)
	default:
		return RESTFilter{}, &verrors.InvalidInputError{Field: "filter", Reason: "unknown node type"}
	}
}

func encodeOperandsREST(nodes []Node) ([]RESTFilter, error) {
	out := make([]RESTFilter, len(nodes))
	for i, n := range nodes {
		f, err := EncodeREST(n)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func encodeValueREST(v Value) (RESTFilter, error) {
	if v.Target.IsReference {
		return RESTFilter{}, &verrors.InvalidInputError{
			Field:  "target",
			Reason: "reference traversal filters are not supported by this server version; upgrade or use the RPC transport",
		}
	}

	out := RESTFilter{
		Operator:          restOperatorName(v.Operator),
		Path:              v.Target.Path,
		ValueText:         v.Text,
		ValueTextArray:    v.TextArray,
		ValueInt:          v.Int,
		ValueIntArray:     v.IntArray,
		ValueNumber:       v.Number,
		ValueNumberArray:  v.NumberArray,
		ValueBoolean:      v.Bool,
		ValueBooleanArray: v.BoolArray,
	}
	if v.Geo != nil {
		geo := &RESTGeoRange{}
		geo.GeoCoordinates.Latitude = v.Geo.Latitude
		geo.GeoCoordinates.Longitude = v.Geo.Longitude
		geo.Distance.Max = v.Geo.Distance
		out.ValueGeoRange = geo
	}
	return out, nil
}

// restOperatorName maps the shared Operator tag to the legacy REST
// capitalized operator names (e.g. "equal" -> "Equal").
func restOperatorName(op Operator) string {
	switch op {
	case OpEqual:
		return "Equal"
	case OpNotEqual:
		return "NotEqual"
	case OpLessThan:
		return "LessThan"
	case OpLessThanEqual:
		return "LessThanEqual"
	case OpGreaterThan:
		return "GreaterThan"
	case OpGreaterThanEqual:
		return "GreaterThanEqual"
	case OpLike:
		return "Like"
	case OpIsNull:
		return "IsNull"
	case OpContainsAny:
		return "ContainsAny"
	case OpContainsAll:
		return "ContainsAll"
	case OpWithinGeoRange:
		return "WithinGeoRange"
	default:
		return string(op)
	}
}
