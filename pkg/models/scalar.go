package models

// DecodeJSONScalar converts one decoded encoding/json value (string,
// float64, or bool) into a scalar PropertyValue. Shared by any caller
// decoding a raw properties map off the wire, such as pkg/collection's
// object decoder and pkg/debug's REST object lookup.
func DecodeJSONScalar(v any) PropertyValue {
	switch t := v.(type) {
	case string:
		return PropertyValue{Kind: PropertyValueText, Text: t}
	case float64:
		return PropertyValue{Kind: PropertyValueNumber, Number: t}
	case bool:
		return PropertyValue{Kind: PropertyValueBool, Bool: t}
	default:
		return PropertyValue{Kind: PropertyValueText}
	}
}
