package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textPtr(s string) *string { return &s }

func TestEncodeRPCLeaf(t *testing.T) {
	v := Value{
		Target:   Target{Path: []string{"title"}},
		Operator: OpEqual,
		Text:     textPtr("dune"),
	}
	out, err := EncodeRPC(v)
	require.NoError(t, err)
	assert.Equal(t, "equal", out.Operator)
	assert.Equal(t, "title", out.On)
	assert.Equal(t, "dune", *out.ValueText)
}

func TestEncodeRPCAndTree(t *testing.T) {
	tree := And{Operands: []Node{
		Value{Target: Target{Path: []string{"a"}}, Operator: OpEqual, Text: textPtr("x")},
		Value{Target: Target{Path: []string{"b"}}, Operator: OpEqual, Text: textPtr("y")},
	}}
	out, err := EncodeRPC(tree)
	require.NoError(t, err)
	assert.Equal(t, "and", out.Operator)
	assert.Len(t, out.Operands, 2)
}

func TestEncodeRPCReferenceSingleTarget(t *testing.T) {
	v := Value{
		Target: Target{
			IsReference: true,
			LinkOn:      "hasAuthor",
			Inner:       &Target{Path: []string{"name"}},
		},
		Operator: OpEqual,
		Text:     textPtr("herbert"),
	}
	out, err := EncodeRPC(v)
	require.NoError(t, err)
	assert.Equal(t, "hasAuthor", out.SingleTargetOn)
	assert.Equal(t, "name", out.SingleTargetLink)
}

func TestEncodeRPCReferenceRequiresInner(t *testing.T) {
	v := Value{Target: Target{IsReference: true, LinkOn: "hasAuthor"}, Operator: OpEqual}
	_, err := EncodeRPC(v)
	assert.Error(t, err)
}

func TestEncodeRESTRejectsReferenceTraversal(t *testing.T) {
	v := Value{
		Target:   Target{IsReference: true, LinkOn: "hasAuthor", Inner: &Target{Path: []string{"name"}}},
		Operator: OpEqual,
		Text:     textPtr("herbert"),
	}
	_, err := EncodeREST(v)
	assert.Error(t, err)
}

func TestEncodeRESTLeaf(t *testing.T) {
	v := Value{Target: Target{Path: []string{"price"}}, Operator: OpGreaterThan, Number: floatPtr(10)}
	out, err := EncodeREST(v)
	require.NoError(t, err)
	assert.Equal(t, "GreaterThan", out.Operator)
	assert.Equal(t, []string{"price"}, out.Path)
	assert.Equal(t, 10.0, *out.ValueNumber)
}

func floatPtr(f float64) *float64 { return &f }
