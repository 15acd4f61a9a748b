package search

import (
	"testing"

	"github.com/cuemby/vecta-go/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReplyBuildsMetadataFromPresentSentinels(t *testing.T) {
	reply := &rpc.SearchReply{
		Results: []rpc.SearchResultItem{
			{
				NonRefProperties: map[string]any{"title": "dune"},
				Metadata: rpc.RawMetadata{
					UUID: "11111111-1111-1111-1111-111111111111", UUIDPresent: true,
					Distance: 0.2, DistancePresent: true,
					// Certainty not present.
				},
			},
		},
	}

	decoded := DecodeReply(reply)
	require.Len(t, decoded.Results, 1)
	obj := decoded.Results[0].Object
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", obj.UUID)
	require.NotNil(t, obj.Metadata.Distance)
	assert.Equal(t, 0.2, *obj.Metadata.Distance)
	assert.Nil(t, obj.Metadata.Certainty)
	assert.Equal(t, "dune", obj.Properties["title"].Text)
}

func TestDecodeReplyGroupBy(t *testing.T) {
	reply := &rpc.SearchReply{
		GroupByResults: []rpc.GroupByResult{
			{GroupName: "sci-fi", MinDistance: 0.1, MaxDistance: 0.5, Count: 2, Objects: []rpc.SearchResultItem{{}, {}}},
		},
	}
	decoded := DecodeReply(reply)
	require.Len(t, decoded.Groups, 1)
	assert.Equal(t, "sci-fi", decoded.Groups[0].Name)
	assert.Len(t, decoded.Groups[0].Objects, 2)
}

func TestDecodeReplyNoMetadataYieldsNil(t *testing.T) {
	reply := &rpc.SearchReply{Results: []rpc.SearchResultItem{{}}}
	decoded := DecodeReply(reply)
	assert.Nil(t, decoded.Results[0].Object.Metadata)
}
