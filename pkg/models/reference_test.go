package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUUIDsBeaconsImplicit(t *testing.T) {
	ref := ToUUIDs("11111111-1111-1111-1111-111111111111")
	assert.Equal(t, []string{"weaviate://localhost/11111111-1111-1111-1111-111111111111"}, ref.Beacons())
}

func TestToMultiTargetBeacons(t *testing.T) {
	ref := ToMultiTarget("Article", "11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222")
	want := []string{
		"weaviate://localhost/Article/11111111-1111-1111-1111-111111111111",
		"weaviate://localhost/Article/22222222-2222-2222-2222-222222222222",
	}
	assert.Equal(t, want, ref.Beacons())
}

func TestParseBeacon(t *testing.T) {
	collection, uuid, ok := ParseBeacon("weaviate://localhost/Article/11111111-1111-1111-1111-111111111111")
	assert.True(t, ok)
	assert.Equal(t, "Article", collection)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", uuid)

	collection, uuid, ok = ParseBeacon("weaviate://localhost/11111111-1111-1111-1111-111111111111")
	assert.True(t, ok)
	assert.Equal(t, "", collection)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", uuid)

	_, _, ok = ParseBeacon("not-a-beacon")
	assert.False(t, ok)
}
