package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureUUIDGeneratesWhenMissing(t *testing.T) {
	o := &Object{}
	id := o.EnsureUUID()
	assert.NotEmpty(t, id)
	assert.True(t, ValidUUID(id))
	assert.Equal(t, id, o.UUID)
}

func TestEnsureUUIDKeepsExisting(t *testing.T) {
	o := &Object{UUID: "11111111-1111-1111-1111-111111111111"}
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", o.EnsureUUID())
}

func TestValidUUIDRejectsGarbage(t *testing.T) {
	assert.False(t, ValidUUID("not-a-uuid"))
}
