package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierMap(t *testing.T) {
	m := NewIdentifierMap()
	assert.Equal(t, 0, m.Len())

	_, ok := m.Lookup(1)
	assert.False(t, ok, "absent key means the item was not migrated")

	m.Put(1, 101)
	m.Put(2, 102)

	destID, ok := m.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, 101, destID)
	assert.Equal(t, 2, m.Len())

	// Re-recording a source ID keeps exactly one entry.
	m.Put(1, 111)
	destID, _ = m.Lookup(1)
	assert.Equal(t, 111, destID)
	assert.Equal(t, 2, m.Len())
}
