package catalog

// IdentifierMap translates source store identifiers to destination store
// identifiers for a single resource type. An entry is recorded only after
// the destination confirms creation; a missing key means migration of that
// source item failed or was not attempted.
type IdentifierMap struct {
	ids map[int]int
}

// NewIdentifierMap creates an empty identifier map.
func NewIdentifierMap() *IdentifierMap {
	return &IdentifierMap{ids: make(map[int]int)}
}

// Put records the destination identifier created for a source identifier.
func (m *IdentifierMap) Put(sourceID, destinationID int) {
	m.ids[sourceID] = destinationID
}

// Lookup returns the destination identifier for a source identifier.
func (m *IdentifierMap) Lookup(sourceID int) (int, bool) {
	destinationID, ok := m.ids[sourceID]
	return destinationID, ok
}

// Len returns the number of recorded mappings.
func (m *IdentifierMap) Len() int {
	return len(m.ids)
}
