package catalog

// SortCategoriesByDependency orders categories so that every category's
// parent appears before the category itself, regardless of how identifiers
// were assigned in the source store. A category whose parent is absent from
// the input set is treated as a root: it will be attached at the destination
// root rather than dropped.
//
// Returns ErrCategoryCycle if the parent references contain a cycle.
func SortCategoriesByDependency(categories []Category) ([]Category, error) {
	byID := make(map[int]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	// Forward edges from each parent to its children, preserving input
	// order among siblings.
	children := make(map[int][]int, len(categories))
	var queue []int
	for _, c := range categories {
		if _, hasParent := byID[c.ParentID]; c.IsRoot() || !hasParent {
			queue = append(queue, c.ID)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c.ID)
	}

	ordered := make([]Category, 0, len(categories))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ordered = append(ordered, byID[id])
		queue = append(queue, children[id]...)
	}

	// Anything unreached is only reachable through a cycle.
	if len(ordered) != len(categories) {
		return nil, ErrCategoryCycle
	}
	return ordered, nil
}
