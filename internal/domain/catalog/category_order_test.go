package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortCategoriesByDependency(t *testing.T) {
	t.Run("parents come before children", func(t *testing.T) {
		categories := []Category{
			{ID: 2, ParentID: 1, Name: "Shoes"},
			{ID: 3, ParentID: 1, Name: "Shirts"},
			{ID: 1, ParentID: 0, Name: "Apparel"},
		}

		ordered, err := SortCategoriesByDependency(categories)
		require.NoError(t, err)
		require.Len(t, ordered, 3)
		assert.Equal(t, 1, ordered[0].ID)
		assertParentBeforeChild(t, ordered)
	})

	t.Run("handles parent with larger identifier than child", func(t *testing.T) {
		// A re-parented tree: category 1's parent was assigned a higher
		// ID than the child. A sort on parent ID would order this wrong.
		categories := []Category{
			{ID: 1, ParentID: 9, Name: "Accessories"},
			{ID: 9, ParentID: 0, Name: "Outdoor"},
			{ID: 4, ParentID: 1, Name: "Hats"},
		}

		ordered, err := SortCategoriesByDependency(categories)
		require.NoError(t, err)
		require.Len(t, ordered, 3)
		assert.Equal(t, []int{9, 1, 4}, idsOf(ordered))
	})

	t.Run("unknown parent is treated as root", func(t *testing.T) {
		categories := []Category{
			{ID: 5, ParentID: 42, Name: "Orphan"},
			{ID: 6, ParentID: 5, Name: "Child of orphan"},
		}

		ordered, err := SortCategoriesByDependency(categories)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 6}, idsOf(ordered))
	})

	t.Run("preserves input order among siblings", func(t *testing.T) {
		categories := []Category{
			{ID: 1, ParentID: 0, Name: "Root"},
			{ID: 7, ParentID: 1, Name: "First"},
			{ID: 3, ParentID: 1, Name: "Second"},
			{ID: 5, ParentID: 1, Name: "Third"},
		}

		ordered, err := SortCategoriesByDependency(categories)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 7, 3, 5}, idsOf(ordered))
	})

	t.Run("detects two-node cycle", func(t *testing.T) {
		categories := []Category{
			{ID: 1, ParentID: 2, Name: "A"},
			{ID: 2, ParentID: 1, Name: "B"},
		}

		_, err := SortCategoriesByDependency(categories)
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("detects self-referencing category", func(t *testing.T) {
		categories := []Category{
			{ID: 1, ParentID: 1, Name: "Self"},
		}

		_, err := SortCategoriesByDependency(categories)
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("cycle below a valid subtree still fails", func(t *testing.T) {
		categories := []Category{
			{ID: 1, ParentID: 0, Name: "Root"},
			{ID: 2, ParentID: 3, Name: "A"},
			{ID: 3, ParentID: 2, Name: "B"},
		}

		_, err := SortCategoriesByDependency(categories)
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("empty input", func(t *testing.T) {
		ordered, err := SortCategoriesByDependency(nil)
		require.NoError(t, err)
		assert.Empty(t, ordered)
	})
}

// assertParentBeforeChild verifies the ordering invariant for every category
// whose parent is part of the set.
func assertParentBeforeChild(t *testing.T, ordered []Category) {
	t.Helper()
	position := make(map[int]int, len(ordered))
	for i, c := range ordered {
		position[c.ID] = i
	}
	for _, c := range ordered {
		parentPos, inSet := position[c.ParentID]
		if !inSet {
			continue
		}
		assert.Less(t, parentPos, position[c.ID],
			"parent %d must precede category %d", c.ParentID, c.ID)
	}
}

func idsOf(categories []Category) []int {
	ids := make([]int, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}
