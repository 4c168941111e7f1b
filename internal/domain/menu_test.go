package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMenuTree(t *testing.T) {
	items := []MenuItem{
		{Key: "product", Title: "Products", Order: 0},
		{Key: "cakes", Title: "Cakes", Parent: "product", Order: 1},
		{Key: "pies", Title: "Pies", Parent: "product", Order: 0},
		{Key: "about", Title: "About", Order: 5},
		{Key: "orphan", Title: "Orphan", Parent: "missing", Order: 2},
	}

	tree := BuildMenuTree(items)

	require.Len(t, tree, 3)
	assert.Equal(t, "product", tree[0].Key)
	assert.Equal(t, "orphan", tree[1].Key)
	assert.Equal(t, "about", tree[2].Key)

	// Siblings sort by ascending order value: pies (0) before cakes (1).
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "pies", tree[0].Children[0].Key)
	assert.Equal(t, "cakes", tree[0].Children[1].Key)
}

func TestBuildMenuTreeNestedOrdering(t *testing.T) {
	items := []MenuItem{
		{Key: "root", Order: 0},
		{Key: "b", Parent: "root", Order: 2},
		{Key: "a", Parent: "root", Order: 1},
		{Key: "a2", Parent: "a", Order: 1},
		{Key: "a1", Parent: "a", Order: 0},
	}

	tree := BuildMenuTree(items)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "a", tree[0].Children[0].Key)
	assert.Equal(t, "b", tree[0].Children[1].Key)
	require.Len(t, tree[0].Children[0].Children, 2)
	assert.Equal(t, "a1", tree[0].Children[0].Children[0].Key)
	assert.Equal(t, "a2", tree[0].Children[0].Children[1].Key)
}

func TestBuildMenuTreeStableOnEqualOrder(t *testing.T) {
	items := []MenuItem{
		{Key: "first", Order: 1},
		{Key: "second", Order: 1},
		{Key: "third", Order: 1},
	}

	tree := BuildMenuTree(items)

	require.Len(t, tree, 3)
	assert.Equal(t, "first", tree[0].Key)
	assert.Equal(t, "second", tree[1].Key)
	assert.Equal(t, "third", tree[2].Key)
}

func TestFindBranch(t *testing.T) {
	tree := BuildMenuTree([]MenuItem{
		{Key: "product"},
		{Key: "cakes", Parent: "product"},
		{Key: "birthday", Parent: "cakes"},
	})

	assert.NotNil(t, FindBranch(tree, "birthday"))
	assert.Nil(t, FindBranch(tree, "nope"))
}
