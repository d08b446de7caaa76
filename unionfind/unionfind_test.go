package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind_FindSingleton(t *testing.T) {
	u := New[string]()
	assert.Equal(t, "a", u.Find("a"))
}

func TestUnionFind_UnifyMergesSets(t *testing.T) {
	u := New[string]()
	assert.True(t, u.Unify("a", "b"))
	assert.True(t, u.Equal("a", "b"))
}

func TestUnionFind_UnifyAlreadyMerged(t *testing.T) {
	u := New[string]()
	require := assert.New(t)
	require.True(u.Unify("a", "b"))
	require.False(u.Unify("a", "b"))
}

func TestUnionFind_TransitiveUnion(t *testing.T) {
	u := New[int]()
	u.Unify(1, 2)
	u.Unify(2, 3)
	assert.True(t, u.Equal(1, 3))
	assert.False(t, u.Equal(1, 4))
}

func TestUnionFind_PathCompression(t *testing.T) {
	u := New[int]()
	u.Unify(1, 2)
	u.Unify(2, 3)
	u.Unify(3, 4)

	root := u.Find(1)
	// After compression, every member should report the same root.
	assert.Equal(t, root, u.Find(2))
	assert.Equal(t, root, u.Find(3))
	assert.Equal(t, root, u.Find(4))
}

func TestUnionFind_GetLabelValidUntilNextUnify(t *testing.T) {
	u := New[string]()
	u.Unify("a", "b")
	before := u.GetLabel("a")
	u.Unify("c", "a")
	after := u.GetLabel("a")
	// Not asserting they differ (depends on internal attach direction),
	// only that GetLabel remains a function of current forest state.
	assert.Equal(t, u.Find("a"), after)
	_ = before
}
