package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folder(id string, parent string) *Folder {
	f := &Folder{ID: id, Name: id, UserID: "u-1"}
	if parent != "" {
		f.ParentFolderID = &parent
	}
	return f
}

func ids(nodes []*FolderNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Folder.ID)
	}
	return out
}

func TestBuildFolderTree_Nesting(t *testing.T) {
	roots := BuildFolderTree([]*Folder{
		folder("work", ""),
		folder("projects", "work"),
		folder("home", ""),
		folder("alpha", "projects"),
		folder("meetings", "work"),
	})

	require.Equal(t, []string{"work", "home"}, ids(roots))
	assert.Equal(t, []string{"projects", "meetings"}, ids(roots[0].Children))
	assert.Equal(t, []string{"alpha"}, ids(roots[0].Children[0].Children))
	assert.Empty(t, roots[1].Children)
	assert.False(t, roots[0].Orphaned)
}

func TestBuildFolderTree_DanglingParentBecomesOrphanedRoot(t *testing.T) {
	roots := BuildFolderTree([]*Folder{
		folder("child", "deleted-parent"),
		folder("root", ""),
	})

	require.Equal(t, []string{"child", "root"}, ids(roots))
	assert.True(t, roots[0].Orphaned)
	assert.False(t, roots[1].Orphaned)
}

func TestBuildFolderTree_CycleIsBroken(t *testing.T) {
	// c hangs off a two-folder cycle; a is the earliest cycle member.
	roots := BuildFolderTree([]*Folder{
		folder("c", "b"),
		folder("a", "b"),
		folder("b", "a"),
	})

	require.Equal(t, []string{"a"}, ids(roots))
	assert.True(t, roots[0].Orphaned)
	require.Equal(t, []string{"b"}, ids(roots[0].Children))
	assert.Equal(t, []string{"c"}, ids(roots[0].Children[0].Children))
}

func TestBuildFolderTree_SelfParent(t *testing.T) {
	roots := BuildFolderTree([]*Folder{folder("loop", "loop")})

	require.Len(t, roots, 1)
	assert.True(t, roots[0].Orphaned)
	assert.Empty(t, roots[0].Children)
}

func TestBuildFolderTree_Empty(t *testing.T) {
	roots := BuildFolderTree(nil)
	assert.NotNil(t, roots)
	assert.Empty(t, roots)
}

func TestIsDescendant(t *testing.T) {
	folders := []*Folder{
		folder("a", ""),
		folder("b", "a"),
		folder("c", "b"),
		folder("x", "y"),
		folder("y", "x"),
	}

	assert.True(t, IsDescendant(folders, "a", "a"))
	assert.True(t, IsDescendant(folders, "a", "c"))
	assert.False(t, IsDescendant(folders, "c", "a"))
	assert.False(t, IsDescendant(folders, "a", "unknown"))
	assert.False(t, IsDescendant(folders, "a", "x"))
}
