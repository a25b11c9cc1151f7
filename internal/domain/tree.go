package domain

// FolderNode is one folder and its children in a user's hierarchy.
type FolderNode struct {
	Folder   *Folder       `json:"folder"`
	Children []*FolderNode `json:"children"`
	// Orphaned is set on roots whose parent_folder_id points at a folder
	// that is not in the input set.
	Orphaned bool `json:"orphaned"`
}

// BuildFolderTree turns the flat parent-pointer list into a forest.
// Order among siblings and roots follows the input order.
//
// Folders whose parent is missing become orphaned roots. A cycle is broken
// at its first member in input order, which becomes an orphaned root.
func BuildFolderTree(folders []*Folder) []*FolderNode {
	nodes := make(map[string]*FolderNode, len(folders))
	order := make(map[string]int, len(folders))
	for i, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f, Children: []*FolderNode{}}
		order[f.ID] = i
	}

	// Walk each folder's ancestor chain once; anything that revisits a
	// folder on the current path is cut.
	cut := make(map[string]bool)
	state := make(map[string]int) // 0 unvisited, 1 on path, 2 done
	for _, f := range folders {
		var path []string
		cur := f.ID
		for {
			if state[cur] == 2 {
				break
			}
			if state[cur] == 1 {
				cut[firstInCycle(path, cur, order)] = true
				break
			}
			state[cur] = 1
			path = append(path, cur)
			parent := nodes[cur].Folder.ParentFolderID
			if parent == nil {
				break
			}
			if _, ok := nodes[*parent]; !ok {
				break
			}
			cur = *parent
		}
		for _, id := range path {
			state[id] = 2
		}
	}

	var roots []*FolderNode
	for _, f := range folders {
		node := nodes[f.ID]
		switch {
		case f.ParentFolderID == nil:
			roots = append(roots, node)
		case cut[f.ID]:
			node.Orphaned = true
			roots = append(roots, node)
		default:
			parent, ok := nodes[*f.ParentFolderID]
			if !ok {
				node.Orphaned = true
				roots = append(roots, node)
				continue
			}
			parent.Children = append(parent.Children, node)
		}
	}
	if roots == nil {
		roots = []*FolderNode{}
	}
	return roots
}

// firstInCycle returns the cycle member of path (the suffix starting at
// entry) that appears earliest in the input.
func firstInCycle(path []string, entry string, order map[string]int) string {
	start := 0
	for i, id := range path {
		if id == entry {
			start = i
			break
		}
	}
	best := path[start]
	for _, id := range path[start+1:] {
		if order[id] < order[best] {
			best = id
		}
	}
	return best
}

// IsDescendant reports whether candidate is id itself or lies below id in
// the hierarchy described by folders.
func IsDescendant(folders []*Folder, id, candidate string) bool {
	parents := make(map[string]*string, len(folders))
	for _, f := range folders {
		parents[f.ID] = f.ParentFolderID
	}
	seen := make(map[string]bool)
	cur := candidate
	for !seen[cur] {
		if cur == id {
			return true
		}
		seen[cur] = true
		p, ok := parents[cur]
		if !ok || p == nil {
			return false
		}
		cur = *p
	}
	return false
}
