package domain

import "sort"

// MenuItem is one flat row of the menu tab before tree assembly.
type MenuItem struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Parent string  `json:"parent,omitempty"`
	Order  float64 `json:"order"`
}

// MenuNode is a node of the assembled navigation tree. The branch
// rooted at key "product" drives category navigation.
type MenuNode struct {
	Key      string     `json:"key"`
	Title    string     `json:"title"`
	Children []MenuNode `json:"children,omitempty"`
}

// BuildMenuTree assembles flat menu rows into a forest in one
// deterministic pass. A row whose parent key exists becomes that
// parent's child in input order; rows with a blank or unknown parent
// become roots. Siblings at every level are then stable-sorted by
// ascending order value.
func BuildMenuTree(items []MenuItem) []MenuNode {
	type node struct {
		item     MenuItem
		children []*node
	}

	byKey := make(map[string]*node, len(items))
	ordered := make([]*node, 0, len(items))
	for _, item := range items {
		n := &node{item: item}
		// First row wins on duplicate keys.
		if _, exists := byKey[item.Key]; !exists {
			byKey[item.Key] = n
		}
		ordered = append(ordered, n)
	}

	var roots []*node
	for _, n := range ordered {
		parent := byKey[n.item.Parent]
		if n.item.Parent != "" && parent != nil && parent != n {
			parent.children = append(parent.children, n)
		} else {
			roots = append(roots, n)
		}
	}

	var clean func(nodes []*node) []MenuNode
	clean = func(nodes []*node) []MenuNode {
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].item.Order < nodes[j].item.Order
		})
		out := make([]MenuNode, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, MenuNode{
				Key:      n.item.Key,
				Title:    n.item.Title,
				Children: clean(n.children),
			})
		}
		return out
	}

	return clean(roots)
}

// FindBranch returns the node with the given key anywhere in the
// forest, or nil.
func FindBranch(nodes []MenuNode, key string) *MenuNode {
	for i := range nodes {
		if nodes[i].Key == key {
			return &nodes[i]
		}
		if found := FindBranch(nodes[i].Children, key); found != nil {
			return found
		}
	}
	return nil
}
