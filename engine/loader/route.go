package loader

import (
	"fmt"
	"strings"
)

// pathNode is one step of the compiled route trie. Object members are looked
// up by key; an array value descends through elem for each of its elements.
type pathNode struct {
	members map[string]*pathNode
	elem    *pathNode

	// field receives value events addressed to this node
	field fieldAssigner
	// commit runs when an object at this node closes
	commit func()
}

// route binds a path pattern to a field, a commit action, or both.
// Patterns are dot separated member names; a "[]" suffix descends into the
// array's elements, so "meshes[].primitives[]" addresses each primitive object.
type route struct {
	path   string
	field  fieldAssigner
	commit func()
}

func (n *pathNode) member(name string) *pathNode {
	if n.members == nil {
		n.members = make(map[string]*pathNode)
	}
	child, ok := n.members[name]
	if !ok {
		child = &pathNode{}
		n.members[name] = child
	}
	return child
}

func (n *pathNode) element() *pathNode {
	if n.elem == nil {
		n.elem = &pathNode{}
	}
	return n.elem
}

// compileRoutes builds the route trie. Two fields or two commits on the same
// path are a programming error and panic.
//
// Parameters:
//   - routes: the declarative route table
//
// Returns:
//   - *pathNode: the root node, addressing the document's root object
func compileRoutes(routes []route) *pathNode {
	root := &pathNode{}
	for _, r := range routes {
		n := root
		for _, seg := range strings.Split(r.path, ".") {
			name, isArray := strings.CutSuffix(seg, "[]")
			n = n.member(name)
			if isArray {
				n = n.element()
			}
		}

		if r.field != nil {
			if n.field != nil {
				panic(fmt.Sprintf("loader: duplicate field route %q", r.path))
			}
			n.field = r.field
		}
		if r.commit != nil {
			if n.commit != nil {
				panic(fmt.Sprintf("loader: duplicate commit route %q", r.path))
			}
			n.commit = r.commit
		}
	}
	return root
}

// frame is one open container on the dispatch stack. A nil node means the
// container lies outside every route and its whole subtree is skipped.
type frame struct {
	node  *pathNode
	array bool
	// member is the node of the value following the last key, nil when unrouted
	member *pathNode
}
