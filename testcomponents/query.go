package testcomponents

import (
	"strings"

	"github.com/vcrobe/entryform/vdom"
)

// FindByID walks the tree depth-first and returns the first node whose "id"
// attribute equals id. Nil slots are skipped.
func FindByID(root *vdom.VNode, id string) *vdom.VNode {
	var found *vdom.VNode
	walk(root, func(n *vdom.VNode) bool {
		if v, _ := n.Attributes["id"].(string); v == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node with the given tag, in document order.
func FindAll(root *vdom.VNode, tag string) []*vdom.VNode {
	var out []*vdom.VNode
	walk(root, func(n *vdom.VNode) bool {
		if n.Tag == tag {
			out = append(out, n)
		}
		return true
	})
	return out
}

// TextOf concatenates the text content of n and its descendants.
// Input and select values are not text and are left out.
func TextOf(n *vdom.VNode) string {
	var b strings.Builder
	walk(n, func(node *vdom.VNode) bool {
		if node.Tag != "input" && node.Tag != "select" {
			b.WriteString(node.Content)
		}
		return true
	})
	return b.String()
}

func walk(n *vdom.VNode, visit func(*vdom.VNode) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !walk(child, visit) {
			return false
		}
	}
	return true
}
