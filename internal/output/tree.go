package output

import (
	"fmt"
	"strings"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	Key      string
	Title    string
	Kind     string
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth int  // 0 = unlimited
	ShowKind bool // Whether to show the node kind
	ShowKey  bool // Whether to show the node key
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

// renderTreeNodes recursively renders tree nodes
func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string

	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		lines = append(lines, prefix+connector+nodeLabel(node, opts))

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}

		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}

	return lines
}

func nodeLabel(node TreeNode, opts TreeRenderOptions) string {
	title := node.Title
	if title == "" {
		title = mutedStyle.Render("(untitled)")
	}

	var parts []string
	if opts.ShowKind && node.Kind != "" {
		parts = append(parts, kindStyle.Render(node.Kind))
	}
	parts = append(parts, title)
	if opts.ShowKey && node.Key != "" {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("[%s]", node.Key)))
	}
	return strings.Join(parts, " ")
}
