package plan

import "strings"

// ExplainTree renders the tree under root one node per line, each child
// indented two spaces deeper than its parent.
func ExplainTree(root Node) string {
	var b strings.Builder
	Walk(root, func(n Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Explain())
		b.WriteByte('\n')
	})
	return b.String()
}
