// Package plan holds the physical plan nodes a compiled query is made of,
// together with their costing, column resolution and wire codec.
package plan

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/logutil"
	"github.com/doubaokun/voltdb/internal/stats"
	"github.com/doubaokun/voltdb/internal/types"
)

var (
	_ Node = (*SeqScanNode)(nil)
	_ Node = (*IndexScanNode)(nil)
	_ Node = (*SendNode)(nil)
)

// Node is the capability set of a physical plan node. The set of variants is
// closed: only this package implements Node.
type Node interface {
	ID() int
	Type() types.PlanNodeType
	Parent() Node
	Children() []Node

	// Validate checks the node's own state, then the expressions it owns,
	// then its children.
	Validate() error
	// ResolveColumnIndexes binds column references to physical offsets.
	ResolveColumnIndexes() error
	// ComputeCostEstimates sets the node's tuple estimates. childOutputTupleCount
	// is the summed output estimate of the node's children.
	ComputeCostEstimates(childOutputTupleCount int64, db *catalog.Database, estimates stats.Estimates, hints []stats.ScalarValueHints)
	EstimatedOutputTupleCount() int64
	EstimatedProcessedTupleCount() int64
	// IsOrderDeterministic reports whether repeated runs over the same data
	// produce rows in the same order.
	IsOrderDeterministic() bool
	// NondeterminismDetail explains a false IsOrderDeterministic, or is empty.
	NondeterminismDetail() string
	// Explain renders the node as one line of an explain plan.
	Explain() string

	header() *nodeHeader
	encode(o *codec.Object) error
	decode(r *codec.Reader, db *catalog.Database) error
}

// nodeHeader is the state every node carries regardless of variant.
type nodeHeader struct {
	id       int
	nodeType types.PlanNodeType
	parent   Node
	children []Node
	// childIDs holds the links read off the wire until the fragment is assembled.
	childIDs []int

	estimatedOutputTupleCount    int64
	estimatedProcessedTupleCount int64
}

func (h *nodeHeader) ID() int                  { return h.id }
func (h *nodeHeader) Type() types.PlanNodeType { return h.nodeType }
func (h *nodeHeader) Parent() Node             { return h.parent }
func (h *nodeHeader) header() *nodeHeader      { return h }

func (h *nodeHeader) Children() []Node {
	out := make([]Node, len(h.children))
	copy(out, h.children)
	return out
}

func (h *nodeHeader) EstimatedOutputTupleCount() int64 {
	return h.estimatedOutputTupleCount
}

func (h *nodeHeader) EstimatedProcessedTupleCount() int64 {
	return h.estimatedProcessedTupleCount
}

// AddChild makes child the last child of parent. A node has at most one
// parent and may not become its own ancestor.
func AddChild(parent, child Node) error {
	if parent == nil || child == nil {
		return errors.Wrap(ErrInvalidTree, "nil node")
	}
	if owner := child.header().parent; owner != nil {
		return errors.Wrapf(ErrInvalidTree, "node %d already has parent %d", child.ID(), owner.ID())
	}
	for p := parent; p != nil; p = p.header().parent {
		if p == child {
			return errors.Wrapf(ErrInvalidTree, "linking node %d under %d creates a cycle", child.ID(), parent.ID())
		}
	}
	ph := parent.header()
	ph.children = append(ph.children, child)
	child.header().parent = parent
	return nil
}

func validateChildren(n Node) error {
	for _, child := range n.header().children {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func resolveChildren(n Node) error {
	for _, child := range n.header().children {
		if err := child.ResolveColumnIndexes(); err != nil {
			return err
		}
	}
	return nil
}

// ComputeCostEstimates costs the tree under root bottom-up, handing each
// node the summed output estimate of its children.
func ComputeCostEstimates(root Node, db *catalog.Database, estimates stats.Estimates, hints []stats.ScalarValueHints) {
	var childOutput int64
	for _, child := range root.header().children {
		ComputeCostEstimates(child, db, estimates, hints)
		childOutput += child.EstimatedOutputTupleCount()
	}
	root.ComputeCostEstimates(childOutput, db, estimates, hints)
	logger().Debug("costed plan node",
		zap.Int("id", root.ID()),
		zap.Stringer("type", root.Type()),
		zap.Int64("output", root.EstimatedOutputTupleCount()),
		zap.Int64("processed", root.EstimatedProcessedTupleCount()))
}

// Walk visits the tree under root in pre-order.
func Walk(root Node, visit func(n Node, depth int)) {
	var walk func(n Node, depth int)
	walk = func(n Node, depth int) {
		visit(n, depth)
		for _, child := range n.header().children {
			walk(child, depth+1)
		}
	}
	walk(root, 0)
}

func logger() *zap.Logger {
	return logutil.Logger().Named("plan")
}
