package plan

import (
	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/stats"
	"github.com/doubaokun/voltdb/internal/types"
)

// SendNode sits at the root of a fragment and ships its child's rows to the
// caller unchanged.
type SendNode struct {
	nodeHeader
}

func NewSendNode() *SendNode {
	return &SendNode{nodeHeader: nodeHeader{nodeType: types.PlanNodeTypeSend}}
}

func (n *SendNode) Validate() error {
	if len(n.children) != 1 {
		return errors.Wrapf(ErrInvalidTree, "send node %d has %d children, want 1", n.id, len(n.children))
	}
	return validateChildren(n)
}

func (n *SendNode) ResolveColumnIndexes() error {
	return resolveChildren(n)
}

func (n *SendNode) ComputeCostEstimates(childOutputTupleCount int64, _ *catalog.Database, _ stats.Estimates, _ []stats.ScalarValueHints) {
	n.estimatedOutputTupleCount = childOutputTupleCount
	n.estimatedProcessedTupleCount = childOutputTupleCount
}

func (n *SendNode) IsOrderDeterministic() bool {
	for _, child := range n.children {
		if !child.IsOrderDeterministic() {
			return false
		}
	}
	return true
}

func (n *SendNode) NondeterminismDetail() string {
	for _, child := range n.children {
		if !child.IsOrderDeterministic() {
			return child.NondeterminismDetail()
		}
	}
	return ""
}

func (n *SendNode) Explain() string {
	return "RETURN RESULTS TO STORED PROCEDURE"
}

func (n *SendNode) encode(*codec.Object) error {
	return nil
}

func (n *SendNode) decode(*codec.Reader, *catalog.Database) error {
	return nil
}
