package plan

import (
	"fmt"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/expression"
	"github.com/doubaokun/voltdb/internal/stats"
	"github.com/doubaokun/voltdb/internal/types"
)

// SeqScanNode reads every row of a table.
type SeqScanNode struct {
	nodeHeader
	scan scanFields
}

func NewSeqScanNode(table *catalog.Table) *SeqScanNode {
	n := &SeqScanNode{nodeHeader: nodeHeader{nodeType: types.PlanNodeTypeSeqScan}}
	n.scan.setTargetTable(table)
	return n
}

func (n *SeqScanNode) TargetTableName() string  { return n.scan.targetTableName }
func (n *SeqScanNode) TargetTableAlias() string { return n.scan.targetTableAlias }

func (n *SeqScanNode) SetTargetTableAlias(alias string) {
	n.scan.targetTableAlias = alias
}

// SetPredicate stores a private copy of the row filter. nil clears it.
func (n *SeqScanNode) SetPredicate(e *expression.Expression) {
	n.scan.setPredicate(e)
}

func (n *SeqScanNode) Predicate() *expression.Expression {
	return n.scan.predicate
}

func (n *SeqScanNode) Validate() error {
	if err := validateScanState(&n.scan); err != nil {
		return err
	}
	if err := validateScanExpressions(&n.scan); err != nil {
		return err
	}
	return validateChildren(n)
}

func (n *SeqScanNode) ResolveColumnIndexes() error {
	if err := resolveScanColumns(&n.scan); err != nil {
		return err
	}
	return resolveChildren(n)
}

// ComputeCostEstimates assumes every row is read and returned; filtering is
// not credited. Index scan costing is calibrated against this.
func (n *SeqScanNode) ComputeCostEstimates(_ int64, db *catalog.Database, estimates stats.Estimates, _ []stats.ScalarValueHints) {
	tableEstimates := scanTableEstimates(&n.scan, db, estimates)
	n.estimatedProcessedTupleCount = tableEstimates.MaxTuples
	n.estimatedOutputTupleCount = tableEstimates.MaxTuples
}

func (n *SeqScanNode) IsOrderDeterministic() bool {
	return false
}

func (n *SeqScanNode) NondeterminismDetail() string {
	return "no ordering was asserted for sequential scan"
}

func (n *SeqScanNode) Explain() string {
	return fmt.Sprintf("SEQUENTIAL SCAN of %q%s", n.scan.targetTableName, explainPredicate(&n.scan))
}

func (n *SeqScanNode) encode(o *codec.Object) error {
	return encodeScan(&n.scan, o)
}

func (n *SeqScanNode) decode(r *codec.Reader, db *catalog.Database) error {
	return decodeScan(&n.scan, r, db)
}
