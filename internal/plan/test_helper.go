package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/expression"
	"github.com/doubaokun/voltdb/internal/stats"
	"github.com/doubaokun/voltdb/internal/types"
)

// setupTestCatalog builds table T(A, B, C, D) with these indexes and 1000
// estimated rows:
//
//	IDX    unique balanced tree on (A, B)
//	PK     unique hash on (A)
//	IDX_C  non-unique btree on (C, D)
//	HSH_D  non-unique hash on (D)
func setupTestCatalog(t *testing.T) (*catalog.Database, *stats.DatabaseEstimates) {
	schema := catalog.NewSchema()
	schema.AddIntField("A")
	schema.AddIntField("B")
	schema.AddStringField("C", 32)
	schema.AddIntField("D")

	db := catalog.NewDatabase("database")
	tbl, err := db.AddTable("T", schema)
	require.NoError(t, err)

	_, err = tbl.AddIndex("IDX", types.IndexTypeBalancedTree, true, "A", "B")
	require.NoError(t, err)
	_, err = tbl.AddIndex("PK", types.IndexTypeHashTable, true, "A")
	require.NoError(t, err)
	_, err = tbl.AddIndex("IDX_C", types.IndexTypeBTree, false, "C", "D")
	require.NoError(t, err)
	_, err = tbl.AddIndex("HSH_D", types.IndexTypeHashTable, false, "D")
	require.NoError(t, err)

	est := stats.NewDatabaseEstimates(map[string]stats.TableEstimates{
		"T": {MinTuples: 100, MaxTuples: 1000},
	})
	return db, est
}

// newIndexScan binds an index scan on T to the named index and adds one
// search key per entry of keys, each comparing against a parameter.
func newIndexScan(t *testing.T, db *catalog.Database, indexName string, lookup types.IndexLookupType, keys ...string) *IndexScanNode {
	idx := db.Table("T").Index(indexName)
	require.NotNil(t, idx, "index %s", indexName)

	n := NewIndexScanNode()
	n.SetCatalogIndex(idx)
	n.SetLookupType(lookup)
	for i, col := range keys {
		n.AddSearchKeyExpression(expression.NewOperator(types.ExpressionTypeOperatorPlus,
			expression.NewTupleValue("T", col), expression.NewParameter(i, types.ValueTypeInteger)))
	}
	return n
}

func columnEquals(column string, val int64) *expression.Expression {
	return expression.NewOperator(types.ExpressionTypeCompareEqual,
		expression.NewTupleValue("T", column), expression.NewConstant(expression.NewIntConstant(val)))
}
