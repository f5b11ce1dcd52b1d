package plan

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doubaokun/voltdb/internal/types"
)

func TestSeqScanCost(t *testing.T) {
	db, est := setupTestCatalog(t)
	n := NewSeqScanNode(db.Table("T"))
	n.SetPredicate(columnEquals("A", 1))

	n.ComputeCostEstimates(0, db, est, nil)
	assert.Equal(t, int64(1000), n.EstimatedProcessedTupleCount())
	assert.Equal(t, int64(1000), n.EstimatedOutputTupleCount())
}

func TestIndexScanAlwaysCheaperThanSeqScan(t *testing.T) {
	db, est := setupTestCatalog(t)
	seq := NewSeqScanNode(db.Table("T"))
	seq.ComputeCostEstimates(0, db, est, nil)

	for _, name := range []string{"IDX", "PK", "IDX_C", "HSH_D"} {
		sortOnly := newIndexScan(t, db, name, types.IndexLookupTypeEQ)
		sortOnly.ComputeCostEstimates(0, db, est, nil)
		assert.Less(t, sortOnly.EstimatedProcessedTupleCount(), seq.EstimatedProcessedTupleCount(), name)
	}
}

func TestSeqScanValidateAndResolve(t *testing.T) {
	db, _ := setupTestCatalog(t)
	n := NewSeqScanNode(db.Table("t"))
	require.NoError(t, n.Validate())

	n.SetPredicate(columnEquals("D", 1))
	require.NoError(t, n.ResolveColumnIndexes())
	assert.Equal(t, 3, n.Predicate().Left().ColumnIndex())

	n.SetPredicate(columnEquals("Q", 1))
	assert.True(t, errors.Is(n.ResolveColumnIndexes(), ErrColumnNotFound))
}

func TestSeqScanDeterminismAndExplain(t *testing.T) {
	db, _ := setupTestCatalog(t)
	n := NewSeqScanNode(db.Table("T"))

	assert.False(t, n.IsOrderDeterministic())
	assert.Equal(t, "no ordering was asserted for sequential scan", n.NondeterminismDetail())
	assert.Equal(t, `SEQUENTIAL SCAN of "T"`, n.Explain())

	n.SetPredicate(columnEquals("B", 2))
	assert.Equal(t, `SEQUENTIAL SCAN of "T" filter by (T.B = 2)`, n.Explain())
}

func TestSeqScanRoundTrip(t *testing.T) {
	db, _ := setupTestCatalog(t)
	n := NewSeqScanNode(db.Table("T"))
	n.SetTargetTableAlias("X")
	n.SetPredicate(columnEquals("B", 2))

	data, err := EncodeNode(n)
	require.NoError(t, err)
	decoded, err := DecodeNode(data, db)
	require.NoError(t, err)

	got, ok := decoded.(*SeqScanNode)
	require.True(t, ok)
	assert.Equal(t, "T", got.TargetTableName())
	assert.Equal(t, "X", got.TargetTableAlias())
	assert.True(t, n.Predicate().Equal(got.Predicate()))
}
