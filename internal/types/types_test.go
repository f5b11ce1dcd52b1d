package types

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTypeNames(t *testing.T) {
	for _, lt := range []IndexLookupType{IndexLookupTypeEQ, IndexLookupTypeGT, IndexLookupTypeGTE, IndexLookupTypeLT, IndexLookupTypeLTE} {
		parsed, err := ParseIndexLookupType(lt.String())
		require.NoError(t, err)
		assert.Equal(t, lt, parsed)
	}
	assert.Equal(t, "EQ", IndexLookupTypeEQ.String())

	_, err := ParseIndexLookupType("BETWEEN")
	assert.True(t, errors.Is(err, ErrUnknownName))
}

func TestSortDirectionNames(t *testing.T) {
	d, err := ParseSortDirection("DESC")
	require.NoError(t, err)
	assert.Equal(t, SortDirectionDesc, d)
	assert.Equal(t, "INVALID", SortDirectionInvalid.String())
	assert.Equal(t, "INVALID", SortDirectionType(42).String())
}

func TestPlanNodeTypeRejectsInvalid(t *testing.T) {
	_, err := ParsePlanNodeType("INVALID")
	assert.Error(t, err)

	pt, err := ParsePlanNodeType("INDEXSCAN")
	require.NoError(t, err)
	assert.Equal(t, PlanNodeTypeIndexScan, pt)
}

func TestExpressionTypeClassification(t *testing.T) {
	assert.True(t, ExpressionTypeCompareEqual.IsBinary())
	assert.True(t, ExpressionTypeCompareEqual.IsComparison())
	assert.True(t, ExpressionTypeOperatorDivide.IsBinary())
	assert.False(t, ExpressionTypeOperatorDivide.IsComparison())
	assert.False(t, ExpressionTypeOperatorNot.IsBinary())
	assert.False(t, ExpressionTypeValueTuple.IsBinary())
	assert.Equal(t, ">=", ExpressionTypeCompareGreaterThanOrEqualTo.Symbol())

	et, err := ParseExpressionType("VALUE_TUPLE")
	require.NoError(t, err)
	assert.Equal(t, ExpressionTypeValueTuple, et)
}

func TestIndexTypeIsTree(t *testing.T) {
	assert.True(t, IndexTypeBalancedTree.IsTree())
	assert.True(t, IndexTypeBTree.IsTree())
	assert.False(t, IndexTypeHashTable.IsTree())
}
