package ops

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/expression"
	"github.com/doubaokun/voltdb/internal/plan"
	"github.com/doubaokun/voltdb/internal/stats"
)

func setupTestCatalog(t *testing.T) (*catalog.Database, *stats.DatabaseEstimates) {
	def := catalog.Definition{
		Name: "ops",
		Tables: []catalog.TableDefinition{{
			Name: "ORDERS",
			Columns: []catalog.ColumnDefinition{
				{Name: "ID", Type: "INTEGER"},
				{Name: "CUSTOMER", Type: "VARCHAR", Length: 24},
			},
			Indexes: []catalog.IndexDefinition{
				{Name: "ORDERS_PK", Type: "HASH_TABLE", Unique: true, Columns: []string{"ID"}},
				{Name: "ORDERS_BY_CUSTOMER", Type: "BALANCED_TREE", Columns: []string{"CUSTOMER"}},
			},
		}},
	}
	db, err := def.Build()
	require.NoError(t, err)
	return db, stats.NewDatabaseEstimates(map[string]stats.TableEstimates{
		"ORDERS": {MinTuples: 10, MaxTuples: 1000},
	})
}

// newTestFragment plans SEND -> INDEX SCAN over the named index with one
// parameterized equality key on column.
func newTestFragment(t *testing.T, db *catalog.Database, indexName, column string) *plan.Fragment {
	scan := plan.NewIndexScanNode()
	scan.SetCatalogIndex(db.Table("ORDERS").Index(indexName))
	scan.AddSearchKeyExpression(expression.NewTupleValue("ORDERS", column))
	send := plan.NewSendNode()
	require.NoError(t, plan.AddChild(send, scan))
	return plan.NewFragment(send)
}

func explainPayload(t *testing.T, req ExplainRequest) []byte {
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return data
}
