package catalog

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doubaokun/voltdb/internal/types"
)

func newTestTable(t *testing.T) (*Database, *Table) {
	schema := NewSchema()
	schema.AddIntField("A")
	schema.AddIntField("B")
	schema.AddStringField("C", 32)

	db := NewDatabase("database")
	tbl, err := db.AddTable("T", schema)
	require.NoError(t, err)
	return db, tbl
}

func TestTableLookupIgnoresCase(t *testing.T) {
	db, tbl := newTestTable(t)

	assert.Same(t, tbl, db.Table("T"))
	assert.Same(t, tbl, db.Table("t"))
	assert.Nil(t, db.Table("other"))

	_, err := db.AddTable("t", NewSchema())
	assert.True(t, errors.Is(err, ErrDuplicateTable))
	assert.Len(t, db.Tables(), 1)
}

func TestAddIndex(t *testing.T) {
	_, tbl := newTestTable(t)

	idx, err := tbl.AddIndex("IDX_AB", types.IndexTypeBalancedTree, true, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "IDX_AB", idx.Name())
	assert.Equal(t, []string{"A", "B"}, idx.Columns())
	assert.Equal(t, 2, idx.ColumnCount())
	assert.True(t, idx.Unique())
	assert.Equal(t, types.IndexTypeBalancedTree, idx.Type())
	assert.Same(t, tbl, idx.Table())

	assert.Same(t, idx, tbl.Index("idx_ab"))
	assert.Nil(t, tbl.Index("nope"))

	_, err = tbl.AddIndex("IDX_AB", types.IndexTypeHashTable, false, "C")
	assert.True(t, errors.Is(err, ErrDuplicateIndex))

	_, err = tbl.AddIndex("IDX_Z", types.IndexTypeHashTable, false, "Z")
	assert.True(t, errors.Is(err, ErrUnknownColumn))

	_, err = tbl.AddIndex("IDX_NONE", types.IndexTypeHashTable, false)
	assert.True(t, errors.Is(err, ErrInvalidIndex))

	_, err = tbl.AddIndex("IDX_NOTYPE", types.IndexTypeInvalid, false, "A")
	assert.True(t, errors.Is(err, ErrInvalidIndex))

	assert.Len(t, tbl.Indexes(), 1)
}

func TestIndexColumnsIsACopy(t *testing.T) {
	_, tbl := newTestTable(t)
	idx, err := tbl.AddIndex("IDX_A", types.IndexTypeHashTable, false, "A")
	require.NoError(t, err)

	cols := idx.Columns()
	cols[0] = "B"
	assert.Equal(t, []string{"A"}, idx.Columns())
}

func TestLoadDefinition(t *testing.T) {
	def := `{
		"name": "shop",
		"tables": [{
			"name": "ORDERS",
			"columns": [
				{"name": "ID", "type": "INTEGER"},
				{"name": "CUSTOMER", "type": "VARCHAR", "length": 64}
			],
			"indexes": [
				{"name": "PK_ORDERS", "type": "HASH_TABLE", "unique": true, "columns": ["ID"]},
				{"name": "IDX_CUSTOMER", "type": "BTREE", "columns": ["CUSTOMER", "ID"]}
			]
		}]
	}`
	db, err := LoadDefinition(strings.NewReader(def))
	require.NoError(t, err)
	assert.Equal(t, "shop", db.Name())

	orders := db.Table("orders")
	require.NotNil(t, orders)
	assert.Equal(t, 1, orders.Schema().IndexOf("CUSTOMER"))

	pk := orders.Index("PK_ORDERS")
	require.NotNil(t, pk)
	assert.True(t, pk.Unique())
	assert.Equal(t, types.IndexTypeHashTable, pk.Type())

	byCustomer := orders.Index("IDX_CUSTOMER")
	require.NotNil(t, byCustomer)
	assert.False(t, byCustomer.Unique())
	assert.Equal(t, 2, byCustomer.ColumnCount())
}

func TestLoadDefinitionErrors(t *testing.T) {
	_, err := LoadDefinition(strings.NewReader(`{"tables":[{"name":"T","columns":[{"name":"A","type":"FLOAT"}]}]}`))
	assert.True(t, errors.Is(err, types.ErrUnknownName))

	_, err = LoadDefinition(strings.NewReader(`{"tables":[{"name":"T","columns":[{"name":"A","type":"INTEGER"}],
		"indexes":[{"name":"I","type":"HASH_TABLE","columns":["B"]}]}]}`))
	assert.True(t, errors.Is(err, ErrUnknownColumn))

	_, err = LoadDefinition(strings.NewReader(`{`))
	assert.Error(t, err)
}
