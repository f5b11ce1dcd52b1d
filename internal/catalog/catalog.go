// Package catalog is the read-only view of tables and indexes the planner
// binds against. A Database is assembled once and then treated as an
// immutable snapshot; a schema change produces a new Database.
package catalog

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/types"
)

var (
	ErrDuplicateTable = errors.New("duplicate table")
	ErrDuplicateIndex = errors.New("duplicate index")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrInvalidIndex   = errors.New("invalid index definition")
)

// Database is a named set of tables.
type Database struct {
	name   string
	tables map[string]*Table
	order  []*Table
}

func NewDatabase(name string) *Database {
	return &Database{
		name:   name,
		tables: make(map[string]*Table),
	}
}

func (d *Database) Name() string {
	return d.name
}

// AddTable registers a table with the given column schema.
func (d *Database) AddTable(name string, schema *Schema) (*Table, error) {
	key := strings.ToUpper(name)
	if _, exists := d.tables[key]; exists {
		return nil, errors.Wrapf(ErrDuplicateTable, "table %s", name)
	}
	t := &Table{
		name:    name,
		schema:  schema,
		indexes: make(map[string]*Index),
	}
	d.tables[key] = t
	d.order = append(d.order, t)
	return t, nil
}

// Table looks a table up ignoring case. It returns nil if there is none.
func (d *Database) Table(name string) *Table {
	return d.tables[strings.ToUpper(name)]
}

// Tables returns the tables in the order they were added.
func (d *Database) Tables() []*Table {
	out := make([]*Table, len(d.order))
	copy(out, d.order)
	return out
}

// Table holds a column schema and the indexes defined over it.
type Table struct {
	name    string
	schema  *Schema
	indexes map[string]*Index
	order   []*Index
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Schema() *Schema {
	return t.schema
}

// AddIndex defines an index over columns, which must exist in the table.
func (t *Table) AddIndex(name string, indexType types.IndexType, unique bool, columns ...string) (*Index, error) {
	key := strings.ToUpper(name)
	if _, exists := t.indexes[key]; exists {
		return nil, errors.Wrapf(ErrDuplicateIndex, "index %s on %s", name, t.name)
	}
	if len(columns) == 0 {
		return nil, errors.Wrapf(ErrInvalidIndex, "index %s has no columns", name)
	}
	if indexType == types.IndexTypeInvalid {
		return nil, errors.Wrapf(ErrInvalidIndex, "index %s has no type", name)
	}
	for _, c := range columns {
		if !t.schema.HasField(c) {
			return nil, errors.Wrapf(ErrUnknownColumn, "index %s column %s.%s", name, t.name, c)
		}
	}
	idx := &Index{
		name:      name,
		table:     t,
		columns:   append([]string(nil), columns...),
		unique:    unique,
		indexType: indexType,
	}
	t.indexes[key] = idx
	t.order = append(t.order, idx)
	return idx, nil
}

// Index looks an index up ignoring case. It returns nil if there is none.
func (t *Table) Index(name string) *Index {
	return t.indexes[strings.ToUpper(name)]
}

// Indexes returns the indexes in the order they were added.
func (t *Table) Indexes() []*Index {
	out := make([]*Index, len(t.order))
	copy(out, t.order)
	return out
}

// Index describes one secondary access structure of a table.
type Index struct {
	name      string
	table     *Table
	columns   []string
	unique    bool
	indexType types.IndexType
}

func (i *Index) Name() string {
	return i.name
}

func (i *Index) Table() *Table {
	return i.table
}

// Columns returns the indexed column names in key order.
func (i *Index) Columns() []string {
	out := make([]string, len(i.columns))
	copy(out, i.columns)
	return out
}

func (i *Index) ColumnCount() int {
	return len(i.columns)
}

func (i *Index) Unique() bool {
	return i.unique
}

func (i *Index) Type() types.IndexType {
	return i.indexType
}
