package catalog

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/types"
)

// Definition is the JSON form of a database accepted by LoadDefinition.
type Definition struct {
	Name   string            `json:"name"`
	Tables []TableDefinition `json:"tables"`
}

type TableDefinition struct {
	Name    string             `json:"name"`
	Columns []ColumnDefinition `json:"columns"`
	Indexes []IndexDefinition  `json:"indexes,omitempty"`
}

type ColumnDefinition struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Length int    `json:"length,omitempty"`
}

type IndexDefinition struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Unique  bool     `json:"unique,omitempty"`
	Columns []string `json:"columns"`
}

// LoadDefinition reads a Definition and builds the Database it describes.
func LoadDefinition(r io.Reader) (*Database, error) {
	var def Definition
	if err := json.NewDecoder(r).Decode(&def); err != nil {
		return nil, errors.Wrap(err, "decode catalog definition")
	}
	return def.Build()
}

// Build creates a Database from the definition.
func (def *Definition) Build() (*Database, error) {
	db := NewDatabase(def.Name)
	for _, td := range def.Tables {
		schema := NewSchema()
		for _, cd := range td.Columns {
			vt, err := types.ParseValueType(cd.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "column %s.%s", td.Name, cd.Name)
			}
			schema.AddField(cd.Name, vt, cd.Length)
		}
		tbl, err := db.AddTable(td.Name, schema)
		if err != nil {
			return nil, err
		}
		for _, id := range td.Indexes {
			it, err := types.ParseIndexType(id.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "index %s", id.Name)
			}
			if _, err := tbl.AddIndex(id.Name, it, id.Unique, id.Columns...); err != nil {
				return nil, err
			}
		}
	}
	return db, nil
}
