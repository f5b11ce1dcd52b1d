package ops

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/catalog"
)

type CatalogResponse struct {
	Type     string         `json:"type"`
	Database string         `json:"database"`
	Tables   []TableSummary `json:"tables"`
}

type TableSummary struct {
	Name    string          `json:"name"`
	Columns []ColumnSummary `json:"columns"`
	Indexes []IndexSummary  `json:"indexes,omitempty"`
}

type ColumnSummary struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Length int    `json:"length"`
}

type IndexSummary struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// CatalogAgent describes the tables of its catalog snapshot. Requests carry
// no payload.
type CatalogAgent struct {
	mailbox
	db *catalog.Database
}

func NewCatalogAgent(db *catalog.Database) (*CatalogAgent, error) {
	if db == nil {
		return nil, errors.New("catalog agent needs a catalog")
	}
	return &CatalogAgent{db: db}, nil
}

func (a *CatalogAgent) RegisterMailbox(m Messenger, addr Address) error {
	return a.register(m, addr, a.handle)
}

func (a *CatalogAgent) Shutdown(ctx context.Context) error {
	return a.shutdown(ctx)
}

// Describe lists the tables in the order they were added to the catalog.
func (a *CatalogAgent) Describe() *CatalogResponse {
	resp := &CatalogResponse{Type: "catalog", Database: a.db.Name(), Tables: []TableSummary{}}
	for _, tbl := range a.db.Tables() {
		schema := tbl.Schema()
		summary := TableSummary{Name: tbl.Name()}
		for _, col := range schema.Fields() {
			summary.Columns = append(summary.Columns, ColumnSummary{
				Name:   col,
				Type:   schema.Type(col).String(),
				Length: schema.Length(col),
			})
		}
		for _, idx := range tbl.Indexes() {
			summary.Indexes = append(summary.Indexes, IndexSummary{
				Name:    idx.Name(),
				Type:    idx.Type().String(),
				Unique:  idx.Unique(),
				Columns: idx.Columns(),
			})
		}
		resp.Tables = append(resp.Tables, summary)
	}
	return resp
}

func (a *CatalogAgent) handle(ctx context.Context, _ []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return json.Marshal(a.Describe())
}
