// Package stats supplies the cardinality estimates plan costing consumes.
// Estimates are snapshots: nothing here is updated while a plan is costed.
package stats

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultMaxTuples = 1000000
	DefaultMinTuples = 100000
)

// TableEstimates holds the row count bounds assumed for one table.
type TableEstimates struct {
	MinTuples int64 `json:"minTuples"`
	MaxTuples int64 `json:"maxTuples"`
}

// DefaultTableEstimates is what a table without statistics is assumed to hold.
func DefaultTableEstimates() TableEstimates {
	return TableEstimates{MinTuples: DefaultMinTuples, MaxTuples: DefaultMaxTuples}
}

// Estimates is the statistics surface used by costing.
type Estimates interface {
	// EstimatesForTable returns the estimates for a table, falling back to
	// defaults when nothing is known about it.
	EstimatesForTable(tableName string) TableEstimates
}

var _ Estimates = (*DatabaseEstimates)(nil)

// DatabaseEstimates is an immutable per-table estimate map.
type DatabaseEstimates struct {
	tables   map[string]TableEstimates
	defaults TableEstimates
}

// NewDatabaseEstimates copies perTable into a new snapshot. Table names are
// matched ignoring case.
func NewDatabaseEstimates(perTable map[string]TableEstimates) *DatabaseEstimates {
	tables := make(map[string]TableEstimates, len(perTable))
	for name, est := range perTable {
		tables[strings.ToUpper(name)] = est
	}
	return &DatabaseEstimates{
		tables:   tables,
		defaults: DefaultTableEstimates(),
	}
}

// WithDefaults returns a copy of d whose fallback for unknown tables is est.
func (d *DatabaseEstimates) WithDefaults(est TableEstimates) *DatabaseEstimates {
	c := d.clone()
	c.defaults = est
	return c
}

// With returns a copy of d with the estimate for one table replaced.
func (d *DatabaseEstimates) With(tableName string, est TableEstimates) *DatabaseEstimates {
	c := d.clone()
	c.tables[strings.ToUpper(tableName)] = est
	return c
}

func (d *DatabaseEstimates) clone() *DatabaseEstimates {
	tables := make(map[string]TableEstimates, len(d.tables)+1)
	for name, e := range d.tables {
		tables[name] = e
	}
	return &DatabaseEstimates{tables: tables, defaults: d.defaults}
}

func (d *DatabaseEstimates) EstimatesForTable(tableName string) TableEstimates {
	if est, exists := d.tables[strings.ToUpper(tableName)]; exists {
		return est
	}
	return d.defaults
}

// ScalarValueHints describes what is known about one statement parameter.
// Costing accepts hints per parameter; an absent hint means nothing is known.
type ScalarValueHints struct {
	DistinctValues int64  `json:"distinctValues,omitempty"`
	MinValue       *int64 `json:"minValue,omitempty"`
	MaxValue       *int64 `json:"maxValue,omitempty"`
}

// LoadEstimates reads a JSON object mapping table names to estimates.
func LoadEstimates(r io.Reader) (*DatabaseEstimates, error) {
	var perTable map[string]TableEstimates
	if err := json.NewDecoder(r).Decode(&perTable); err != nil {
		return nil, errors.Wrap(err, "decode table estimates")
	}
	for name, est := range perTable {
		if est.MinTuples < 0 || est.MaxTuples < est.MinTuples {
			return nil, errors.Errorf("table %s: bad tuple bounds [%d, %d]", name, est.MinTuples, est.MaxTuples)
		}
	}
	return NewDatabaseEstimates(perTable), nil
}
