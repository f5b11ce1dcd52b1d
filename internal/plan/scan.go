package plan

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/expression"
	"github.com/doubaokun/voltdb/internal/stats"
)

// scanFields is the state shared by the scan variants: the table read and
// the predicate applied to each row after it is fetched.
type scanFields struct {
	targetTableName  string
	targetTableAlias string
	// targetTable is a non-owning reference into the catalog snapshot.
	targetTable *catalog.Table
	predicate   *expression.Expression
}

func (s *scanFields) setTargetTable(t *catalog.Table) {
	s.targetTable = t
	s.targetTableName = t.Name()
	if s.targetTableAlias == "" {
		s.targetTableAlias = t.Name()
	}
}

func (s *scanFields) setPredicate(e *expression.Expression) {
	s.predicate = e.Clone()
}

// validateScanState checks the scan's own fields.
func validateScanState(s *scanFields) error {
	if s.targetTableName == "" {
		return errors.Wrap(ErrNotBound, "scan has no target table")
	}
	return nil
}

// validateScanExpressions validates the expressions owned at the scan level.
func validateScanExpressions(s *scanFields) error {
	if s.predicate == nil {
		return nil
	}
	return errors.Wrapf(s.predicate.Validate(), "predicate of scan on %s", s.targetTableName)
}

// resolveColumns writes the offset and type of each referenced column in
// table's schema back into the reference.
func resolveColumns(tves []*expression.Expression, table *catalog.Table) error {
	schema := table.Schema()
	for _, tve := range tves {
		index := schema.IndexOf(tve.ColumnName())
		if index < 0 {
			return errors.Wrapf(ErrColumnNotFound, "%s.%s", table.Name(), tve.ColumnName())
		}
		tve.SetColumnIndex(index)
		tve.SetValueType(schema.Type(tve.ColumnName()))
	}
	return nil
}

// resolveScanColumns resolves the columns owned at the scan level.
func resolveScanColumns(s *scanFields) error {
	if s.targetTable == nil {
		return errors.Wrapf(ErrNotBound, "scan on %q", s.targetTableName)
	}
	return resolveColumns(expression.TupleValueExpressions(s.predicate), s.targetTable)
}

// scanTableEstimates looks up the statistics for the scanned table. The table
// must exist in db: costing an unknown table is a planner bug.
func scanTableEstimates(s *scanFields, db *catalog.Database, estimates stats.Estimates) stats.TableEstimates {
	target := db.Table(s.targetTableName)
	if target == nil {
		panic(fmt.Sprintf("plan: costing scan of %q, which is not in database %q", s.targetTableName, db.Name()))
	}
	return estimates.EstimatesForTable(target.Name())
}

func explainPredicate(s *scanFields) string {
	if s.predicate == nil {
		return ""
	}
	return " filter by " + s.predicate.String()
}

const (
	memberID               = "ID"
	memberPlanNodeType     = "PLAN_NODE_TYPE"
	memberChildrenIDs      = "CHILDREN_IDS"
	memberTargetTableName  = "TARGET_TABLE_NAME"
	memberTargetTableAlias = "TARGET_TABLE_ALIAS"
	memberPredicate        = "PREDICATE"
)

var headerFields = []codec.Field[*nodeHeader]{
	{
		Name:   memberID,
		Encode: func(h *nodeHeader, o *codec.Object) error { return o.Set(memberID, h.id) },
		Decode: func(h *nodeHeader, r *codec.Reader) error { return r.Get(memberID, &h.id) },
	},
	{
		Name: memberPlanNodeType,
		Encode: func(h *nodeHeader, o *codec.Object) error {
			return o.Set(memberPlanNodeType, h.nodeType.String())
		},
		// The type is read by DecodeNode to pick the variant.
		Decode: func(*nodeHeader, *codec.Reader) error { return nil },
	},
	{
		Name: memberChildrenIDs,
		Encode: func(h *nodeHeader, o *codec.Object) error {
			ids := make([]int, len(h.children))
			for i, child := range h.children {
				ids[i] = child.ID()
			}
			return o.Set(memberChildrenIDs, ids)
		},
		Decode: func(h *nodeHeader, r *codec.Reader) error {
			return r.Get(memberChildrenIDs, &h.childIDs)
		},
	},
}

var scanFieldTable = []codec.Field[*scanFields]{
	{
		Name: memberTargetTableName,
		Encode: func(s *scanFields, o *codec.Object) error {
			return o.Set(memberTargetTableName, s.targetTableName)
		},
		Decode: func(s *scanFields, r *codec.Reader) error {
			return r.Get(memberTargetTableName, &s.targetTableName)
		},
	},
	{
		Name: memberTargetTableAlias,
		Encode: func(s *scanFields, o *codec.Object) error {
			return o.Set(memberTargetTableAlias, s.targetTableAlias)
		},
		Decode: func(s *scanFields, r *codec.Reader) error {
			return r.Get(memberTargetTableAlias, &s.targetTableAlias)
		},
	},
	{
		Name: memberPredicate,
		Encode: func(s *scanFields, o *codec.Object) error {
			return o.Set(memberPredicate, s.predicate)
		},
		Decode: func(s *scanFields, r *codec.Reader) error {
			raw, err := r.Raw(memberPredicate)
			if err != nil {
				return err
			}
			if r.IsNull(memberPredicate) {
				s.predicate = nil
				return nil
			}
			s.predicate, err = expression.Decode(raw)
			return err
		},
	},
}

func encodeScan(s *scanFields, o *codec.Object) error {
	return codec.EncodeFields(s, o, scanFieldTable)
}

// decodeScan reads the scan keys and re-binds the target table by name in db.
func decodeScan(s *scanFields, r *codec.Reader, db *catalog.Database) error {
	if err := codec.DecodeFields(s, r, scanFieldTable); err != nil {
		return err
	}
	table := db.Table(s.targetTableName)
	if table == nil {
		return errors.Wrapf(ErrTableNotFound, "%q in database %q", s.targetTableName, db.Name())
	}
	s.targetTable = table
	return nil
}
