package plan

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/expression"
	"github.com/doubaokun/voltdb/internal/stats"
	"github.com/doubaokun/voltdb/internal/types"
)

const (
	memberTargetIndexName      = "TARGET_INDEX_NAME"
	memberEndExpression        = "END_EXPRESSION"
	memberSearchKeyExpressions = "SEARCHKEY_EXPRESSIONS"
	memberKeyIterate           = "KEY_ITERATE"
	memberLookupType           = "LOOKUP_TYPE"
	memberSortDirection        = "SORT_DIRECTION"
)

const (
	// seqScanDiscount keeps every index scan at least slightly cheaper than
	// reading the whole table.
	seqScanDiscount = 0.90
	// coveredColumnSelectivity is applied once per equality-covered column.
	coveredColumnSelectivity = 0.10
	// minNonUniqueCost is one more than the cheapest exact unique match.
	minNonUniqueCost = 4
)

// IndexScanNode reads a table through one of its indexes. The table's
// post-scan predicate is applied to every row the index returns.
type IndexScanNode struct {
	nodeHeader
	scan scanFields

	targetIndexName string
	// catalogIndex is a non-owning reference into the catalog snapshot.
	catalogIndex *catalog.Index

	searchKeys    []*expression.Expression
	endExpression *expression.Expression
	// keyIterate is carried through serialization; no planning rule reads it.
	keyIterate    bool
	lookupType    types.IndexLookupType
	sortDirection types.SortDirectionType

	// bindings are the parameter values of a reused plan; they are not part
	// of the serialized plan.
	bindings []*expression.Expression
}

// NewIndexScanNode returns an unbound index scan doing an EQ lookup.
func NewIndexScanNode() *IndexScanNode {
	return &IndexScanNode{
		nodeHeader:    nodeHeader{nodeType: types.PlanNodeTypeIndexScan},
		lookupType:    types.IndexLookupTypeEQ,
		sortDirection: types.SortDirectionInvalid,
	}
}

// SetCatalogIndex binds the scan to idx and to the table idx belongs to. A
// nil idx clears the index binding and leaves the table as it was.
func (n *IndexScanNode) SetCatalogIndex(idx *catalog.Index) {
	if idx == nil {
		n.catalogIndex = nil
		n.targetIndexName = ""
		return
	}
	n.catalogIndex = idx
	n.targetIndexName = idx.Name()
	n.scan.setTargetTable(idx.Table())
}

func (n *IndexScanNode) CatalogIndex() *catalog.Index { return n.catalogIndex }
func (n *IndexScanNode) TargetIndexName() string      { return n.targetIndexName }
func (n *IndexScanNode) TargetTableName() string      { return n.scan.targetTableName }
func (n *IndexScanNode) TargetTableAlias() string     { return n.scan.targetTableAlias }

func (n *IndexScanNode) SetTargetTableAlias(alias string) {
	n.scan.targetTableAlias = alias
}

// SetPredicate stores a private copy of the post-scan predicate. nil clears it.
func (n *IndexScanNode) SetPredicate(e *expression.Expression) {
	n.scan.setPredicate(e)
}

func (n *IndexScanNode) Predicate() *expression.Expression {
	return n.scan.predicate
}

// SetEndExpression stores a private copy of the scan-termination predicate.
// nil clears it.
func (n *IndexScanNode) SetEndExpression(e *expression.Expression) {
	n.endExpression = e.Clone()
}

func (n *IndexScanNode) EndExpression() *expression.Expression {
	return n.endExpression
}

// AddSearchKeyExpression appends a private copy of e as the next search key,
// in index column order. A nil e is ignored.
func (n *IndexScanNode) AddSearchKeyExpression(e *expression.Expression) {
	if e == nil {
		return
	}
	n.searchKeys = append(n.searchKeys, e.Clone())
}

// SearchKeyExpressions returns the search keys in index column order. Use
// AddSearchKeyExpression to add keys.
func (n *IndexScanNode) SearchKeyExpressions() []*expression.Expression {
	out := make([]*expression.Expression, len(n.searchKeys))
	copy(out, n.searchKeys)
	return out
}

func (n *IndexScanNode) SetKeyIterate(keyIterate bool) { n.keyIterate = keyIterate }
func (n *IndexScanNode) KeyIterate() bool              { return n.keyIterate }

func (n *IndexScanNode) SetLookupType(t types.IndexLookupType) { n.lookupType = t }
func (n *IndexScanNode) LookupType() types.IndexLookupType     { return n.lookupType }

func (n *IndexScanNode) SetSortDirection(d types.SortDirectionType) { n.sortDirection = d }
func (n *IndexScanNode) SortDirection() types.SortDirectionType     { return n.sortDirection }

// SetBindings stores private copies of the parameter bindings.
func (n *IndexScanNode) SetBindings(bindings []*expression.Expression) {
	n.bindings = expression.CloneAll(bindings)
}

func (n *IndexScanNode) Bindings() []*expression.Expression {
	return n.bindings
}

func (n *IndexScanNode) mustBeBound() *catalog.Index {
	if n.catalogIndex == nil {
		panic(fmt.Sprintf("plan: index scan %d using %q has no catalog index", n.id, n.targetIndexName))
	}
	return n.catalogIndex
}

func (n *IndexScanNode) Validate() error {
	if n.catalogIndex == nil {
		return errors.Wrapf(ErrNotBound, "index scan using %q", n.targetIndexName)
	}
	if err := validateScanState(&n.scan); err != nil {
		return err
	}
	if len(n.searchKeys) == 0 {
		return errors.Wrapf(ErrNoSearchKeys, "index scan of %q using %q", n.scan.targetTableName, n.targetIndexName)
	}
	if len(n.searchKeys) > n.catalogIndex.ColumnCount() {
		return errors.Wrapf(ErrTooManySearchKeys, "%d keys for %d columns of %q",
			len(n.searchKeys), n.catalogIndex.ColumnCount(), n.targetIndexName)
	}

	if err := validateScanExpressions(&n.scan); err != nil {
		return err
	}
	if n.endExpression != nil {
		if err := n.endExpression.Validate(); err != nil {
			return errors.Wrap(err, "end expression")
		}
	}
	for i, key := range n.searchKeys {
		if err := key.Validate(); err != nil {
			return errors.Wrapf(err, "search key %d", i)
		}
	}
	return validateChildren(n)
}

// ResolveColumnIndexes resolves the end expression, then the search keys in
// order, then the columns owned by the scan itself.
func (n *IndexScanNode) ResolveColumnIndexes() error {
	if n.catalogIndex == nil || n.scan.targetTable == nil {
		return errors.Wrapf(ErrNotBound, "index scan using %q", n.targetIndexName)
	}
	tves := expression.TupleValueExpressions(n.endExpression)
	for _, key := range n.searchKeys {
		tves = append(tves, expression.TupleValueExpressions(key)...)
	}
	if err := resolveColumns(tves, n.scan.targetTable); err != nil {
		return err
	}
	if err := resolveScanColumns(&n.scan); err != nil {
		return err
	}
	return resolveChildren(n)
}

// indexTypePriority is the tie-breaker seeding an index scan's cost. It is
// not a row estimate. Unknown kinds score 0.
func indexTypePriority(t types.IndexType) int64 {
	switch {
	case t == types.IndexTypeHashTable:
		return 2
	case t.IsTree():
		return 3
	default:
		return 0
	}
}

// ComputeCostEstimates scores the scan by the fraction of the index key the
// search keys pin down.
//
// A range-bound key counts as half a column. With no search keys an end
// expression alone also counts as half a column. Any scan that is not an
// exact match on a unique index starts from 90% of a full table read, is
// divided by ten per covered column, and never scores below 4, so an exact
// unique match (2 or 3) always wins. The processed estimate doubles as the
// result cardinality; post-predicate filtering is ignored here just as the
// sequential scan ignores all filtering.
func (n *IndexScanNode) ComputeCostEstimates(_ int64, db *catalog.Database, estimates stats.Estimates, _ []stats.ScalarValueHints) {
	idx := n.mustBeBound()
	tableEstimates := scanTableEstimates(&n.scan, db, estimates)

	colCount := float64(idx.ColumnCount())
	keyWidth := float64(len(n.searchKeys))
	if keyWidth > colCount {
		panic(fmt.Sprintf("plan: index scan using %q has %v keys for %v columns", n.targetIndexName, keyWidth, colCount))
	}

	if keyWidth > 0 && n.lookupType != types.IndexLookupTypeEQ {
		keyWidth -= 0.5
	} else if keyWidth == 0 && n.endExpression != nil {
		keyWidth = 0.5
	}

	tuplesToRead := indexTypePriority(idx.Type())
	if tuplesToRead <= 0 {
		panic(fmt.Sprintf("plan: index %q has unsupported type %s", n.targetIndexName, idx.Type()))
	}

	if !idx.Unique() || colCount > keyWidth {
		tuplesToRead += int64(float64(tableEstimates.MaxTuples) * seqScanDiscount * math.Pow(coveredColumnSelectivity, keyWidth))
		if tuplesToRead < minNonUniqueCost {
			tuplesToRead = minNonUniqueCost
		}
	}

	n.estimatedOutputTupleCount = tuplesToRead
	n.estimatedProcessedTupleCount = tuplesToRead

	// A unique index returns at most one row per probe.
	if idx.Unique() && colCount == keyWidth {
		n.estimatedOutputTupleCount = 1
	}
}

// IsOrderDeterministic is true only for unique indexes. Rows sharing a key
// in a non-unique index come back in no guaranteed order.
func (n *IndexScanNode) IsOrderDeterministic() bool {
	return n.mustBeBound().Unique()
}

func (n *IndexScanNode) NondeterminismDetail() string {
	if n.IsOrderDeterministic() {
		return ""
	}
	return "index scan may provide insufficient ordering"
}

func (n *IndexScanNode) Explain() string {
	indexSize := n.mustBeBound().ColumnCount()
	keySize := len(n.searchKeys)
	// An end expression with no start key reads like a one-column range scan.
	if keySize == 0 && n.endExpression != nil {
		keySize = 1
	}

	scanType := "unique-scan"
	if n.lookupType != types.IndexLookupTypeEQ {
		scanType = "range-scan"
	}
	cover := "covering"
	if indexSize != keySize {
		cover = fmt.Sprintf("%d/%d cols", keySize, indexSize)
	}
	usage := fmt.Sprintf("(%s %s)", scanType, cover)
	if keySize == 0 {
		usage = "(for sort order only)"
	}
	return fmt.Sprintf("INDEX SCAN of %q using %q %s%s",
		n.scan.targetTableName, n.targetIndexName, usage, explainPredicate(&n.scan))
}

var indexScanFields = []codec.Field[*IndexScanNode]{
	{
		Name: memberTargetIndexName,
		Encode: func(n *IndexScanNode, o *codec.Object) error {
			return o.Set(memberTargetIndexName, n.targetIndexName)
		},
		Decode: func(n *IndexScanNode, r *codec.Reader) error {
			return r.Get(memberTargetIndexName, &n.targetIndexName)
		},
	},
	{
		Name: memberEndExpression,
		Encode: func(n *IndexScanNode, o *codec.Object) error {
			return o.Set(memberEndExpression, n.endExpression)
		},
		Decode: func(n *IndexScanNode, r *codec.Reader) error {
			raw, err := r.Raw(memberEndExpression)
			if err != nil || r.IsNull(memberEndExpression) {
				return err
			}
			n.endExpression, err = expression.Decode(raw)
			return err
		},
	},
	{
		Name: memberSearchKeyExpressions,
		Encode: func(n *IndexScanNode, o *codec.Object) error {
			keys := n.searchKeys
			if keys == nil {
				keys = []*expression.Expression{}
			}
			return o.Set(memberSearchKeyExpressions, keys)
		},
		Decode: func(n *IndexScanNode, r *codec.Reader) error {
			elems, err := r.Array(memberSearchKeyExpressions)
			if err != nil {
				return err
			}
			for i, raw := range elems {
				key, err := expression.Decode(raw)
				if err != nil {
					return errors.Wrapf(err, "search key %d", i)
				}
				n.searchKeys = append(n.searchKeys, key)
			}
			return nil
		},
	},
	{
		Name: memberKeyIterate,
		Encode: func(n *IndexScanNode, o *codec.Object) error {
			return o.Set(memberKeyIterate, n.keyIterate)
		},
		Decode: func(n *IndexScanNode, r *codec.Reader) error {
			return r.Get(memberKeyIterate, &n.keyIterate)
		},
	},
	{
		Name: memberLookupType,
		Encode: func(n *IndexScanNode, o *codec.Object) error {
			return o.Set(memberLookupType, n.lookupType.String())
		},
		Decode: func(n *IndexScanNode, r *codec.Reader) error {
			var name string
			if err := r.Get(memberLookupType, &name); err != nil {
				return err
			}
			var err error
			n.lookupType, err = types.ParseIndexLookupType(name)
			return err
		},
	},
	{
		Name: memberSortDirection,
		Encode: func(n *IndexScanNode, o *codec.Object) error {
			return o.Set(memberSortDirection, n.sortDirection.String())
		},
		Decode: func(n *IndexScanNode, r *codec.Reader) error {
			var name string
			if err := r.Get(memberSortDirection, &name); err != nil {
				return err
			}
			var err error
			n.sortDirection, err = types.ParseSortDirection(name)
			return err
		},
	},
}

func (n *IndexScanNode) encode(o *codec.Object) error {
	if err := encodeScan(&n.scan, o); err != nil {
		return err
	}
	return codec.EncodeFields(n, o, indexScanFields)
}

// decode reads the scan keys before the index keys, then re-binds the index
// by name within the re-bound table.
func (n *IndexScanNode) decode(r *codec.Reader, db *catalog.Database) error {
	if err := decodeScan(&n.scan, r, db); err != nil {
		return err
	}
	if err := codec.DecodeFields(n, r, indexScanFields); err != nil {
		return err
	}
	idx := n.scan.targetTable.Index(n.targetIndexName)
	if idx == nil {
		return errors.Wrapf(ErrIndexNotFound, "%q on table %q", n.targetIndexName, n.scan.targetTableName)
	}
	if len(n.searchKeys) > idx.ColumnCount() {
		return errors.Wrapf(ErrTooManySearchKeys, "%d keys for %d columns of %q",
			len(n.searchKeys), idx.ColumnCount(), n.targetIndexName)
	}
	n.catalogIndex = idx
	return nil
}
