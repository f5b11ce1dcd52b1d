// Package expression implements the scalar expression trees owned by plan
// nodes: column references, constants, parameters and the operators that
// combine them.
package expression

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/types"
)

// ErrInvalidExpression is returned by Validate for a malformed tree.
var ErrInvalidExpression = errors.New("invalid expression")

// UnresolvedColumnIndex marks a column reference not yet bound to a schema.
const UnresolvedColumnIndex = -1

// Expression is one node of a scalar expression tree. A tree is owned by a
// single holder; use Clone before handing it to another.
type Expression struct {
	exprType  types.ExpressionType
	valueType types.ValueType
	left      *Expression
	right     *Expression

	// VALUE_TUPLE
	tableName   string
	columnName  string
	columnAlias string
	columnIndex int

	// VALUE_CONSTANT
	value Constant

	// VALUE_PARAMETER
	paramIndex int
}

// NewTupleValue creates a reference to column of table, not yet resolved to
// a physical offset.
func NewTupleValue(table, column string) *Expression {
	return &Expression{
		exprType:    types.ExpressionTypeValueTuple,
		tableName:   table,
		columnName:  column,
		columnAlias: column,
		columnIndex: UnresolvedColumnIndex,
	}
}

// NewConstant creates a constant leaf.
func NewConstant(val Constant) *Expression {
	return &Expression{
		exprType:  types.ExpressionTypeValueConstant,
		valueType: val.ValueType(),
		value:     val,
	}
}

// NewParameter creates a placeholder for the index-th statement parameter.
func NewParameter(index int, vt types.ValueType) *Expression {
	return &Expression{
		exprType:   types.ExpressionTypeValueParameter,
		valueType:  vt,
		paramIndex: index,
	}
}

// NewOperator creates a binary operator node over left and right. The node
// takes ownership of both operands.
func NewOperator(t types.ExpressionType, left, right *Expression) *Expression {
	vt := types.ValueTypeInteger
	if t.IsComparison() || t == types.ExpressionTypeConjunctionAnd || t == types.ExpressionTypeConjunctionOr {
		vt = types.ValueTypeBoolean
	}
	return &Expression{
		exprType:  t,
		valueType: vt,
		left:      left,
		right:     right,
	}
}

// NewNot negates operand.
func NewNot(operand *Expression) *Expression {
	return &Expression{
		exprType:  types.ExpressionTypeOperatorNot,
		valueType: types.ValueTypeBoolean,
		left:      operand,
	}
}

func (e *Expression) Type() types.ExpressionType { return e.exprType }
func (e *Expression) ValueType() types.ValueType  { return e.valueType }
func (e *Expression) Left() *Expression           { return e.left }
func (e *Expression) Right() *Expression          { return e.right }
func (e *Expression) TableName() string           { return e.tableName }
func (e *Expression) ColumnName() string          { return e.columnName }
func (e *Expression) ColumnAlias() string         { return e.columnAlias }
func (e *Expression) ColumnIndex() int            { return e.columnIndex }
func (e *Expression) Value() Constant             { return e.value }
func (e *Expression) ParameterIndex() int         { return e.paramIndex }

// SetValueType overrides the result type, used when a column's type is known.
func (e *Expression) SetValueType(vt types.ValueType) {
	e.valueType = vt
}

// SetColumnIndex records the physical offset a column reference resolved to.
func (e *Expression) SetColumnIndex(index int) {
	e.columnIndex = index
}

// Clone returns a structural deep copy sharing no state with e.
func (e *Expression) Clone() *Expression {
	if e == nil {
		return nil
	}
	c := *e
	c.value = e.value.clone()
	c.left = e.left.Clone()
	c.right = e.right.Clone()
	return &c
}

// Validate checks the operand shape of every node in the tree.
func (e *Expression) Validate() error {
	if e == nil {
		return errors.Wrap(ErrInvalidExpression, "nil expression")
	}
	switch t := e.exprType; {
	case t == types.ExpressionTypeValueTuple:
		if e.columnName == "" {
			return errors.Wrap(ErrInvalidExpression, "column reference without a column name")
		}
		if e.left != nil || e.right != nil {
			return errors.Wrapf(ErrInvalidExpression, "column reference %s has children", e)
		}
	case t == types.ExpressionTypeValueConstant:
		if e.left != nil || e.right != nil {
			return errors.Wrapf(ErrInvalidExpression, "constant %s has children", e)
		}
	case t == types.ExpressionTypeValueParameter:
		if e.paramIndex < 0 {
			return errors.Wrapf(ErrInvalidExpression, "parameter index %d is negative", e.paramIndex)
		}
		if e.left != nil || e.right != nil {
			return errors.Wrapf(ErrInvalidExpression, "parameter %s has children", e)
		}
	case t.IsBinary():
		if e.left == nil || e.right == nil {
			return errors.Wrapf(ErrInvalidExpression, "%s needs two operands", t)
		}
	case t == types.ExpressionTypeOperatorNot:
		if e.left == nil || e.right != nil {
			return errors.Wrap(ErrInvalidExpression, "OPERATOR_NOT needs exactly one operand")
		}
	default:
		return errors.Wrapf(ErrInvalidExpression, "unsupported expression type %s", t)
	}
	if e.left != nil {
		if err := e.left.Validate(); err != nil {
			return err
		}
	}
	if e.right != nil {
		if err := e.right.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two trees are structurally identical, including
// resolved column offsets.
func (e *Expression) Equal(other *Expression) bool {
	if e == nil || other == nil {
		return e == nil && other == nil
	}
	return e.exprType == other.exprType &&
		e.valueType == other.valueType &&
		e.tableName == other.tableName &&
		e.columnName == other.columnName &&
		e.columnAlias == other.columnAlias &&
		e.columnIndex == other.columnIndex &&
		e.paramIndex == other.paramIndex &&
		e.value.Equals(other.value) &&
		e.value.ValueType() == other.value.ValueType() &&
		e.left.Equal(other.left) &&
		e.right.Equal(other.right)
}

// String returns a SQL-like rendering for explain output.
func (e *Expression) String() string {
	if e == nil {
		return "<nil>"
	}
	switch t := e.exprType; {
	case t == types.ExpressionTypeValueTuple:
		if e.tableName == "" {
			return e.columnName
		}
		return e.tableName + "." + e.columnName
	case t == types.ExpressionTypeValueConstant:
		return e.value.String()
	case t == types.ExpressionTypeValueParameter:
		return fmt.Sprintf("?%d", e.paramIndex)
	case t.IsBinary():
		return fmt.Sprintf("(%s %s %s)", e.left, t.Symbol(), e.right)
	case t == types.ExpressionTypeOperatorNot:
		return fmt.Sprintf("NOT %s", e.left)
	default:
		return t.String()
	}
}

// TupleValueExpressions collects the column references in e, left operand
// before right. A nil tree yields nil.
func TupleValueExpressions(e *Expression) []*Expression {
	if e == nil {
		return nil
	}
	if e.exprType == types.ExpressionTypeValueTuple {
		return []*Expression{e}
	}
	var out []*Expression
	out = append(out, TupleValueExpressions(e.left)...)
	out = append(out, TupleValueExpressions(e.right)...)
	return out
}

// CloneAll deep-copies every expression of list.
func CloneAll(list []*Expression) []*Expression {
	if list == nil {
		return nil
	}
	out := make([]*Expression, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	return out
}
