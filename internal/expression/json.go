package expression

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/types"
)

const (
	fieldType        = "TYPE"
	fieldValueType   = "VALUE_TYPE"
	fieldLeft        = "LEFT"
	fieldRight       = "RIGHT"
	fieldTableName   = "TABLE_NAME"
	fieldColumnName  = "COLUMN_NAME"
	fieldColumnAlias = "COLUMN_ALIAS"
	fieldColumnIndex = "COLUMN_IDX"
	fieldIsNull      = "ISNULL"
	fieldValue       = "VALUE"
	fieldParamIndex  = "PARAM_IDX"
)

// commonFields is filled in init because the operand fields recurse into
// Decode, which reads this table.
var commonFields []codec.Field[*Expression]

func init() {
	commonFields = []codec.Field[*Expression]{
		{
			Name: fieldType,
			Encode: func(e *Expression, o *codec.Object) error {
				return o.Set(fieldType, e.exprType.String())
			},
			Decode: func(e *Expression, r *codec.Reader) error {
				var name string
				if err := r.Get(fieldType, &name); err != nil {
					return err
				}
				t, err := types.ParseExpressionType(name)
				e.exprType = t
				return err
			},
		},
		{
			Name: fieldValueType,
			Encode: func(e *Expression, o *codec.Object) error {
				return o.Set(fieldValueType, e.valueType.String())
			},
			Decode: func(e *Expression, r *codec.Reader) error {
				var name string
				if err := r.Get(fieldValueType, &name); err != nil {
					return err
				}
				vt, err := types.ParseValueType(name)
				e.valueType = vt
				return err
			},
		},
		childField(fieldLeft, func(e *Expression) **Expression { return &e.left }),
		childField(fieldRight, func(e *Expression) **Expression { return &e.right }),
	}
}

// childField encodes an operand only when present; absent operands are
// caught by Validate rather than by the decoder.
func childField(name string, slot func(*Expression) **Expression) codec.Field[*Expression] {
	return codec.Field[*Expression]{
		Name: name,
		Encode: func(e *Expression, o *codec.Object) error {
			child := *slot(e)
			if child == nil {
				return nil
			}
			return o.Set(name, child)
		},
		Decode: func(e *Expression, r *codec.Reader) error {
			if !r.Has(name) || r.IsNull(name) {
				return nil
			}
			raw, err := r.Raw(name)
			if err != nil {
				return err
			}
			child, err := Decode(raw)
			if err != nil {
				return err
			}
			*slot(e) = child
			return nil
		},
	}
}

func stringField(name string, slot func(*Expression) *string) codec.Field[*Expression] {
	return codec.Field[*Expression]{
		Name:   name,
		Encode: func(e *Expression, o *codec.Object) error { return o.Set(name, *slot(e)) },
		Decode: func(e *Expression, r *codec.Reader) error { return r.Get(name, slot(e)) },
	}
}

func intField(name string, slot func(*Expression) *int) codec.Field[*Expression] {
	return codec.Field[*Expression]{
		Name:   name,
		Encode: func(e *Expression, o *codec.Object) error { return o.Set(name, *slot(e)) },
		Decode: func(e *Expression, r *codec.Reader) error { return r.Get(name, slot(e)) },
	}
}

var tupleFields = []codec.Field[*Expression]{
	stringField(fieldTableName, func(e *Expression) *string { return &e.tableName }),
	stringField(fieldColumnName, func(e *Expression) *string { return &e.columnName }),
	stringField(fieldColumnAlias, func(e *Expression) *string { return &e.columnAlias }),
	intField(fieldColumnIndex, func(e *Expression) *int { return &e.columnIndex }),
}

var parameterFields = []codec.Field[*Expression]{
	intField(fieldParamIndex, func(e *Expression) *int { return &e.paramIndex }),
}

var constantFields = []codec.Field[*Expression]{
	{
		Name: fieldIsNull,
		Encode: func(e *Expression, o *codec.Object) error {
			return o.Set(fieldIsNull, e.value.IsNull())
		},
		Decode: func(e *Expression, r *codec.Reader) error {
			var isNull bool
			if err := r.Get(fieldIsNull, &isNull); err != nil {
				return err
			}
			if isNull {
				e.value = NullConstant()
			}
			return nil
		},
	},
	{
		Name: fieldValue,
		Encode: func(e *Expression, o *codec.Object) error {
			switch {
			case e.value.IsInt():
				return o.Set(fieldValue, e.value.AsInt())
			case e.value.IsString():
				return o.Set(fieldValue, e.value.AsString())
			default:
				return o.Set(fieldValue, nil)
			}
		},
		Decode: func(e *Expression, r *codec.Reader) error {
			if r.IsNull(fieldValue) {
				if e.valueType != types.ValueTypeNull {
					return errors.Wrapf(codec.ErrMalformed, "null VALUE on a %s constant", e.valueType)
				}
				return nil
			}
			switch e.valueType {
			case types.ValueTypeInteger:
				var v int64
				if err := r.Get(fieldValue, &v); err != nil {
					return err
				}
				e.value = NewIntConstant(v)
			case types.ValueTypeVarchar:
				var v string
				if err := r.Get(fieldValue, &v); err != nil {
					return err
				}
				e.value = NewStringConstant(v)
			default:
				return errors.Wrapf(codec.ErrMalformed, "constant of type %s", e.valueType)
			}
			return nil
		},
	},
}

func kindFields(t types.ExpressionType) []codec.Field[*Expression] {
	switch t {
	case types.ExpressionTypeValueTuple:
		return tupleFields
	case types.ExpressionTypeValueConstant:
		return constantFields
	case types.ExpressionTypeValueParameter:
		return parameterFields
	default:
		return nil
	}
}

// MarshalJSON writes the common keys followed by the keys of the node kind.
func (e *Expression) MarshalJSON() ([]byte, error) {
	o := codec.NewObject()
	if err := codec.EncodeFields(e, o, commonFields); err != nil {
		return nil, err
	}
	if err := codec.EncodeFields(e, o, kindFields(e.exprType)); err != nil {
		return nil, err
	}
	return o.MarshalJSON()
}

// UnmarshalJSON replaces e with the decoded tree.
func (e *Expression) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

// Decode parses one serialized expression tree.
func Decode(data json.RawMessage) (*Expression, error) {
	r, err := codec.NewReader(data)
	if err != nil {
		return nil, err
	}
	e := &Expression{}
	if err := codec.DecodeFields(e, r, commonFields); err != nil {
		return nil, err
	}
	if err := codec.DecodeFields(e, r, kindFields(e.exprType)); err != nil {
		return nil, errors.Wrapf(err, "%s expression", e.exprType)
	}
	return e, nil
}
