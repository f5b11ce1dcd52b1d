package expression

import (
	"fmt"
	"strconv"

	"github.com/doubaokun/voltdb/internal/types"
)

// Constant represents an integer, a string, or SQL NULL.
type Constant struct {
	intVal *int64
	strVal *string
}

// NewIntConstant creates a new Constant with an integer value.
func NewIntConstant(val int64) Constant {
	return Constant{intVal: &val}
}

// NewStringConstant creates a new Constant with a string value.
func NewStringConstant(val string) Constant {
	return Constant{strVal: &val}
}

// NullConstant returns the SQL NULL constant.
func NullConstant() Constant {
	return Constant{}
}

// IsNull returns true if the constant holds no value.
func (c Constant) IsNull() bool {
	return c.intVal == nil && c.strVal == nil
}

// IsInt returns true if the constant holds an integer value.
func (c Constant) IsInt() bool {
	return c.intVal != nil
}

// IsString returns true if the constant holds a string value.
func (c Constant) IsString() bool {
	return c.strVal != nil
}

func (c Constant) AsInt() int64 {
	return *c.intVal
}

func (c Constant) AsString() string {
	return *c.strVal
}

// ValueType maps the held value to its SQL type.
func (c Constant) ValueType() types.ValueType {
	switch {
	case c.IsInt():
		return types.ValueTypeInteger
	case c.IsString():
		return types.ValueTypeVarchar
	default:
		return types.ValueTypeNull
	}
}

// String returns a SQL-literal rendering of the constant.
func (c Constant) String() string {
	switch {
	case c.IsInt():
		return strconv.FormatInt(*c.intVal, 10)
	case c.IsString():
		return fmt.Sprintf("'%s'", *c.strVal)
	default:
		return "NULL"
	}
}

// Equals checks if the constant is equal to another constant. Two NULLs are
// equal here; this is structural equality, not SQL comparison.
func (c Constant) Equals(other Constant) bool {
	if c.intVal != nil && other.intVal != nil {
		return *c.intVal == *other.intVal
	}
	if c.strVal != nil && other.strVal != nil {
		return *c.strVal == *other.strVal
	}
	return c.IsNull() && other.IsNull()
}

// clone copies the held value so the result shares no pointer with c.
func (c Constant) clone() Constant {
	switch {
	case c.IsInt():
		return NewIntConstant(*c.intVal)
	case c.IsString():
		return NewStringConstant(*c.strVal)
	default:
		return NullConstant()
	}
}
