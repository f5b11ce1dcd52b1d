package types

// ValueType is the SQL type carried by a column or an expression result.
type ValueType int

const (
	ValueTypeInvalid ValueType = iota
	ValueTypeNull
	ValueTypeInteger
	ValueTypeVarchar
	ValueTypeBoolean
)

var valueTypeNames = []string{"INVALID", "NULL", "INTEGER", "VARCHAR", "BOOLEAN"}

func (t ValueType) String() string {
	return nameOf(valueTypeNames, int(t))
}

func ParseValueType(name string) (ValueType, error) {
	v, err := parseName("value type", valueTypeNames, name)
	return ValueType(v), err
}
