package types

// ExpressionType is the operator of one expression tree node.
type ExpressionType int

const (
	ExpressionTypeInvalid ExpressionType = iota
	ExpressionTypeValueTuple
	ExpressionTypeValueConstant
	ExpressionTypeValueParameter
	ExpressionTypeCompareEqual
	ExpressionTypeCompareNotEqual
	ExpressionTypeCompareLessThan
	ExpressionTypeCompareGreaterThan
	ExpressionTypeCompareLessThanOrEqualTo
	ExpressionTypeCompareGreaterThanOrEqualTo
	ExpressionTypeConjunctionAnd
	ExpressionTypeConjunctionOr
	ExpressionTypeOperatorPlus
	ExpressionTypeOperatorMinus
	ExpressionTypeOperatorMultiply
	ExpressionTypeOperatorDivide
	ExpressionTypeOperatorNot
)

var expressionTypeNames = []string{
	"INVALID",
	"VALUE_TUPLE",
	"VALUE_CONSTANT",
	"VALUE_PARAMETER",
	"COMPARE_EQUAL",
	"COMPARE_NOTEQUAL",
	"COMPARE_LESSTHAN",
	"COMPARE_GREATERTHAN",
	"COMPARE_LESSTHANOREQUALTO",
	"COMPARE_GREATERTHANOREQUALTO",
	"CONJUNCTION_AND",
	"CONJUNCTION_OR",
	"OPERATOR_PLUS",
	"OPERATOR_MINUS",
	"OPERATOR_MULTIPLY",
	"OPERATOR_DIVIDE",
	"OPERATOR_NOT",
}

var comparisonSymbols = map[ExpressionType]string{
	ExpressionTypeCompareEqual:                "=",
	ExpressionTypeCompareNotEqual:             "<>",
	ExpressionTypeCompareLessThan:             "<",
	ExpressionTypeCompareGreaterThan:          ">",
	ExpressionTypeCompareLessThanOrEqualTo:    "<=",
	ExpressionTypeCompareGreaterThanOrEqualTo: ">=",
	ExpressionTypeConjunctionAnd:              "AND",
	ExpressionTypeConjunctionOr:               "OR",
	ExpressionTypeOperatorPlus:                "+",
	ExpressionTypeOperatorMinus:               "-",
	ExpressionTypeOperatorMultiply:            "*",
	ExpressionTypeOperatorDivide:              "/",
}

func (t ExpressionType) String() string {
	return nameOf(expressionTypeNames, int(t))
}

// Symbol returns the infix spelling of a binary operator, or "" for other types.
func (t ExpressionType) Symbol() string {
	return comparisonSymbols[t]
}

// IsBinary reports whether the operator takes a left and a right operand.
func (t ExpressionType) IsBinary() bool {
	return t >= ExpressionTypeCompareEqual && t <= ExpressionTypeOperatorDivide
}

// IsComparison reports whether the operator is one of the COMPARE_ types.
func (t ExpressionType) IsComparison() bool {
	return t >= ExpressionTypeCompareEqual && t <= ExpressionTypeCompareGreaterThanOrEqualTo
}

func ParseExpressionType(name string) (ExpressionType, error) {
	v, err := parseName("expression type", expressionTypeNames[1:], name)
	if err != nil {
		return ExpressionTypeInvalid, err
	}
	return ExpressionType(v + 1), nil
}
