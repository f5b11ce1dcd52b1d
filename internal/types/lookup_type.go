package types

// IndexLookupType is the comparison used to probe an index.
type IndexLookupType int

const (
	IndexLookupTypeInvalid IndexLookupType = iota
	IndexLookupTypeEQ
	IndexLookupTypeGT
	IndexLookupTypeGTE
	IndexLookupTypeLT
	IndexLookupTypeLTE
)

var indexLookupTypeNames = []string{"INVALID", "EQ", "GT", "GTE", "LT", "LTE"}

func (t IndexLookupType) String() string {
	return nameOf(indexLookupTypeNames, int(t))
}

func ParseIndexLookupType(name string) (IndexLookupType, error) {
	v, err := parseName("index lookup type", indexLookupTypeNames, name)
	return IndexLookupType(v), err
}
