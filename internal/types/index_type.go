package types

// IndexType is the physical structure backing a catalog index.
type IndexType int

const (
	IndexTypeInvalid IndexType = iota
	IndexTypeBalancedTree
	IndexTypeHashTable
	IndexTypeBTree
)

var indexTypeNames = []string{"INVALID", "BALANCED_TREE", "HASH_TABLE", "BTREE"}

func (t IndexType) String() string {
	return nameOf(indexTypeNames, int(t))
}

// IsTree reports whether the index keeps its keys ordered.
func (t IndexType) IsTree() bool {
	return t == IndexTypeBalancedTree || t == IndexTypeBTree
}

func ParseIndexType(name string) (IndexType, error) {
	v, err := parseName("index type", indexTypeNames, name)
	return IndexType(v), err
}
