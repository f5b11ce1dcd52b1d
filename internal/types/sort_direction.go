package types

// SortDirectionType is the output ordering an index scan provides.
type SortDirectionType int

const (
	SortDirectionInvalid SortDirectionType = iota
	SortDirectionAsc
	SortDirectionDesc
)

var sortDirectionNames = []string{"INVALID", "ASC", "DESC"}

func (t SortDirectionType) String() string {
	return nameOf(sortDirectionNames, int(t))
}

func ParseSortDirection(name string) (SortDirectionType, error) {
	v, err := parseName("sort direction", sortDirectionNames, name)
	return SortDirectionType(v), err
}
