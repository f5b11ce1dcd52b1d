package types

// PlanNodeType identifies a plan node variant on the wire.
type PlanNodeType int

const (
	PlanNodeTypeInvalid PlanNodeType = iota
	PlanNodeTypeSeqScan
	PlanNodeTypeIndexScan
	PlanNodeTypeSend
)

var planNodeTypeNames = []string{"INVALID", "SEQSCAN", "INDEXSCAN", "SEND"}

func (t PlanNodeType) String() string {
	return nameOf(planNodeTypeNames, int(t))
}

// ParsePlanNodeType is the inverse of String. INVALID is rejected.
func ParsePlanNodeType(name string) (PlanNodeType, error) {
	v, err := parseName("plan node type", planNodeTypeNames[1:], name)
	if err != nil {
		return PlanNodeTypeInvalid, err
	}
	return PlanNodeType(v + 1), nil
}
