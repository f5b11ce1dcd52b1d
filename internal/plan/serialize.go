package plan

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
	"github.com/doubaokun/voltdb/internal/types"
)

var nodeFactories = map[types.PlanNodeType]func() Node{
	types.PlanNodeTypeSeqScan: func() Node {
		return &SeqScanNode{nodeHeader: nodeHeader{nodeType: types.PlanNodeTypeSeqScan}}
	},
	types.PlanNodeTypeIndexScan: func() Node { return NewIndexScanNode() },
	types.PlanNodeTypeSend:      func() Node { return NewSendNode() },
}

func encodeObject(n Node) (*codec.Object, error) {
	o := codec.NewObject()
	if err := codec.EncodeFields(n.header(), o, headerFields); err != nil {
		return nil, err
	}
	if err := n.encode(o); err != nil {
		return nil, errors.Wrapf(err, "encode %s node %d", n.Type(), n.ID())
	}
	return o, nil
}

// EncodeNode serializes one node. Children appear only as CHILDREN_IDS.
func EncodeNode(n Node) ([]byte, error) {
	o, err := encodeObject(n)
	if err != nil {
		return nil, err
	}
	return o.MarshalJSON()
}

// DecodeNode rebuilds one node from its serialized form, re-binding catalog
// references by name in db. The node has no links; child ids are kept for
// DecodeFragment.
func DecodeNode(data json.RawMessage, db *catalog.Database) (Node, error) {
	r, err := codec.NewReader(data)
	if err != nil {
		return nil, err
	}
	var typeName string
	if err := r.Get(memberPlanNodeType, &typeName); err != nil {
		return nil, err
	}
	nodeType, err := types.ParsePlanNodeType(typeName)
	if err != nil {
		return nil, err
	}
	factory, ok := nodeFactories[nodeType]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownName, "no plan node for type %s", nodeType)
	}
	n := factory()
	if err := codec.DecodeFields(n.header(), r, headerFields); err != nil {
		return nil, err
	}
	if err := n.decode(r, db); err != nil {
		return nil, errors.Wrapf(err, "decode %s node %d", nodeType, n.ID())
	}
	return n, nil
}
