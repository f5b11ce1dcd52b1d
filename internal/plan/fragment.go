package plan

import (
	"encoding/json"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/codec"
)

const (
	memberFragmentID = "FRAGMENT_ID"
	memberPlanNodes  = "PLAN_NODES"
)

// Fragment is a plan tree packaged for shipping to an execution engine.
type Fragment struct {
	ID   uuid.UUID
	Root Node
}

// NewFragment wraps root under a fresh id and numbers its nodes 1..n in
// pre-order.
func NewFragment(root Node) *Fragment {
	next := 1
	Walk(root, func(n Node, _ int) {
		n.header().id = next
		next++
	})
	return &Fragment{ID: uuid.New(), Root: root}
}

// Nodes lists the fragment's nodes in pre-order.
func (f *Fragment) Nodes() []Node {
	var nodes []Node
	Walk(f.Root, func(n Node, _ int) {
		nodes = append(nodes, n)
	})
	return nodes
}

func (f *Fragment) MarshalJSON() ([]byte, error) {
	nodes := f.Nodes()
	encoded := make([]*codec.Object, len(nodes))
	for i, n := range nodes {
		o, err := encodeObject(n)
		if err != nil {
			return nil, err
		}
		encoded[i] = o
	}
	o := codec.NewObject()
	if err := o.Set(memberFragmentID, f.ID.String()); err != nil {
		return nil, err
	}
	if err := o.Set(memberPlanNodes, encoded); err != nil {
		return nil, err
	}
	return o.MarshalJSON()
}

// DecodeFragment rebuilds a fragment, re-binding every catalog reference in
// db. The node graph must form exactly one strict tree.
func DecodeFragment(data []byte, db *catalog.Database) (*Fragment, error) {
	r, err := codec.NewReader(data)
	if err != nil {
		return nil, err
	}
	var idText string
	if err := r.Get(memberFragmentID, &idText); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idText)
	if err != nil {
		return nil, errors.Wrapf(codec.ErrMalformed, "fragment id %q: %v", idText, err)
	}
	elems, err := r.Array(memberPlanNodes)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(elems))
	byID := make(map[int]Node, len(elems))
	for _, raw := range elems {
		n, err := DecodeNode(raw, db)
		if err != nil {
			return nil, err
		}
		if _, dup := byID[n.ID()]; dup {
			return nil, errors.Wrapf(ErrInvalidTree, "duplicate node id %d", n.ID())
		}
		byID[n.ID()] = n
		nodes = append(nodes, n)
	}

	for _, n := range nodes {
		for _, childID := range n.header().childIDs {
			child, ok := byID[childID]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidTree, "node %d names missing child %d", n.ID(), childID)
			}
			if err := AddChild(n, child); err != nil {
				return nil, err
			}
		}
		n.header().childIDs = nil
	}

	var root Node
	for _, n := range nodes {
		if n.Parent() != nil {
			continue
		}
		if root != nil {
			return nil, errors.Wrapf(ErrInvalidTree, "nodes %d and %d both lack a parent", root.ID(), n.ID())
		}
		root = n
	}
	if root == nil {
		return nil, errors.Wrap(ErrInvalidTree, "no root node")
	}

	f := &Fragment{ID: id, Root: root}
	if reached := len(f.Nodes()); reached != len(nodes) {
		return nil, errors.Wrapf(ErrInvalidTree, "%d of %d nodes unreachable from root", len(nodes)-reached, len(nodes))
	}
	logger().Debug("decoded plan fragment", zap.Stringer("fragment", id), zap.Int("nodes", len(nodes)))
	return f, nil
}

// EncodeCompressed serializes f and compresses it with snappy.
func EncodeCompressed(f *Fragment) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

// DecodeCompressed is the inverse of EncodeCompressed.
func DecodeCompressed(data []byte, db *catalog.Database) (*Fragment, error) {
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrapf(codec.ErrMalformed, "snappy: %v", err)
	}
	return DecodeFragment(decoded, db)
}
