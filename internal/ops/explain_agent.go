package ops

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/doubaokun/voltdb/internal/catalog"
	"github.com/doubaokun/voltdb/internal/plan"
	"github.com/doubaokun/voltdb/internal/stats"
)

// ExplainRequest carries a serialized plan fragment. Fragment holds the
// snappy-compressed encoding when Compressed is set.
type ExplainRequest struct {
	Fragment   []byte                   `json:"fragment"`
	Compressed bool                     `json:"compressed,omitempty"`
	Hints      []stats.ScalarValueHints `json:"hints,omitempty"`
}

type ExplainResponse struct {
	Type                         string `json:"type"`
	FragmentID                   string `json:"fragmentId,omitempty"`
	Plan                         string `json:"plan,omitempty"`
	OrderDeterministic           bool   `json:"orderDeterministic"`
	NondeterminismDetail         string `json:"nondeterminismDetail,omitempty"`
	EstimatedOutputTupleCount    int64  `json:"estimatedOutputTupleCount"`
	EstimatedProcessedTupleCount int64  `json:"estimatedProcessedTupleCount"`
	Error                        string `json:"error,omitempty"`
}

// ExplainAgent plans fragments against a fixed catalog and statistics
// snapshot and answers with their explain text.
type ExplainAgent struct {
	mailbox
	db        *catalog.Database
	estimates stats.Estimates
}

func NewExplainAgent(db *catalog.Database, estimates stats.Estimates) (*ExplainAgent, error) {
	if db == nil {
		return nil, errors.New("explain agent needs a catalog")
	}
	if estimates == nil {
		estimates = stats.NewDatabaseEstimates(nil)
	}
	return &ExplainAgent{db: db, estimates: estimates}, nil
}

func (a *ExplainAgent) RegisterMailbox(m Messenger, addr Address) error {
	return a.register(m, addr, a.handle)
}

func (a *ExplainAgent) Shutdown(ctx context.Context) error {
	return a.shutdown(ctx)
}

// Explain decodes the fragment, then validates, resolves and costs it.
func (a *ExplainAgent) Explain(ctx context.Context, req ExplainRequest) (*ExplainResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decode := plan.DecodeFragment
	if req.Compressed {
		decode = plan.DecodeCompressed
	}
	f, err := decode(req.Fragment, a.db)
	if err != nil {
		return nil, errors.Wrap(err, "decode fragment")
	}
	if err := f.Root.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate fragment %s", f.ID)
	}
	if err := f.Root.ResolveColumnIndexes(); err != nil {
		return nil, errors.Wrapf(err, "resolve fragment %s", f.ID)
	}
	plan.ComputeCostEstimates(f.Root, a.db, a.estimates, req.Hints)

	logger().Debug("explained fragment", zap.Stringer("fragment", f.ID))
	return &ExplainResponse{
		Type:                         "explain",
		FragmentID:                   f.ID.String(),
		Plan:                         plan.ExplainTree(f.Root),
		OrderDeterministic:           f.Root.IsOrderDeterministic(),
		NondeterminismDetail:         f.Root.NondeterminismDetail(),
		EstimatedOutputTupleCount:    f.Root.EstimatedOutputTupleCount(),
		EstimatedProcessedTupleCount: f.Root.EstimatedProcessedTupleCount(),
	}, nil
}

func (a *ExplainAgent) handle(ctx context.Context, payload []byte) ([]byte, error) {
	var req ExplainRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return json.Marshal(ExplainResponse{Type: "error", Error: errors.Wrap(err, "decode request").Error()})
	}
	resp, err := a.Explain(ctx, req)
	if err != nil {
		return json.Marshal(ExplainResponse{Type: "error", Error: err.Error()})
	}
	return json.Marshal(resp)
}
