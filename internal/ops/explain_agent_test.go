package ops

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doubaokun/voltdb/internal/plan"
)

func TestExplainAgentExplain(t *testing.T) {
	db, est := setupTestCatalog(t)
	agent, err := NewExplainAgent(db, est)
	require.NoError(t, err)

	f := newTestFragment(t, db, "ORDERS_PK", "ID")
	data, err := json.Marshal(f)
	require.NoError(t, err)

	resp, err := agent.Explain(context.Background(), ExplainRequest{Fragment: data})
	require.NoError(t, err)
	assert.Equal(t, "explain", resp.Type)
	assert.Equal(t, f.ID.String(), resp.FragmentID)
	assert.Equal(t,
		"RETURN RESULTS TO STORED PROCEDURE\n"+
			"  INDEX SCAN of \"ORDERS\" using \"ORDERS_PK\" (unique-scan covering)\n",
		resp.Plan)
	assert.True(t, resp.OrderDeterministic)
	assert.Empty(t, resp.NondeterminismDetail)
	assert.Equal(t, int64(1), resp.EstimatedOutputTupleCount)
	assert.Equal(t, int64(1), resp.EstimatedProcessedTupleCount)
}

func TestExplainAgentCompressedNonUniqueIndex(t *testing.T) {
	db, est := setupTestCatalog(t)
	agent, err := NewExplainAgent(db, est)
	require.NoError(t, err)

	data, err := plan.EncodeCompressed(newTestFragment(t, db, "ORDERS_BY_CUSTOMER", "CUSTOMER"))
	require.NoError(t, err)

	resp, err := agent.Explain(context.Background(), ExplainRequest{Fragment: data, Compressed: true})
	require.NoError(t, err)
	assert.False(t, resp.OrderDeterministic)
	assert.Equal(t, "index scan may provide insufficient ordering", resp.NondeterminismDetail)
	// Tree priority 3 plus int(1000 * 0.9 * 0.1).
	assert.Equal(t, int64(93), resp.EstimatedOutputTupleCount)
}

func TestExplainAgentErrors(t *testing.T) {
	db, est := setupTestCatalog(t)
	agent, err := NewExplainAgent(db, est)
	require.NoError(t, err)

	_, err = agent.Explain(context.Background(), ExplainRequest{Fragment: []byte(`{`)})
	assert.Error(t, err)

	bad := newTestFragment(t, db, "ORDERS_PK", "NOPE")
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	_, err = agent.Explain(context.Background(), ExplainRequest{Fragment: data})
	assert.True(t, errors.Is(err, plan.ErrColumnNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = agent.Explain(ctx, ExplainRequest{})
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = NewExplainAgent(nil, est)
	assert.Error(t, err)
}

func TestExplainAgentMailbox(t *testing.T) {
	db, est := setupTestCatalog(t)
	agent, err := NewExplainAgent(db, est)
	require.NoError(t, err)

	m := NewLocalMessenger(2)
	addr := SelectorExplain.Address(m.HostID())
	require.NoError(t, agent.RegisterMailbox(m, addr))
	assert.True(t, errors.Is(agent.RegisterMailbox(m, addr), ErrMailboxExists))

	data, err := json.Marshal(newTestFragment(t, db, "ORDERS_PK", "ID"))
	require.NoError(t, err)
	out, err := m.Send(context.Background(), addr, explainPayload(t, ExplainRequest{Fragment: data}))
	require.NoError(t, err)
	var resp ExplainResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "explain", resp.Type)

	out, err = m.Send(context.Background(), addr, []byte("not json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "error", resp.Type)
	assert.Contains(t, resp.Error, "decode request")

	require.NoError(t, agent.Shutdown(context.Background()))
	_, err = m.Send(context.Background(), addr, nil)
	assert.True(t, errors.Is(err, ErrNoMailbox))
}

func TestExplainAgentShutdownAfterCancel(t *testing.T) {
	db, est := setupTestCatalog(t)
	agent, err := NewExplainAgent(db, est)
	require.NoError(t, err)
	m := NewLocalMessenger(1)
	require.NoError(t, agent.RegisterMailbox(m, SelectorExplain.Address(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(agent.Shutdown(ctx), context.Canceled))
	_, ok := agent.Address()
	assert.False(t, ok)
	_, err = m.Send(context.Background(), SelectorExplain.Address(1), nil)
	assert.True(t, errors.Is(err, ErrNoMailbox))
}
