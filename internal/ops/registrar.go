package ops

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/doubaokun/voltdb/internal/logutil"
)

// AgentFactory builds the agent for one selector.
type AgentFactory func() (Agent, error)

// Registrar owns one agent per selector.
type Registrar struct {
	mu     sync.Mutex
	agents map[Selector]Agent
}

// NewRegistrar builds an agent for every selector. It fails if a selector has
// no factory or a factory fails; the caller decides whether that is fatal.
func NewRegistrar(factories map[Selector]AgentFactory) (*Registrar, error) {
	agents := make(map[Selector]Agent, len(factories))
	for _, sel := range Selectors() {
		factory, ok := factories[sel]
		if !ok {
			return nil, errors.Errorf("no agent factory for selector %s", sel)
		}
		agent, err := factory()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to instantiate agent for selector %s", sel)
		}
		if agent == nil {
			return nil, errors.Errorf("agent factory for selector %s returned nil", sel)
		}
		agents[sel] = agent
	}
	return &Registrar{agents: agents}, nil
}

// RegisterMailboxes registers each agent at its selector's address on m's host.
func (r *Registrar) RegisterMailboxes(m Messenger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sel := range Selectors() {
		agent, ok := r.agents[sel]
		if !ok {
			continue
		}
		addr := sel.Address(m.HostID())
		if err := agent.RegisterMailbox(m, addr); err != nil {
			return errors.Wrapf(err, "register %s agent at %s", sel, addr)
		}
		logger().Debug("registered agent", zap.Stringer("selector", sel), zap.Stringer("address", addr))
	}
	return nil
}

// Agent returns the agent serving sel, or nil after Shutdown.
func (r *Registrar) Agent(sel Selector) Agent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.agents[sel]
}

// Shutdown stops every agent and forgets them. Cancellation errors are
// dropped and other failures logged, so every agent gets its turn. Calling
// it again does nothing.
func (r *Registrar) Shutdown(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sel := range Selectors() {
		agent, ok := r.agents[sel]
		if !ok {
			continue
		}
		if err := agent.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger().Warn("agent shutdown failed", zap.Stringer("selector", sel), zap.Error(err))
		}
	}
	r.agents = map[Selector]Agent{}
}

func logger() *zap.Logger {
	return logutil.Logger().Named("ops")
}
