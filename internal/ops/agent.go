package ops

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Agent serves one selector from a mailbox.
type Agent interface {
	RegisterMailbox(m Messenger, addr Address) error
	// Shutdown releases the mailbox even when ctx is already done, and then
	// returns ctx.Err().
	Shutdown(ctx context.Context) error
}

// mailbox tracks where an agent is registered so Shutdown can release it.
type mailbox struct {
	mu        sync.Mutex
	messenger Messenger
	addr      Address
}

func (b *mailbox) register(m Messenger, addr Address, h Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.messenger != nil {
		return errors.Wrapf(ErrMailboxExists, "agent already registered at %s", b.addr)
	}
	if err := m.CreateMailbox(addr, h); err != nil {
		return err
	}
	b.messenger = m
	b.addr = addr
	return nil
}

// shutdown always releases the mailbox, then reports whether ctx was
// already done.
func (b *mailbox) shutdown(ctx context.Context) error {
	b.mu.Lock()
	if b.messenger != nil {
		b.messenger.RemoveMailbox(b.addr)
		b.messenger = nil
	}
	b.mu.Unlock()
	return ctx.Err()
}

// Address reports where the agent is registered, if anywhere.
func (b *mailbox) Address() (Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addr, b.messenger != nil
}
