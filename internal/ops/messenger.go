package ops

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrMailboxExists = errors.New("mailbox already registered")
	ErrNoMailbox     = errors.New("no mailbox at address")
)

// Handler answers one request delivered to a mailbox.
type Handler func(ctx context.Context, payload []byte) ([]byte, error)

// Messenger routes requests to mailboxes by address.
type Messenger interface {
	HostID() uint32
	CreateMailbox(addr Address, h Handler) error
	RemoveMailbox(addr Address)
	Send(ctx context.Context, addr Address, payload []byte) ([]byte, error)
}

// LocalMessenger delivers requests in-process by calling the handler
// directly.
type LocalMessenger struct {
	hostID    uint32
	mu        sync.RWMutex
	mailboxes map[Address]Handler
}

func NewLocalMessenger(hostID uint32) *LocalMessenger {
	return &LocalMessenger{
		hostID:    hostID,
		mailboxes: make(map[Address]Handler),
	}
}

func (m *LocalMessenger) HostID() uint32 {
	return m.hostID
}

func (m *LocalMessenger) CreateMailbox(addr Address, h Handler) error {
	if h == nil {
		return errors.Errorf("nil handler for mailbox %s", addr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.mailboxes[addr]; ok {
		return errors.Wrapf(ErrMailboxExists, "%s", addr)
	}
	m.mailboxes[addr] = h
	return nil
}

func (m *LocalMessenger) RemoveMailbox(addr Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.mailboxes, addr)
}

func (m *LocalMessenger) Send(ctx context.Context, addr Address, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	h, ok := m.mailboxes[addr]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrNoMailbox, "%s", addr)
	}
	return h(ctx, payload)
}
