// Package ops hosts the administrative agents a planner host exposes over
// its messenger: one agent per selector, each behind its own mailbox.
package ops

import "fmt"

// Selector names one kind of administrative agent.
type Selector int

const (
	SelectorExplain Selector = iota
	SelectorCatalog
)

var selectorNames = [...]string{
	SelectorExplain: "EXPLAIN",
	SelectorCatalog: "CATALOG",
}

// Site ids are fixed per selector so every host exposes each agent at the
// same low half of the address.
var selectorSites = [...]uint32{
	SelectorExplain: 16,
	SelectorCatalog: 17,
}

// Selectors lists every selector in declaration order.
func Selectors() []Selector {
	return []Selector{SelectorExplain, SelectorCatalog}
}

func (s Selector) String() string {
	if s < 0 || int(s) >= len(selectorNames) {
		return fmt.Sprintf("Selector(%d)", int(s))
	}
	return selectorNames[s]
}

func (s Selector) SiteID() uint32 {
	return selectorSites[s]
}

// Address is the mailbox address of the selector's agent on hostID.
func (s Selector) Address(hostID uint32) Address {
	return NewAddress(hostID, s.SiteID())
}

// Address identifies a mailbox: host id in the high 32 bits, site id in the
// low 32.
type Address uint64

func NewAddress(hostID, siteID uint32) Address {
	return Address(uint64(hostID)<<32 | uint64(siteID))
}

func (a Address) HostID() uint32 { return uint32(a >> 32) }
func (a Address) SiteID() uint32 { return uint32(a) }

func (a Address) String() string {
	return fmt.Sprintf("%d:%d", a.HostID(), a.SiteID())
}
