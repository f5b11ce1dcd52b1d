package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorAddress(t *testing.T) {
	addr := SelectorExplain.Address(3)
	assert.Equal(t, Address(3<<32|16), addr)
	assert.Equal(t, uint32(3), addr.HostID())
	assert.Equal(t, uint32(16), addr.SiteID())
	assert.Equal(t, "3:16", addr.String())

	assert.NotEqual(t, SelectorExplain.Address(3), SelectorCatalog.Address(3))
	assert.NotEqual(t, SelectorCatalog.Address(3), SelectorCatalog.Address(4))
}

func TestSelectorString(t *testing.T) {
	assert.Equal(t, "EXPLAIN", SelectorExplain.String())
	assert.Equal(t, "CATALOG", SelectorCatalog.String())
	assert.Equal(t, "Selector(9)", Selector(9).String())
	assert.Equal(t, []Selector{SelectorExplain, SelectorCatalog}, Selectors())
}
