// Package types holds the closed enumerations shared by the catalog, the
// expression tree and the plan nodes. Every enum serializes by name.
package types

import (
	"github.com/pkg/errors"
)

// ErrUnknownName is returned when parsing a name that no enum value carries.
var ErrUnknownName = errors.New("unknown enum name")

func parseName(kind string, names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownName, "%s %q", kind, name)
}

func nameOf(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return "INVALID"
	}
	return names[v]
}
