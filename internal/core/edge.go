package core

import "fmt"

// EdgePolicy selects how neighbour reads outside the grid are resolved.
type EdgePolicy uint8

const (
	// EdgeClamp returns the nearest edge cell (the texture clamp-to-edge default).
	EdgeClamp EdgePolicy = iota
	// EdgeWrap treats the grid as a torus.
	EdgeWrap
	// EdgeZero treats everything outside the grid as a zero cell.
	EdgeZero
)

func (p EdgePolicy) String() string {
	switch p {
	case EdgeWrap:
		return "wrap"
	case EdgeZero:
		return "zero"
	default:
		return "clamp"
	}
}

// ParseEdgePolicy converts a textual policy name into an EdgePolicy.
func ParseEdgePolicy(s string) (EdgePolicy, error) {
	switch s {
	case "clamp", "":
		return EdgeClamp, nil
	case "wrap", "torus":
		return EdgeWrap, nil
	case "zero":
		return EdgeZero, nil
	}
	return EdgeClamp, fmt.Errorf("unknown edge policy %q", s)
}
