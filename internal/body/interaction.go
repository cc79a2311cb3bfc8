package body

import "fmt"

// Interaction selects which bodies affect each other.
type Interaction int

const (
	// AllPairs lets every body act on every other body.
	AllPairs Interaction = iota
	// ParentOnly lets each body interact only with its designated parent.
	ParentOnly
)

func (m Interaction) String() string {
	switch m {
	case AllPairs:
		return "all"
	case ParentOnly:
		return "parent"
	default:
		return fmt.Sprintf("interaction(%d)", int(m))
	}
}

func ParseInteraction(s string) (Interaction, error) {
	switch s {
	case "all", "all-pairs", "":
		return AllPairs, nil
	case "parent":
		return ParentOnly, nil
	}
	return AllPairs, fmt.Errorf("body: unknown interaction mode %q", s)
}
