package collision

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/orbitsim/internal/body"
)

// Policy selects how overlapping bodies are resolved.
type Policy int

const (
	PolicyNone Policy = iota
	PolicyMerge
	PolicyBounce
)

func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "none"
	case PolicyMerge:
		return "merge"
	case PolicyBounce:
		return "bounce"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "none":
		return PolicyNone, nil
	case "merge", "":
		return PolicyMerge, nil
	case "bounce", "rebound":
		return PolicyBounce, nil
	}
	return PolicyNone, fmt.Errorf("collision: unknown policy %q", s)
}

// Step is the per-tick input shared by both resolver hooks.
type Step struct {
	Pairs     []Pair
	Mode      body.Interaction
	TimeScale float64
	// Dragged is held by external input and resolves like a locked body.
	// Negative disables it.
	Dragged int
}

// held reports whether the body at i must not be moved by a resolver.
func (s Step) held(bodies []body.Body, i int) bool {
	return bodies[i].Locked || i == s.Dragged
}

// Outcome reports the bodies a resolver removed from the scene. All indices
// refer to the scene as it was before the removal.
type Outcome struct {
	Deleted []int
	Removed []body.Body
	// Survivors maps an absorbed index to the index that absorbed it.
	Survivors map[int]int
}

// Retarget follows id through the merges and deletions of this outcome and
// returns its index in the shrunk scene, or body.NoParent if it is gone.
func (o Outcome) Retarget(id int) int {
	if id < 0 {
		return body.NoParent
	}
	for hops := 0; hops <= len(o.Survivors); hops++ {
		next, ok := o.Survivors[id]
		if !ok {
			break
		}
		id = next
	}

	shift := 0
	for _, d := range o.Deleted {
		if d == id {
			return body.NoParent
		}
		if d < id {
			shift++
		}
	}
	return id - shift
}

// Resolver is a collision policy. PreStep runs before the force pass and may
// delete bodies; PostStep runs after it on the surviving collection.
type Resolver interface {
	Policy() Policy
	PreStep(scene body.Scene, s Step) Outcome
	PostStep(scene body.Scene, s Step)
}

// NewResolver builds the resolver for p. rng feeds Bounce's random separation
// direction and may be nil.
func NewResolver(p Policy, restitution float64, rng *rand.Rand) Resolver {
	switch p {
	case PolicyMerge:
		return Merge{}
	case PolicyBounce:
		return &Bounce{Restitution: restitution, Rand: rng}
	default:
		return None{}
	}
}

// None leaves overlapping bodies alone.
type None struct{}

func (None) Policy() Policy                   { return PolicyNone }
func (None) PreStep(body.Scene, Step) Outcome { return Outcome{} }
func (None) PostStep(body.Scene, Step)        {}
