package collision

import "github.com/san-kum/orbitsim/internal/body"

// Merge fuses overlapping bodies in a perfectly inelastic collision. The
// absorbed bodies are removed from the scene at the end of PreStep.
type Merge struct{}

func (Merge) Policy() Policy { return PolicyMerge }

func (Merge) PreStep(scene body.Scene, s Step) Outcome {
	bodies := scene.Bodies()
	queued := make([]bool, len(bodies))
	out := Outcome{Survivors: make(map[int]int)}

	for _, p := range s.Pairs {
		if p.A == p.B || queued[p.A] || queued[p.B] {
			continue
		}
		a, b := &bodies[p.A], &bodies[p.B]

		if a.Mass+b.Mass == 0 {
			queued[p.A], queued[p.B] = true, true
			out.Deleted = append(out.Deleted, p.A, p.B)
			continue
		}

		keep, drop := survivor(bodies, p.A, p.B)
		absorb(&bodies[keep], &bodies[drop])
		queued[drop] = true
		out.Deleted = append(out.Deleted, drop)
		out.Survivors[drop] = keep
	}

	if len(out.Deleted) > 0 {
		out.Removed = scene.DeleteBodies(out.Deleted)
	}
	return out
}

func (Merge) PostStep(body.Scene, Step) {}

// survivor orders a pair: heavier first, then locked, then lower index.
func survivor(bodies []body.Body, i, j int) (keep, drop int) {
	a, b := &bodies[i], &bodies[j]
	switch {
	case a.Mass > b.Mass:
		return i, j
	case b.Mass > a.Mass:
		return j, i
	case a.Locked != b.Locked:
		if a.Locked {
			return i, j
		}
		return j, i
	case i < j:
		return i, j
	default:
		return j, i
	}
}

// absorb folds drop into keep. A locked survivor keeps its position and
// velocity; an unlocked one only moves toward drop when both share a lock
// state.
func absorb(keep, drop *body.Body) {
	total := keep.Mass + drop.Mass

	if !keep.Locked {
		frac := 0.0
		if keep.Locked == drop.Locked {
			frac = drop.Mass / total
		}
		keep.X += (drop.X - keep.X) * frac
		keep.Y += (drop.Y - keep.Y) * frac
		keep.VX = (keep.Mass*keep.VX + drop.Mass*drop.VX) / total
		keep.VY = (keep.Mass*keep.VY + drop.Mass*drop.VY) / total
	}

	keep.Color = body.BlendColor(keep.Color, keep.Mass, drop.Color, drop.Mass)
	keep.SetMass(total)
}
