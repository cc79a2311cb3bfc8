package body

// Scene is the externally owned body collection for one tick.
type Scene interface {
	// Bodies returns the live collection. Writes through the slice mutate the
	// scene. The slice is invalidated by DeleteBodies.
	Bodies() []Body
	// DeleteBodies removes the given indices and returns the removed bodies
	// as they were just before removal.
	DeleteBodies(ids []int) []Body
}

// World is a slice-backed Scene.
type World struct {
	bodies []Body
}

func NewWorld(bodies ...Body) *World {
	w := &World{bodies: make([]Body, len(bodies))}
	copy(w.bodies, bodies)
	return w
}

func (w *World) Bodies() []Body { return w.bodies }
func (w *World) Len() int       { return len(w.bodies) }

// Add appends a body and returns its index.
func (w *World) Add(b Body) int {
	w.bodies = append(w.bodies, b)
	return len(w.bodies) - 1
}

// Snapshot returns an independent copy of the collection.
func (w *World) Snapshot() []Body {
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// DeleteBodies compacts the collection in place. Out-of-range and repeated ids
// are ignored. Parent indices of the survivors are renumbered; a body whose
// parent was removed becomes parentless.
func (w *World) DeleteBodies(ids []int) []Body {
	if len(ids) == 0 {
		return nil
	}

	n := len(w.bodies)
	remove := make([]bool, n)
	removed := make([]Body, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= n || remove[id] {
			continue
		}
		remove[id] = true
		removed = append(removed, w.bodies[id])
	}
	if len(removed) == 0 {
		return removed
	}

	newIndex := make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		if remove[i] {
			newIndex[i] = NoParent
			continue
		}
		newIndex[i] = next
		next++
	}

	for i := 0; i < n; i++ {
		if remove[i] {
			continue
		}
		b := w.bodies[i]
		if b.HasParent(n) {
			b.Parent = newIndex[b.Parent]
		} else {
			b.Parent = NoParent
		}
		w.bodies[newIndex[i]] = b
	}
	clear(w.bodies[next:])
	w.bodies = w.bodies[:next]

	return removed
}
