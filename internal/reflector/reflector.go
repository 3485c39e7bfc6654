// Package reflector implements the static symmetric mapping that turns
// the signal back through the rotor stack.
package reflector

// Reflector holds an immutable symmetric index mapping. Symmetry,
// irreflexivity and full coverage are guaranteed by the specification
// loader; the reflector itself has no mutable state.
type Reflector struct {
	id      string
	mapping []int
}

// New builds a reflector from a validated symmetric mapping. The mapping
// slice is copied.
func New(id string, mapping []int) *Reflector {
	m := make([]int, len(mapping))
	copy(m, mapping)
	return &Reflector{id: id, mapping: m}
}

// ID returns the reflector identifier.
func (r *Reflector) ID() string {
	return r.id
}

// Process reflects the given index.
func (r *Reflector) Process(idx int) int {
	return r.mapping[idx]
}

// Size returns the alphabet size the reflector covers.
func (r *Reflector) Size() int {
	return len(r.mapping)
}
