// Package rotor implements the mechanical wire-rotation rotor model.
//
// A rotor is an ordered list of (right-contact, left-contact) symbol
// pairs in specification row order. Advancing physically rotates the
// list; signal lookups scan for the matching contact on the other
// column, which keeps the forward and backward transforms structurally
// symmetric without an inverse-permutation table.
package rotor

import (
	"enigma/internal/errors"
)

// Direction selects which way a signal crosses the rotor.
type Direction int

const (
	// Forward is the keyboard-to-reflector crossing (right to left).
	Forward Direction = iota
	// Backward is the reflector-to-lampboard crossing (left to right).
	Backward
)

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

type contactPair struct {
	right rune
	left  rune
}

// Rotor is one physically rotating wheel. The pair list is always a
// rotation of the original specification wiring and never changes size.
type Rotor struct {
	id    int
	notch rune
	pairs []contactPair
}

// New builds a rotor from its wiring columns in specification row order.
// The notch index refers to a row of the original right column; the
// derived notch symbol stays fixed while the rotor rotates.
func New(id int, right, left []rune, notchIndex int) *Rotor {
	pairs := make([]contactPair, len(right))
	for i := range right {
		pairs[i] = contactPair{right: right[i], left: left[i]}
	}
	return &Rotor{
		id:    id,
		notch: right[notchIndex],
		pairs: pairs,
	}
}

// ID returns the rotor identifier from the specification.
func (r *Rotor) ID() int {
	return r.id
}

// Notch returns the fixed notch symbol.
func (r *Rotor) Notch() rune {
	return r.notch
}

// Size returns the number of contact pairs.
func (r *Rotor) Size() int {
	return len(r.pairs)
}

// Advance rotates the rotor one physical step: the front pair moves to
// the back. It reports whether the pair now at the front carries the
// notch symbol on its right contact, signaling that the rotor to the
// left must advance too.
func (r *Rotor) Advance() bool {
	first := r.pairs[0]
	copy(r.pairs, r.pairs[1:])
	r.pairs[len(r.pairs)-1] = first
	return r.pairs[0].right == r.notch
}

// Process transforms a contact index across the rotor. Forward reads the
// right contact at idx and scans the left column for it; Backward is the
// mirror lookup.
func (r *Rotor) Process(idx int, dir Direction) int {
	if dir == Forward {
		symbol := r.pairs[idx].right
		for j, p := range r.pairs {
			if p.left == symbol {
				return j
			}
		}
	} else {
		symbol := r.pairs[idx].left
		for j, p := range r.pairs {
			if p.right == symbol {
				return j
			}
		}
	}
	// Unreachable for permutation wiring, which the loader guarantees.
	return idx
}

// Position returns the window letter: the right contact of the front pair.
func (r *Rotor) Position() rune {
	return r.pairs[0].right
}

// SetPosition advances the rotor until the window shows target. Used at
// configuration time only, never mid-processing.
func (r *Rotor) SetPosition(target rune) error {
	for i := 0; i < len(r.pairs); i++ {
		if r.Position() == target {
			return nil
		}
		r.Advance()
	}
	if r.Position() == target {
		return nil
	}
	return errors.Newf(errors.ConfigurationError,
		"position %q is not a window letter of rotor %d", target, r.id)
}

// NotchDistance returns how many advances remain until the notch symbol
// reaches the window. Zero means the notch is showing now.
func (r *Rotor) NotchDistance() int {
	for j, p := range r.pairs {
		if p.right == r.notch {
			return j
		}
	}
	return 0
}
