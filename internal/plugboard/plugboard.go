// Package plugboard implements the optional symmetric swap applied
// before and after the rotor stack.
package plugboard

import (
	"strings"

	"enigma/internal/alphabet"
	"enigma/internal/errors"
)

// Plugboard is an identity-initialized symmetric index swap. Each Plug
// call connects exactly two previously unconnected indices.
type Plugboard struct {
	mapping []int
}

// New creates an identity plugboard for an alphabet of the given size.
func New(size int) *Plugboard {
	mapping := make([]int, size)
	for i := range mapping {
		mapping[i] = i
	}
	return &Plugboard{mapping: mapping}
}

// Plug connects indices a and b. It fails when a equals b or when either
// index already carries a plug. On success the mapping is updated for
// both directions atomically.
func (p *Plugboard) Plug(a, b int) error {
	if a == b {
		return errors.Newf(errors.ConfigurationError,
			"plugboard index %d cannot be paired with itself", a)
	}
	if p.mapping[a] != a {
		return errors.Newf(errors.ConfigurationError,
			"plugboard index %d is already paired with %d", a, p.mapping[a])
	}
	if p.mapping[b] != b {
		return errors.Newf(errors.ConfigurationError,
			"plugboard index %d is already paired with %d", b, p.mapping[b])
	}
	p.mapping[a] = b
	p.mapping[b] = a
	return nil
}

// Swap returns the plugboard image of idx. O(1), no search.
func (p *Plugboard) Swap(idx int) int {
	return p.mapping[idx]
}

// Pairs returns the connected index pairs in ascending order of the
// lower member.
func (p *Plugboard) Pairs() [][2]int {
	var pairs [][2]int
	for i, j := range p.mapping {
		if j > i {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// Encode renders the plugboard as a symbol string, two characters per
// pair, in ascending order. An identity plugboard encodes as "".
func (p *Plugboard) Encode(a *alphabet.Alphabet) string {
	var b strings.Builder
	for _, pair := range p.Pairs() {
		b.WriteRune(a.Symbol(pair[0]))
		b.WriteRune(a.Symbol(pair[1]))
	}
	return b.String()
}
