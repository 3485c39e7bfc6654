// Package alphabet defines the symbol universe of a machine and the
// keyboard adapter at the char/index boundary. Every other engine
// component operates on indices only.
package alphabet

import (
	"enigma/internal/errors"
)

// Alphabet is an ordered set of distinct symbols with a char<->index
// bijection. Structural properties (distinctness, printability, even
// size) are guaranteed by the specification loader and trusted here.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// New builds an alphabet from the given symbol sequence.
func New(symbols string) *Alphabet {
	runes := []rune(symbols)
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		index[r] = i
	}
	return &Alphabet{symbols: runes, index: index}
}

// Size returns the number of symbols in the alphabet.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Contains reports whether r is a member of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// IndexOf returns the position of r, or -1 when r is not a member.
func (a *Alphabet) IndexOf(r rune) int {
	i, ok := a.index[r]
	if !ok {
		return -1
	}
	return i
}

// Symbol returns the symbol at position i. The caller guarantees i is in
// range; out-of-range access panics like any slice access.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// Symbols returns the symbols in order.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// String returns the alphabet as a string in symbol order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Keyboard enforces alphabet membership at the char/index boundary.
type Keyboard struct {
	alphabet *Alphabet
}

// NewKeyboard creates a keyboard over the given alphabet.
func NewKeyboard(a *Alphabet) *Keyboard {
	return &Keyboard{alphabet: a}
}

// ToIndex translates a character into its alphabet index.
func (k *Keyboard) ToIndex(r rune) (int, error) {
	i := k.alphabet.IndexOf(r)
	if i < 0 {
		return 0, errors.Newf(errors.MessageError,
			"character %q is not part of the machine alphabet %q", r, k.alphabet.String())
	}
	return i, nil
}

// ToChar translates an alphabet index back into its character.
func (k *Keyboard) ToChar(i int) (rune, error) {
	if i < 0 || i >= k.alphabet.Size() {
		return 0, errors.Newf(errors.MessageError,
			"index %d is outside the alphabet range [0,%d)", i, k.alphabet.Size())
	}
	return k.alphabet.Symbol(i), nil
}

// Alphabet returns the alphabet this keyboard is bound to.
func (k *Keyboard) Alphabet() *Alphabet {
	return k.alphabet
}
