// Package spec defines the immutable machine specification and its
// loader. A specification that reaches the engine has passed every
// structural check here; the engine never re-validates these properties.
package spec

import (
	"fmt"
	"unicode"

	"enigma/internal/alphabet"
	"enigma/internal/errors"
)

// RotorSpec is one rotor's immutable wiring definition. Right and Left
// hold the contact columns in row order; Notch is a row index of the
// right column.
type RotorSpec struct {
	ID    int    `json:"id" yaml:"id" toml:"id"`
	Notch int    `json:"notch" yaml:"notch" toml:"notch"`
	Right string `json:"right" yaml:"right" toml:"right"`
	Left  string `json:"left" yaml:"left" toml:"left"`
}

// ReflectorSpec is one reflector's immutable pairing definition. Each
// entry of Pairs is a two-symbol string naming one wire.
type ReflectorSpec struct {
	ID    string   `json:"id" yaml:"id" toml:"id"`
	Pairs []string `json:"pairs" yaml:"pairs" toml:"pairs"`
}

// MachineSpec is a fully validated machine description.
type MachineSpec struct {
	Alphabet   string          `json:"alphabet" yaml:"alphabet" toml:"alphabet"`
	RotorCount int             `json:"rotorCount" yaml:"rotorCount" toml:"rotor_count"`
	Rotors     []RotorSpec     `json:"rotors" yaml:"rotors" toml:"rotors"`
	Reflectors []ReflectorSpec `json:"reflectors" yaml:"reflectors" toml:"reflectors"`
}

// RotorByID returns the rotor definition with the given id.
func (s *MachineSpec) RotorByID(id int) (RotorSpec, bool) {
	for _, r := range s.Rotors {
		if r.ID == id {
			return r, true
		}
	}
	return RotorSpec{}, false
}

// ReflectorByID returns the reflector definition with the given id.
func (s *MachineSpec) ReflectorByID(id string) (ReflectorSpec, bool) {
	for _, r := range s.Reflectors {
		if r.ID == id {
			return r, true
		}
	}
	return ReflectorSpec{}, false
}

// Wiring converts a reflector's symbol pairs into a symmetric index
// mapping over the given alphabet. The spec is validated, so every pair
// resolves.
func (r ReflectorSpec) Wiring(a *alphabet.Alphabet) []int {
	mapping := make([]int, a.Size())
	for _, pair := range r.Pairs {
		runes := []rune(pair)
		i, j := a.IndexOf(runes[0]), a.IndexOf(runes[1])
		mapping[i] = j
		mapping[j] = i
	}
	return mapping
}

// Validate checks every structural property of the specification and
// returns a StructuralError naming the first violation. Validation is
// atomic: a spec either passes completely or is unusable.
func (s *MachineSpec) Validate() error {
	if err := s.validateAlphabet(); err != nil {
		return err
	}
	if err := s.validateRotors(); err != nil {
		return err
	}
	return s.validateReflectors()
}

func (s *MachineSpec) validateAlphabet() error {
	runes := []rune(s.Alphabet)
	if len(runes) == 0 {
		return errors.New(errors.StructuralError,
			"machine alphabet is empty; define at least two symbols")
	}
	if len(runes)%2 != 0 {
		return errors.Newf(errors.StructuralError,
			"machine alphabet has odd size %d; a reflector needs an even symbol count", len(runes))
	}
	seen := make(map[rune]bool, len(runes))
	for _, r := range runes {
		if seen[r] {
			return errors.Newf(errors.StructuralError,
				"machine alphabet repeats symbol %q; symbols must be distinct", r)
		}
		if !unicode.IsPrint(r) {
			return errors.Newf(errors.StructuralError,
				"machine alphabet contains non-printable symbol %U", r)
		}
		seen[r] = true
	}
	return nil
}

func (s *MachineSpec) validateRotors() error {
	if s.RotorCount < 1 {
		return errors.Newf(errors.StructuralError,
			"required rotor count is %d; a machine needs at least one rotor slot", s.RotorCount)
	}
	if len(s.Rotors) < s.RotorCount {
		return errors.Newf(errors.StructuralError,
			"specification defines %d rotors but requires %d per configuration",
			len(s.Rotors), s.RotorCount)
	}

	a := alphabet.New(s.Alphabet)
	for i, r := range s.Rotors {
		// Rotor ids must be contiguous starting at 1, in definition order.
		if r.ID != i+1 {
			return errors.Newf(errors.StructuralError,
				"rotor ids must be contiguous from 1; found id %d at position %d", r.ID, i+1)
		}
		if r.Notch < 0 || r.Notch >= a.Size() {
			return errors.Newf(errors.StructuralError,
				"rotor %d notch %d is outside [0,%d)", r.ID, r.Notch, a.Size())
		}
		if err := validatePermutation(a, r.Right, fmt.Sprintf("rotor %d right column", r.ID)); err != nil {
			return err
		}
		if err := validatePermutation(a, r.Left, fmt.Sprintf("rotor %d left column", r.ID)); err != nil {
			return err
		}
	}
	return nil
}

func (s *MachineSpec) validateReflectors() error {
	if len(s.Reflectors) == 0 {
		return errors.New(errors.StructuralError,
			"specification defines no reflectors; at least reflector I is required")
	}

	a := alphabet.New(s.Alphabet)
	for i, ref := range s.Reflectors {
		if want := roman(i + 1); ref.ID != want {
			return errors.Newf(errors.StructuralError,
				"reflector ids must follow the Roman sequence; expected %q at position %d, found %q",
				want, i+1, ref.ID)
		}
		if len(ref.Pairs) != a.Size()/2 {
			return errors.Newf(errors.StructuralError,
				"reflector %s defines %d pairs; %d are needed to cover the alphabet",
				ref.ID, len(ref.Pairs), a.Size()/2)
		}
		seen := make(map[rune]bool, a.Size())
		for _, pair := range ref.Pairs {
			runes := []rune(pair)
			if len(runes) != 2 {
				return errors.Newf(errors.StructuralError,
					"reflector %s pair %q must name exactly two symbols", ref.ID, pair)
			}
			if runes[0] == runes[1] {
				return errors.Newf(errors.StructuralError,
					"reflector %s pairs symbol %q with itself", ref.ID, runes[0])
			}
			for _, r := range runes {
				if !a.Contains(r) {
					return errors.Newf(errors.StructuralError,
						"reflector %s pair %q uses symbol %q outside the alphabet", ref.ID, pair, r)
				}
				if seen[r] {
					return errors.Newf(errors.StructuralError,
						"reflector %s wires symbol %q twice", ref.ID, r)
				}
				seen[r] = true
			}
		}
	}
	return nil
}

func validatePermutation(a *alphabet.Alphabet, column, where string) error {
	runes := []rune(column)
	if len(runes) != a.Size() {
		return errors.Newf(errors.StructuralError,
			"%s has %d symbols; the alphabet has %d", where, len(runes), a.Size())
	}
	seen := make(map[rune]bool, len(runes))
	for _, r := range runes {
		if !a.Contains(r) {
			return errors.Newf(errors.StructuralError,
				"%s uses symbol %q outside the alphabet", where, r)
		}
		if seen[r] {
			return errors.Newf(errors.StructuralError,
				"%s repeats symbol %q; columns must be permutations", where, r)
		}
		seen[r] = true
	}
	return nil
}

var romanUnits = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman renders n >= 1 as an uppercase Roman numeral.
func roman(n int) string {
	var out string
	for _, u := range romanUnits {
		for n >= u.value {
			out += u.symbol
			n -= u.value
		}
	}
	return out
}
