// Package machine implements the assembled cipher engine: the Code
// bundle, the stepping rule, the bidirectional signal path and the
// validators guarding configuration and message input.
package machine

import (
	"fmt"
	"strings"

	"enigma/internal/alphabet"
	"enigma/internal/errors"
	"enigma/internal/plugboard"
	"enigma/internal/reflector"
	"enigma/internal/rotor"
	"enigma/internal/spec"
)

// CodeConfig is a user-facing configuration request. Positions carries
// one window letter per rotor, left to right. Plugboard is optional;
// empty means no plugs.
type CodeConfig struct {
	RotorIDs    []int  `json:"rotorIds"`
	Positions   string `json:"positions"`
	ReflectorID string `json:"reflectorId"`
	Plugboard   string `json:"plugboard,omitempty"`
}

// CodeState is a value snapshot of a configuration. Structural equality
// of original CodeStates defines "same configuration" for history
// grouping.
type CodeState struct {
	RotorIDs       []int  `json:"rotorIds"`
	Positions      string `json:"positions"`
	NotchDistances []int  `json:"notchDistances"`
	ReflectorID    string `json:"reflectorId"`
	Plugboard      string `json:"plugboard"`
}

// Key returns a canonical string form of the state, usable as a map key.
func (s CodeState) Key() string {
	ids := make([]string, len(s.RotorIDs))
	for i, id := range s.RotorIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("rotors=%s positions=%s reflector=%s plugboard=%s",
		strings.Join(ids, ","), s.Positions, s.ReflectorID, s.Plugboard)
}

// Equal reports structural equality of two states.
func (s CodeState) Equal(o CodeState) bool {
	return s.Key() == o.Key() && equalInts(s.NotchDistances, o.NotchDistances)
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Code is one assembled, ready-to-run configuration: ordered rotors
// (left to right), reflector, plugboard and the original settings they
// were built from.
type Code struct {
	alphabet          *alphabet.Alphabet
	keyboard          *alphabet.Keyboard
	rotors            []*rotor.Rotor
	reflector         *reflector.Reflector
	plugboard         *plugboard.Plugboard
	rotorIDs          []int
	originalPositions string
	reflectorID       string
	original          CodeState
}

// NewCode validates cfg against the specification and assembles a Code.
// Rotor ids and positions keep the caller's left-to-right order exactly;
// they are never reversed or reordered. Any validation failure returns a
// ConfigurationError before anything is built.
func NewCode(s *spec.MachineSpec, cfg CodeConfig) (*Code, error) {
	if err := ValidateConfig(s, cfg); err != nil {
		return nil, err
	}

	a := alphabet.New(s.Alphabet)

	rotors := make([]*rotor.Rotor, len(cfg.RotorIDs))
	positions := []rune(cfg.Positions)
	for i, id := range cfg.RotorIDs {
		rs, _ := s.RotorByID(id)
		r := rotor.New(rs.ID, []rune(rs.Right), []rune(rs.Left), rs.Notch)
		if err := r.SetPosition(positions[i]); err != nil {
			return nil, err
		}
		rotors[i] = r
	}

	refSpec, _ := s.ReflectorByID(cfg.ReflectorID)
	ref := reflector.New(refSpec.ID, refSpec.Wiring(a))

	pb := plugboard.New(a.Size())
	pairs := []rune(cfg.Plugboard)
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := pb.Plug(a.IndexOf(pairs[i]), a.IndexOf(pairs[i+1])); err != nil {
			return nil, err
		}
	}

	c := &Code{
		alphabet:          a,
		keyboard:          alphabet.NewKeyboard(a),
		rotors:            rotors,
		reflector:         ref,
		plugboard:         pb,
		rotorIDs:          append([]int(nil), cfg.RotorIDs...),
		originalPositions: cfg.Positions,
		reflectorID:       cfg.ReflectorID,
	}
	c.original = c.State()
	return c, nil
}

// Alphabet returns the alphabet the code operates over.
func (c *Code) Alphabet() *alphabet.Alphabet {
	return c.alphabet
}

// RotorIDs returns the configured rotor ids, left to right.
func (c *Code) RotorIDs() []int {
	return append([]int(nil), c.rotorIDs...)
}

// ReflectorID returns the configured reflector id.
func (c *Code) ReflectorID() string {
	return c.reflectorID
}

// Positions returns the current window letters, left to right.
func (c *Code) Positions() string {
	var b strings.Builder
	for _, r := range c.rotors {
		b.WriteRune(r.Position())
	}
	return b.String()
}

// OriginalPositions returns the window letters captured at assembly.
func (c *Code) OriginalPositions() string {
	return c.originalPositions
}

// State captures the current configuration as a value snapshot.
func (c *Code) State() CodeState {
	distances := make([]int, len(c.rotors))
	for i, r := range c.rotors {
		distances[i] = r.NotchDistance()
	}
	return CodeState{
		RotorIDs:       c.RotorIDs(),
		Positions:      c.Positions(),
		NotchDistances: distances,
		ReflectorID:    c.reflectorID,
		Plugboard:      c.plugboard.Encode(c.alphabet),
	}
}

// OriginalState returns the state captured when the code was assembled.
func (c *Code) OriginalState() CodeState {
	return c.original
}

// Reset turns every rotor back to its original window letter. History
// and counters are outside the Code and stay untouched.
func (c *Code) Reset() error {
	for i, pos := range []rune(c.originalPositions) {
		if err := c.rotors[i].SetPosition(pos); err != nil {
			return err
		}
	}
	return nil
}

// SetPositions turns the rotors to the given window letters. Used when
// restoring a snapshot's current state.
func (c *Code) SetPositions(positions string) error {
	runes := []rune(positions)
	if len(runes) != len(c.rotors) {
		return errors.Newf(errors.ConfigurationError,
			"expected %d position letters, got %d", len(c.rotors), len(runes))
	}
	for i, pos := range runes {
		if err := c.rotors[i].SetPosition(pos); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the configuration request equivalent to this code.
func (c *Code) Config() CodeConfig {
	return CodeConfig{
		RotorIDs:    c.RotorIDs(),
		Positions:   c.originalPositions,
		ReflectorID: c.reflectorID,
		Plugboard:   c.plugboard.Encode(c.alphabet),
	}
}
