package machine

import (
	"time"

	"enigma/internal/errors"
	"enigma/internal/rotor"
)

// Machine orchestrates stepping and the bidirectional signal path over
// its current Code. ProcessChar is a pure function of the current rotor
// and plugboard state plus the input character: identical state and
// input always yield the identical trace and next state.
type Machine struct {
	code *Code
}

// New creates a machine with no code installed.
func New() *Machine {
	return &Machine{}
}

// SetCode installs a new code, replacing any previous one.
func (m *Machine) SetCode(c *Code) {
	m.code = c
}

// Code returns the installed code, or nil.
func (m *Machine) Code() *Code {
	return m.code
}

// HasCode reports whether a code is installed.
func (m *Machine) HasCode() bool {
	return m.code != nil
}

// step advances the rightmost rotor unconditionally, then cascades
// leftward while each just-advanced rotor reports notch engagement.
// It returns the rotor indices advanced, in advancing order.
func (m *Machine) step() []int {
	rotors := m.code.rotors
	advanced := make([]int, 0, len(rotors))

	i := len(rotors) - 1
	engaged := rotors[i].Advance()
	advanced = append(advanced, i)
	for engaged && i > 0 {
		i--
		engaged = rotors[i].Advance()
		advanced = append(advanced, i)
	}
	return advanced
}

// ProcessChar runs one keypress: stepping first, then the signal path
// keyboard -> plugboard -> rotors -> reflector -> rotors -> plugboard ->
// keyboard. The returned trace records every transformation.
func (m *Machine) ProcessChar(input rune) (SignalTrace, error) {
	if m.code == nil {
		return SignalTrace{}, errors.New(errors.StateError,
			"no code is configured; run a manual or random configuration first")
	}

	start := time.Now()
	c := m.code

	trace := SignalTrace{
		Input:           string(input),
		PositionsBefore: c.Positions(),
	}
	trace.AdvancedRotors = m.step()
	trace.PositionsAfter = c.Positions()

	idx, err := c.keyboard.ToIndex(input)
	if err != nil {
		return SignalTrace{}, err
	}
	idx = c.plugboard.Swap(idx)

	// Forward pass, rightmost rotor first.
	for i := len(c.rotors) - 1; i >= 0; i-- {
		r := c.rotors[i]
		step := RotorStep{
			RotorID:    r.ID(),
			EntryIndex: idx,
			EntryChar:  string(c.alphabet.Symbol(idx)),
		}
		idx = r.Process(idx, rotor.Forward)
		step.ExitIndex = idx
		step.ExitChar = string(c.alphabet.Symbol(idx))
		trace.Forward = append(trace.Forward, step)
	}

	refStep := RotorStep{
		EntryIndex: idx,
		EntryChar:  string(c.alphabet.Symbol(idx)),
	}
	idx = c.reflector.Process(idx)
	refStep.ExitIndex = idx
	refStep.ExitChar = string(c.alphabet.Symbol(idx))
	trace.Reflector = refStep

	// Backward pass, leftmost rotor first.
	for i := 0; i < len(c.rotors); i++ {
		r := c.rotors[i]
		step := RotorStep{
			RotorID:    r.ID(),
			EntryIndex: idx,
			EntryChar:  string(c.alphabet.Symbol(idx)),
		}
		idx = r.Process(idx, rotor.Backward)
		step.ExitIndex = idx
		step.ExitChar = string(c.alphabet.Symbol(idx))
		trace.Backward = append(trace.Backward, step)
	}

	idx = c.plugboard.Swap(idx)

	out, err := c.keyboard.ToChar(idx)
	if err != nil {
		return SignalTrace{}, err
	}
	trace.Output = string(out)
	trace.DurationMs = time.Since(start).Milliseconds()
	return trace, nil
}

// Process validates the whole text against the alphabet and the
// forbidden control set before any rotor steps, then processes it
// character by character. Rejection leaves the rotor state untouched.
func (m *Machine) Process(text string) ([]SignalTrace, error) {
	if m.code == nil {
		return nil, errors.New(errors.StateError,
			"no code is configured; run a manual or random configuration first")
	}
	if err := ValidateText(m.code.alphabet, text); err != nil {
		return nil, err
	}

	runes := []rune(text)
	traces := make([]SignalTrace, 0, len(runes))
	for _, r := range runes {
		trace, err := m.ProcessChar(r)
		if err != nil {
			return nil, err
		}
		traces = append(traces, trace)
	}
	return traces, nil
}

// Reset restores the rotor positions captured at configuration time.
func (m *Machine) Reset() error {
	if m.code == nil {
		return errors.New(errors.StateError,
			"no code is configured; nothing to reset")
	}
	return m.code.Reset()
}
