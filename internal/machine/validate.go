package machine

import (
	"enigma/internal/alphabet"
	"enigma/internal/errors"
	"enigma/internal/spec"
)

// ValidateConfig checks a configuration request against the loaded
// specification. It fails fast with a ConfigurationError and touches no
// engine state; a request either passes completely or is rejected.
func ValidateConfig(s *spec.MachineSpec, cfg CodeConfig) error {
	if len(cfg.RotorIDs) != s.RotorCount {
		return errors.Newf(errors.ConfigurationError,
			"configuration names %d rotors; the machine requires exactly %d",
			len(cfg.RotorIDs), s.RotorCount)
	}

	seen := make(map[int]bool, len(cfg.RotorIDs))
	for _, id := range cfg.RotorIDs {
		if seen[id] {
			return errors.Newf(errors.ConfigurationError,
				"rotor id %d appears more than once; each slot needs a distinct rotor", id)
		}
		seen[id] = true
		if _, ok := s.RotorByID(id); !ok {
			return errors.Newf(errors.ConfigurationError,
				"rotor id %d is not defined by the loaded specification", id)
		}
	}

	if _, ok := s.ReflectorByID(cfg.ReflectorID); !ok {
		return errors.Newf(errors.ConfigurationError,
			"reflector %q is not defined by the loaded specification", cfg.ReflectorID)
	}

	a := alphabet.New(s.Alphabet)

	positions := []rune(cfg.Positions)
	if len(positions) != s.RotorCount {
		return errors.Newf(errors.ConfigurationError,
			"configuration supplies %d position letters; one per rotor (%d) is required",
			len(positions), s.RotorCount)
	}
	for _, p := range positions {
		if !a.Contains(p) {
			return errors.Newf(errors.ConfigurationError,
				"position %q is not part of the machine alphabet", p)
		}
	}

	return validatePlugboardString(a, cfg.Plugboard)
}

// validatePlugboardString checks an optional plugboard pairing string:
// even length, alphabet members only, no repeated character, no symbol
// paired with itself.
func validatePlugboardString(a *alphabet.Alphabet, pairs string) error {
	runes := []rune(pairs)
	if len(runes) == 0 {
		return nil
	}
	if len(runes)%2 != 0 {
		return errors.Newf(errors.ConfigurationError,
			"plugboard string %q has odd length; plugs come in pairs", pairs)
	}
	seen := make(map[rune]bool, len(runes))
	for i := 0; i < len(runes); i += 2 {
		x, y := runes[i], runes[i+1]
		if x == y {
			return errors.Newf(errors.ConfigurationError,
				"plugboard pairs symbol %q with itself", x)
		}
		for _, r := range []rune{x, y} {
			if !a.Contains(r) {
				return errors.Newf(errors.ConfigurationError,
					"plugboard symbol %q is not part of the machine alphabet", r)
			}
			if seen[r] {
				return errors.Newf(errors.ConfigurationError,
					"plugboard symbol %q appears in more than one pair", r)
			}
			seen[r] = true
		}
	}
	return nil
}
