package machine

import (
	"enigma/internal/alphabet"
	"enigma/internal/errors"
)

// forbiddenChar reports whether r belongs to the fixed forbidden set:
// ASCII control codes 0-31 (covering newline, tab and ESC) and DEL.
// These are rejected even when an alphabet happens to contain them.
func forbiddenChar(r rune) bool {
	return r < 32 || r == 127
}

// ValidateText checks a whole message before any rotor steps. Every
// character must be an alphabet member and outside the forbidden
// control set. The two failure modes carry distinct messages so callers
// can tell a wrong symbol from a control character.
func ValidateText(a *alphabet.Alphabet, text string) error {
	for pos, r := range []rune(text) {
		if forbiddenChar(r) {
			return errors.Newf(errors.MessageError,
				"message position %d holds forbidden control character %U; remove control codes from the input",
				pos+1, r)
		}
		if !a.Contains(r) {
			return errors.Newf(errors.MessageError,
				"message position %d holds %q, which is not in the machine alphabet %q",
				pos+1, r, a.String())
		}
	}
	return nil
}
