package rotor

import (
	"testing"
)

// testRotor wires a six-contact rotor:
//
//	right: A B C D E F
//	left:  C A E B F D
func testRotor(notchIndex int) *Rotor {
	return New(1, []rune("ABCDEF"), []rune("CAEBFD"), notchIndex)
}

func TestRotor_ProcessForward(t *testing.T) {
	r := testRotor(0)

	tests := []struct {
		in, want int
	}{
		// right contact at row in, looked up in the left column
		{0, 1}, // A -> row with left A
		{1, 3}, // B -> row with left B
		{2, 0}, // C -> row with left C
		{3, 5}, // D -> row with left D
		{4, 2}, // E -> row with left E
		{5, 4}, // F -> row with left F
	}

	for _, tt := range tests {
		if got := r.Process(tt.in, Forward); got != tt.want {
			t.Errorf("Process(%d, Forward) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRotor_BackwardInvertsForward(t *testing.T) {
	r := testRotor(0)

	for step := 0; step < r.Size(); step++ {
		for i := 0; i < r.Size(); i++ {
			j := r.Process(i, Forward)
			if back := r.Process(j, Backward); back != i {
				t.Fatalf("at rotation %d: Backward(Forward(%d)) = %d", step, i, back)
			}
		}
		r.Advance()
	}
}

func TestRotor_AdvanceRotates(t *testing.T) {
	r := testRotor(0)

	want := "ABCDEFA"
	for i := 0; i < len(want)-1; i++ {
		if r.Position() != rune(want[i]) {
			t.Fatalf("after %d advances Position() = %q, want %q", i, r.Position(), want[i])
		}
		r.Advance()
	}
	if r.Position() != 'A' {
		t.Errorf("six advances should return the rotor home, got %q", r.Position())
	}
}

func TestRotor_FullRevolutionRestoresWiring(t *testing.T) {
	r := testRotor(0)

	var before []int
	for i := 0; i < r.Size(); i++ {
		before = append(before, r.Process(i, Forward))
	}

	for i := 0; i < r.Size(); i++ {
		r.Advance()
	}

	for i := 0; i < r.Size(); i++ {
		if got := r.Process(i, Forward); got != before[i] {
			t.Errorf("wiring drifted after full revolution at %d: %d != %d", i, got, before[i])
		}
	}
}

func TestRotor_NotchEngagement(t *testing.T) {
	// Notch on row 2 means the notch symbol is C; engagement fires on the
	// advance that brings C into the window.
	r := testRotor(2)

	if got := r.NotchDistance(); got != 2 {
		t.Fatalf("NotchDistance() = %d, want 2", got)
	}

	if r.Advance() {
		t.Error("first advance shows B, no engagement expected")
	}
	if !r.Advance() {
		t.Error("second advance shows C, engagement expected")
	}
	if r.NotchDistance() != 0 {
		t.Errorf("NotchDistance() at the notch = %d, want 0", r.NotchDistance())
	}
	if r.Advance() {
		t.Error("third advance moves past the notch, no engagement expected")
	}
	if r.NotchDistance() != 5 {
		t.Errorf("NotchDistance() just past the notch = %d, want 5", r.NotchDistance())
	}
}

func TestRotor_SetPosition(t *testing.T) {
	r := testRotor(0)

	if err := r.SetPosition('D'); err != nil {
		t.Fatalf("SetPosition('D') returned error: %v", err)
	}
	if r.Position() != 'D' {
		t.Errorf("Position() = %q, want 'D'", r.Position())
	}

	// Setting the position it already shows is a no-op.
	if err := r.SetPosition('D'); err != nil {
		t.Fatalf("idempotent SetPosition returned error: %v", err)
	}
	if r.Position() != 'D' {
		t.Error("idempotent SetPosition moved the rotor")
	}

	if err := r.SetPosition('X'); err == nil {
		t.Error("SetPosition should fail for a symbol outside the wiring")
	}
}
