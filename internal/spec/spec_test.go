package spec

import (
	"strings"
	"testing"

	"enigma/internal/alphabet"
	"enigma/internal/errors"
)

func validSpec() MachineSpec {
	return MachineSpec{
		Alphabet:   "ABCD",
		RotorCount: 2,
		Rotors: []RotorSpec{
			{ID: 1, Notch: 0, Right: "ABCD", Left: "BDAC"},
			{ID: 2, Notch: 3, Right: "ABCD", Left: "CADB"},
		},
		Reflectors: []ReflectorSpec{
			{ID: "I", Pairs: []string{"AB", "CD"}},
			{ID: "II", Pairs: []string{"AC", "BD"}},
		},
	}
}

func TestMachineSpec_ValidateAccepts(t *testing.T) {
	s := validSpec()
	if err := s.Validate(); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}

func TestMachineSpec_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MachineSpec)
	}{
		{"empty alphabet", func(s *MachineSpec) { s.Alphabet = "" }},
		{"odd alphabet", func(s *MachineSpec) { s.Alphabet = "ABC" }},
		{"duplicate symbol", func(s *MachineSpec) { s.Alphabet = "ABCA" }},
		{"non-printable symbol", func(s *MachineSpec) { s.Alphabet = "AB\x01D" }},
		{"zero rotor count", func(s *MachineSpec) { s.RotorCount = 0 }},
		{"too few rotors defined", func(s *MachineSpec) { s.RotorCount = 5 }},
		{"non-contiguous rotor ids", func(s *MachineSpec) { s.Rotors[1].ID = 7 }},
		{"notch out of range", func(s *MachineSpec) { s.Rotors[0].Notch = 4 }},
		{"right column short", func(s *MachineSpec) { s.Rotors[0].Right = "ABC" }},
		{"right column repeats", func(s *MachineSpec) { s.Rotors[0].Right = "ABCA" }},
		{"left column outside alphabet", func(s *MachineSpec) { s.Rotors[0].Left = "BDAZ" }},
		{"no reflectors", func(s *MachineSpec) { s.Reflectors = nil }},
		{"non-roman reflector id", func(s *MachineSpec) { s.Reflectors[0].ID = "A" }},
		{"roman sequence gap", func(s *MachineSpec) { s.Reflectors[1].ID = "III" }},
		{"reflector pair count", func(s *MachineSpec) { s.Reflectors[0].Pairs = []string{"AB"} }},
		{"reflector self pair", func(s *MachineSpec) { s.Reflectors[0].Pairs = []string{"AA", "CD"} }},
		{"reflector symbol reused", func(s *MachineSpec) { s.Reflectors[0].Pairs = []string{"AB", "AD"} }},
		{"reflector symbol outside alphabet", func(s *MachineSpec) { s.Reflectors[0].Pairs = []string{"AB", "CZ"} }},
		{"reflector pair too long", func(s *MachineSpec) { s.Reflectors[0].Pairs = []string{"ABC", "D"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(&s)

			err := s.Validate()
			if err == nil {
				t.Fatal("spec should have been rejected")
			}
			if !errors.Is(err, errors.StructuralError) {
				t.Errorf("error code = %q, want STRUCTURAL_ERROR", errors.CodeOf(err))
			}
		})
	}
}

func TestMachineSpec_Lookups(t *testing.T) {
	s := validSpec()

	if r, ok := s.RotorByID(2); !ok || r.Left != "CADB" {
		t.Errorf("RotorByID(2) = %+v, %v", r, ok)
	}
	if _, ok := s.RotorByID(9); ok {
		t.Error("RotorByID(9) should miss")
	}

	if ref, ok := s.ReflectorByID("II"); !ok || len(ref.Pairs) != 2 {
		t.Errorf("ReflectorByID(II) = %+v, %v", ref, ok)
	}
	if _, ok := s.ReflectorByID("IX"); ok {
		t.Error("ReflectorByID(IX) should miss")
	}
}

func TestReflectorSpec_Wiring(t *testing.T) {
	s := validSpec()
	a := alphabet.New(s.Alphabet)

	ref, _ := s.ReflectorByID("I")
	mapping := ref.Wiring(a)

	want := []int{1, 0, 3, 2} // AB, CD
	for i, w := range want {
		if mapping[i] != w {
			t.Errorf("mapping[%d] = %d, want %d", i, mapping[i], w)
		}
	}
}

func TestRoman(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"}, {2, "II"}, {3, "III"}, {4, "IV"}, {5, "V"},
		{9, "IX"}, {14, "XIV"}, {40, "XL"},
	}
	for _, tt := range tests {
		if got := roman(tt.n); got != tt.want {
			t.Errorf("roman(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestValidate_MessageNamesProblem(t *testing.T) {
	s := validSpec()
	s.Rotors[0].Right = "ABCA"

	err := s.Validate()
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !strings.Contains(err.Error(), "rotor 1 right column") {
		t.Errorf("error should name the offending location, got %q", err.Error())
	}
}
