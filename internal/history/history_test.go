package history

import (
	"testing"

	"enigma/internal/machine"
)

func state(positions string) machine.CodeState {
	return machine.CodeState{
		RotorIDs:       []int{1, 2, 3},
		Positions:      positions,
		NotchDistances: []int{0, 0, 0},
		ReflectorID:    "I",
		Plugboard:      "",
	}
}

func TestTracker_GroupPerConfiguration(t *testing.T) {
	tr := New()

	tr.Begin(state("AAA"))
	if err := tr.Record(MessageRecord{Input: "AB", Output: "FC"}); err != nil {
		t.Fatal(err)
	}
	if err := tr.Record(MessageRecord{Input: "CD", Output: "BE"}); err != nil {
		t.Fatal(err)
	}

	tr.Begin(state("BBB"))
	if err := tr.Record(MessageRecord{Input: "EF", Output: "DA"}); err != nil {
		t.Fatal(err)
	}

	groups := tr.Groups()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0].Records) != 2 || len(groups[1].Records) != 1 {
		t.Errorf("record counts = %d,%d, want 2,1", len(groups[0].Records), len(groups[1].Records))
	}
	if tr.TotalMessages() != 3 {
		t.Errorf("TotalMessages() = %d, want 3", tr.TotalMessages())
	}
}

func TestTracker_SameStateContinuesGroup(t *testing.T) {
	tr := New()

	tr.Begin(state("AAA"))
	if err := tr.Record(MessageRecord{Input: "A", Output: "F"}); err != nil {
		t.Fatal(err)
	}

	// Reconfiguring with an identical original state reuses its group.
	tr.Begin(state("AAA"))
	if err := tr.Record(MessageRecord{Input: "B", Output: "C"}); err != nil {
		t.Fatal(err)
	}

	groups := tr.Groups()
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("got %d records, want 2", len(groups[0].Records))
	}
}

func TestTracker_RecordWithoutGroup(t *testing.T) {
	tr := New()

	if err := tr.Record(MessageRecord{Input: "A", Output: "F"}); err == nil {
		t.Error("recording without an active group must fail")
	}
}

func TestTracker_ClearAndRestore(t *testing.T) {
	tr := New()
	tr.Begin(state("AAA"))
	if err := tr.Record(MessageRecord{Input: "A", Output: "F"}); err != nil {
		t.Fatal(err)
	}

	saved := tr.Groups()
	tr.Clear()
	if len(tr.Groups()) != 0 || tr.TotalMessages() != 0 {
		t.Fatal("Clear must drop everything")
	}

	tr.Restore(saved)
	if tr.TotalMessages() != 1 {
		t.Errorf("restored TotalMessages() = %d, want 1", tr.TotalMessages())
	}

	// Restoring leaves no active group until the next configuration.
	if err := tr.Record(MessageRecord{Input: "B", Output: "C"}); err == nil {
		t.Error("Record right after Restore must fail")
	}

	tr.Begin(state("AAA"))
	if err := tr.Record(MessageRecord{Input: "B", Output: "C"}); err != nil {
		t.Fatal(err)
	}
	if got := len(tr.Groups()); got != 1 {
		t.Errorf("restored state should continue its old group, got %d groups", got)
	}
}
