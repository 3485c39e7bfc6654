package history

import (
	"path/filepath"
	"testing"

	"enigma/internal/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "history.db"), logging.Nop())
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GroupAndMessages(t *testing.T) {
	s := openTestStore(t)

	id, err := s.EnsureGroup(state("AAA"))
	if err != nil {
		t.Fatalf("EnsureGroup failed: %v", err)
	}

	// Same state resolves to the same group row.
	again, err := s.EnsureGroup(state("AAA"))
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("EnsureGroup returned %d then %d for the same state", id, again)
	}

	other, err := s.EnsureGroup(state("BBB"))
	if err != nil {
		t.Fatal(err)
	}
	if other == id {
		t.Error("distinct states must map to distinct groups")
	}

	records := []MessageRecord{
		{Input: "AB", Output: "FC", DurationMs: 1},
		{Input: "CD", Output: "BE", DurationMs: 0},
	}
	for _, rec := range records {
		if err := s.AppendMessage(id, rec); err != nil {
			t.Fatalf("AppendMessage failed: %v", err)
		}
	}

	got, err := s.Messages(id)
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d messages, want 2", len(got))
	}
	if got[0].Input != "AB" || got[1].Input != "CD" {
		t.Errorf("messages out of order: %+v", got)
	}
}

func TestStore_Clear(t *testing.T) {
	s := openTestStore(t)

	id, err := s.EnsureGroup(state("AAA"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.AppendMessage(id, MessageRecord{Input: "A", Output: "F"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	got, err := s.Messages(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("messages survived Clear: %+v", got)
	}
}
