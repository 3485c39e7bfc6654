package session

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"enigma/internal/errors"
	"enigma/internal/logging"
	"enigma/internal/machine"
)

const specYAML = `alphabet: ABCDEF
rotorCount: 3
rotors:
  - id: 1
    notch: 2
    right: ABCDEF
    left: CAEBFD
  - id: 2
    notch: 1
    right: ABCDEF
    left: DFBEAC
  - id: 3
    notch: 1
    right: ABCDEF
    left: EDFCAB
reflectors:
  - id: I
    pairs: [AF, BC, DE]
  - id: II
    pairs: [AB, CD, EF]
`

func writeSpecFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine.yaml")
	if err := os.WriteFile(path, []byte(specYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(logging.Nop())
	if err := e.LoadMachine(writeSpecFile(t)); err != nil {
		t.Fatalf("LoadMachine failed: %v", err)
	}
	return e
}

func configuredEngine(t *testing.T) *Engine {
	t.Helper()
	e := loadedEngine(t)
	err := e.ConfigureManual(machine.CodeConfig{
		RotorIDs:    []int{1, 2, 3},
		Positions:   "ABC",
		ReflectorID: "I",
	})
	if err != nil {
		t.Fatalf("ConfigureManual failed: %v", err)
	}
	return e
}

func TestEngine_OperationsRequireLoad(t *testing.T) {
	e := New(logging.Nop())

	if err := e.ConfigureManual(machine.CodeConfig{}); !errors.Is(err, errors.StateError) {
		t.Errorf("ConfigureManual before load: got %v, want STATE_ERROR", err)
	}
	if _, err := e.ConfigureRandom(); !errors.Is(err, errors.StateError) {
		t.Errorf("ConfigureRandom before load: got %v, want STATE_ERROR", err)
	}
	if _, err := e.Process("A"); !errors.Is(err, errors.StateError) {
		t.Errorf("Process before load: got %v, want STATE_ERROR", err)
	}
	if err := e.SaveSnapshot(filepath.Join(t.TempDir(), "x.snap")); !errors.Is(err, errors.StateError) {
		t.Errorf("SaveSnapshot before load: got %v, want STATE_ERROR", err)
	}
}

func TestEngine_LoadMachineFailureKeepsState(t *testing.T) {
	e := configuredEngine(t)

	if err := e.LoadMachine(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("loading a missing file must fail")
	}

	if !e.Loaded() || !e.Configured() {
		t.Error("a failed load must keep the previous spec and configuration")
	}
}

func TestEngine_ProcessBeforeConfigure(t *testing.T) {
	e := loadedEngine(t)

	if _, err := e.Process("A"); !errors.Is(err, errors.StateError) {
		t.Errorf("Process before configure: got %v, want STATE_ERROR", err)
	}
}

func TestEngine_RejectedConfigurationKeepsActiveCode(t *testing.T) {
	e := configuredEngine(t)
	before, err := e.CurrentConfig()
	if err != nil {
		t.Fatal(err)
	}

	err = e.ConfigureManual(machine.CodeConfig{
		RotorIDs:    []int{1, 2, 2},
		Positions:   "ABC",
		ReflectorID: "I",
	})
	if !errors.Is(err, errors.ConfigurationError) {
		t.Fatalf("duplicate rotors: got %v, want CONFIGURATION_ERROR", err)
	}

	after, err := e.CurrentConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("a rejected configuration must not alter the active one")
	}
	if len(e.History().Groups) != 1 {
		t.Error("a rejected configuration must not open a history group")
	}
}

func TestEngine_ConfigureRandomIsValid(t *testing.T) {
	e := loadedEngine(t)
	e.SeedRandom(42)

	cfg, err := e.ConfigureRandom()
	if err != nil {
		t.Fatalf("ConfigureRandom failed: %v", err)
	}
	if !e.Configured() {
		t.Fatal("engine should be configured after ConfigureRandom")
	}
	if len(cfg.RotorIDs) != 3 {
		t.Errorf("random config has %d rotors, want 3", len(cfg.RotorIDs))
	}

	// The drawn configuration must itself pass manual validation.
	if err := e.ConfigureManual(cfg); err != nil {
		t.Errorf("random configuration failed re-validation: %v", err)
	}
}

func TestEngine_ProcessRecordsHistory(t *testing.T) {
	e := configuredEngine(t)

	traces, err := e.Process("ABC")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(traces) != 3 {
		t.Fatalf("got %d traces, want 3", len(traces))
	}
	if _, err := e.Process("DEF"); err != nil {
		t.Fatal(err)
	}

	if e.ProcessedCount() != 2 {
		t.Errorf("ProcessedCount() = %d, want 2", e.ProcessedCount())
	}

	report := e.History()
	if len(report.Groups) != 1 {
		t.Fatalf("got %d history groups, want 1", len(report.Groups))
	}
	if report.TotalMessages != 2 {
		t.Errorf("TotalMessages = %d, want 2", report.TotalMessages)
	}
	if report.Groups[0].Records[0].Input != "ABC" {
		t.Errorf("first record input = %q, want ABC", report.Groups[0].Records[0].Input)
	}
}

func TestEngine_ResetKeepsHistoryAndCounter(t *testing.T) {
	e := configuredEngine(t)

	if _, err := e.Process("ABCDEF"); err != nil {
		t.Fatal(err)
	}

	if err := e.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	cfg, err := e.CurrentConfig()
	if err != nil {
		t.Fatal(err)
	}
	state := e.MachineState()
	if state.Current.Positions != cfg.Positions {
		t.Errorf("Reset left positions %q, want %q", state.Current.Positions, cfg.Positions)
	}
	if e.ProcessedCount() != 1 {
		t.Errorf("Reset changed ProcessedCount to %d", e.ProcessedCount())
	}
	if e.History().TotalMessages != 1 {
		t.Error("Reset must not touch history")
	}
}

func TestEngine_SnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.snap")

	e := configuredEngine(t)
	if _, err := e.Process("ABCDEF"); err != nil {
		t.Fatal(err)
	}

	if err := e.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	restored := New(logging.Nop())
	if err := restored.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(restored.Spec(), e.Spec()) {
		t.Error("round trip must reproduce the identical spec")
	}
	if restored.ProcessedCount() != e.ProcessedCount() {
		t.Errorf("processed count %d, want %d", restored.ProcessedCount(), e.ProcessedCount())
	}
	if !reflect.DeepEqual(restored.History(), e.History()) {
		t.Error("round trip must reproduce identical history")
	}

	es, rs := e.MachineState(), restored.MachineState()
	if !es.Original.Equal(*rs.Original) || !es.Current.Equal(*rs.Current) {
		t.Error("round trip must reproduce identical original and current states")
	}

	// Processing continues identically with and without the round trip.
	t1, err := e.Process("FEDCBA")
	if err != nil {
		t.Fatal(err)
	}
	t2, err := restored.Process("FEDCBA")
	if err != nil {
		t.Fatal(err)
	}
	for i := range t1 {
		if t1[i].Output != t2[i].Output {
			t.Fatalf("post-restore output diverged at %d: %q vs %q", i, t1[i].Output, t2[i].Output)
		}
	}
}

func TestEngine_SnapshotBeforeConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.snap")

	e := loadedEngine(t)
	if err := e.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	restored := New(logging.Nop())
	if err := restored.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if restored.Configured() {
		t.Error("restored engine should not be configured")
	}
	if restored.ProcessedCount() != 0 {
		t.Error("restored engine should carry no processed messages")
	}

	// The restored session still supports configuration and processing.
	err := restored.ConfigureManual(machine.CodeConfig{
		RotorIDs: []int{1, 2, 3}, Positions: "CCC", ReflectorID: "I",
	})
	if err != nil {
		t.Fatalf("configuration after restore failed: %v", err)
	}
	if _, err := restored.Process("AB"); err != nil {
		t.Fatalf("processing after restore failed: %v", err)
	}
}

func TestEngine_LoadSnapshotFailureKeepsState(t *testing.T) {
	e := configuredEngine(t)
	if _, err := e.Process("AB"); err != nil {
		t.Fatal(err)
	}

	if err := e.LoadSnapshot(filepath.Join(t.TempDir(), "absent.snap")); err == nil {
		t.Fatal("loading a missing snapshot must fail")
	}

	if !e.Configured() || e.ProcessedCount() != 1 {
		t.Error("a failed snapshot load must leave the session untouched")
	}
}

func TestEngine_Terminate(t *testing.T) {
	e := configuredEngine(t)
	if _, err := e.Process("AB"); err != nil {
		t.Fatal(err)
	}

	if err := e.Terminate(); err != nil {
		t.Fatalf("Terminate failed: %v", err)
	}

	if e.Loaded() || e.Configured() {
		t.Error("Terminate must clear spec and configuration")
	}
	if e.ProcessedCount() != 0 || e.History().TotalMessages != 0 {
		t.Error("Terminate must clear history and counters")
	}
}

func TestEngine_DistinctSessionIDs(t *testing.T) {
	a, b := New(logging.Nop()), New(logging.Nop())
	if a.ID() == b.ID() {
		t.Error("sessions must have distinct ids")
	}
}
