// Package session owns the engine state for one logical user: the
// loaded specification, the configured machine, the processing history
// and the counters. Callers create one Engine per session; an Engine is
// not safe for concurrent mutation.
package session

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"enigma/internal/alphabet"
	"enigma/internal/errors"
	"enigma/internal/history"
	"enigma/internal/logging"
	"enigma/internal/machine"
	"enigma/internal/snapshot"
	"enigma/internal/spec"
)

// Report is the history view returned to callers.
type Report struct {
	Groups        []history.Group `json:"groups"`
	TotalMessages int             `json:"totalMessages"`
}

// Engine is an explicit session context. Every operation is synchronous
// and transactional: a rejected operation leaves all prior state intact.
type Engine struct {
	id     string
	logger *logging.Logger

	spec     *spec.MachineSpec
	specPath string

	machine        *machine.Machine
	tracker        *history.Tracker
	store          *history.Store
	storeGroup     int64
	processedCount int

	rng *rand.Rand
}

// New creates an empty engine session.
func New(logger *logging.Logger) *Engine {
	return &Engine{
		id:      uuid.NewString(),
		logger:  logger,
		machine: machine.New(),
		tracker: history.New(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// SeedRandom makes ConfigureRandom reproducible. Used in tests.
func (e *Engine) SeedRandom(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// AttachStore mirrors history into a durable store. Optional.
func (e *Engine) AttachStore(s *history.Store) {
	e.store = s
}

// LoadMachine loads a machine description file. On success any previous
// configuration, history and counters are dropped; on failure the
// previous state stays untouched.
func (e *Engine) LoadMachine(path string) error {
	s, err := spec.Load(path)
	if err != nil {
		return err
	}

	e.spec = s
	e.specPath = path
	e.machine.SetCode(nil)
	e.tracker.Clear()
	e.processedCount = 0
	e.storeGroup = 0
	if e.store != nil {
		if err := e.store.Clear(); err != nil {
			e.logger.Warn("history store could not be cleared", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	e.logger.Info("machine specification loaded", map[string]interface{}{
		"path":       path,
		"alphabet":   s.Alphabet,
		"rotors":     len(s.Rotors),
		"reflectors": len(s.Reflectors),
	})
	return nil
}

// Spec returns the loaded specification, or nil.
func (e *Engine) Spec() *spec.MachineSpec {
	return e.spec
}

// SpecPath returns the path the specification was loaded from.
func (e *Engine) SpecPath() string {
	return e.specPath
}

// Loaded reports whether a specification is loaded.
func (e *Engine) Loaded() bool {
	return e.spec != nil
}

// Configured reports whether a code is installed.
func (e *Engine) Configured() bool {
	return e.machine.HasCode()
}

// ConfigureManual validates cfg against the loaded specification and
// installs the resulting code. A new history group opens on success.
func (e *Engine) ConfigureManual(cfg machine.CodeConfig) error {
	if e.spec == nil {
		return errors.New(errors.StateError,
			"no machine is loaded; run load with a machine description first")
	}

	code, err := machine.NewCode(e.spec, cfg)
	if err != nil {
		return err
	}

	e.machine.SetCode(code)
	e.beginHistory(code.OriginalState())

	e.logger.Info("machine configured", map[string]interface{}{
		"rotors":    cfg.RotorIDs,
		"positions": cfg.Positions,
		"reflector": cfg.ReflectorID,
	})
	return nil
}

// ConfigureRandom draws a valid random configuration from the loaded
// specification and installs it. The drawn configuration is returned.
func (e *Engine) ConfigureRandom() (machine.CodeConfig, error) {
	if e.spec == nil {
		return machine.CodeConfig{}, errors.New(errors.StateError,
			"no machine is loaded; run load with a machine description first")
	}

	a := alphabet.New(e.spec.Alphabet)

	ids := e.rng.Perm(len(e.spec.Rotors))[:e.spec.RotorCount]
	rotorIDs := make([]int, len(ids))
	for i, idx := range ids {
		rotorIDs[i] = e.spec.Rotors[idx].ID
	}

	var positions strings.Builder
	for range rotorIDs {
		positions.WriteRune(a.Symbol(e.rng.Intn(a.Size())))
	}

	reflectorID := e.spec.Reflectors[e.rng.Intn(len(e.spec.Reflectors))].ID

	// Pair a random even subset of the alphabet on the plugboard.
	var plugs strings.Builder
	shuffled := e.rng.Perm(a.Size())
	pairCount := e.rng.Intn(a.Size()/2 + 1)
	for i := 0; i < 2*pairCount; i += 2 {
		plugs.WriteRune(a.Symbol(shuffled[i]))
		plugs.WriteRune(a.Symbol(shuffled[i+1]))
	}

	cfg := machine.CodeConfig{
		RotorIDs:    rotorIDs,
		Positions:   positions.String(),
		ReflectorID: reflectorID,
		Plugboard:   plugs.String(),
	}
	if err := e.ConfigureManual(cfg); err != nil {
		return machine.CodeConfig{}, err
	}
	return cfg, nil
}

func (e *Engine) beginHistory(original machine.CodeState) {
	e.tracker.Begin(original)
	e.storeGroup = 0
	if e.store != nil {
		id, err := e.store.EnsureGroup(original)
		if err != nil {
			e.logger.Warn("history group could not be persisted", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		e.storeGroup = id
	}
}

// Process validates and enciphers text, records it in history and
// returns the per-character traces.
func (e *Engine) Process(text string) ([]machine.SignalTrace, error) {
	if e.spec == nil {
		return nil, errors.New(errors.StateError,
			"no machine is loaded; run load with a machine description first")
	}

	start := time.Now()
	traces, err := e.machine.Process(text)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	for _, tr := range traces {
		out.WriteString(tr.Output)
	}
	rec := history.MessageRecord{
		Input:      text,
		Output:     out.String(),
		DurationMs: time.Since(start).Milliseconds(),
	}

	if err := e.tracker.Record(rec); err != nil {
		return nil, err
	}
	e.processedCount++
	if e.store != nil && e.storeGroup != 0 {
		if err := e.store.AppendMessage(e.storeGroup, rec); err != nil {
			e.logger.Warn("message could not be persisted", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	e.logger.Debug("message processed", map[string]interface{}{
		"length": len(text),
	})
	return traces, nil
}

// Reset restores the rotor positions captured at the last successful
// configuration. History and the processed counter stay untouched.
func (e *Engine) Reset() error {
	return e.machine.Reset()
}

// CurrentConfig returns the active configuration request.
func (e *Engine) CurrentConfig() (machine.CodeConfig, error) {
	if !e.machine.HasCode() {
		return machine.CodeConfig{}, errors.New(errors.StateError,
			"no code is configured; run a manual or random configuration first")
	}
	return e.machine.Code().Config(), nil
}

// ProcessedCount returns the number of processed messages.
func (e *Engine) ProcessedCount() int {
	return e.processedCount
}

// History returns the grouped processing history.
func (e *Engine) History() Report {
	return Report{
		Groups:        e.tracker.Groups(),
		TotalMessages: e.tracker.TotalMessages(),
	}
}

// MachineState captures the persistable machine portion of the session.
func (e *Engine) MachineState() snapshot.MachineState {
	state := snapshot.MachineState{ProcessedCount: e.processedCount}
	if e.machine.HasCode() {
		original := e.machine.Code().OriginalState()
		current := e.machine.Code().State()
		state.Original = &original
		state.Current = &current
	}
	return state
}

// SaveSnapshot writes the full engine state to path.
func (e *Engine) SaveSnapshot(path string) error {
	if e.spec == nil {
		return errors.New(errors.StateError,
			"no machine is loaded; there is nothing to snapshot")
	}
	snap := &snapshot.EngineSnapshot{
		Version: snapshot.FormatVersion,
		SavedAt: time.Now().UTC(),
		Spec:    e.spec,
		State:   e.MachineState(),
		History: e.tracker.Groups(),
	}
	return snapshot.Save(path, snap)
}

// LoadSnapshot replaces the engine state with a saved snapshot. On any
// failure the existing state stays completely untouched.
func (e *Engine) LoadSnapshot(path string) error {
	snap, err := snapshot.Load(path)
	if err != nil {
		return err
	}

	// Rebuild the code before committing anything.
	var code *machine.Code
	if snap.State.Original != nil {
		original := *snap.State.Original
		code, err = machine.NewCode(snap.Spec, machine.CodeConfig{
			RotorIDs:    original.RotorIDs,
			Positions:   original.Positions,
			ReflectorID: original.ReflectorID,
			Plugboard:   original.Plugboard,
		})
		if err != nil {
			return errors.Wrap(errors.PersistenceError,
				"snapshot configuration no longer assembles against its own specification", err)
		}
		if snap.State.Current != nil {
			if err := code.SetPositions(snap.State.Current.Positions); err != nil {
				return errors.Wrap(errors.PersistenceError,
					"snapshot current positions are unusable", err)
			}
		}
	}

	e.spec = snap.Spec
	e.specPath = path
	e.tracker.Restore(snap.History)
	e.processedCount = snap.State.ProcessedCount
	e.machine.SetCode(code)
	e.storeGroup = 0
	if code != nil {
		e.beginHistory(code.OriginalState())
	}

	e.logger.Info("snapshot loaded", map[string]interface{}{
		"path":      path,
		"processed": e.processedCount,
	})
	return nil
}

// Terminate clears all session state: specification, configuration,
// history and counters. The process itself keeps running.
func (e *Engine) Terminate() error {
	e.spec = nil
	e.specPath = ""
	e.machine.SetCode(nil)
	e.tracker.Clear()
	e.processedCount = 0
	e.storeGroup = 0
	if e.store != nil {
		if err := e.store.Clear(); err != nil {
			return err
		}
	}
	e.logger.Info("session terminated", nil)
	return nil
}
