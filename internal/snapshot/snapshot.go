// Package snapshot captures and restores the full engine state as one
// document: specification, machine state and history. Files are gzipped
// JSON with a BLAKE2b digest guarding against truncation and corruption.
package snapshot

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/crypto/blake2b"

	"enigma/internal/errors"
	"enigma/internal/history"
	"enigma/internal/machine"
	"enigma/internal/spec"
)

// FormatVersion identifies the snapshot document layout.
const FormatVersion = 1

// MachineState is the persistable machine portion of a snapshot. The
// states are absent when no configuration existed at save time.
type MachineState struct {
	Original       *machine.CodeState `json:"original,omitempty"`
	Current        *machine.CodeState `json:"current,omitempty"`
	ProcessedCount int                `json:"processedCount"`
}

// EngineSnapshot is the full persistable engine state.
type EngineSnapshot struct {
	Version int               `json:"version"`
	SavedAt time.Time         `json:"savedAt"`
	Spec    *spec.MachineSpec `json:"spec"`
	State   MachineState      `json:"state"`
	History []history.Group   `json:"history,omitempty"`
}

// envelope wraps the payload with its integrity digest. Payload stays a
// RawMessage so the digest is computed over the exact stored bytes.
type envelope struct {
	Digest  string          `json:"digest"`
	Payload json.RawMessage `json:"payload"`
}

func digestOf(payload []byte) string {
	sum := blake2b.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Save writes the snapshot to path, atomically via a temp file rename.
func Save(path string, snap *EngineSnapshot) error {
	if snap.Spec == nil {
		return errors.New(errors.StateError,
			"no machine specification is loaded; there is nothing to snapshot")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "snapshot could not be encoded", err)
	}

	env, err := json.Marshal(envelope{Digest: digestOf(payload), Payload: payload})
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "snapshot envelope could not be encoded", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(env); err != nil {
		return errors.Wrap(errors.PersistenceError, "snapshot could not be compressed", err)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(errors.PersistenceError, "snapshot could not be compressed", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.PersistenceError,
			"snapshot file could not be written; check the path and permissions", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.PersistenceError, "snapshot file could not be moved into place", err)
	}
	return nil
}

// Load reads, verifies and decodes a snapshot. A file without a valid
// specification inside fails without any side effect on the caller.
func Load(path string) (*EngineSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError,
			"snapshot file could not be opened; check the path", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError,
			"snapshot file is not a valid compressed snapshot", err)
	}
	defer zr.Close()

	envBytes, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "snapshot file is truncated or corrupt", err)
	}

	var env envelope
	if err := json.Unmarshal(envBytes, &env); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "snapshot envelope is corrupt", err)
	}
	if digestOf(env.Payload) != env.Digest {
		return nil, errors.New(errors.PersistenceError,
			"snapshot digest mismatch; the file was modified or truncated")
	}

	var snap EngineSnapshot
	if err := json.Unmarshal(env.Payload, &snap); err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "snapshot payload is corrupt", err)
	}
	if snap.Spec == nil {
		return nil, errors.New(errors.PersistenceError,
			"snapshot contains no machine specification and cannot be loaded")
	}
	if err := snap.Spec.Validate(); err != nil {
		return nil, errors.Wrap(errors.PersistenceError,
			"snapshot contains an invalid machine specification", err)
	}
	return &snap, nil
}
