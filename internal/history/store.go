package history

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"enigma/internal/errors"
	"enigma/internal/logging"
	"enigma/internal/machine"
)

// Store mirrors history groups into a SQLite database so processing
// history survives across CLI invocations independently of snapshots.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
}

// OpenStore opens or creates the history database at path.
func OpenStore(path string, logger *logging.Logger) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError,
			"history database could not be opened", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, errors.Wrap(errors.PersistenceError,
				"history database pragma failed", err)
		}
	}

	s := &Store{conn: conn, logger: logger}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS history_groups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			state_key TEXT NOT NULL UNIQUE,
			rotor_ids TEXT NOT NULL,
			positions TEXT NOT NULL,
			reflector_id TEXT NOT NULL,
			plugboard TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			group_id INTEGER NOT NULL REFERENCES history_groups(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			processed_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_group ON history_messages(group_id, seq)`,
	}
	for _, stmt := range schema {
		if _, err := s.conn.Exec(stmt); err != nil {
			return errors.Wrap(errors.PersistenceError,
				"history schema could not be initialized", err)
		}
	}
	return nil
}

// EnsureGroup returns the database id for the group keyed by state,
// creating the row when the state is new.
func (s *Store) EnsureGroup(state machine.CodeState) (int64, error) {
	key := state.Key()

	var id int64
	err := s.conn.QueryRow(`SELECT id FROM history_groups WHERE state_key = ?`, key).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, errors.Wrap(errors.PersistenceError, "history group lookup failed", err)
	}

	rotorIDs, _ := json.Marshal(state.RotorIDs)
	res, err := s.conn.Exec(`
		INSERT INTO history_groups (state_key, rotor_ids, positions, reflector_id, plugboard, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		key, string(rotorIDs), state.Positions, state.ReflectorID, state.Plugboard, time.Now().UTC())
	if err != nil {
		return 0, errors.Wrap(errors.PersistenceError, "history group could not be created", err)
	}
	return res.LastInsertId()
}

// AppendMessage stores one processed message under a group.
func (s *Store) AppendMessage(groupID int64, rec MessageRecord) error {
	var seq int
	if err := s.conn.QueryRow(
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM history_messages WHERE group_id = ?`, groupID,
	).Scan(&seq); err != nil {
		return errors.Wrap(errors.PersistenceError, "history sequence lookup failed", err)
	}

	_, err := s.conn.Exec(`
		INSERT INTO history_messages (group_id, seq, input, output, duration_ms, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		groupID, seq, rec.Input, rec.Output, rec.DurationMs, time.Now().UTC())
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "history message could not be stored", err)
	}
	return nil
}

// Messages returns the stored messages of a group in sequence order.
func (s *Store) Messages(groupID int64) ([]MessageRecord, error) {
	rows, err := s.conn.Query(`
		SELECT input, output, duration_ms FROM history_messages
		WHERE group_id = ? ORDER BY seq`, groupID)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "history messages could not be read", err)
	}
	defer rows.Close()

	var records []MessageRecord
	for rows.Next() {
		var rec MessageRecord
		if err := rows.Scan(&rec.Input, &rec.Output, &rec.DurationMs); err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "history message row is corrupt", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear drops all stored history. Used on new spec load and terminate.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec(`DELETE FROM history_groups`); err != nil {
		return errors.Wrap(errors.PersistenceError, "history could not be cleared", err)
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
