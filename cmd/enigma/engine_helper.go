package main

import (
	"fmt"
	"os"
	"sync"

	"enigma/internal/config"
	"enigma/internal/history"
	"enigma/internal/logging"
	"enigma/internal/paths"
	"enigma/internal/session"
)

var (
	engineOnce   sync.Once
	sharedEngine *session.Engine
	sharedConfig *config.Config
	engineErr    error
)

// getEngine returns a shared engine session, restored from the
// workspace autosnapshot when one exists.
func getEngine(root string, logger *logging.Logger) (*session.Engine, error) {
	engineOnce.Do(func() {
		cfg, err := config.LoadConfig(root)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		sharedConfig = cfg

		if _, err := paths.WorkspaceDir(root); err != nil {
			engineErr = fmt.Errorf("failed to prepare workspace directory: %w", err)
			return
		}

		engine := session.New(logger)

		if cfg.History.Persist {
			store, err := history.OpenStore(paths.DatabasePath(root), logger)
			if err != nil {
				logger.Warn("History store unavailable, continuing without it", map[string]interface{}{
					"error": err.Error(),
				})
			} else {
				engine.AttachStore(store)
			}
		}

		// Restore the previous session when an autosnapshot exists.
		autosave := paths.AutosavePath(root)
		if _, err := os.Stat(autosave); err == nil {
			if err := engine.LoadSnapshot(autosave); err != nil {
				logger.Warn("Autosnapshot could not be restored", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		sharedEngine = engine
	})

	return sharedEngine, engineErr
}

// mustGetEngine returns the shared engine or exits on error.
func mustGetEngine(root string, logger *logging.Logger) *session.Engine {
	engine, err := getEngine(root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	return engine
}

// persistSession writes the autosnapshot after a mutating command.
func persistSession(engine *session.Engine, root string, logger *logging.Logger) {
	if sharedConfig != nil && !sharedConfig.Autosave {
		return
	}
	if !engine.Loaded() {
		// Nothing to snapshot; drop a stale autosave if present.
		os.Remove(paths.AutosavePath(root))
		return
	}
	if err := engine.SaveSnapshot(paths.AutosavePath(root)); err != nil {
		logger.Warn("Session state could not be persisted", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// getRoot returns the workspace root directory.
func getRoot() (string, error) {
	return os.Getwd()
}

// mustGetRoot returns the workspace root or exits on error.
func mustGetRoot() string {
	root, err := getRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// newLogger builds the logger configured for the workspace; the format
// flag of the running command wins over the config file.
func newLogger(format string) *logging.Logger {
	level := logging.InfoLevel
	if sharedConfig != nil {
		level = logging.ParseLevel(sharedConfig.Logging.Level)
	}
	return logging.NewLogger(logging.Config{
		Format: logging.ParseFormat(format),
		Level:  level,
	})
}
