package paths

import (
	"os"
	"path/filepath"
)

// WorkspaceDirName is the directory enigma keeps its state in, relative to
// the working directory.
const WorkspaceDirName = ".enigma"

// WorkspaceDir returns the workspace state directory under root, creating
// it if necessary.
func WorkspaceDir(root string) (string, error) {
	dir := filepath.Join(root, WorkspaceDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the application config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(root, WorkspaceDirName, "config.json")
}

// DatabasePath returns the history database path under root.
func DatabasePath(root string) string {
	return filepath.Join(root, WorkspaceDirName, "enigma.db")
}

// AutosavePath returns the session autosnapshot path under root.
func AutosavePath(root string) string {
	return filepath.Join(root, WorkspaceDirName, "state.snap")
}

// RegistryPath returns the machine registry file path under root.
func RegistryPath(root string) string {
	return filepath.Join(root, WorkspaceDirName, "machines.toml")
}
