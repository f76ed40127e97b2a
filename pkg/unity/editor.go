package unity

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/neptaco/unibuild/pkg/hub"
)

// Locator finds an installed editor by version
type Locator interface {
	FindEditor(version string) (hub.EditorInfo, bool, error)
}

// Editor resolves the Unity editor executable used for a project
type Editor struct {
	Version string
	Path    string
	locator Locator
}

type EditorOption func(*Editor)

// WithEditorPath pins the editor executable and skips the lookup
func WithEditorPath(path string) EditorOption {
	return func(e *Editor) {
		e.Path = path
	}
}

// WithLocator overrides the Unity Hub based lookup
func WithLocator(l Locator) EditorOption {
	return func(e *Editor) {
		e.locator = l
	}
}

func NewEditor(version string, opts ...EditorOption) *Editor {
	e := &Editor{Version: version}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetPath returns the editor executable, looking it up on first use
func (e *Editor) GetPath() (string, error) {
	if e.Path != "" {
		if _, err := os.Stat(e.Path); err != nil {
			return "", fmt.Errorf("unity editor not found at %s: %w", e.Path, err)
		}
		return e.Path, nil
	}

	if e.locator == nil {
		e.locator = hub.NewClient()
	}

	info, found, err := e.locator.FindEditor(e.Version)
	if err != nil {
		return "", fmt.Errorf("failed to look up editors: %w", err)
	}
	if !found {
		return "", fmt.Errorf("unity editor %s not found; install it with Unity Hub or set unity.editor-path", e.Version)
	}

	e.Path = info.Executable()
	return e.Path, nil
}

// DefaultLogPath returns where the editor writes its log when it is started
// without -logFile.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "Unity", "Editor.log"), nil
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, "Unity", "Editor", "Editor.log"), nil
	case "linux":
		return filepath.Join(home, ".config", "unity3d", "Editor.log"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
