// Package hub locates Unity editor installations, either directly on disk
// or through the Unity Hub headless CLI.
package hub

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/neptaco/unibuild/pkg/ui"
)

type Client struct {
	hubPath   string
	basePaths []string
}

type EditorInfo struct {
	Version string
	// Path is the version directory (e.g. .../Hub/Editor/2022.3.10f1)
	Path string
}

// Executable returns the editor binary inside the installation
func (e EditorInfo) Executable() string {
	return ExecutablePath(e.Path)
}

func NewClient() *Client {
	return &Client{
		hubPath:   findUnityHub(),
		basePaths: defaultInstallPaths(),
	}
}

// NewClientWithPaths creates a client that only scans the given install
// directories and never shells out to Unity Hub.
func NewClientWithPaths(basePaths ...string) *Client {
	return &Client{basePaths: basePaths}
}

// ListInstalledEditors returns installed editors sorted by version. Install
// directories are scanned first; Unity Hub is only asked when nothing is found.
func (c *Client) ListInstalledEditors() ([]EditorInfo, error) {
	seen := make(map[string]bool)
	var editors []EditorInfo
	for _, base := range c.basePaths {
		for _, e := range scanInstallPath(base) {
			if !seen[e.Version] {
				seen[e.Version] = true
				editors = append(editors, e)
			}
		}
	}

	if len(editors) == 0 && c.hubPath != "" {
		ui.Debug("No editors found on disk, asking Unity Hub", "hub", c.hubPath)
		cmd := exec.Command(c.hubPath, "--", "--headless", "editors", "-i")
		output, err := cmd.Output()
		if err != nil {
			return nil, fmt.Errorf("failed to list editors: %w", err)
		}
		editors = parseEditorsList(string(output))
	}

	if len(editors) == 0 && c.hubPath == "" && len(c.basePaths) == 0 {
		return nil, fmt.Errorf("unity hub not found")
	}

	sort.Slice(editors, func(i, j int) bool { return editors[i].Version < editors[j].Version })
	return editors, nil
}

// FindEditor returns the installation for an exact editor version
func (c *Client) FindEditor(version string) (EditorInfo, bool, error) {
	for _, base := range c.basePaths {
		dir := filepath.Join(base, version)
		if fileExists(ExecutablePath(dir)) {
			ui.Debug("Found Unity Editor via directory check", "version", version, "path", dir)
			return EditorInfo{Version: version, Path: dir}, true, nil
		}
	}

	editors, err := c.ListInstalledEditors()
	if err != nil {
		return EditorInfo{}, false, err
	}
	for _, e := range editors {
		if e.Version == version {
			return e, true, nil
		}
	}
	return EditorInfo{}, false, nil
}

// ExecutablePath returns the editor binary for an install directory
func ExecutablePath(installDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(installDir, "Unity.app", "Contents", "MacOS", "Unity")
	case "windows":
		return filepath.Join(installDir, "Editor", "Unity.exe")
	default:
		return filepath.Join(installDir, "Editor", "Unity")
	}
}

func scanInstallPath(base string) []EditorInfo {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	var editors []EditorInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(base, entry.Name())
		if fileExists(ExecutablePath(dir)) {
			editors = append(editors, EditorInfo{Version: entry.Name(), Path: dir})
		}
	}
	return editors
}

// parseEditorsList parses `Unity Hub -- --headless editors -i` output:
//
//	2022.3.10f1 , installed at /Applications/Unity/Hub/Editor/2022.3.10f1/Unity.app
//	6000.0.23f1 (Apple silicon), installed at /Applications/Unity/Hub/Editor/6000.0.23f1/Unity.app
func parseEditorsList(output string) []EditorInfo {
	editors := []EditorInfo{}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var version, path string
		if before, after, ok := strings.Cut(line, "installed at"); ok {
			version = strings.TrimSpace(strings.Split(before, ",")[0])
			if idx := strings.Index(version, "("); idx > 0 {
				version = strings.TrimSpace(version[:idx])
			}
			path = strings.TrimSpace(after)
		} else {
			parts := strings.Fields(line)
			if len(parts) < 2 {
				continue
			}
			version, path = parts[0], parts[len(parts)-1]
		}

		editors = append(editors, EditorInfo{Version: version, Path: installDirFromPath(path)})
	}

	return editors
}

// installDirFromPath strips the executable part Unity Hub appends
func installDirFromPath(path string) string {
	for _, suffix := range []string{
		filepath.Join("Unity.app", "Contents", "MacOS", "Unity"),
		"Unity.app",
		filepath.Join("Editor", "Unity.exe"),
		filepath.Join("Editor", "Unity"),
	} {
		if strings.HasSuffix(path, string(filepath.Separator)+suffix) {
			return strings.TrimSuffix(path, string(filepath.Separator)+suffix)
		}
	}
	return path
}

func defaultInstallPaths() []string {
	var paths []string

	// Editors installed outside the Hub default, e.g. on an external disk
	if customPath := os.Getenv("UNIBUILD_EDITOR_BASE_PATH"); customPath != "" {
		paths = append(paths, customPath)
	}

	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			"/Applications/Unity/Hub/Editor",
			filepath.Join(os.Getenv("HOME"), "Applications", "Unity", "Hub", "Editor"),
		)
	case "windows":
		paths = append(paths,
			filepath.Join(os.Getenv("PROGRAMFILES"), "Unity", "Hub", "Editor"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Unity", "Hub", "Editor"),
		)
	case "linux":
		paths = append(paths,
			"/opt/Unity/Hub/Editor",
			"/opt/unity/editors",
			filepath.Join(os.Getenv("HOME"), "Unity", "Hub", "Editor"),
		)
	}

	return paths
}

func findUnityHub() string {
	if envPath := os.Getenv("UNIBUILD_HUB_PATH"); envPath != "" && fileExists(envPath) {
		return envPath
	}

	for _, path := range unityHubPaths() {
		if fileExists(path) {
			ui.Debug("Found Unity Hub", "path", path)
			return path
		}
	}

	if path, err := exec.LookPath("unityhub"); err == nil {
		return path
	}

	ui.Debug("Unity Hub not found")
	return ""
}

func unityHubPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			"/Applications/Unity Hub.app/Contents/MacOS/Unity Hub",
			filepath.Join(os.Getenv("HOME"), "Applications", "Unity Hub.app", "Contents", "MacOS", "Unity Hub"),
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("PROGRAMFILES"), "Unity Hub", "Unity Hub.exe"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Unity Hub", "Unity Hub.exe"),
		}
	case "linux":
		return []string{
			"/opt/unityhub/unityhub",
			"/usr/bin/unityhub",
		}
	default:
		return nil
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
