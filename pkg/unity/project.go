package unity

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Project is a Unity project on disk
type Project struct {
	Path         string
	UnityVersion string
	Changeset    string
	Name         string
}

// LoadProject reads ProjectSettings/ProjectVersion.txt under projectPath
func LoadProject(projectPath string) (*Project, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	versionFile := filepath.Join(absPath, "ProjectSettings", "ProjectVersion.txt")
	if _, err := os.Stat(versionFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("not a Unity project: ProjectVersion.txt not found at %s", versionFile)
	}

	version, changeset, err := readProjectVersion(versionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read Unity version: %w", err)
	}

	return &Project{
		Path:         absPath,
		UnityVersion: version,
		Changeset:    changeset,
		Name:         filepath.Base(absPath),
	}, nil
}

// readProjectVersion parses
//
//	m_EditorVersion: 2022.3.10f1
//	m_EditorVersionWithRevision: 2022.3.10f1 (ff3792e53c62)
func readProjectVersion(versionFile string) (version, changeset string, err error) {
	file, err := os.Open(versionFile)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "m_EditorVersion":
			version = value
		case "m_EditorVersionWithRevision":
			if open := strings.Index(value, "("); open > 0 {
				if end := strings.Index(value, ")"); end > open {
					changeset = strings.TrimSpace(value[open+1 : end])
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", "", err
	}

	if version == "" {
		return "", "", fmt.Errorf("m_EditorVersion not found in ProjectVersion.txt")
	}

	return version, changeset, nil
}
