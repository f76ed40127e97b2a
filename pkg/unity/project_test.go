package unity

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProject(t *testing.T, dir, content string) {
	t.Helper()
	projectSettingsDir := filepath.Join(dir, "ProjectSettings")
	if err := os.MkdirAll(projectSettingsDir, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	versionFile := filepath.Join(projectSettingsDir, "ProjectVersion.txt")
	if err := os.WriteFile(versionFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write version file: %v", err)
	}
}

func TestLoadProject(t *testing.T) {
	tempDir := t.TempDir()
	writeProject(t, tempDir, "m_EditorVersion: 2022.3.10f1\nm_EditorVersionWithRevision: 2022.3.10f1 (1234567890ab)")

	project, err := LoadProject(tempDir)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if project.UnityVersion != "2022.3.10f1" {
		t.Errorf("Expected version 2022.3.10f1, got %s", project.UnityVersion)
	}
	if project.Changeset != "1234567890ab" {
		t.Errorf("Expected changeset 1234567890ab, got %s", project.Changeset)
	}
	if project.Name != filepath.Base(tempDir) {
		t.Errorf("Expected project name %s, got %s", filepath.Base(tempDir), project.Name)
	}

	absPath, _ := filepath.Abs(tempDir)
	if project.Path != absPath {
		t.Errorf("Expected path %s, got %s", absPath, project.Path)
	}
}

func TestLoadProject_NotUnityProject(t *testing.T) {
	if _, err := LoadProject(t.TempDir()); err == nil {
		t.Error("Expected error for non-Unity project, got nil")
	}
}

func TestReadProjectVersion(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantVersion   string
		wantChangeset string
		wantErr       bool
	}{
		{
			name:        "Valid version",
			content:     "m_EditorVersion: 2022.3.10f1\n",
			wantVersion: "2022.3.10f1",
		},
		{
			name:          "Valid version with revision",
			content:       "m_EditorVersion: 6000.0.23f1\nm_EditorVersionWithRevision: 6000.0.23f1 (1c4764c07fb4)",
			wantVersion:   "6000.0.23f1",
			wantChangeset: "1c4764c07fb4",
		},
		{
			name:        "Version with spaces",
			content:     "m_EditorVersion:   2022.3.10f1   \n",
			wantVersion: "2022.3.10f1",
		},
		{
			name:    "No version",
			content: "some other content",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			versionFile := filepath.Join(t.TempDir(), "ProjectVersion.txt")
			if err := os.WriteFile(versionFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write temp file: %v", err)
			}

			version, changeset, err := readProjectVersion(versionFile)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readProjectVersion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if version != tt.wantVersion || changeset != tt.wantChangeset {
				t.Errorf("readProjectVersion() = %q, %q; want %q, %q", version, changeset, tt.wantVersion, tt.wantChangeset)
			}
		})
	}
}
