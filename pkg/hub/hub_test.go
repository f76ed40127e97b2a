package hub

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func fakeEditor(t *testing.T, base, version string) string {
	t.Helper()
	dir := filepath.Join(base, version)
	exe := ExecutablePath(dir)
	if err := os.MkdirAll(filepath.Dir(exe), 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake editor: %v", err)
	}
	return dir
}

func TestListInstalledEditors(t *testing.T) {
	base := t.TempDir()
	fakeEditor(t, base, "2022.3.10f1")
	fakeEditor(t, base, "2021.3.5f1")
	// Not an editor: no executable inside
	if err := os.MkdirAll(filepath.Join(base, "downloads"), 0755); err != nil {
		t.Fatal(err)
	}

	client := NewClientWithPaths(base)
	editors, err := client.ListInstalledEditors()
	if err != nil {
		t.Fatalf("ListInstalledEditors() error = %v", err)
	}

	if len(editors) != 2 {
		t.Fatalf("Expected 2 editors, got %d: %+v", len(editors), editors)
	}
	if editors[0].Version != "2021.3.5f1" || editors[1].Version != "2022.3.10f1" {
		t.Errorf("Unexpected order: %+v", editors)
	}
	if editors[1].Path != filepath.Join(base, "2022.3.10f1") {
		t.Errorf("Unexpected path: %s", editors[1].Path)
	}
}

func TestFindEditor(t *testing.T) {
	base := t.TempDir()
	dir := fakeEditor(t, base, "2022.3.10f1")

	client := NewClientWithPaths(base)

	editor, found, err := client.FindEditor("2022.3.10f1")
	if err != nil || !found {
		t.Fatalf("FindEditor() = %v, %v; want found", found, err)
	}
	if editor.Path != dir {
		t.Errorf("Expected path %s, got %s", dir, editor.Path)
	}
	if editor.Executable() != ExecutablePath(dir) {
		t.Errorf("Unexpected executable %s", editor.Executable())
	}

	_, found, err = client.FindEditor("9999.9.9f1")
	if err != nil {
		t.Fatalf("FindEditor() error = %v", err)
	}
	if found {
		t.Error("Expected non-existent version not to be found")
	}
}

func TestParseEditorsList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []EditorInfo
	}{
		{
			name:  "Headless output",
			input: "2022.3.10f1 , installed at /opt/Unity/Hub/Editor/2022.3.10f1/Editor/Unity",
			expected: []EditorInfo{
				{Version: "2022.3.10f1", Path: "/opt/Unity/Hub/Editor/2022.3.10f1"},
			},
		},
		{
			name: "Architecture suffix",
			input: `6000.0.23f1 (Apple silicon), installed at /Applications/Unity/Hub/Editor/6000.0.23f1/Unity.app
2021.3.5f1 , installed at /Applications/Unity/Hub/Editor/2021.3.5f1/Unity.app`,
			expected: []EditorInfo{
				{Version: "6000.0.23f1", Path: "/Applications/Unity/Hub/Editor/6000.0.23f1"},
				{Version: "2021.3.5f1", Path: "/Applications/Unity/Hub/Editor/2021.3.5f1"},
			},
		},
		{
			name: "Plain two-column output with empty lines",
			input: `
2022.3.10f1 /custom/2022.3.10f1

garbage
`,
			expected: []EditorInfo{
				{Version: "2022.3.10f1", Path: "/custom/2022.3.10f1"},
			},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: []EditorInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if runtime.GOOS == "windows" {
				t.Skip("paths in fixtures use forward slashes")
			}
			result := parseEditorsList(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %d editors, got %d", len(tt.expected), len(result))
			}
			for i, editor := range tt.expected {
				if result[i] != editor {
					t.Errorf("Expected %+v at index %d, got %+v", editor, i, result[i])
				}
			}
		})
	}
}
