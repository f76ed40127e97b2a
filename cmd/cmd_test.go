package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/neptaco/unibuild/pkg/exitcode"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetBuildFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		buildProject, buildTarget, buildOutput, buildName, buildVersion = "", "", "", "", ""
		buildFailOnWarn, buildTimestamp = false, false
		viper.Set("build.args", []string{})
		viper.Set("unity.editor-path", "")
	}
	reset()
	t.Cleanup(reset)
}

func TestBuildTokens(t *testing.T) {
	resetBuildFlags(t)

	buildProject = "game"
	buildTarget = "android"
	buildOutput = "Build/game.apk"

	got := buildTokens([]string{"-customBuildPath", "Build/game.aab", "-development"})
	require.Equal(t, []string{
		"-projectPath", "game",
		"-buildTarget", "Android",
		"-customBuildPath", "Build/game.apk",
		"-customBuildPath", "Build/game.aab",
		"-development",
	}, got)
}

func TestBuildTokens_ConfigArgsComeFirst(t *testing.T) {
	resetBuildFlags(t)

	viper.Set("build.args", []string{"-buildTarget", "StandaloneLinux64", "-development"})
	buildTarget = "windows"

	got := buildTokens(nil)
	require.Equal(t, []string{
		"-buildTarget", "StandaloneLinux64", "-development",
		"-buildTarget", "StandaloneWindows64",
	}, got)
}

func TestCheckCommand_ExitCodes(t *testing.T) {
	project := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"valid", []string{"-projectPath", project, "-buildTarget", "Android", "-customBuildPath", "out.apk"}, exitcode.Success},
		{"missing project", []string{"-buildTarget", "Android", "-customBuildPath", "out.apk"}, exitcode.MissingProjectPath},
		{"missing target", []string{"-projectPath", project, "-customBuildPath", "out.apk"}, exitcode.MissingBuildTarget},
		{"invalid target", []string{"-projectPath", project, "-buildTarget", "android", "-customBuildPath", "out.apk"}, exitcode.InvalidBuildTarget},
		{"missing path", []string{"-projectPath", project, "-buildTarget", "Android"}, exitcode.MissingCustomBuildPath},
		{"bad version code", []string{"-projectPath", project, "-buildTarget", "Android", "-customBuildPath", "out.apk", "-androidVersionCode", "x"}, exitcode.BuildFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetBuildFlags(t)

			rootCmd.SetArgs(append([]string{"check", "--"}, tt.args...))
			err := rootCmd.Execute()
			require.Equal(t, tt.want, exitcode.Code(err), "err: %v", err)
		})
	}
}

func TestCheckCommand_TargetAliasFlag(t *testing.T) {
	resetBuildFlags(t)

	rootCmd.SetArgs([]string{"check", "--project", ".", "--target", "linux", "--output", "Build/game.x86_64"})
	require.NoError(t, rootCmd.Execute())
}

func TestResolveLogPath(t *testing.T) {
	t.Cleanup(func() { viper.Set("build.log-file", "") })

	path, err := resolveLogPath([]string{"custom.log"})
	require.NoError(t, err)
	require.Equal(t, "custom.log", path)

	viper.Set("build.log-file", "Build/build.log")
	path, err = resolveLogPath(nil)
	require.NoError(t, err)
	require.Equal(t, "Build/build.log", path)

	viper.Set("build.log-file", "-")
	path, err = resolveLogPath(nil)
	require.NoError(t, err)
	require.NotEqual(t, "-", path)
}

// writeUnityProject creates a minimal project with ProjectVersion.txt
func writeUnityProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ProjectSettings"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ProjectSettings", "ProjectVersion.txt"),
		[]byte("m_EditorVersion: 2022.3.10f1\n"), 0644))
	return dir
}

// writeFakeEditor writes a shell script that stands in for the Unity binary
func writeFakeEditor(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake editor is a shell script")
	}
	path := filepath.Join(t.TempDir(), "Unity")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestBuildCommand_ExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		flags      []string
		body       string
		noEditor   bool
		notProject bool
		want       int
	}{
		{name: "succeeded", body: "echo 'Build Finished, Result: Success.'", want: exitcode.Success},
		{name: "failed", body: "echo 'Build Finished, Result: Failure.'", want: exitcode.BuildFailed},
		{name: "cancelled", body: "echo 'Build Finished, Result: Cancelled.'", want: exitcode.BuildCancelled},
		{name: "unknown exit code", body: "exit 7", want: exitcode.BuildUnknown},
		{name: "editor exit code", body: "exit 101", want: exitcode.BuildFailed},
		{
			name:  "fail on warning",
			flags: []string{"--fail-on-warning"},
			body:  "echo 'Warning: obsolete API'\necho 'Build Finished, Result: Success.'",
			want:  exitcode.BuildFailed,
		},
		{name: "missing editor", noEditor: true, want: exitcode.BuildUnknown},
		{name: "not a unity project", notProject: true, body: "exit 0", want: exitcode.MissingProjectPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetBuildFlags(t)

			project := writeUnityProject(t)
			if tt.notProject {
				project = t.TempDir()
			}

			editorPath := filepath.Join(t.TempDir(), "missing", "Unity")
			if !tt.noEditor {
				editorPath = writeFakeEditor(t, tt.body)
			}
			viper.Set("unity.editor-path", editorPath)

			args := append([]string{"build"}, tt.flags...)
			args = append(args, "--",
				"-projectPath", project,
				"-buildTarget", "StandaloneLinux64",
				"-customBuildPath", filepath.Join(t.TempDir(), "out", "game.x86_64"))
			rootCmd.SetArgs(args)

			err := rootCmd.Execute()
			require.Equal(t, tt.want, exitcode.Code(err), "err: %v", err)
		})
	}
}

func TestBuildCommand_ValidationStopsBeforeEditor(t *testing.T) {
	resetBuildFlags(t)

	marker := filepath.Join(t.TempDir(), "launched")
	viper.Set("unity.editor-path", writeFakeEditor(t, "touch "+marker))

	rootCmd.SetArgs([]string{"build", "--", "-projectPath", writeUnityProject(t), "-buildTarget", "Android"})
	err := rootCmd.Execute()
	require.Equal(t, exitcode.MissingCustomBuildPath, exitcode.Code(err))
	require.NoFileExists(t, marker)
}

func TestRootHelpListsExitCodes(t *testing.T) {
	for _, code := range []string{"0", "1", "101", "102", "103", "110", "120", "121", "130"} {
		require.Regexp(t, `(?m)^  `+code+` +\S`, rootCmd.Long)
	}
}
