package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// OutputExtension returns the file extension the player build produces for
// a Unity BuildTarget, or "" when the output is a directory or a bare binary.
func OutputExtension(buildTarget string) string {
	switch buildTarget {
	case "StandaloneWindows", "StandaloneWindows64":
		return ".exe"
	case "StandaloneOSX":
		return ".app"
	case "StandaloneLinux64", "LinuxHeadlessSimulation":
		return ".x86_64"
	case "Android":
		return ".apk"
	default:
		return ""
	}
}

// ProducesDirectory reports whether the build target writes a project or
// site directory instead of a single artifact.
func ProducesDirectory(buildTarget string) bool {
	switch buildTarget {
	case "iOS", "tvOS", "VisionOS", "WebGL", "WSAPlayer":
		return true
	default:
		return false
	}
}

// OutputMatchesTarget reports whether outputPath carries an extension the
// target can produce. Android may also emit an app bundle.
func OutputMatchesTarget(buildTarget, outputPath string) bool {
	want := OutputExtension(buildTarget)
	if want == "" {
		return true
	}
	got := strings.ToLower(filepath.Ext(outputPath))
	if buildTarget == "Android" && got == ".aab" {
		return true
	}
	return got == want
}

// NativeBuildTarget returns the standalone BuildTarget for the host
func NativeBuildTarget() string {
	switch runtime.GOOS {
	case "darwin":
		return "StandaloneOSX"
	case "windows":
		return "StandaloneWindows64"
	default:
		return "StandaloneLinux64"
	}
}
