package buildargs

import (
	"slices"
	"strings"
)

// BuildTargets lists the Unity BuildTarget names accepted by -buildTarget.
// Matching is case-sensitive, as it is inside the editor.
var BuildTargets = []string{
	"StandaloneOSX",
	"StandaloneWindows",
	"StandaloneWindows64",
	"StandaloneLinux64",
	"iOS",
	"Android",
	"WebGL",
	"WSAPlayer",
	"PS4",
	"PS5",
	"XboxOne",
	"tvOS",
	"VisionOS",
	"Switch",
	"LinuxHeadlessSimulation",
	"GameCoreXboxSeries",
	"GameCoreXboxOne",
	"EmbeddedLinux",
	"QNX",
}

// targetAliases maps friendly platform names to BuildTarget names
var targetAliases = map[string]string{
	"windows":   "StandaloneWindows64",
	"windows32": "StandaloneWindows",
	"win64":     "StandaloneWindows64",
	"macos":     "StandaloneOSX",
	"osx":       "StandaloneOSX",
	"linux":     "StandaloneLinux64",
	"android":   "Android",
	"ios":       "iOS",
	"tvos":      "tvOS",
	"visionos":  "VisionOS",
	"webgl":     "WebGL",
	"uwp":       "WSAPlayer",
	"switch":    "Switch",
	"ps4":       "PS4",
	"ps5":       "PS5",
	"xboxone":   "XboxOne",
}

// IsBuildTarget reports whether name is a known BuildTarget
func IsBuildTarget(name string) bool {
	return slices.Contains(BuildTargets, name)
}

// ResolveBuildTarget returns the BuildTarget for a BuildTarget name or a
// friendly alias (case-insensitive). Unknown names are returned unchanged
// so validation can reject them.
func ResolveBuildTarget(name string) string {
	if IsBuildTarget(name) {
		return name
	}
	if target, ok := targetAliases[strings.ToLower(name)]; ok {
		return target
	}
	return name
}

// AliasesFor returns the sorted aliases that resolve to target
func AliasesFor(target string) []string {
	var aliases []string
	for alias, t := range targetAliases {
		if t == target {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}
