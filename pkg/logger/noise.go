package logger

import "strings"

// NoiseCategory groups editor chatter into collapsible CI log sections
type NoiseCategory string

const (
	NoiseCategoryNone        NoiseCategory = ""
	NoiseCategoryLicensing   NoiseCategory = "Licensing"
	NoiseCategoryPackage     NoiseCategory = "Package Manager"
	NoiseCategoryMemory      NoiseCategory = "Memory Setup"
	NoiseCategoryAssembly    NoiseCategory = "Assembly Reload"
	NoiseCategoryAssetImport NoiseCategory = "Asset Import"
	NoiseCategoryShader      NoiseCategory = "Shader Compilation"
	NoiseCategoryOther       NoiseCategory = "Editor Startup"
)

// checked in order; first match wins
var noiseCategories = []struct {
	category NoiseCategory
	patterns []string
}{
	{NoiseCategoryLicensing, []string{"[Licensing::"}},
	{NoiseCategoryPackage, []string{"[Package Manager]"}},
	{NoiseCategoryMemory, []string{"memorysetup-", "[UnityMemory]"}},
	{NoiseCategoryAssembly, []string{
		"Begin MonoManager ReloadAssembly",
		"Domain Reload Profiling:",
		"Registering precompiled user dll",
	}},
	{NoiseCategoryAssetImport, []string{
		"Start importing",
		"Asset Pipeline Refresh",
		"AssetDatabase Initial Refresh",
		"Loading GUID",
	}},
	{NoiseCategoryShader, []string{"Compiling shader", "Compiling mesh data optimization"}},
	{NoiseCategoryOther, []string{
		"Mono path[",
		"Initialize engine version",
		"Refreshing native plugins",
		"Native extension for",
		"[PhysX]",
		"[Subsystems]",
	}},
}

// GetNoiseCategory returns the group a noise line belongs to, or
// NoiseCategoryNone for lines that should stay visible.
func (f *Formatter) GetNoiseCategory(line string) NoiseCategory {
	trimmed := strings.TrimSpace(line)
	for _, nc := range noiseCategories {
		for _, p := range nc.patterns {
			if strings.Contains(trimmed, p) {
				return nc.category
			}
		}
	}
	return NoiseCategoryNone
}
