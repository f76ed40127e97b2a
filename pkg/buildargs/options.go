// Package buildargs parses and validates Unity-style build parameters
// (`-projectPath /repo -buildTarget Android ...`).
package buildargs

import "sort"

// Flag names understood by the build pipeline
const (
	FlagProjectPath        = "projectPath"
	FlagBuildTarget        = "buildTarget"
	FlagCustomBuildPath    = "customBuildPath"
	FlagCustomBuildName    = "customBuildName"
	FlagBuildVersion       = "buildVersion"
	FlagAndroidVersionCode = "androidVersionCode"
	FlagKeystoreName       = "androidKeystoreName"
	FlagKeystorePass       = "androidKeystorePass"
	FlagKeyaliasName       = "androidKeyaliasName"
	FlagKeyaliasPass       = "androidKeyaliasPass"
)

// DefaultBuildName is used when customBuildName is absent or empty
const DefaultBuildName = "TestBuild"

// Options maps flag names (without leading dashes) to their values.
// A flag given without a value maps to the empty string.
type Options map[string]string

// Has reports whether the flag was given at all
func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// Get returns the flag value, or "" if absent
func (o Options) Get(name string) string {
	return o[name]
}

// Clone returns a shallow copy
func (o Options) Clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// Names returns flag names in sorted order
func (o Options) Names() []string {
	names := make([]string, 0, len(o))
	for k := range o {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SecretValues returns the non-empty values of secret flags
func (o Options) SecretValues() []string {
	var values []string
	for _, name := range SecretFlags {
		if v := o[name]; v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Args renders the options back to a Unity command line, sorted by flag name.
// Flags with an empty value are emitted bare; a nameless flag (a lone "-")
// is dropped.
func (o Options) Args() []string {
	args := make([]string, 0, len(o)*2)
	for _, name := range o.Names() {
		if name == "" {
			continue
		}
		args = append(args, "-"+name)
		if v := o[name]; v != "" {
			args = append(args, v)
		}
	}
	return args
}

func (o Options) ProjectPath() string     { return o[FlagProjectPath] }
func (o Options) BuildTarget() string     { return o[FlagBuildTarget] }
func (o Options) CustomBuildPath() string { return o[FlagCustomBuildPath] }
func (o Options) CustomBuildName() string { return o[FlagCustomBuildName] }
