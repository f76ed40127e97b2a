package buildargs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []string
		want   Options
	}{
		{
			name:   "empty",
			tokens: nil,
			want:   Options{},
		},
		{
			name:   "flag with value",
			tokens: []string{"-projectPath", "/repo"},
			want:   Options{"projectPath": "/repo"},
		},
		{
			name:   "double dash flag",
			tokens: []string{"--buildTarget", "Android"},
			want:   Options{"buildTarget": "Android"},
		},
		{
			name:   "bare flag at end",
			tokens: []string{"-projectPath", "/repo", "-batchmode"},
			want:   Options{"projectPath": "/repo", "batchmode": ""},
		},
		{
			name:   "flag followed by flag",
			tokens: []string{"-quit", "-nographics", "-buildTarget", "iOS"},
			want:   Options{"quit": "", "nographics": "", "buildTarget": "iOS"},
		},
		{
			name:   "stray values are ignored",
			tokens: []string{"Unity", "extra", "-buildTarget", "WebGL", "trailing"},
			want:   Options{"buildTarget": "WebGL"},
		},
		{
			name:   "last value wins",
			tokens: []string{"-customBuildName", "first", "-customBuildName", "second"},
			want:   Options{"customBuildName": "second"},
		},
		{
			name:   "explicit empty value",
			tokens: []string{"-customBuildName", ""},
			want:   Options{"customBuildName": ""},
		},
		{
			name:   "dash-prefixed value is read as a flag",
			tokens: []string{"-buildVersion", "-1"},
			want:   Options{"buildVersion": "", "1": ""},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Parse(tt.tokens, nil))
		})
	}
}

func TestParse_EveryUnconsumedFlagBecomesKey(t *testing.T) {
	t.Parallel()

	tokens := []string{"-a", "x", "-b", "-c", "y", "z", "--d", "-e"}
	opts := Parse(tokens, nil)

	for _, key := range []string{"a", "b", "c", "d", "e"} {
		require.True(t, opts.Has(key), "missing key %q", key)
	}
	require.Len(t, opts, 5)
	require.Equal(t, "x", opts.Get("a"))
	require.Equal(t, "y", opts.Get("c"))
}

func TestParse_Output(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	Parse([]string{
		"-projectPath", "/repo",
		"-androidKeystoreName", "user.keystore",
		"-androidKeystorePass", "s3cret",
		"-androidKeyaliasName", "release-alias",
		"-androidKeyaliasPass", "hunter2",
	}, &out)

	text := out.String()
	require.Contains(t, text, "#    Parsing settings     #")
	require.Contains(t, text, "#     Parsed settings     #")
	require.Contains(t, text, `Found flag "projectPath" with value "/repo".`)
	require.Contains(t, text, `Found flag "androidKeystoreName" with value "user.keystore".`)
	require.Contains(t, text, `Found flag "androidKeystorePass" with value *HIDDEN*.`)
	require.Contains(t, text, `Found flag "androidKeyaliasName" with value *HIDDEN*.`)
	require.Contains(t, text, `Found flag "androidKeyaliasPass" with value *HIDDEN*.`)

	for _, secret := range []string{"s3cret", "release-alias", "hunter2"} {
		require.NotContains(t, text, secret)
	}
	require.Equal(t, 5, strings.Count(text, "Found flag"))
}

func TestDisplayValue(t *testing.T) {
	t.Parallel()

	for _, name := range SecretFlags {
		for _, value := range []string{"", "x", "*HIDDEN*x", "long secret value"} {
			got := DisplayValue(name, value)
			require.Equal(t, HiddenValue, got)
			if value != "" {
				require.NotEqual(t, value, got)
			}
		}
	}

	require.Equal(t, `"Android"`, DisplayValue(FlagBuildTarget, "Android"))
	require.Equal(t, `""`, DisplayValue(FlagCustomBuildName, ""))
	require.Equal(t, `"user.keystore"`, DisplayValue(FlagKeystoreName, "user.keystore"))
}

func TestOptionsArgs(t *testing.T) {
	t.Parallel()

	opts := Options{
		"projectPath": "/repo",
		"buildTarget": "Android",
		"development": "",
		"":            "",
	}
	require.Equal(t, []string{
		"-buildTarget", "Android",
		"-development",
		"-projectPath", "/repo",
	}, opts.Args())
}

func TestOptionsSecretValues(t *testing.T) {
	t.Parallel()

	opts := Options{
		FlagKeystoreName: "user.keystore",
		FlagKeystorePass: "pass",
		FlagKeyaliasName: "",
		FlagKeyaliasPass: "aliaspass",
	}
	require.ElementsMatch(t, []string{"pass", "aliaspass"}, opts.SecretValues())
}
