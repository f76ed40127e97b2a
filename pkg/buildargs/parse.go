package buildargs

import (
	"fmt"
	"io"
	"strings"
)

// IsFlag reports whether the token names a flag
func IsFlag(token string) bool {
	return strings.HasPrefix(token, "-")
}

func stripDashes(token string) string {
	return strings.TrimLeft(token, "-")
}

// Parse turns process-start tokens into Options.
//
// A dash-prefixed token is a flag; it takes the following token as its value
// unless that token is itself a flag, in which case the value is empty. Stray
// values not preceded by a flag are ignored and duplicated flags keep the last
// value. A value that legitimately starts with a dash cannot be expressed.
//
// Every flag found is reported to out with secrets redacted. out may be nil.
func Parse(tokens []string, out io.Writer) Options {
	if out == nil {
		out = io.Discard
	}

	writeBanner(out, "Parsing settings")

	opts := make(Options)
	for i, current := range tokens {
		if !IsFlag(current) {
			continue
		}

		name := stripDashes(current)
		value := ""
		if i+1 < len(tokens) {
			if next := tokens[i+1]; !IsFlag(next) {
				value = next
			}
		}

		opts[name] = value
		_, _ = fmt.Fprintf(out, "Found flag %q with value %s.\n", name, DisplayValue(name, value))
	}

	writeBanner(out, "Parsed settings")

	return opts
}

func writeBanner(out io.Writer, title string) {
	const width = 27
	line := strings.Repeat("#", width)
	pad := width - 2 - len(title)
	left := pad / 2
	right := pad - left
	_, _ = fmt.Fprintf(out, "\n%s\n#%s%s%s#\n%s\n\n",
		line, strings.Repeat(" ", left), title, strings.Repeat(" ", right), line)
}
