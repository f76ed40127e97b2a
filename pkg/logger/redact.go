package logger

import (
	"sort"
	"strings"
)

// Redactor replaces known secret values in log lines
type Redactor struct {
	replacer *strings.Replacer
}

// NewRedactor builds a Redactor for the given secrets. Empty secrets are
// ignored; longer secrets are replaced first so that a secret containing
// another is never partially revealed.
func NewRedactor(placeholder string, secrets ...string) *Redactor {
	uniq := make(map[string]struct{}, len(secrets))
	for _, s := range secrets {
		if s != "" {
			uniq[s] = struct{}{}
		}
	}
	if len(uniq) == 0 {
		return &Redactor{}
	}

	sorted := make([]string, 0, len(uniq))
	for s := range uniq {
		sorted = append(sorted, s)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	pairs := make([]string, 0, len(sorted)*2)
	for _, s := range sorted {
		pairs = append(pairs, s, placeholder)
	}
	return &Redactor{replacer: strings.NewReplacer(pairs...)}
}

// Redact returns line with every secret replaced
func (r *Redactor) Redact(line string) string {
	if r == nil || r.replacer == nil {
		return line
	}
	return r.replacer.Replace(line)
}
