package dbc

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Diagnostic represents an issue found by Validate.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g., "unknown-message", "signal-out-of-range"
	Message  string
	Line     int // 1-based line number, 0 if not applicable
	Column   int // 1-based column, 0 if not applicable
	// Suggestion is the closest declared name, if one is near enough.
	Suggestion string
}

// String returns a human-readable representation of the diagnostic.
// Format: "[severity] line:col: message (did you mean X?)" with location
// and suggestion omitted when unset.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	if d.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", d.Line, d.Column)
	}
	b.WriteString(d.Message)
	if d.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %s?)", d.Suggestion)
	}
	return b.String()
}

// ValidateConfig controls which diagnostics Validate reports.
type ValidateConfig struct {
	// Level is the least severe level reported. Diagnostics with
	// severity > Level are suppressed.
	Level Severity

	// Overrides change severity for specific diagnostic codes.
	Overrides map[string]Severity

	// Ignore lists diagnostic codes to suppress entirely.
	// Supports glob patterns (e.g., "unknown-*").
	Ignore []string
}

// DefaultValidateConfig reports errors and warnings.
func DefaultValidateConfig() ValidateConfig {
	return ValidateConfig{Level: SeverityWarning}
}

// StrictValidateConfig reports everything, including informational notices.
func StrictValidateConfig() ValidateConfig {
	return ValidateConfig{Level: SeverityInfo}
}

// ShouldReport returns true if a diagnostic with the given code and severity
// should be reported under this configuration. Ignore patterns that are not
// valid globs match the code literally.
func (c ValidateConfig) ShouldReport(code string, sev Severity) bool {
	_, ok := c.compile().report(code, sev)
	return ok
}

// filter is a ValidateConfig with its ignore patterns compiled.
type filter struct {
	ValidateConfig
	ignore []glob.Glob
}

func (c ValidateConfig) compile() filter {
	f := filter{ValidateConfig: c}
	for _, p := range c.Ignore {
		g, err := glob.Compile(p)
		if err != nil {
			g = glob.MustCompile(glob.QuoteMeta(p))
		}
		f.ignore = append(f.ignore, g)
	}
	return f
}

// report applies overrides and returns the effective severity and whether
// the diagnostic passes the filter.
func (f filter) report(code string, sev Severity) (Severity, bool) {
	for _, g := range f.ignore {
		if g.Match(code) {
			return sev, false
		}
	}
	if override, ok := f.Overrides[code]; ok {
		sev = override
	}
	return sev, sev <= f.Level
}
