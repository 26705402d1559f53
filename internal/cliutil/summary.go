package cliutil

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/oasupgrade/internal/issues"
	"github.com/erraggy/oasupgrade/internal/severity"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// severityOrder lists severities from most to least severe.
var severityOrder = []severity.Severity{
	severity.SeverityCritical,
	severity.SeverityWarning,
	severity.SeverityInfo,
}

// WriteBanner writes a title underlined with '=' characters.
func WriteBanner(w io.Writer, title string) {
	Writef(w, "%s\n%s\n\n", title, strings.Repeat("=", utf8.RuneCountInString(title)))
}

// WriteIssues writes issues grouped by severity, most severe first, under
// headings such as "Warning (2):". Groups without issues are skipped.
func WriteIssues(w io.Writer, list []issues.Issue) {
	titleCaser := cases.Title(language.English)
	for _, sev := range severityOrder {
		var group []issues.Issue
		for _, issue := range list {
			if issue.Severity == sev {
				group = append(group, issue)
			}
		}
		if len(group) == 0 {
			continue
		}
		Writef(w, "%s (%d):\n", titleCaser.String(sev.String()), len(group))
		for _, issue := range group {
			Writef(w, "  %s\n", issue.String())
		}
		Writef(w, "\n")
	}
}
