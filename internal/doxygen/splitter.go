package doxygen

import (
	"regexp"
	"strings"
)

// splitSections divides a comment block into paragraph-like sections.
// Doxygen delimits paragraphs by blank lines or by a section indicator, and
// every section indicator starts on its own line. A run of two or more
// newlines is always a boundary and is consumed whole; a single newline is a
// boundary only when the text after it starts with a recognized section tag,
// in which case the newline is consumed and the tag stays with its section.
//
// The tag check cannot be a lookahead inside one split pattern (RE2 has no
// lookahead), so the scan is explicit.
func splitSections(comment string, tagStart *regexp.Regexp) []string {
	var sections []string
	var cur strings.Builder
	for i := 0; i < len(comment); {
		if comment[i] != '\n' {
			cur.WriteByte(comment[i])
			i++
			continue
		}
		j := i + 1
		for j < len(comment) && comment[j] == '\n' {
			j++
		}
		if j-i >= 2 || tagStart.MatchString(comment[j:]) {
			sections = append(sections, cur.String())
			cur.Reset()
		} else {
			cur.WriteByte('\n')
		}
		i = j
	}
	return append(sections, cur.String())
}

// compileTagStart builds the combined anchored pattern used to decide
// whether a single newline introduces a new section.
func compileTagStart(rules []*sectionRule) *regexp.Regexp {
	patterns := make([]string, len(rules))
	for i, r := range rules {
		patterns[i] = r.tagPattern
	}
	return regexp.MustCompile(`\A(?:` + strings.Join(patterns, "|") + `)`)
}
