package extractor

import "strings"

// Doxygen only reads specially marked comments: /** ... */, /*! ... */,
// /// and //! lines, plus their trailing-member variants with a `<` after
// the marker. Ordinary // and /* */ comments are not documentation.
func isDocComment(raw string) bool {
	for _, p := range []string{"/**", "/*!", "///", "//!"} {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return false
}

// CleanComment strips documentation comment decorations from raw text, the
// same way extraction does before translation. Line-form comments may span
// several /// or //! lines. Text that is not a doc comment is returned
// unchanged.
func CleanComment(raw string) string {
	raw = strings.TrimSpace(raw)
	if !isDocComment(raw) {
		return raw
	}

	if strings.HasPrefix(raw, "//") {
		lines := strings.Split(raw, "\n")
		for i, line := range lines {
			lines[i] = cleanDocComment(strings.TrimSpace(line))
		}
		return strings.Join(lines, "\n")
	}

	return cleanDocComment(raw)
}

// cleanDocComment strips the comment markers from one documentation
// comment token, leaving the text and any Doxygen commands it carries.
func cleanDocComment(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "//") {
		line := strings.TrimLeft(raw, "/")
		line = strings.TrimPrefix(line, "!")
		line = strings.TrimPrefix(line, "<")
		return strings.TrimSpace(line)
	}

	raw = strings.TrimSuffix(raw, "*/")
	raw = strings.TrimPrefix(raw, "/*")
	raw = strings.TrimPrefix(raw, "*")
	raw = strings.TrimPrefix(raw, "!")
	raw = strings.TrimPrefix(raw, "<")

	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "*")
		l = strings.TrimPrefix(l, " ")
		cleaned = append(cleaned, strings.TrimRight(l, " \t"))
	}

	for len(cleaned) > 0 && cleaned[0] == "" {
		cleaned = cleaned[1:]
	}
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n")
}
