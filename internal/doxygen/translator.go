package doxygen

import (
	"fmt"
	"regexp"
	"strings"
)

// Options configure translation behavior. The zero value matches the
// strictest rendering; DefaultOptions is what binding generators want.
type Options struct {
	// ReturnIncludesTypeTag treats the first token of a @return body as a
	// type tag and renders the section as "type: description".
	ReturnIncludesTypeTag bool
	// TranslateScopeOperator rewrites scope qualifiers (`ns::name`) into
	// attribute access (`ns.name`).
	TranslateScopeOperator bool
	// HideTParam drops @tparam sections from the output. Type parameters
	// are a C++-only concept with no meaning in a binding docstring.
	HideTParam bool
}

func DefaultOptions() Options {
	return Options{
		TranslateScopeOperator: true,
		HideTParam:             true,
	}
}

// Diagnostic reports a Doxygen command the translator recognizes but cannot
// render faithfully. Emission is best-effort rewriting plus this record;
// translation always continues.
type Diagnostic struct {
	Command string // canonical tag, e.g. "ingroup"
	Message string
}

// Translator rewrites Doxygen documentation comments into plain docstring
// text. All recognition patterns are compiled at construction; Translate
// mutates no translator state and is safe for concurrent use.
type Translator struct {
	sections []*sectionRule
	visuals  []*visualRule
	types    []typeRule
	tagStart *regexp.Regexp
	sink     func(Diagnostic)
}

// New builds a Translator. sink receives a Diagnostic for every unsupported
// command detection, synchronously, in input order; a nil sink discards
// diagnostics.
func New(opts Options, sink func(Diagnostic)) *Translator {
	sections := buildSectionRules(opts)
	return &Translator{
		sections: sections,
		visuals:  buildVisualRules(),
		types:    buildTypeRules(opts.TranslateScopeOperator),
		tagStart: compileTagStart(sections),
		sink:     sink,
	}
}

// whitespaceOnly matches a section that is empty or one whitespace rune:
// the residue of a bare tag or a hidden section, dropped from the output.
var whitespaceOnly = regexp.MustCompile(`\A\s?\z`)

// Translate converts one documentation comment, already stripped of comment
// markers, into docstring text. Sections are matched against the rule list
// in priority order, first match wins; consecutive sections of the same
// kind share a single title. Unmatched sections pass through as plain
// paragraphs. The type-substitution pass runs last so that structural
// rewriting still sees the native syntax.
func (t *Translator) Translate(comment string) string {
	var out strings.Builder
	var prev *sectionRule

	for _, section := range splitSections(comment, t.tagStart) {
		matched := false
		for _, rule := range t.sections {
			var ok bool
			section, ok = rule.apply(section, rule != prev)
			if ok {
				if rule.unsupported {
					t.report(rule.tag)
				}
				prev = rule
				matched = true
				break
			}
		}
		if !matched {
			section = "\n" + section
		}

		for _, v := range t.visuals {
			var n int
			section, n = v.apply(section)
			if n > 0 && v.unsupported {
				t.report(v.tag)
			}
		}

		if whitespaceOnly.MatchString(section) {
			continue
		}
		out.WriteString(t.substituteTypes(section))
		out.WriteString("\n")
	}
	return out.String()
}

func (t *Translator) report(tag string) {
	if t.sink == nil {
		return
	}
	t.sink(Diagnostic{
		Command: tag,
		Message: fmt.Sprintf(`unsupported Doxygen command detected: \%s or @%s`, tag, tag),
	})
}
