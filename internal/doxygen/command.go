package doxygen

import (
	"regexp"
	"strings"
)

const sectionIndent = "    "

// continuationRe re-indents line breaks embedded in a section body.
var continuationRe = regexp.MustCompile(`\n\s*`)

type sectionKind int

const (
	// sectionTitled renders the body indented under a "Title:" line.
	sectionTitled sectionKind = iota
	// sectionUntitled renders the body bare: no indent, no title.
	sectionUntitled
	// sectionLabeled expects a single-token label before the body and
	// renders "label: body" indented under a "Title:" line.
	sectionLabeled
)

// sectionRule describes one Doxygen section command: how to recognize it at
// the start of a section and how to re-render it. Rules are immutable after
// compile and shared across calls.
type sectionRule struct {
	kind        sectionKind
	tag         string   // canonical tag name, e.g. "param"
	synonyms    []string // alternate tags recognized by the same rule
	title       string
	extraIndent bool // continuation lines get twice the base indent
	hidden      bool // recognized, but rendered as empty text
	unsupported bool // reports a diagnostic when matched

	tagPattern string // overrides the default `[\@]tag` pattern when set
	indent     string
	match      *regexp.Regexp
	rewrite    string
}

// compile builds the recognition pattern and rewrite template. The body is
// matched greedily to the end of the section; the label (labeled kind only)
// is a single unbroken token. Both pieces are optional so a bare tag still
// counts as a match.
func (r *sectionRule) compile() {
	if r.tagPattern == "" {
		r.tagPattern = tagPattern(r.tag, r.synonyms...)
	}
	if r.kind != sectionUntitled {
		r.indent = sectionIndent
	}
	switch r.kind {
	case sectionLabeled:
		r.match = regexp.MustCompile(`\A` + r.tagPattern + `(?:\s+(?P<label>\S+))?(?:\s+(?P<body>[\w\W]*))?`)
		r.rewrite = r.indent + "${label}: ${body}"
	default:
		r.match = regexp.MustCompile(`\A` + r.tagPattern + `(:?\s+(?P<body>[\w\W]*))?`)
		r.rewrite = r.indent + "${body}"
	}
}

func (r *sectionRule) titleLine() string {
	if r.kind == sectionUntitled {
		return ""
	}
	return r.title + ":\n"
}

// apply attempts to reformat section under this rule. The bool reports
// whether the tag was recognized; on a miss the section is returned
// unchanged. Recognition is anchored to the start of the section, and the
// rendered text replaces the whole match.
func (r *sectionRule) apply(section string, includeTitle bool) (string, bool) {
	m := r.match.FindStringSubmatchIndex(section)
	if m == nil {
		return section, false
	}
	if r.hidden {
		return "", true
	}
	out := string(r.match.ExpandString(nil, r.rewrite, section, m))
	indent := r.indent
	if r.extraIndent {
		indent += r.indent
	}
	out = continuationRe.ReplaceAllString(out, "\n"+indent)
	if includeTitle {
		out = "\n" + r.titleLine() + out
	}
	return out, true
}

// buildSectionRules returns the priority-ordered section list. The most
// common tags come first: a section is matched against each rule in turn
// and the first hit wins.
func buildSectionRules(opts Options) []*sectionRule {
	returnRule := &sectionRule{kind: sectionTitled, tag: "return", title: "Returns"}
	if opts.ReturnIncludesTypeTag {
		returnRule.kind = sectionLabeled
	}

	rules := []*sectionRule{
		// `@param[in]`, `@param[out]` and `@param[in,out]` carry a direction
		// annotation that is matched and discarded.
		{kind: sectionLabeled, tag: "param", title: "Args", extraIndent: true,
			tagPattern: `[\\@]param(?:\[(?:in|out|,)*\])?`},
		returnRule,
		{kind: sectionUntitled, tag: "brief", synonyms: []string{"short"}},
		{kind: sectionLabeled, tag: "tparam", title: "Type parameter (C++ only)", extraIndent: true, hidden: opts.HideTParam},
		{kind: sectionLabeled, tag: "retval", title: "Returns", extraIndent: true},
		{kind: sectionLabeled, tag: "exception", synonyms: []string{"throw", "throws"}, title: "Raises", extraIndent: true},
		{kind: sectionUntitled, tag: "overload", unsupported: true},
		{kind: sectionTitled, tag: "remark", synonyms: []string{"note"}, title: "Notes", extraIndent: true},
		{kind: sectionTitled, tag: "see", synonyms: []string{"sa"}, title: "See also", extraIndent: true},
		{kind: sectionTitled, tag: "author", synonyms: []string{"authors"}, title: "Author", extraIndent: true},
		{kind: sectionTitled, tag: "copyright", title: "Copyright", extraIndent: true},
		{kind: sectionTitled, tag: "date", title: "Date", extraIndent: true},
		{kind: sectionTitled, tag: "details", title: "Details", extraIndent: true},
		{kind: sectionTitled, tag: "extends", title: "Extends", extraIndent: true},
		{kind: sectionTitled, tag: "ingroup", title: "In Group", extraIndent: true, unsupported: true},
	}
	for _, r := range rules {
		r.compile()
	}
	return rules
}

type visualKind int

const (
	// visualInline rewrites `\tag word` / `@tag word` (one unbroken token).
	visualInline visualKind = iota
	// visualHTML rewrites `<tag>...</tag>` pairs, matching the tag name in
	// its lowercase and uppercase forms. The interior match is non-greedy
	// so sequential pairs in one text each bind to their nearest closer;
	// a tag nested inside itself is not handled.
	visualHTML
)

// visualRule describes an inline formatting command. Unlike section rules,
// visual rules are applied to every section and rewrite all occurrences.
type visualRule struct {
	kind        visualKind
	tag         string
	synonyms    []string
	rewrite     string
	unsupported bool

	patterns []*regexp.Regexp
}

func (v *visualRule) compile() {
	tags := append([]string{v.tag}, v.synonyms...)
	switch v.kind {
	case visualHTML:
		for _, variant := range []func(string) string{strings.ToLower, strings.ToUpper} {
			for _, tag := range tags {
				name := variant(tag)
				v.patterns = append(v.patterns, regexp.MustCompile(`<`+name+`>([\w\W]*?)</`+name+`>`))
			}
		}
	default:
		v.patterns = []*regexp.Regexp{regexp.MustCompile(tagPattern(v.tag, v.synonyms...) + `\s+(?P<word>\S+)`)}
	}
}

// apply rewrites every occurrence and reports how many were found.
func (v *visualRule) apply(text string) (string, int) {
	count := 0
	for _, re := range v.patterns {
		count += len(re.FindAllStringIndex(text, -1))
		text = re.ReplaceAllString(text, v.rewrite)
	}
	return text, count
}

func buildVisualRules() []*visualRule {
	rules := []*visualRule{
		{kind: visualInline, tag: "a", synonyms: []string{"e", "em"}, rewrite: `*${word}*`},
		{kind: visualInline, tag: "b", rewrite: `**${word}**`},
		{kind: visualInline, tag: "c", rewrite: "``${word}``"},
		{kind: visualHTML, tag: "b", rewrite: `**${1}**`},
		{kind: visualHTML, tag: "em", rewrite: `*${1}*`},
		{kind: visualHTML, tag: "tt", rewrite: "``${1}``"},
		{kind: visualInline, tag: "ref", rewrite: `\ref ${word}`, unsupported: true},
		{kind: visualHTML, tag: "pre", rewrite: "\n```${1}\n```\n", unsupported: true},
		{kind: visualHTML, tag: "li", rewrite: "\n- ${1}", unsupported: true},
	}
	for _, r := range rules {
		r.compile()
	}
	return rules
}

// tagPattern matches `\tag` or `@tag` for the tag and its synonyms.
func tagPattern(tag string, synonyms ...string) string {
	tags := append([]string{tag}, synonyms...)
	return `[\\@](?:` + strings.Join(tags, "|") + `)`
}
