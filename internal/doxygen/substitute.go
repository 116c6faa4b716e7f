package doxygen

import (
	"regexp"
	"strings"
)

// The C++ type and exception names collapsed by the substitution pass.
// Families mirror the pybind11 type-conversion and exception-translation
// tables.
var (
	intTypes = []string{
		"int8_t", "uint8_t",
		"int16_t", "uint16_t",
		"int32_t", "uint32_t",
		"int64_t", "uint64_t",
		"ssize_t", "size_t",
	}

	stringTypes = []string{
		"const char *",
		"const char16_t *",
		"const char32_t *",
		"const wchar_t *",
		"std::string",
		"std::u16string",
		"std::u32string",
		"std::wstring",
	}

	listTypes     = []string{"std::vector", "std::deque", "std::list", "std::array", "std::valarray"}
	setTypes      = []string{"std::set", "std::unordered_set"}
	dictTypes     = []string{"std::map", "std::unordered_map"}
	tupleTypes    = []string{"std::pair", "std::tuple"}
	optionalTypes = []string{"std::optional", "std::experimental::optional", "boost::optional"}
	pointerTypes  = []string{"std::unique_ptr", "std::shared_ptr"}
)

// typeRule is one global, unanchored substitution over section text.
type typeRule struct {
	pattern *regexp.Regexp
	replace string
}

// buildTypeRules returns the substitution table in application order. Order
// matters twice over: alternatives within a family are tried left to right
// at each position, and the scope-operator rewrite must run after every
// `std::`/`pybind11::` name has already been collapsed.
func buildTypeRules(translateScopeOperator bool) []typeRule {
	rules := []typeRule{
		{alt("true"), "True"},
		{alt("false"), "False"},
		{alt("std::nullopt", "boost::none"), "None"},
		{alt("double"), "float"},
		{alt(intTypes...), "int"},
		{alt(stringTypes...), "str"},
		{alt(listTypes...), "List"},
		{alt(setTypes...), "Set"},
		{alt(dictTypes...), "Dict"},
		{alt(tupleTypes...), "Tuple"},
		{alt(optionalTypes...), "Optional"},
		{alt(pointerTypes...), "Pointer"},
		{alt("std::exception"), "RuntimeError"},
		{alt("std::bad_alloc"), "MemoryError"},
		{alt("std::domain_error", "std::length_error", "std::invalid_argument", "std::range_error", "pybind11::value_error"), "ValueError"},
		{alt("std::out_of_range", "pybind11::index_error"), "IndexError"},
		{alt("std::overflow_error"), "OverflowError"},
		{alt("pybind11::stop_iteration"), "StopIteration"},
		{alt("pybind11::key_error"), "KeyError"},
	}
	if translateScopeOperator {
		// `namespace::function` => `namespace.function`
		rules = append(rules, typeRule{
			pattern: regexp.MustCompile(`([\w<>\s]*[\w>])::([\w<][\w<>\s]*)`),
			replace: `${1}.${2}`,
		})
	}
	return rules
}

func alt(patterns ...string) *regexp.Regexp {
	return regexp.MustCompile(strings.Join(patterns, "|"))
}

// templateOpenRe spots an opening angle bracket owned by one of the generic
// template names produced by the substitution table.
var templateOpenRe = regexp.MustCompile(`(List|Set|Dict|Tuple|Optional|Pointer)<`)

// rewriteBrackets turns `List<T>` into `List[T]`. T can itself carry a
// template type, and a regex alone cannot balance nested brackets, so the
// text is scanned fragment by fragment on `>` with a manual depth counter.
// A `>` at zero depth is ordinary prose (a greater-than sign) and is kept.
func rewriteBrackets(text string) string {
	spans := strings.Split(text, ">")
	if len(spans) == 1 {
		return text
	}

	depth := 0
	var out strings.Builder
	for _, span := range spans[:len(spans)-1] {
		depth += len(templateOpenRe.FindAllStringIndex(span, -1))
		out.WriteString(templateOpenRe.ReplaceAllString(span, "${1}["))
		if depth > 0 {
			depth--
			out.WriteString("]")
		} else {
			out.WriteString(">")
		}
	}
	out.WriteString(spans[len(spans)-1])
	return out.String()
}

// substituteTypes runs the full table over text and then normalizes the
// bracket syntax of the generic template names it introduced.
func (t *Translator) substituteTypes(text string) string {
	for _, r := range t.types {
		text = r.pattern.ReplaceAllString(text, r.replace)
	}
	return rewriteBrackets(text)
}
