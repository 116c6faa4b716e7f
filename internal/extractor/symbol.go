package extractor

import (
	"regexp"
	"strings"
)

// cppOperators maps C++ operator spellings to the words used inside
// generated symbol names. Longer spellings come first so compound
// operators win over their prefixes.
var cppOperators = []struct{ spelling, word string }{
	{"<<=", "ilshift"}, {">>=", "irshift"},
	{"<=", "le"}, {">=", "ge"}, {"==", "eq"}, {"!=", "ne"}, {"[]", "array"},
	{"+=", "iadd"}, {"-=", "isub"}, {"*=", "imul"}, {"/=", "idiv"}, {"%=", "imod"},
	{"&=", "iand"}, {"|=", "ior"}, {"^=", "ixor"},
	{"++", "inc"}, {"--", "dec"}, {"<<", "lshift"}, {">>", "rshift"},
	{"&&", "land"}, {"||", "lor"}, {"()", "call"},
	{"!", "lnot"}, {"~", "bnot"}, {"&", "band"}, {"|", "bor"}, {"^", "bxor"},
	{"+", "add"}, {"-", "sub"}, {"*", "mul"}, {"/", "div"}, {"%", "mod"},
	{"<", "lt"}, {">", "gt"}, {"=", "assign"},
}

var (
	templateArgsRe  = regexp.MustCompile(`<.*>`)
	nonAlnumRe      = regexp.MustCompile(`[^0-9A-Za-z]`)
	underscoreRunRe = regexp.MustCompile(`_+`)
)

// SymbolName builds the C identifier a declaration's docstring is stored
// under: "__doc_" plus the underscore-joined scope path and name. Operator
// spellings become words, template arguments are dropped, and anything
// else outside [0-9A-Za-z] becomes an underscore.
func SymbolName(decl *Declaration) string {
	parts := append(append([]string{}, decl.Scope...), decl.Name)
	name := strings.Join(parts, "_")
	for _, op := range cppOperators {
		name = strings.ReplaceAll(name, "operator"+op.spelling, "operator_"+op.word)
	}
	name = templateArgsRe.ReplaceAllString(name, "")
	name = nonAlnumRe.ReplaceAllString(name, "_")
	name = underscoreRunRe.ReplaceAllString(name, "_")
	name = strings.TrimSuffix(name, "_")
	return "__doc_" + name
}
