package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mkdoc/internal/registry"
)

const headerPreamble = `/*
  This file contains docstrings for use in the Python bindings.
  Do not edit! They were automatically extracted by mkdoc.
 */

#define __EXPAND(x)                                      x
#define __COUNT(_1, _2, _3, _4, _5, _6, _7, COUNT, ...)  COUNT
#define __VA_SIZE(...)                                   __EXPAND(__COUNT(__VA_ARGS__, 7, 6, 5, 4, 3, 2, 1, 0))
#define __CAT1(a, b)                                     a ## b
#define __CAT2(a, b)                                     __CAT1(a, b)
#define __DOC1(n1)                                       __doc_##n1
#define __DOC2(n1, n2)                                   __doc_##n1##_##n2
#define __DOC3(n1, n2, n3)                               __doc_##n1##_##n2##_##n3
#define __DOC4(n1, n2, n3, n4)                           __doc_##n1##_##n2##_##n3##_##n4
#define __DOC5(n1, n2, n3, n4, n5)                       __doc_##n1##_##n2##_##n3##_##n4##_##n5
#define __DOC6(n1, n2, n3, n4, n5, n6)                   __doc_##n1##_##n2##_##n3##_##n4##_##n5##_##n6
#define __DOC7(n1, n2, n3, n4, n5, n6, n7)               __doc_##n1##_##n2##_##n3##_##n4##_##n5##_##n6##_##n7
#define DOC(...)                                         __EXPAND(__EXPAND(__CAT2(__DOC, __VA_SIZE(__VA_ARGS__)))(__VA_ARGS__))

#if defined(__GNUG__)
#pragma GCC diagnostic push
#pragma GCC diagnostic ignored "-Wunused-variable"
#endif
`

const headerFooter = `#if defined(__GNUG__)
#pragma GCC diagnostic pop
#endif
`

// RenderHeader builds the generated C header: the DOC(...) lookup macros
// followed by one raw-string docstring constant per entry, in registry order.
func RenderHeader(entries []*registry.Entry) string {
	var sb strings.Builder
	sb.WriteString(headerPreamble)

	for _, e := range entries {
		body := strings.Trim(e.Docstring, "\n")
		delim := rawStringDelimiter(body)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "static const char *%s = R\"%s(%s)%s\";\n", e.Symbol, delim, body, delim)
	}

	sb.WriteString("\n")
	sb.WriteString(headerFooter)
	return sb.String()
}

// WriteHeader renders the header and writes it to path, creating parent
// directories as needed.
func WriteHeader(path string, entries []*registry.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(RenderHeader(entries)), 0644)
}

// rawStringDelimiter picks a delimiter that cannot terminate early inside
// body. "doc" works unless the docstring itself contains `)doc"`.
func rawStringDelimiter(body string) string {
	delim := "doc"
	for strings.Contains(body, ")"+delim+`"`) {
		delim += "_"
	}
	return delim
}
