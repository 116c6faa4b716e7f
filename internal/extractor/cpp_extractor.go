package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// CppExtractor implements LanguageExtractor for C++ headers.
type CppExtractor struct{}

func (c *CppExtractor) GetLanguage() *sitter.Language {
	return cpp.GetLanguage()
}

func (c *CppExtractor) GetQuery() string {
	return `
		(class_specifier) @class
		(struct_specifier) @struct
		(enum_specifier) @enum
		(enumerator) @enumerator
		(function_definition) @function
		(field_declaration) @field
		(declaration) @declaration
		(alias_declaration) @alias
		(type_definition) @typedef
	`
}

func (c *CppExtractor) ExtractDeclaration(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *Declaration {
	var name string
	kind := captureName
	scope := scopePath(node, sourceCode)

	switch captureName {
	case "class", "struct", "enum":
		if node.ChildByFieldName("body") == nil {
			return nil // forward declaration
		}
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil // anonymous
		}
		name = nameNode.Content(sourceCode)

	case "enumerator", "alias":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return nil
		}
		name = nameNode.Content(sourceCode)

	case "typedef":
		name = declaratorName(node.ChildByFieldName("declarator"), sourceCode)

	case "function":
		declarator := node.ChildByFieldName("declarator")
		name = declaratorName(declarator, sourceCode)
		qualifier := declaratorScope(declarator, sourceCode)
		scope = append(scope, qualifier...)
		if insideType(node) || len(qualifier) > 0 {
			kind = "method"
		}

	case "field":
		declarator := node.ChildByFieldName("declarator")
		name = declaratorName(declarator, sourceCode)
		if hasFunctionDeclarator(declarator) {
			kind = "method"
		}

	case "declaration":
		if insideFunction(node) {
			return nil // local declaration, not API surface
		}
		declarator := node.ChildByFieldName("declarator")
		name = declaratorName(declarator, sourceCode)
		kind = "variable"
		if hasFunctionDeclarator(declarator) {
			kind = "function"
		}
	}
	if name == "" {
		return nil
	}

	comment := c.extractDocComment(node, sourceCode)
	if comment == "" {
		return nil
	}

	return &Declaration{
		Filepath:  filepath,
		Kind:      kind,
		Name:      name,
		Scope:     scope,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
		Comment:   comment,
	}
}

// extractDocComment gathers the documentation block attached to node: the
// run of doc comments on the lines directly above, or failing that a
// trailing doc comment on the same line. Ordinary comments and comments
// that trail the previous declaration are not included.
func (c *CppExtractor) extractDocComment(node *sitter.Node, sourceCode []byte) string {
	anchor := commentAnchor(node)

	var commentLines []string
	currentNode := anchor
	for {
		prevSibling := currentNode.PrevSibling()
		if prevSibling == nil || prevSibling.Type() != "comment" {
			break
		}
		if currentNode.StartPoint().Row-prevSibling.EndPoint().Row > 1 {
			break
		}
		if isTrailingComment(prevSibling) {
			break
		}
		raw := prevSibling.Content(sourceCode)
		if !isDocComment(raw) {
			break
		}
		commentLines = append([]string{cleanDocComment(raw)}, commentLines...)
		currentNode = prevSibling
	}
	if len(commentLines) > 0 {
		return strings.Join(commentLines, "\n")
	}

	if next := anchor.NextSibling(); next != nil && next.Type() == "comment" &&
		next.StartPoint().Row == anchor.EndPoint().Row {
		if raw := next.Content(sourceCode); isDocComment(raw) {
			return cleanDocComment(raw)
		}
	}
	return ""
}

// commentAnchor returns the node the leading comment block actually sits
// above. For a templated declaration that is the template wrapper, not the
// inner specifier.
func commentAnchor(node *sitter.Node) *sitter.Node {
	anchor := node
	for p := anchor.Parent(); p != nil && p.Type() == "template_declaration"; p = p.Parent() {
		anchor = p
	}
	return anchor
}

// isTrailingComment reports whether the comment sits on the same line as
// preceding code, i.e. it documents the declaration it follows rather than
// the one below it.
func isTrailingComment(comment *sitter.Node) bool {
	prev := comment.PrevSibling()
	return prev != nil && prev.Type() != "comment" && prev.EndPoint().Row == comment.StartPoint().Row
}

// scopePath collects the names of the enclosing namespaces, types and
// enums, outermost first. A nested namespace like `namespace a::b`
// contributes one part per component.
func scopePath(node *sitter.Node, sourceCode []byte) []string {
	var parts []string
	for n := node.Parent(); n != nil; n = n.Parent() {
		switch n.Type() {
		case "namespace_definition", "class_specifier", "struct_specifier", "enum_specifier":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				parts = append(strings.Split(nameNode.Content(sourceCode), "::"), parts...)
			}
		}
	}
	return parts
}

// declaratorName digs through the declarator chain for the declared name.
// Pointer, reference, array and function declarators all wrap an inner
// declarator; a qualified name keeps only its last component.
func declaratorName(node *sitter.Node, sourceCode []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "identifier", "field_identifier", "type_identifier", "operator_name", "destructor_name":
		return node.Content(sourceCode)
	case "qualified_identifier":
		return declaratorName(node.ChildByFieldName("name"), sourceCode)
	}
	if inner := node.ChildByFieldName("declarator"); inner != nil {
		return declaratorName(inner, sourceCode)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if name := declaratorName(node.NamedChild(i), sourceCode); name != "" {
			return name
		}
	}
	return ""
}

// declaratorScope collects the explicit qualifier of an out-of-line
// definition, e.g. the "Shape" in `double Shape::area() const`.
func declaratorScope(node *sitter.Node, sourceCode []byte) []string {
	if node == nil {
		return nil
	}
	if node.Type() == "qualified_identifier" {
		var parts []string
		if scope := node.ChildByFieldName("scope"); scope != nil {
			parts = append(parts, scope.Content(sourceCode))
		}
		return append(parts, declaratorScope(node.ChildByFieldName("name"), sourceCode)...)
	}
	if inner := node.ChildByFieldName("declarator"); inner != nil {
		return declaratorScope(inner, sourceCode)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if parts := declaratorScope(node.NamedChild(i), sourceCode); parts != nil {
			return parts
		}
	}
	return nil
}

func hasFunctionDeclarator(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	if node.Type() == "function_declarator" {
		return true
	}
	if inner := node.ChildByFieldName("declarator"); inner != nil {
		return hasFunctionDeclarator(inner)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if hasFunctionDeclarator(node.NamedChild(i)) {
			return true
		}
	}
	return false
}

func insideType(node *sitter.Node) bool {
	for n := node.Parent(); n != nil; n = n.Parent() {
		switch n.Type() {
		case "class_specifier", "struct_specifier":
			return true
		}
	}
	return false
}

func insideFunction(node *sitter.Node) bool {
	for n := node.Parent(); n != nil; n = n.Parent() {
		if n.Type() == "function_definition" {
			return true
		}
	}
	return false
}
