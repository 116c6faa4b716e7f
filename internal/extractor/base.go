package extractor

import sitter "github.com/smacker/go-tree-sitter"

// Declaration is one documented declaration lifted out of a header file.
// Comment holds the documentation block with the comment markers stripped
// but the Doxygen commands intact; translation happens downstream.
type Declaration struct {
	Filepath  string   `json:"filepath"`
	Kind      string   `json:"kind"` // e.g., "class", "function", "field", "enumerator"
	Name      string   `json:"name"`
	Scope     []string `json:"scope,omitempty"` // enclosing namespaces and types, outermost first
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Comment   string   `json:"comment"`
}

// QualifiedName joins the scope path and the declaration name with "::".
func (d *Declaration) QualifiedName() string {
	name := d.Name
	for i := len(d.Scope) - 1; i >= 0; i-- {
		name = d.Scope[i] + "::" + name
	}
	return name
}

// LanguageExtractor defines the interface that each language parser must implement.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractDeclaration(captureName string, node *sitter.Node, sourceCode []byte, filepath string) *Declaration
}
