package extractor

import (
	"context"
	"fmt"
	"os"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor orchestrates the extraction process using language-specific extractors.
type Extractor struct {
	langExtractor LanguageExtractor
}

// NewExtractor creates a new extractor for a given language.
func NewExtractor(lang string) (*Extractor, error) {
	switch lang {
	case "cpp":
		return &Extractor{langExtractor: &CppExtractor{}}, nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

// ExtractFromFile parses a single header file and extracts all documented
// declarations, in source order.
func (e *Extractor) ExtractFromFile(filepath string) ([]*Declaration, error) {
	sourceCode, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return e.Extract(sourceCode, filepath)
}

// Extract parses source held in memory. filepath is only recorded on the
// resulting declarations.
func (e *Extractor) Extract(sourceCode []byte, filepath string) ([]*Declaration, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filepath, err)
	}

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("failed to create query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(query, tree.RootNode())

	var decls []*Declaration
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range m.Captures {
			captureName := query.CaptureNameForId(capture.Index)
			decl := e.langExtractor.ExtractDeclaration(captureName, capture.Node, sourceCode, filepath)
			if decl != nil {
				decls = append(decls, decl)
			}
		}
	}

	sort.SliceStable(decls, func(i, j int) bool { return decls[i].StartLine < decls[j].StartLine })
	return decls, nil
}
