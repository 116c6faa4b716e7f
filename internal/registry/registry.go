package registry

import (
	"fmt"
	"sort"

	"mkdoc/internal/extractor"
)

// Entry is one docstring-bearing symbol ready for emission.
type Entry struct {
	Symbol      string // unique __doc_ constant name
	Declaration *extractor.Declaration
	Docstring   string // translated docstring text
}

// Registry collects the docstring entries of one run and keeps symbol names
// unique. Entries are held in registration order, so callers that want a
// deterministic result must add files and declarations in a deterministic
// order; the pipeline adds headers sorted by path and declarations sorted
// by line.
type Registry struct {
	entries []*Entry
	byFile  map[string][]*Entry

	// nameCounts drives duplicate suffixing: the first declaration that
	// mangles to a name keeps it bare, later ones get _2, _3, ...
	nameCounts map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byFile:     make(map[string][]*Entry),
		nameCounts: make(map[string]int),
	}
}

// Add registers a translated declaration and returns its entry with the
// allocated symbol name.
func (r *Registry) Add(decl *extractor.Declaration, docstring string) *Entry {
	name := extractor.SymbolName(decl)
	r.nameCounts[name]++
	if n := r.nameCounts[name]; n > 1 {
		name = fmt.Sprintf("%s_%d", name, n)
	}

	entry := &Entry{
		Symbol:      name,
		Declaration: decl,
		Docstring:   docstring,
	}
	r.entries = append(r.entries, entry)
	r.byFile[decl.Filepath] = append(r.byFile[decl.Filepath], entry)
	return entry
}

// Entries returns all entries in registration order.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

// FileEntries returns the entries extracted from one header.
func (r *Registry) FileEntries(path string) []*Entry {
	return r.byFile[path]
}

// Files returns the distinct header paths with at least one entry, sorted.
func (r *Registry) Files() []string {
	files := make([]string, 0, len(r.byFile))
	for path := range r.byFile {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
