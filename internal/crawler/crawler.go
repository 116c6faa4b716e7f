package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mkdoc/internal/extractor"
)

// DefaultExtensions are the header suffixes scanned when the project
// configuration does not name its own set.
var DefaultExtensions = []string{".h", ".hpp", ".hh", ".hxx", ".cuh"}

// Crawler scans a directory tree for C++ header files.
type Crawler struct {
	extractor  *extractor.Extractor
	extensions []string
	ignored    []string
}

// NewCrawler creates a new crawler instance. extensions may be empty to
// scan the default header set.
func NewCrawler(ext *extractor.Extractor, extensions []string) *Crawler {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Crawler{
		extractor:  ext,
		extensions: extensions,
		ignored:    []string{".git", "build", "vendor", "node_modules", "testdata"},
	}
}

// ScanProject walks the root directory and processes every header file.
// Each file is read once and its source and documented declarations are
// streamed to the callback; a header with no documented declarations is
// still reported so callers can notice documentation being removed. Paths
// handed to the callback are slash-separated and relative to root.
// Unreadable files are skipped so one broken header cannot sink the scan.
func (c *Crawler) ScanProject(root string, onFile func(path string, source []byte, decls []*extractor.Declaration)) error {
	return c.ScanHeaders(root, func(path string, source []byte) {
		decls, err := c.extractor.Extract(source, path)
		if err != nil {
			return
		}
		onFile(path, source, decls)
	})
}

// ScanHeaders walks the root directory like ScanProject but leaves parsing
// to the caller, handing over each header's relative slash path and raw
// bytes. Incremental updates use this to skip re-parsing unchanged files.
func (c *Crawler) ScanHeaders(root string, onHeader func(path string, source []byte)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !c.isHeader(d.Name()) {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		onHeader(filepath.ToSlash(rel), source)
		return nil
	})
}

func (c *Crawler) isHeader(name string) bool {
	for _, ext := range c.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
