package pipeline

import (
	"context"
	"fmt"
	"time"

	"mkdoc/internal/config"
	"mkdoc/internal/crawler"
	"mkdoc/internal/doxygen"
	"mkdoc/internal/extractor"
	"mkdoc/internal/generator"
	"mkdoc/internal/registry"
	"mkdoc/internal/storage"
)

// FullGenerate scans the whole project, translates every documented
// declaration and replaces the stored snapshot.
type FullGenerate struct {
	DBPath     string
	ConfigPath string

	// ProjectRoot overrides the configured project root when set.
	ProjectRoot string
}

func NewFullGenerate(dbPath string) *FullGenerate {
	return &FullGenerate{
		DBPath:     dbPath,
		ConfigPath: "config.yaml",
	}
}

type scanResult struct {
	headers     []storage.HeaderRecord
	registry    *registry.Registry
	diagnostics []symbolDiagnostic
}

type symbolDiagnostic struct {
	symbol string
	diag   doxygen.Diagnostic
}

// Run executes the full pipeline. With writeOutputs false only the snapshot
// cache is populated; the header and report files are left untouched.
func (p *FullGenerate) Run(ctx context.Context, writeOutputs bool) error {
	cfg, err := config.LoadConfig(p.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if p.ProjectRoot != "" {
		cfg.Project.Root = p.ProjectRoot
	}

	result, err := p.scanStage(cfg)
	if err != nil {
		return err
	}

	if writeOutputs {
		if err := emitOutputs(cfg, result); err != nil {
			return err
		}
	}

	store, err := storage.NewSQLiteStore(p.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	if err := store.SaveSnapshot(ctx, result.headers, snapshotRecords(result.registry)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	fmt.Printf("💾 Snapshot saved to %s.\n", p.DBPath)

	return nil
}

func (p *FullGenerate) scanStage(cfg *config.Config) (*scanResult, error) {
	ext, err := extractor.NewExtractor("cpp")
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	cr := crawler.NewCrawler(ext, cfg.Project.Extensions)
	tr := newTranslator(cfg.TranslatorOptions())

	result := &scanResult{registry: registry.NewRegistry()}

	fmt.Printf("🔎 Scanning %s for documented declarations...\n", cfg.Project.Root)
	start := time.Now()

	err = cr.ScanProject(cfg.Project.Root, func(path string, source []byte, decls []*extractor.Declaration) {
		result.headers = append(result.headers, storage.HeaderRecord{
			Path:        path,
			ContentHash: storage.HashContent(source),
		})
		result.diagnostics = append(result.diagnostics, tr.translateInto(result.registry, decls)...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}

	fmt.Printf("📂 Scanned %d headers, %d documented declarations in %v.\n",
		len(result.headers), result.registry.Len(), time.Since(start))

	return result, nil
}

// translator wires the doxygen engine to the registry, attaching each
// diagnostic to the symbol whose comment raised it.
type translator struct {
	engine  *doxygen.Translator
	pending []doxygen.Diagnostic
}

func newTranslator(opts doxygen.Options) *translator {
	t := &translator{}
	t.engine = doxygen.New(opts, func(d doxygen.Diagnostic) {
		t.pending = append(t.pending, d)
	})
	return t
}

func (t *translator) translateInto(reg *registry.Registry, decls []*extractor.Declaration) []symbolDiagnostic {
	var diags []symbolDiagnostic
	for _, decl := range decls {
		t.pending = t.pending[:0]
		docstring := t.engine.Translate(decl.Comment)
		entry := reg.Add(decl, docstring)
		for _, d := range t.pending {
			diags = append(diags, symbolDiagnostic{symbol: entry.Symbol, diag: d})
		}
	}
	return diags
}

// emitOutputs writes the docstring header and the generation report.
func emitOutputs(cfg *config.Config, result *scanResult) error {
	entries := result.registry.Entries()
	if err := generator.WriteHeader(cfg.Output.Header, entries); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	fmt.Printf("📄 Docstring header written to %s (%d symbols).\n", cfg.Output.Header, len(entries))

	report := generator.NewReport(cfg.Project.Root)
	for _, h := range result.headers {
		var symbols []string
		for _, e := range result.registry.FileEntries(h.Path) {
			symbols = append(symbols, e.Symbol)
		}
		report.AddFile(h.Path, symbols)
	}
	for _, sd := range result.diagnostics {
		report.AddDiagnostic(sd.symbol, sd.diag)
	}
	if err := report.Save(cfg.Output.Report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("🧾 Generation report written to %s.\n", cfg.Output.Report)

	return nil
}

// snapshotRecords flattens the registry into storable rows.
func snapshotRecords(reg *registry.Registry) []storage.DocstringRecord {
	var records []storage.DocstringRecord
	for _, e := range reg.Entries() {
		d := e.Declaration
		records = append(records, storage.DocstringRecord{
			Symbol:    e.Symbol,
			Path:      d.Filepath,
			Kind:      d.Kind,
			Name:      d.Name,
			Scope:     d.Scope,
			StartLine: d.StartLine,
			EndLine:   d.EndLine,
			Comment:   d.Comment,
			Docstring: e.Docstring,
		})
	}
	return records
}
