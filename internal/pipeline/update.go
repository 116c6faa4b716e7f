package pipeline

import (
	"context"
	"fmt"
	"log"

	"mkdoc/internal/analysis"
	"mkdoc/internal/config"
	"mkdoc/internal/crawler"
	"mkdoc/internal/extractor"
	"mkdoc/internal/git"
	"mkdoc/internal/registry"
	"mkdoc/internal/storage"
)

// IncrementalUpdate re-extracts only the headers that changed since the
// last run, splices the stored docstrings of unchanged headers back into
// the registry and re-emits the outputs.
type IncrementalUpdate struct {
	DBPath     string
	ConfigPath string
}

func NewIncrementalUpdate(dbPath string) *IncrementalUpdate {
	return &IncrementalUpdate{
		DBPath:     dbPath,
		ConfigPath: "config.yaml",
	}
}

func (u *IncrementalUpdate) Run(ctx context.Context) error {
	cfg, err := config.LoadConfig(u.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := storage.NewSQLiteStore(u.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	storedHashes, err := store.LoadHeaders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if len(storedHashes) == 0 {
		fmt.Println("🧭 No snapshot found. Running a full scan first.")
		full := &FullGenerate{DBPath: u.DBPath, ConfigPath: u.ConfigPath}
		return full.Run(ctx, true)
	}

	previous, err := store.LoadDocstrings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	changedByGit := u.detectChangesStage(cfg)

	result, rescanned, err := u.updateStage(ctx, cfg, store, storedHashes, changedByGit)
	if err != nil {
		return err
	}
	fmt.Printf("📂 Re-extracted %d of %d headers.\n", rescanned, len(result.headers))

	records := snapshotRecords(result.registry)
	printChangeReport(analysis.NewAnalyzer(previous).AnalyzeChanges(records))

	if err := emitOutputs(cfg, result); err != nil {
		return err
	}

	if err := store.SaveSnapshot(ctx, result.headers, records); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	fmt.Printf("💾 Snapshot saved to %s.\n", u.DBPath)

	return nil
}

// detectChangesStage asks git which headers were touched since the base
// ref. Git being unavailable is not an error: the update falls back to
// comparing content hashes alone.
func (u *IncrementalUpdate) detectChangesStage(cfg *config.Config) map[string]bool {
	extensions := cfg.Project.Extensions
	if len(extensions) == 0 {
		extensions = crawler.DefaultExtensions
	}

	paths, err := git.ChangedHeaders(cfg.Project.Root, cfg.Git.BaseRef, extensions)
	if err != nil {
		log.Printf("⚠️ Git change detection unavailable (%v), comparing content hashes.", err)
		return nil
	}

	fmt.Printf("📝 Git reports %d changed headers since %s.\n", len(paths), cfg.Git.BaseRef)
	changed := make(map[string]bool, len(paths))
	for _, p := range paths {
		changed[p] = true
	}
	return changed
}

// updateStage walks the project once. Unchanged headers are restored from
// the snapshot without parsing; changed, new and git-flagged headers go
// through extraction and translation again. The content hash has the final
// word, so a stale git ref cannot hide an edited header.
func (u *IncrementalUpdate) updateStage(ctx context.Context, cfg *config.Config, store storage.Store, storedHashes map[string]string, changedByGit map[string]bool) (*scanResult, int, error) {
	ext, err := extractor.NewExtractor("cpp")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create extractor: %w", err)
	}
	cr := crawler.NewCrawler(ext, cfg.Project.Extensions)
	tr := newTranslator(cfg.TranslatorOptions())

	result := &scanResult{registry: registry.NewRegistry()}
	rescanned := 0

	var cbErr error
	err = cr.ScanHeaders(cfg.Project.Root, func(path string, source []byte) {
		if cbErr != nil {
			return
		}

		storedHash, known := storedHashes[path]
		if known && !changedByGit[path] && storage.HashContent(source) == storedHash {
			result.headers = append(result.headers, storage.HeaderRecord{Path: path, ContentHash: storedHash})
			if restoreErr := restoreFile(ctx, store, result.registry, path); restoreErr != nil {
				cbErr = restoreErr
			}
			return
		}

		rescanned++
		result.headers = append(result.headers, storage.HeaderRecord{
			Path:        path,
			ContentHash: storage.HashContent(source),
		})

		decls, err := ext.Extract(source, path)
		if err != nil {
			log.Printf("⚠️ Failed to parse %s: %v", path, err)
			return
		}
		result.diagnostics = append(result.diagnostics, tr.translateInto(result.registry, decls)...)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan project: %w", err)
	}
	if cbErr != nil {
		return nil, 0, fmt.Errorf("failed to restore snapshot entries: %w", cbErr)
	}

	return result, rescanned, nil
}

// restoreFile replays a header's stored docstrings into the registry so
// symbol numbering stays identical to a full scan.
func restoreFile(ctx context.Context, store storage.Store, reg *registry.Registry, path string) error {
	records, err := store.FindDocstringsByFile(ctx, path)
	if err != nil {
		return err
	}
	for _, r := range records {
		reg.Add(restoreDeclaration(r), r.Docstring)
	}
	return nil
}

func restoreDeclaration(r storage.DocstringRecord) *extractor.Declaration {
	return &extractor.Declaration{
		Filepath:  r.Path,
		Kind:      r.Kind,
		Name:      r.Name,
		Scope:     r.Scope,
		StartLine: r.StartLine,
		EndLine:   r.EndLine,
		Comment:   r.Comment,
	}
}

func printChangeReport(report *analysis.ChangeReport) {
	if report.Empty() {
		fmt.Println("✅ No documentation changes detected.")
		return
	}

	fmt.Printf("🔍 Documentation changes: %d added, %d removed, %d rewritten.\n",
		len(report.Added), len(report.Removed), len(report.Changed))
	for _, d := range report.Added {
		fmt.Printf("  + %s\n", d.Symbol)
	}
	for _, d := range report.Removed {
		fmt.Printf("  - %s\n", d.Symbol)
	}
	for _, d := range report.Changed {
		fmt.Printf("  ~ %s\n", d.Symbol)
	}
}
