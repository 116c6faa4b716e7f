package generator

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"mkdoc/internal/doxygen"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const reportVersion = "v1"

//go:embed report_schema.json
var reportSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Report describes one generation run: what was scanned, what was emitted,
// and every unsupported-command diagnostic the translator raised.
type Report struct {
	Version     string             `json:"version"`
	GeneratedAt string             `json:"generated_at"`
	ProjectRoot string             `json:"project_root"`
	Summary     ReportSummary      `json:"summary"`
	Files       []FileReport       `json:"files"`
	Diagnostics []ReportDiagnostic `json:"diagnostics,omitempty"`
}

type ReportSummary struct {
	HeadersScanned    int `json:"headers_scanned"`
	SymbolsDocumented int `json:"symbols_documented"`
	DiagnosticCount   int `json:"diagnostic_count"`
}

type FileReport struct {
	Path    string   `json:"path"`
	Symbols []string `json:"symbols"`
}

type ReportDiagnostic struct {
	Symbol  string `json:"symbol"`
	Command string `json:"command"`
	Message string `json:"message"`
}

func NewReport(projectRoot string) *Report {
	return &Report{
		Version:     reportVersion,
		ProjectRoot: projectRoot,
		Files:       []FileReport{},
	}
}

// AddFile records one scanned header and the docstring constants it produced.
// Headers without documented declarations are still counted.
func (r *Report) AddFile(path string, symbols []string) {
	if symbols == nil {
		symbols = []string{}
	}
	r.Files = append(r.Files, FileReport{Path: path, Symbols: symbols})
}

// AddDiagnostic records a translator diagnostic against the symbol whose
// comment raised it.
func (r *Report) AddDiagnostic(symbol string, d doxygen.Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, ReportDiagnostic{
		Symbol:  symbol,
		Command: d.Command,
		Message: d.Message,
	})
}

// Finalize fills the summary and timestamp from the recorded entries.
func (r *Report) Finalize() {
	r.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

	documented := 0
	for _, f := range r.Files {
		documented += len(f.Symbols)
	}
	r.Summary = ReportSummary{
		HeadersScanned:    len(r.Files),
		SymbolsDocumented: documented,
		DiagnosticCount:   len(r.Diagnostics),
	}
}

// Save finalizes the report, validates it against the embedded schema and
// writes it as indented JSON.
func (r *Report) Save(path string) error {
	r.Finalize()

	if err := validateReport(r); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func validateReport(r *Report) error {
	schema, err := loadReportSchema()
	if err != nil {
		return fmt.Errorf("failed to compile report schema: %w", err)
	}

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report for schema validation: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize report for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("report schema validation failed: %w", err)
	}
	return nil
}

func loadReportSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("report_schema.json", strings.NewReader(reportSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("report_schema.json")
	})
	return compiledSchema, schemaErr
}
