package analysis

import (
	"mkdoc/internal/storage"
)

// ChangeReport summarizes how the docstring set moved between two runs.
type ChangeReport struct {
	Added   []storage.DocstringRecord
	Removed []storage.DocstringRecord
	Changed []storage.DocstringRecord
}

// Empty reports whether the two runs produced identical documentation.
func (r *ChangeReport) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Analyzer diffs a stored snapshot against a fresh scan.
type Analyzer struct {
	previous []storage.DocstringRecord
	old      map[string]storage.DocstringRecord
}

// NewAnalyzer creates an analyzer over the previous run's docstrings.
func NewAnalyzer(previous []storage.DocstringRecord) *Analyzer {
	old := make(map[string]storage.DocstringRecord, len(previous))
	for _, d := range previous {
		old[d.Symbol] = d
	}
	return &Analyzer{previous: previous, old: old}
}

// AnalyzeChanges classifies the current docstrings against the previous run.
// Added and Changed keep the current scan order; Removed keeps the stored
// order. Changed carries the new version of each rewritten docstring.
func (a *Analyzer) AnalyzeChanges(current []storage.DocstringRecord) *ChangeReport {
	report := &ChangeReport{}

	seen := make(map[string]bool, len(current))
	for _, d := range current {
		seen[d.Symbol] = true
		prev, ok := a.old[d.Symbol]
		if !ok {
			report.Added = append(report.Added, d)
			continue
		}
		if prev.Docstring != d.Docstring {
			report.Changed = append(report.Changed, d)
		}
	}

	for _, d := range a.previous {
		if !seen[d.Symbol] {
			report.Removed = append(report.Removed, d)
		}
	}

	return report
}
