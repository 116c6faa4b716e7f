package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"mkdoc/internal/generator"
	"mkdoc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapeHeader = `namespace geo {

/// A drawable shape.
class Shape {
public:
    /**
     * Computes the area.
     *
     * @return the area in square units
     */
    virtual double area() const = 0;
};

} // namespace geo
`

func TestFullGenerate_Run(t *testing.T) {
	env := newTestProject(t)
	env.write("include/geo/shape.hpp", shapeHeader)

	run := NewFullGenerate(env.dbPath)
	run.ConfigPath = env.configPath
	require.NoError(t, run.Run(context.Background(), true))

	t.Run("Header Written", func(t *testing.T) {
		content := env.read(env.headerPath)
		assert.Contains(t, content, "#define DOC(...)")
		assert.Contains(t, content, `static const char *__doc_geo_Shape = R"doc(A drawable shape.)doc";`)
		assert.Contains(t, content, "static const char *__doc_geo_Shape_area = R\"doc(Computes the area.\n\nReturns:\n    the area in square units)doc\";")
	})

	t.Run("Report Written", func(t *testing.T) {
		var report generator.Report
		require.NoError(t, json.Unmarshal([]byte(env.read(env.reportPath)), &report))
		assert.Equal(t, 1, report.Summary.HeadersScanned)
		assert.Equal(t, 2, report.Summary.SymbolsDocumented)
	})

	t.Run("Snapshot Saved", func(t *testing.T) {
		hashes, records := env.loadSnapshot(t)
		assert.Len(t, hashes, 1)
		assert.Contains(t, hashes, "include/geo/shape.hpp")
		require.Len(t, records, 2)
		assert.Equal(t, "__doc_geo_Shape", records[0].Symbol)
		assert.Equal(t, "\nA drawable shape.\n", records[0].Docstring)
	})
}

func TestFullGenerate_ScanOnlySkipsOutputs(t *testing.T) {
	env := newTestProject(t)
	env.write("include/geo/shape.hpp", shapeHeader)

	run := NewFullGenerate(env.dbPath)
	run.ConfigPath = env.configPath
	require.NoError(t, run.Run(context.Background(), false))

	_, err := os.Stat(env.headerPath)
	assert.True(t, os.IsNotExist(err))

	hashes, _ := env.loadSnapshot(t)
	assert.Len(t, hashes, 1)
}

func TestIncrementalUpdate_Run(t *testing.T) {
	env := newTestProject(t)
	env.write("include/geo/shape.hpp", shapeHeader)
	env.write("include/geo/point.hpp", "namespace geo {\n\n/// A 2D point.\nstruct Point {};\n\n}\n")
	env.write("include/geo/stable.hpp", "namespace geo {\n\n/// Numeric tolerance used by comparisons.\nconstexpr double kEpsilon = 1e-9;\n\n}\n")

	run := NewFullGenerate(env.dbPath)
	run.ConfigPath = env.configPath
	require.NoError(t, run.Run(context.Background(), true))

	// Edit one header, drop one, add one; stable.hpp is untouched.
	env.write("include/geo/shape.hpp", "namespace geo {\n\n/// A paintable shape.\nclass Shape {};\n\n}\n")
	require.NoError(t, os.Remove(filepath.Join(env.root, "include", "geo", "point.hpp")))
	env.write("include/geo/util.hpp", "namespace geo {\n\n/// Clamps a value to a closed interval.\ndouble clamp(double value, double lo, double hi);\n\n}\n")

	update := NewIncrementalUpdate(env.dbPath)
	update.ConfigPath = env.configPath
	require.NoError(t, update.Run(context.Background()))

	hashes, records := env.loadSnapshot(t)

	t.Run("Snapshot Mirrors Current Tree", func(t *testing.T) {
		assert.Len(t, hashes, 3)
		assert.NotContains(t, hashes, "include/geo/point.hpp")

		symbols := make([]string, 0, len(records))
		for _, r := range records {
			symbols = append(symbols, r.Symbol)
		}
		assert.ElementsMatch(t, []string{"__doc_geo_Shape", "__doc_geo_kEpsilon", "__doc_geo_clamp"}, symbols)
	})

	t.Run("Edited Docstring Rewritten", func(t *testing.T) {
		for _, r := range records {
			if r.Symbol == "__doc_geo_Shape" {
				assert.Equal(t, "\nA paintable shape.\n", r.Docstring)
			}
		}
	})

	t.Run("Unchanged Docstring Restored", func(t *testing.T) {
		var found bool
		for _, r := range records {
			if r.Symbol == "__doc_geo_kEpsilon" {
				found = true
				assert.Equal(t, "\nNumeric tolerance used by comparisons.\n", r.Docstring)
			}
		}
		assert.True(t, found)
	})

	t.Run("Outputs Re-Emitted", func(t *testing.T) {
		content := env.read(env.headerPath)
		assert.Contains(t, content, "__doc_geo_clamp")
		assert.NotContains(t, content, "__doc_geo_Point")
	})
}

func TestIncrementalUpdate_FreshDatabaseRunsFullScan(t *testing.T) {
	env := newTestProject(t)
	env.write("include/geo/shape.hpp", shapeHeader)

	update := NewIncrementalUpdate(env.dbPath)
	update.ConfigPath = env.configPath
	require.NoError(t, update.Run(context.Background()))

	content := env.read(env.headerPath)
	assert.Contains(t, content, "__doc_geo_Shape")

	hashes, _ := env.loadSnapshot(t)
	assert.Len(t, hashes, 1)
}

type testProject struct {
	t          *testing.T
	root       string
	dbPath     string
	configPath string
	headerPath string
	reportPath string
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()
	base := t.TempDir()

	env := &testProject{
		t:          t,
		root:       filepath.Join(base, "project"),
		dbPath:     filepath.Join(base, "mkdoc.db"),
		configPath: filepath.Join(base, "config.yaml"),
		headerPath: filepath.Join(base, "out", "mkdoc.h"),
		reportPath: filepath.Join(base, "out", "mkdoc_report.json"),
	}

	cfg := fmt.Sprintf("project:\n  root: %s\noutput:\n  header: %s\n  report: %s\n",
		env.root, env.headerPath, env.reportPath)
	require.NoError(t, os.MkdirAll(env.root, 0o755))
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))

	return env
}

func (e *testProject) write(rel, content string) {
	e.t.Helper()
	path := filepath.Join(e.root, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
}

func (e *testProject) read(path string) string {
	e.t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(e.t, err)
	return string(data)
}

func (e *testProject) loadSnapshot(t *testing.T) (map[string]string, []storage.DocstringRecord) {
	t.Helper()
	store, err := storage.NewSQLiteStore(e.dbPath)
	require.NoError(t, err)
	defer store.Close()

	hashes, err := store.LoadHeaders(context.Background())
	require.NoError(t, err)
	records, err := store.LoadDocstrings(context.Background())
	require.NoError(t, err)
	return hashes, records
}
