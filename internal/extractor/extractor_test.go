package extractor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractFromFile(t *testing.T) {
	testFile := filepath.Join("testdata", "sample.hpp")

	ext, err := NewExtractor("cpp")
	require.NoError(t, err)

	decls, err := ext.ExtractFromFile(testFile)
	require.NoError(t, err)

	// Group declarations by name for easier lookup
	declsByName := make(map[string]*Declaration)
	for _, decl := range decls {
		declsByName[decl.Name] = decl
	}

	t.Run("Overall Count", func(t *testing.T) {
		assert.Equal(t, 11, len(decls), "Should extract exactly 11 documented declarations (Point, x, y, Shape, area, name, Mode, Outline, distance, PointList, ShapeHandle)")
	})

	t.Run("Source Order", func(t *testing.T) {
		for i := 1; i < len(decls); i++ {
			assert.LessOrEqual(t, decls[i-1].StartLine, decls[i].StartLine)
		}
	})

	t.Run("Undocumented Declarations Are Skipped", func(t *testing.T) {
		assert.NotContains(t, declsByName, "~Shape", "destructor carries no doc comment")
		assert.NotContains(t, declsByName, "name_", "plain // comments are not documentation")
		assert.NotContains(t, declsByName, "Filled", "undocumented enumerator")
	})

	t.Run("Struct", func(t *testing.T) {
		decl, ok := declsByName["Point"]
		require.True(t, ok, "Point struct should be found")
		assert.Equal(t, "struct", decl.Kind)
		assert.Equal(t, []string{"geo"}, decl.Scope)
		assert.Equal(t, "A point in the plane.", decl.Comment)
		assert.Equal(t, testFile, decl.Filepath)
		assert.Greater(t, decl.StartLine, 0)
		assert.GreaterOrEqual(t, decl.EndLine, decl.StartLine)
	})

	t.Run("Trailing Member Comments", func(t *testing.T) {
		x, ok := declsByName["x"]
		require.True(t, ok, "x field should be found")
		assert.Equal(t, "field", x.Kind)
		assert.Equal(t, []string{"geo", "Point"}, x.Scope)
		assert.Equal(t, "Horizontal coordinate.", x.Comment)

		y, ok := declsByName["y"]
		require.True(t, ok, "y field should be found")
		assert.Equal(t, "Vertical coordinate.", y.Comment, "y must not inherit the comment trailing x")
	})

	t.Run("Class", func(t *testing.T) {
		decl, ok := declsByName["Shape"]
		require.True(t, ok, "Shape class should be found")
		assert.Equal(t, "class", decl.Kind)
		assert.Equal(t, "A drawable shape.\n\n@see Point", decl.Comment, "block markers stripped, Doxygen commands kept")
	})

	t.Run("Methods", func(t *testing.T) {
		decl, ok := declsByName["area"]
		require.True(t, ok, "area method should be found")
		assert.Equal(t, "method", decl.Kind)
		assert.Equal(t, []string{"geo", "Shape"}, decl.Scope)
		assert.Equal(t, "Computes the area.\n\n@return the area in square units", decl.Comment)
		assert.Equal(t, "geo::Shape::area", decl.QualifiedName())

		decl, ok = declsByName["name"]
		require.True(t, ok, "name method should be found")
		assert.Equal(t, "method", decl.Kind)
		assert.Equal(t, "Human readable name.", decl.Comment)
	})

	t.Run("Enum", func(t *testing.T) {
		decl, ok := declsByName["Mode"]
		require.True(t, ok, "Mode enum should be found")
		assert.Equal(t, "enum", decl.Kind)

		decl, ok = declsByName["Outline"]
		require.True(t, ok, "Outline enumerator should be found")
		assert.Equal(t, "enumerator", decl.Kind)
		assert.Equal(t, []string{"geo", "Mode"}, decl.Scope)
		assert.Equal(t, "Draw only outlines.", decl.Comment)
	})

	t.Run("Free Function", func(t *testing.T) {
		decl, ok := declsByName["distance"]
		require.True(t, ok, "distance function should be found")
		assert.Equal(t, "function", decl.Kind)
		assert.Equal(t, []string{"geo"}, decl.Scope)
		assert.Equal(t, "Euclidean distance between two points.\n@param a first point\n@param b second point\n@return the distance", decl.Comment)
	})

	t.Run("Aliases", func(t *testing.T) {
		decl, ok := declsByName["PointList"]
		require.True(t, ok, "PointList alias should be found")
		assert.Equal(t, "alias", decl.Kind)

		decl, ok = declsByName["ShapeHandle"]
		require.True(t, ok, "ShapeHandle typedef should be found")
		assert.Equal(t, "typedef", decl.Kind)
		assert.Equal(t, "Shorthand for an owning shape pointer.", decl.Comment)
	})
}

func TestNewExtractor_UnsupportedLanguage(t *testing.T) {
	_, err := NewExtractor("cobol")
	assert.Error(t, err)
}

func TestExtract_InMemorySource(t *testing.T) {
	source := []byte(`
/// Maximum retry count.
const int kRetries = 3;
`)

	ext, err := NewExtractor("cpp")
	require.NoError(t, err)

	decls, err := ext.Extract(source, "virtual.hpp")
	require.NoError(t, err)
	require.Len(t, decls, 1)

	assert.Equal(t, "kRetries", decls[0].Name)
	assert.Equal(t, "variable", decls[0].Kind)
	assert.Equal(t, "virtual.hpp", decls[0].Filepath)
	assert.Empty(t, decls[0].Scope)
	assert.Equal(t, "Maximum retry count.", decls[0].Comment)
}
