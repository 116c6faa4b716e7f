package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDocComment(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"/** Javadoc block. */", true},
		{"/*! Qt block. */", true},
		{"/// Line form.", true},
		{"//! Bang line form.", true},
		{"///< Trailing member form.", true},
		{"//!< Trailing bang form.", true},
		{"// plain comment", false},
		{"/* plain block */", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, isDocComment(tc.raw), "raw: %s", tc.raw)
	}
}

func TestCleanDocComment(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"Line", "/// One line.", "One line."},
		{"Bang Line", "//! Bang form.", "Bang form."},
		{"Trailing Member", "///< Weight in kilograms.", "Weight in kilograms."},
		{"Trailing Bang Member", "//!< Height in meters.", "Height in meters."},
		{"Inline Block", "/** Inline. */", "Inline."},
		{"Qt Block", "/*! Qt style. */", "Qt style."},
		{"Trailing Block Member", "/**< Count of items. */", "Count of items."},
		{
			"Starred Block",
			"/**\n * Summary.\n *\n * @param x input\n */",
			"Summary.\n\n@param x input",
		},
		{
			"Bare Block",
			"/**\n   Indented text.\n   More text.\n*/",
			"Indented text.\nMore text.",
		},
		{
			"Star Emphasis Survives",
			"/**\n * *emphasis* stays\n */",
			"*emphasis* stays",
		},
		{"Slash Banner", "////////", ""},
		{"Path In Text", "/// see /usr/bin", "see /usr/bin"},
		{"Empty Input", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanDocComment(tc.raw))
		})
	}
}
