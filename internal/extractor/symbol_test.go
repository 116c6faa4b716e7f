package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolName(t *testing.T) {
	cases := []struct {
		name string
		decl Declaration
		want string
	}{
		{"Global", Declaration{Name: "main"}, "__doc_main"},
		{"Namespaced", Declaration{Name: "distance", Scope: []string{"geo"}}, "__doc_geo_distance"},
		{"Nested Scope", Declaration{Name: "area", Scope: []string{"geo", "Shape"}}, "__doc_geo_Shape_area"},
		{"Equality Operator", Declaration{Name: "operator==", Scope: []string{"geo", "Point"}}, "__doc_geo_Point_operator_eq"},
		{"Compound Assignment Operator", Declaration{Name: "operator<<="}, "__doc_operator_ilshift"},
		{"Call Operator", Declaration{Name: "operator()"}, "__doc_operator_call"},
		{"Less Than Operator", Declaration{Name: "operator<", Scope: []string{"Foo"}}, "__doc_Foo_operator_lt"},
		{"Template Arguments Dropped", Declaration{Name: "Matrix<float>", Scope: []string{"math"}}, "__doc_math_Matrix"},
		{"Destructor Collapses", Declaration{Name: "~Shape", Scope: []string{"geo", "Shape"}}, "__doc_geo_Shape_Shape"},
		{"Trailing Underscore Trimmed", Declaration{Name: "name_"}, "__doc_name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SymbolName(&tc.decl))
		})
	}
}
