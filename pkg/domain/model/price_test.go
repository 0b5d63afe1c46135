package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/domain/model"
)

func TestSanitizePrice(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *float64
	}{
		{name: "float passes through", input: 12.99, want: ptr(12.99)},
		{name: "int converts", input: 42, want: ptr(42.0)},
		{name: "plain string", input: "3.25", want: ptr(3.25)},
		{name: "currency string", input: "$1,234.56", want: ptr(1234.56)},
		{name: "dollar only", input: "$5", want: ptr(5.0)},
		{name: "zero stays zero", input: 0.0, want: ptr(0.0)},
		{name: "TBD becomes nil", input: "TBD", want: nil},
		{name: "empty string becomes nil", input: "", want: nil},
		{name: "whitespace becomes nil", input: "   ", want: nil},
		{name: "nil stays nil", input: nil, want: nil},
		{name: "bool becomes nil", input: true, want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := model.SanitizePrice(tc.input)
			if tc.want == nil {
				gt.Value(t, got).Nil()
				return
			}
			gt.Value(t, got).NotNil()
			gt.Value(t, *got).Equal(*tc.want)
		})
	}
}

func ptr(v float64) *float64 {
	return &v
}
