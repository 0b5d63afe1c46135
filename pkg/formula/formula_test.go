package formula_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/formula"
)

func TestEvaluate(t *testing.T) {
	t.Run("arithmetic with variables", func(t *testing.T) {
		res := formula.Evaluate("{a}+{b}*2", map[string]float64{"a": 3, "b": 4})
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(11)
		gt.Array(t, res.MissingVars).Length(0)
	})

	t.Run("missing variable skips evaluation entirely", func(t *testing.T) {
		res := formula.Evaluate("{x}*2", map[string]float64{})
		gt.Value(t, res.Value).Nil()
		gt.Array(t, res.MissingVars).Equal([]string{"x"})
	})

	t.Run("missing variables deduplicated in order", func(t *testing.T) {
		res := formula.Evaluate("{x}+{y}+{x}", map[string]float64{})
		gt.Value(t, res.Value).Nil()
		gt.Array(t, res.MissingVars).Equal([]string{"x", "y"})
	})

	t.Run("rounds up to nearest hundredth", func(t *testing.T) {
		res := formula.Evaluate("10/3", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(3.34)
	})

	t.Run("division by zero yields zero", func(t *testing.T) {
		res := formula.Evaluate("5/0", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(0)
	})

	t.Run("parentheses and precedence", func(t *testing.T) {
		res := formula.Evaluate("(2+3)*4", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(20)

		res = formula.Evaluate("2+3*4", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(14)
	})

	t.Run("left associativity", func(t *testing.T) {
		res := formula.Evaluate("10-4-3", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(3)

		res = formula.Evaluate("100/10/2", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(5)
	})

	t.Run("unary minus", func(t *testing.T) {
		res := formula.Evaluate("-{a}+10", map[string]float64{"a": 4})
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(6)
	})

	t.Run("bare identifiers without braces", func(t *testing.T) {
		res := formula.Evaluate("wall_lf * 2", map[string]float64{"wall_lf": 12.5})
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(25)
	})

	t.Run("unrecognized characters are skipped", func(t *testing.T) {
		res := formula.Evaluate("2 # + @ 3", nil)
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(5)
	})

	t.Run("empty formula", func(t *testing.T) {
		res := formula.Evaluate("", nil)
		gt.Value(t, res.Value).Nil()
		gt.Array(t, res.MissingVars).Length(0)
	})

	t.Run("malformed formula returns nil without panic", func(t *testing.T) {
		res := formula.Evaluate("2+*3", nil)
		gt.Value(t, res.Value).Nil()
		gt.Array(t, res.MissingVars).Length(0)

		res = formula.Evaluate("(2+3", nil)
		gt.Value(t, res.Value).Nil()
	})

	t.Run("conservative rounding on real quantity", func(t *testing.T) {
		// 150 lf of wall at 16" stud spacing, plus end stud
		res := formula.Evaluate("{wall_lf} * 12 / 16 + 1", map[string]float64{"wall_lf": 150})
		gt.Value(t, res.Value).NotNil()
		gt.Number(t, *res.Value).Equal(113.5)
	})
}

func TestExtractVariables(t *testing.T) {
	t.Run("deduplicated in order of first appearance", func(t *testing.T) {
		vars := formula.ExtractVariables("{wall_lf} * {ceiling_height_ft} + {wall_lf}")
		gt.Array(t, vars).Equal([]string{"wall_lf", "ceiling_height_ft"})
	})

	t.Run("no variables", func(t *testing.T) {
		gt.Array(t, formula.ExtractVariables("2*3+1")).Length(0)
	})

	t.Run("mixed braced and bare", func(t *testing.T) {
		vars := formula.ExtractVariables("{floor_sf} / tile_sf")
		gt.Array(t, vars).Equal([]string{"floor_sf", "tile_sf"})
	})
}
