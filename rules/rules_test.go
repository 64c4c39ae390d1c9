package rules_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/reoring/regcheck/rules"
)

type box struct {
	Width  int
	Label  string
	Inner  inner
	Locked bool
}

type inner struct {
	Depth int
}

var v = validator.New()

func positive(n int) bool { return n > 0 }

func pathsOf(vs []rules.Violation) []string {
	out := make([]string, 0, len(vs))
	for _, x := range vs {
		out = append(out, x.Path)
	}
	return out
}

func TestField_ReportsEveryFailingCheck(t *testing.T) {
	r := rules.Field("label", func(b box) string { return b.Label },
		rules.Check[string]{Rule: "label.alpha", Code: "pattern", OK: rules.Tag[string](v, "alpha")},
		rules.Check[string]{Rule: "label.min", Code: "too_short", Params: map[string]any{"min": 3}, OK: rules.Tag[string](v, "min=3")},
		rules.Check[string]{Rule: "label.unchecked", Code: "noop"},
	)
	vs := r(box{Label: "1"})
	assert.Len(t, vs, 2)
	assert.Equal(t, "label.alpha", vs[0].Rule)
	assert.Equal(t, "label.min", vs[1].Rule)
	assert.Equal(t, 3, vs[1].Params["min"])
	assert.Empty(t, r(box{Label: "abc"}))
}

func TestNested_PrefixesPaths(t *testing.T) {
	depth := rules.Field("depth", func(i inner) int { return i.Depth }, rules.Check[int]{Code: "too_small", OK: positive})
	r := rules.Nested("inner", func(b box) inner { return b.Inner }, depth)
	assert.Equal(t, []string{"inner.depth"}, pathsOf(r(box{})))

	whole := rules.Nested("inner", func(b box) inner { return b.Inner }, func(i inner) []rules.Violation {
		return []rules.Violation{{Code: "custom"}}
	})
	assert.Equal(t, []string{"inner"}, pathsOf(whole(box{})))
}

func TestAll_KeepsDeclarationOrder(t *testing.T) {
	r := rules.All(
		rules.Field("width", func(b box) int { return b.Width }, rules.Check[int]{Code: "too_small", OK: positive}),
		nil,
		rules.Field("label", func(b box) string { return b.Label }, rules.Check[string]{Code: "required", OK: rules.Tag[string](v, "required")}),
		rules.Nested("inner", func(b box) inner { return b.Inner },
			rules.Field("depth", func(i inner) int { return i.Depth }, rules.Check[int]{Code: "too_small", OK: positive})),
	)
	assert.Equal(t, []string{"width", "label", "inner.depth"}, pathsOf(r(box{})))
	assert.Empty(t, r(box{Width: 1, Label: "x", Inner: inner{Depth: 1}}))
}

func TestIfThen_ReadsSiblingFields(t *testing.T) {
	r := rules.If(func(b box) bool { return b.Width < 10 }).Then(
		rules.Field("locked", func(b box) bool { return b.Locked }, rules.Check[bool]{
			Code: "business_rule", OK: func(locked bool) bool { return !locked },
		}),
	)
	assert.Len(t, r(box{Width: 5, Locked: true}), 1)
	assert.Empty(t, r(box{Width: 5}))
	assert.Empty(t, r(box{Width: 10, Locked: true}))

	var zero rules.Conditional[box]
	assert.Empty(t, zero.Then(func(box) []rules.Violation { return []rules.Violation{{}} })(box{}))
}

func TestBoth(t *testing.T) {
	p := rules.Both(rules.Tag[string](v, "email"), func(s string) bool { return len(s) < 20 })
	assert.True(t, p("a@example.com"))
	assert.False(t, p("not-an-email"))
	assert.False(t, p("someone.long@example.com"))
	assert.True(t, rules.Both[int]()(0))
}
