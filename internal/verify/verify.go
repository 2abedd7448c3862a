// Package verify recomputes the expected answer for each recognized
// word-problem archetype and compares it to the stored one. Mismatches
// are data, not errors: a verifier never fails, it reports.
package verify

import (
	"math"
	"regexp"
	"strconv"

	"github.com/liyuwen/bankctl/internal/template"
)

// Pi follows the grade-school convention the answer keys were authored
// with. Not math.Pi on purpose.
const Pi = 3.14

// Result is the outcome of one verification.
type Result struct {
	// OK reports whether the stored answer is within tolerance.
	OK bool
	// Expected is the recomputed value.
	Expected float64
	// Tolerance is the absolute tolerance that was applied.
	Tolerance float64
}

// Tolerance classes. Exact-rational results get a tight bound; results
// that answer keys conventionally round get a loose one.
const (
	tolExact   = 0.01 // products, percentages, proportions
	tolRounded = 0.1  // averages, work days, concentration percentages
	tolSpeed   = 0.5  // chase / meet distances
	tolLoose   = 1.0  // reconstructed originals, circle results (π=3.14, keys rounded)
)

// Tolerance returns the absolute tolerance for an archetype.
func Tolerance(kind template.Kind) float64 {
	switch kind {
	case template.PercentageOf, template.RatioSimple, template.SimpleMultiply,
		template.RectangleArea, template.RectanglePerimeter, template.TriangleArea:
		return tolExact
	case template.Average, template.WorkTogether, template.Concentration:
		return tolRounded
	case template.SameDirectionChase, template.OppositeDirectionMeet:
		return tolSpeed
	default:
		return tolLoose
	}
}

// Expected computes the archetype's closed-form value from the match
// parameters. The bool is false when the parameters are degenerate
// (zero denominator, empty list) and no value can be computed.
func Expected(m template.Match) (float64, bool) {
	p := m.Params
	switch m.Kind {
	case template.FractionSequentialSale:
		// remaining fraction = (1 - a1/b1) × (1 - a2/b2)
		if p[1] == 0 || p[3] == 0 {
			return 0, false
		}
		ratio := (1 - p[0]/p[1]) * (1 - p[2]/p[3])
		if ratio <= 0 {
			return 0, false
		}
		return p[4] / ratio, true

	case template.FractionSingleSale:
		if p[1] == 0 {
			return 0, false
		}
		ratio := 1 - p[0]/p[1]
		if ratio <= 0 {
			return 0, false
		}
		return p[2] / ratio, true

	case template.WorkTogether:
		if p[0]+p[1] == 0 {
			return 0, false
		}
		return p[0] * p[1] / (p[0] + p[1]), true

	case template.Concentration:
		if p[0]+p[1] == 0 {
			return 0, false
		}
		return p[0] / (p[0] + p[1]) * 100, true

	case template.SameDirectionChase:
		return math.Abs(p[0]-p[1]) * p[2], true

	case template.OppositeDirectionMeet:
		return (p[0] + p[1]) * p[2], true

	case template.RectangleArea:
		return p[0] * p[1], true

	case template.RectanglePerimeter:
		return (p[0] + p[1]) * 2, true

	case template.TriangleArea:
		return p[0] * p[1] / 2, true

	case template.CircleArea:
		return Pi * p[0] * p[0], true

	case template.CircleCircumference:
		return Pi * p[0] * 2, true

	case template.PercentageOf:
		return p[0] * p[1] / 100, true

	case template.RatioSimple:
		// a:b = c:x  =>  x = c × b / a
		if p[0] == 0 {
			return 0, false
		}
		return p[2] * p[1] / p[0], true

	case template.SimpleMultiply:
		return p[0] * p[1], true

	case template.Average:
		if len(p) == 0 {
			return 0, false
		}
		sum := 0.0
		for _, v := range p {
			sum += v
		}
		return sum / float64(len(p)), true
	}
	return 0, false
}

// Check compares the stored answer value against the recomputed one.
// The second return is false when no value could be computed, in which
// case the record is left alone (fail open).
func Check(m template.Match, got float64) (Result, bool) {
	expected, ok := Expected(m)
	if !ok {
		return Result{}, false
	}
	tol := Tolerance(m.Kind)
	return Result{
		OK:        math.Abs(expected-got) <= tol,
		Expected:  expected,
		Tolerance: tol,
	}, true
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// AnswerValue extracts the numeric value encoded by an option string,
// e.g. "12.5 元" -> 12.5, "30%" -> 30. False when the option carries no
// number.
func AnswerValue(option string) (float64, bool) {
	s := numberRe.FindString(option)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
