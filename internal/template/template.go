// Package template recognizes word-problem archetypes in question
// content and extracts their numeric parameters. The template set is
// closed: every archetype here has a matching formula verifier.
package template

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies a word-problem archetype.
type Kind string

const (
	FractionSequentialSale Kind = "fraction-sequential-sale"
	FractionSingleSale     Kind = "fraction-single-sale"
	WorkTogether           Kind = "work-together"
	Concentration          Kind = "concentration"
	SameDirectionChase     Kind = "same-direction-chase"
	OppositeDirectionMeet  Kind = "opposite-direction-meet"
	RectangleArea          Kind = "rectangle-area"
	RectanglePerimeter     Kind = "rectangle-perimeter"
	TriangleArea           Kind = "triangle-area"
	CircleArea             Kind = "circle-area"
	CircleCircumference    Kind = "circle-circumference"
	PercentageOf           Kind = "percentage-of"
	RatioSimple            Kind = "ratio-simple"
	SimpleMultiply         Kind = "simple-multiply"
	Average                Kind = "average"
)

// Match is a recognized archetype with its extracted parameters.
// Parameter order is fixed per kind; see the verify package formulas.
type Match struct {
	Kind   Kind
	Params []float64
}

// Template pairs a content pattern with a parameter extractor.
type Template struct {
	Kind Kind

	re *regexp.Regexp

	// require/exclude are plain substring guards applied before the
	// regexp, for markers the pattern itself cannot carry cleanly.
	require []string
	exclude []string

	// arity is the minimum parameter count; fewer usable captures means
	// the template does not match (fail open).
	arity int

	// extract overrides the default extractor (non-empty captures in
	// order) for templates with alternation quirks.
	extract func(groups []string) ([]float64, bool)
}

// Find returns the first matching template in priority order. Returns
// false when no template matches or a capture is malformed; a content
// string matches at most one archetype.
func Find(content string) (Match, bool) {
	for _, t := range templates {
		m, ok := t.match(content)
		if ok {
			return m, true
		}
	}
	return Match{}, false
}

// Kinds returns the archetype priority order.
func Kinds() []Kind {
	out := make([]Kind, len(templates))
	for i, t := range templates {
		out[i] = t.Kind
	}
	return out
}

func (t *Template) match(content string) (Match, bool) {
	for _, s := range t.require {
		if !strings.Contains(content, s) {
			return Match{}, false
		}
	}
	for _, s := range t.exclude {
		if strings.Contains(content, s) {
			return Match{}, false
		}
	}
	groups := t.re.FindStringSubmatch(content)
	if groups == nil {
		return Match{}, false
	}

	var params []float64
	var ok bool
	if t.extract != nil {
		params, ok = t.extract(groups)
	} else {
		params, ok = nonEmptyNumbers(groups[1:])
	}
	if !ok || len(params) < t.arity {
		return Match{}, false
	}
	return Match{Kind: t.Kind, Params: params}, true
}

// nonEmptyNumbers parses the non-empty captures in order. A malformed
// capture fails the whole extraction.
func nonEmptyNumbers(groups []string) ([]float64, bool) {
	var out []float64
	for _, g := range groups {
		if g == "" {
			continue
		}
		v, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}
