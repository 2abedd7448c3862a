package audit

import "github.com/liyuwen/bankctl/internal/template"

// Kind classifies an audit finding.
type Kind string

// Hard defects. The repairer either fixes these deterministically or
// removes the record.
const (
	KindMissingField          Kind = "MISSING_FIELD"
	KindOptionCount           Kind = "OPTION_COUNT"
	KindEmptyOption           Kind = "EMPTY_OPTION"
	KindAnswerIndexOutOfRange Kind = "ANSWER_INDEX_OUT_OF_RANGE"
	KindDuplicateID           Kind = "DUPLICATE_ID"
	KindDuplicateOptions      Kind = "DUPLICATE_OPTIONS"
	KindMathMismatch          Kind = "MATH_MISMATCH"
	KindFormatArtifact        Kind = "FORMAT_ARTIFACT"
)

// Soft quality signals. Never block repair, never cause removal.
const (
	KindMissingExplanation Kind = "MISSING_EXPLANATION"
	KindShortExplanation   Kind = "SHORT_EXPLANATION"
	KindMissingGrade       Kind = "MISSING_GRADE"
	KindMissingDifficulty  Kind = "MISSING_DIFFICULTY"
	KindMissingCategory    Kind = "MISSING_CATEGORY"
)

// Issue is one audit finding on one record.
type Issue struct {
	QuestionID string `json:"questionId"`

	// Index is the record's position in the audited union. It stays
	// unambiguous even when IDs collide.
	Index int `json:"index"`

	Kind   Kind   `json:"kind"`
	Detail string `json:"detail,omitempty"`

	// Expected and Got carry the recomputed and stored values for
	// MATH_MISMATCH findings.
	Expected float64 `json:"expected,omitempty"`
	Got      float64 `json:"got,omitempty"`

	// Template names the matched archetype for MATH_MISMATCH findings.
	Template template.Kind `json:"template,omitempty"`
}

// Report aggregates the findings over one audited union.
type Report struct {
	Total    int          `json:"total"`
	Passed   int          `json:"passed"`
	Issues   []Issue      `json:"issues"`
	Warnings []Issue      `json:"warnings"`
	ByKind   map[Kind]int `json:"issueTypes"`
}

// IssuesAt returns the hard issues recorded for a union index.
func (r Report) IssuesAt(idx int) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.Index == idx {
			out = append(out, is)
		}
	}
	return out
}

// WarningsAt returns the warnings recorded for a union index.
func (r Report) WarningsAt(idx int) []Issue {
	var out []Issue
	for _, is := range r.Warnings {
		if is.Index == idx {
			out = append(out, is)
		}
	}
	return out
}
