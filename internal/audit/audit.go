// Package audit runs structural validation and template-matched math
// verification over the union of all bank files, producing a
// categorized issue report for the repairer and for operators.
package audit

import (
	"fmt"

	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/template"
	"github.com/liyuwen/bankctl/internal/verify"
)

// Run audits the records and returns a report. The input is never
// mutated and the output is deterministic for the same input: there is
// no randomness in matching or verification, and records are scanned in
// order with a fresh ID registry.
func Run(records []bank.Question) Report {
	rep := Report{
		Total:  len(records),
		ByKind: make(map[Kind]int),
	}
	reg := bank.NewRegistry()

	for idx, q := range records {
		issues := structuralIssues(q, idx, reg)

		// Math verification needs a trustworthy options[answer]. A
		// duplicate ID is an identity defect, not an answer defect, so
		// it does not suppress the check.
		if !blocksMath(issues) {
			if is, found := mathIssue(q, idx); found {
				issues = append(issues, is)
			}
		}

		warnings := qualityWarnings(q, idx)

		if len(issues) == 0 {
			rep.Passed++
		}
		rep.Issues = append(rep.Issues, issues...)
		rep.Warnings = append(rep.Warnings, warnings...)
		for _, is := range issues {
			rep.ByKind[is.Kind]++
		}
		for _, w := range warnings {
			rep.ByKind[w.Kind]++
		}
	}
	return rep
}

// blocksMath reports whether any finding invalidates options[answer]
// as the stored answer value.
func blocksMath(issues []Issue) bool {
	for _, is := range issues {
		if is.Kind != KindDuplicateID {
			return true
		}
	}
	return false
}

// mathIssue matches the content against the archetype library and
// verifies the stored answer. Unmatched content, options without a
// numeric value, and degenerate parameters all pass silently.
func mathIssue(q bank.Question, idx int) (Issue, bool) {
	m, ok := template.Find(q.Content)
	if !ok {
		return Issue{}, false
	}
	got, ok := verify.AnswerValue(q.CorrectOption())
	if !ok {
		return Issue{}, false
	}
	res, ok := verify.Check(m, got)
	if !ok || res.OK {
		return Issue{}, false
	}
	return Issue{
		QuestionID: q.ID,
		Index:      idx,
		Kind:       KindMathMismatch,
		Detail:     fmt.Sprintf("%s: expected %.4g within ±%.2g, stored %.4g", m.Kind, res.Expected, res.Tolerance, got),
		Expected:   res.Expected,
		Got:        got,
		Template:   m.Kind,
	}, true
}
