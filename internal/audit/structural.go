package audit

import (
	"fmt"
	"strings"

	"github.com/liyuwen/bankctl/internal/bank"
)

// structuralIssues checks the record-shape invariants: identity, option
// count and content, answer index. Content semantics are left to the
// math check. The registry threads duplicate-ID state through the scan.
func structuralIssues(q bank.Question, idx int, reg *bank.Registry) []Issue {
	var out []Issue
	add := func(kind Kind, detail string) {
		out = append(out, Issue{QuestionID: q.ID, Index: idx, Kind: kind, Detail: detail})
	}

	if strings.TrimSpace(q.ID) == "" {
		add(KindMissingField, "id")
	} else if !reg.Add(q.ID) {
		add(KindDuplicateID, fmt.Sprintf("id %q already used", q.ID))
	}

	if strings.TrimSpace(q.Content) == "" {
		add(KindMissingField, "content")
	} else {
		for _, artifact := range []string{"undefined", "NaN"} {
			if strings.Contains(q.Content, artifact) {
				add(KindFormatArtifact, fmt.Sprintf("content contains %q", artifact))
			}
		}
	}

	switch {
	case len(q.Options) == 0:
		add(KindMissingField, "options")
	case len(q.Options) != bank.OptionCount:
		add(KindOptionCount, fmt.Sprintf("have %d options, want %d", len(q.Options), bank.OptionCount))
	}

	if len(q.Options) > 0 {
		seen := make(map[string]bool, len(q.Options))
		for i, opt := range q.Options {
			trimmed := strings.TrimSpace(opt)
			if trimmed == "" {
				add(KindEmptyOption, fmt.Sprintf("option %d is blank", i))
				continue
			}
			if seen[trimmed] {
				add(KindDuplicateOptions, fmt.Sprintf("option %q repeats", trimmed))
			}
			seen[trimmed] = true
		}
	}

	switch {
	case q.Answer < 0:
		add(KindMissingField, "answer")
	case q.Answer >= len(q.Options):
		add(KindAnswerIndexOutOfRange, fmt.Sprintf("answer=%d, options=%d", q.Answer, len(q.Options)))
	}

	return out
}

// qualityWarnings collects the soft signals that never block repair.
func qualityWarnings(q bank.Question, idx int) []Issue {
	var out []Issue
	add := func(kind Kind, detail string) {
		out = append(out, Issue{QuestionID: q.ID, Index: idx, Kind: kind, Detail: detail})
	}

	switch expl := strings.TrimSpace(q.Explanation); {
	case expl == "":
		add(KindMissingExplanation, "")
	case len([]rune(expl)) < 15:
		add(KindShortExplanation, fmt.Sprintf("only %d characters", len([]rune(expl))))
	}

	if q.Grade == 0 {
		add(KindMissingGrade, "")
	}
	if strings.TrimSpace(q.Difficulty) == "" {
		add(KindMissingDifficulty, "")
	}
	if strings.TrimSpace(q.Category) == "" {
		add(KindMissingCategory, "")
	}
	return out
}
