// Package repair consumes an audit report and applies deterministic,
// idempotent corrections to the bank: duplicate-ID reassignment, answer
// and option regeneration for verified math mismatches, explanation
// synthesis, grade inference, and removal of records that cannot be
// fixed with confidence. A record the repairer cannot correct is
// removed rather than left silently wrong.
package repair

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/liyuwen/bankctl/internal/audit"
	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/explain"
	"github.com/liyuwen/bankctl/internal/template"
	"github.com/liyuwen/bankctl/internal/verify"
)

// Change actions recorded in the change log.
const (
	ActionReassignID     = "reassign-id"
	ActionFixMath        = "fix-math"
	ActionRegenOptions   = "regenerate-options"
	ActionAddExplanation = "add-explanation"
	ActionInferGrade     = "infer-grade"
	ActionRemove         = "remove"
)

// Change is one applied correction.
type Change struct {
	QuestionID string `json:"questionId"`
	Action     string `json:"action"`
	Detail     string `json:"detail,omitempty"`
}

// Repairer applies corrections. The random source only feeds distractor
// perturbation; inject a fixed seed for reproducible runs.
type Repairer struct {
	rng *rand.Rand
}

// New creates a Repairer seeded for reproducible distractor generation.
func New(seed int64) *Repairer {
	return &Repairer{rng: rand.New(rand.NewSource(seed))}
}

// Run applies the report's findings to the bank in place and returns
// the change log. A second run over the repaired bank yields an empty
// log: every action either converges (IDs become unique, answers become
// verified, explanations become non-empty) or removes the record.
func (r *Repairer) Run(b *bank.Bank, rep audit.Report) []Change {
	var changes []Change

	// Every ID in the bank, so reassignments cannot collide with records
	// that come later in the scan.
	reg := bank.NewRegistry()
	for _, q := range b.Records() {
		reg.Add(q.ID)
	}

	idx := 0
	for _, src := range b.Sources {
		remove := make(map[int]bool)
		for pos, q := range src.Records() {
			changes = append(changes, r.repairRecord(q, idx, pos, src.Prefix, rep, reg, remove)...)
			idx++
		}
		if len(remove) > 0 {
			src.RemoveAt(remove)
		}
	}
	return changes
}

// repairRecord applies the findings for one record. Removals go into
// the per-source remove set by position, never by ID, so a doomed
// record can never drag down a valid twin that shares its ID.
func (r *Repairer) repairRecord(q *bank.Question, idx, pos int, prefix string, rep audit.Report, reg *bank.Registry, remove map[int]bool) []Change {
	var changes []Change
	issues := rep.IssuesAt(idx)

	// Structural defects have no safe synthesized fix.
	if is, ok := fatalIssue(issues); ok {
		remove[pos] = true
		return []Change{{
			QuestionID: q.ID,
			Action:     ActionRemove,
			Detail:     fmt.Sprintf("%s: %s", is.Kind, is.Detail),
		}}
	}

	if is, ok := issueOfKind(issues, audit.KindDuplicateID); ok {
		newID := freshID(reg, prefix, pos)
		changes = append(changes, Change{
			QuestionID: newID,
			Action:     ActionReassignID,
			Detail:     fmt.Sprintf("%s -> %s (%s)", q.ID, newID, is.Detail),
		})
		q.ID = newID
	}

	if is, ok := issueOfKind(issues, audit.KindMathMismatch); ok {
		if !cleanValue(is.Expected) {
			remove[pos] = true
			changes = append(changes, Change{
				QuestionID: q.ID,
				Action:     ActionRemove,
				Detail:     fmt.Sprintf("%s: no clean correction for expected %.4f", is.Template, is.Expected),
			})
			return changes
		}
		r.fixMath(q, is.Expected)
		changes = append(changes, Change{
			QuestionID: q.ID,
			Action:     ActionFixMath,
			Detail:     fmt.Sprintf("%s: answer corrected to %s", is.Template, q.CorrectOption()),
		})
	} else if _, ok := issueOfKind(issues, audit.KindDuplicateOptions); ok {
		if expected, ok := verifiedExpected(*q); ok {
			r.regenDistractors(q, expected)
			changes = append(changes, Change{
				QuestionID: q.ID,
				Action:     ActionRegenOptions,
				Detail:     "duplicate options replaced with fresh distractors",
			})
		} else {
			remove[pos] = true
			changes = append(changes, Change{
				QuestionID: q.ID,
				Action:     ActionRemove,
				Detail:     "duplicate options and answer not verifiable",
			})
			return changes
		}
	}

	for _, w := range rep.WarningsAt(idx) {
		switch w.Kind {
		case audit.KindMissingExplanation:
			q.Explanation = explain.Synthesize(*q)
			changes = append(changes, Change{QuestionID: q.ID, Action: ActionAddExplanation})
		case audit.KindMissingGrade:
			q.Grade = InferGrade(q.Content)
			changes = append(changes, Change{
				QuestionID: q.ID,
				Action:     ActionInferGrade,
				Detail:     fmt.Sprintf("grade %d from content keywords", q.Grade),
			})
		}
	}
	return changes
}

// fatalIssue picks the first finding the repairer must respond to with
// removal. Warnings never land here; MATH_MISMATCH and the duplicate
// kinds have their own handling.
func fatalIssue(issues []audit.Issue) (audit.Issue, bool) {
	for _, is := range issues {
		switch is.Kind {
		case audit.KindMissingField, audit.KindOptionCount, audit.KindEmptyOption,
			audit.KindAnswerIndexOutOfRange, audit.KindFormatArtifact:
			return is, true
		}
	}
	return audit.Issue{}, false
}

func issueOfKind(issues []audit.Issue, kind audit.Kind) (audit.Issue, bool) {
	for _, is := range issues {
		if is.Kind == kind {
			return is, true
		}
	}
	return audit.Issue{}, false
}

// freshID derives a deterministic replacement ID from the source prefix
// and the record's position, bumping until it is free.
func freshID(reg *bank.Registry, prefix string, pos int) string {
	for n := pos + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%03d", prefix, n)
		if reg.Add(candidate) {
			return candidate
		}
	}
}

// fixMath rewrites options, answer and explanation around the verified
// expected value, keeping the original option's unit text.
func (r *Repairer) fixMath(q *bank.Question, expected float64) {
	pre, suf := unitParts(q.CorrectOption())
	format := func(v float64) string { return pre + formatValue(v) + suf }

	correct := format(expected)
	opts := append([]string{correct}, r.distractors(expected, format, correct)...)

	// Place the correct option at a random position.
	target := r.rng.Intn(bank.OptionCount)
	opts[0], opts[target] = opts[target], opts[0]

	q.Options = opts
	q.Answer = target
	q.Explanation = explain.Synthesize(*q)
}

// regenDistractors keeps the verified correct option and replaces the
// other three.
func (r *Repairer) regenDistractors(q *bank.Question, expected float64) {
	correct := q.CorrectOption()
	pre, suf := unitParts(correct)
	format := func(v float64) string { return pre + formatValue(v) + suf }

	opts := append([]string{correct}, r.distractors(expected, format, correct)...)
	target := r.rng.Intn(bank.OptionCount)
	opts[0], opts[target] = opts[target], opts[0]

	q.Options = opts
	q.Answer = target
}

// distractors builds three plausible wrong options: never the expected
// value, never non-positive, no duplicates.
func (r *Repairer) distractors(expected float64, format func(float64) string, correct string) []string {
	seen := map[string]bool{correct: true}
	var out []string
	for attempt := 0; len(out) < 3 && attempt < 64; attempt++ {
		v := r.perturb(expected)
		if v <= 0 || v == expected {
			continue
		}
		s := format(v)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	// Deterministic fallback when the random walk stalls on tiny values.
	for d := 1.0; len(out) < 3; d++ {
		s := format(expected + d)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// perturb produces a bounded offset around the expected value, integer
// steps for integer answers and scale errors for decimal ones.
func (r *Repairer) perturb(expected float64) float64 {
	if isWhole(expected) {
		span := int(expected / 4)
		if span < 3 {
			span = 3
		}
		delta := float64(r.rng.Intn(span) + 1)
		if r.rng.Intn(2) == 0 {
			delta = -delta
		}
		return expected + delta
	}
	switch r.rng.Intn(4) {
	case 0:
		return round2(expected + 1)
	case 1:
		return round2(expected - 1)
	case 2:
		return round2(expected * 2)
	default:
		return round2(expected / 2)
	}
}

// verifiedExpected re-derives the expected value for a record whose
// stored answer already verifies. Used when only the distractors need
// regenerating.
func verifiedExpected(q bank.Question) (float64, bool) {
	m, ok := template.Find(q.Content)
	if !ok {
		return 0, false
	}
	got, ok := verify.AnswerValue(q.CorrectOption())
	if !ok {
		return 0, false
	}
	res, ok := verify.Check(m, got)
	if !ok || !res.OK {
		return 0, false
	}
	return res.Expected, true
}

// InferGrade guesses the grade from content keywords. Best-effort
// default, not a correctness claim: fraction, decimal, area and volume
// topics skew grade 6, everything else defaults to grade 5.
func InferGrade(content string) int {
	for _, kw := range []string{"分數", "小數", "面積", "體積"} {
		if strings.Contains(content, kw) {
			return 6
		}
	}
	return 5
}

// cleanValue reports whether a correction is clean: positive and an
// integer or terminating within two decimals.
func cleanValue(v float64) bool {
	return v > 0 && math.Abs(v-round2(v)) < 1e-9
}

func formatValue(v float64) string {
	v = round2(v)
	if isWhole(v) {
		return fmt.Sprintf("%.0f", v)
	}
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func isWhole(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
