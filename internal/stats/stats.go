// Package stats builds the operator-facing bank inventory: source,
// grade, category and difficulty distributions, answer-position counts,
// and grade-appropriateness flags for content that belongs to a higher
// curriculum level.
package stats

import (
	"strings"

	"github.com/liyuwen/bankctl/internal/bank"
	"github.com/liyuwen/bankctl/internal/shuffle"
)

// Inventory summarizes the bank.
type Inventory struct {
	Total        int                   `json:"total"`
	ByGrade      map[int]int           `json:"byGrade"`
	ByCategory   map[string]int        `json:"byCategory"`
	ByDifficulty map[string]int        `json:"byDifficulty"`
	BySource     map[string]int        `json:"bySource"`
	AnswerDist   [bank.OptionCount]int `json:"answerDist"`

	WithExplanation int      `json:"withExplanation"`
	ShortContent    []string `json:"shortContent,omitempty"`

	// CurriculumFlags lists records whose text uses notation above the
	// elementary curriculum (negative numbers, absolute value, roots).
	CurriculumFlags []CurriculumFlag `json:"curriculumFlags,omitempty"`

	// MissingUnits lists curriculum units with no questions at all.
	MissingUnits []string `json:"missingUnits,omitempty"`
}

// CurriculumFlag marks one above-grade usage.
type CurriculumFlag struct {
	QuestionID string `json:"questionId"`
	Detail     string `json:"detail"`
}

// shortContentRunes is the threshold below which a problem statement is
// suspiciously short.
const shortContentRunes = 15

// curriculumUnits is the grade 5-6 topic list the practice platform is
// expected to cover. Units with zero questions show up as coverage gaps.
var curriculumUnits = []string{
	"分數加減",
	"分數乘除",
	"小數運算",
	"因數與倍數",
	"比與比值",
	"百分比基礎",
	"面積計算",
	"周長計算",
	"體積計算",
	"圓的周長與面積",
	"速率問題",
	"工作問題",
	"濃度問題",
	"等差數列",
	"統計圖表",
}

// Collect builds the inventory over the record union.
func Collect(records []bank.Question) Inventory {
	inv := Inventory{
		Total:        len(records),
		ByGrade:      make(map[int]int),
		ByCategory:   make(map[string]int),
		ByDifficulty: make(map[string]int),
		BySource:     make(map[string]int),
		AnswerDist:   shuffle.Distribution(records),
	}

	for _, q := range records {
		inv.ByGrade[q.Grade]++
		inv.ByCategory[label(q.Category)]++
		inv.ByDifficulty[label(q.Difficulty)]++
		inv.BySource[label(q.Source)]++

		if strings.TrimSpace(q.Explanation) != "" {
			inv.WithExplanation++
		}
		if len([]rune(strings.TrimSpace(q.Content))) < shortContentRunes {
			inv.ShortContent = append(inv.ShortContent, q.ID)
		}
		inv.CurriculumFlags = append(inv.CurriculumFlags, curriculumFlags(q)...)
	}

	for _, unit := range curriculumUnits {
		if inv.ByCategory[unit] == 0 {
			inv.MissingUnits = append(inv.MissingUnits, unit)
		}
	}
	return inv
}

func label(s string) string {
	if strings.TrimSpace(s) == "" {
		return "未標"
	}
	return s
}

// curriculumFlags checks for notation beyond grades 5-6: standalone
// negative options, negative-number arithmetic, absolute values and
// roots belong to junior high.
func curriculumFlags(q bank.Question) []CurriculumFlag {
	var out []CurriculumFlag
	add := func(detail string) {
		out = append(out, CurriculumFlag{QuestionID: q.ID, Detail: detail})
	}

	for _, opt := range q.Options {
		trimmed := strings.TrimSpace(opt)
		if strings.HasPrefix(trimmed, "-") && !strings.Contains(trimmed, "賠") {
			add("選項含負數: " + opt)
		}
	}
	if strings.Contains(q.Content, "(-") {
		add("題目含負數運算符號")
	}

	all := q.Content + " " + strings.Join(q.Options, " ") + " " + q.Explanation
	if strings.Contains(all, "√") || strings.Contains(all, "根號") || strings.Contains(all, "平方根") {
		add("含開根號")
	}
	if strings.Contains(q.Content, "|") {
		add("含絕對值符號")
	}
	return out
}
