package stats

import (
	"strings"
	"testing"

	"github.com/liyuwen/bankctl/internal/bank"
)

func TestCollect_Distributions(t *testing.T) {
	records := []bank.Question{
		{
			ID: "a", Content: "小明買了 5 個蘋果，每個 12 元，共花多少元？",
			Answer: 0, Grade: 5, Category: "購物應用", Difficulty: "easy",
			Source: "段考題", Explanation: "總價 = 單價 × 數量。",
		},
		{
			ID: "b", Content: "200 的 15% 是多少？請選出正確答案。",
			Answer: 1, Grade: 6, Category: "百分比基礎", Difficulty: "medium",
		},
		{
			ID: "c", Content: "200 的 20% 是多少？請選出正確答案。",
			Answer: 1, Grade: 6,
		},
	}

	inv := Collect(records)
	if inv.Total != 3 {
		t.Fatalf("total = %d", inv.Total)
	}
	if inv.ByGrade[5] != 1 || inv.ByGrade[6] != 2 {
		t.Errorf("byGrade = %v", inv.ByGrade)
	}
	if inv.ByCategory["購物應用"] != 1 || inv.ByCategory["未標"] != 1 {
		t.Errorf("byCategory = %v", inv.ByCategory)
	}
	if inv.ByDifficulty["未標"] != 1 {
		t.Errorf("byDifficulty = %v", inv.ByDifficulty)
	}
	if inv.BySource["段考題"] != 1 || inv.BySource["未標"] != 2 {
		t.Errorf("bySource = %v", inv.BySource)
	}
	if inv.AnswerDist != [bank.OptionCount]int{1, 2, 0, 0} {
		t.Errorf("answerDist = %v", inv.AnswerDist)
	}
	if inv.WithExplanation != 1 {
		t.Errorf("withExplanation = %d", inv.WithExplanation)
	}
}

func TestCollect_MissingUnits(t *testing.T) {
	inv := Collect([]bank.Question{
		{ID: "a", Content: "1/2 + 1/4 是多少？選出正確答案。", Category: "分數加減"},
	})
	for _, unit := range inv.MissingUnits {
		if unit == "分數加減" {
			t.Error("covered unit reported missing")
		}
	}
	found := false
	for _, unit := range inv.MissingUnits {
		if unit == "濃度問題" {
			found = true
		}
	}
	if !found {
		t.Errorf("missingUnits = %v, want 濃度問題 listed", inv.MissingUnits)
	}
}

func TestCollect_ShortContent(t *testing.T) {
	records := []bank.Question{
		{ID: "short", Content: "太短的題目"},
		{ID: "long", Content: "這是一個長度足夠而不會被標記為過短的題目內容。"},
	}
	inv := Collect(records)
	if len(inv.ShortContent) != 1 || inv.ShortContent[0] != "short" {
		t.Errorf("shortContent = %v", inv.ShortContent)
	}
}

func TestCollect_CurriculumFlags(t *testing.T) {
	records := []bank.Question{
		{
			ID:      "neg-option",
			Content: "某商店本月的盈虧情形如下，哪一個月虧損最多？",
			Options: []string{"-50 元", "賠 30 元", "10 元", "20 元"},
		},
		{
			ID:      "root",
			Content: "√16 是多少？這題需要開根號的概念才能作答。",
		},
		{
			ID:      "abs",
			Content: "|-5| 的值是多少？這題需要絕對值的概念才能作答。",
		},
		{
			ID:      "clean",
			Content: "小明買了 5 個蘋果，每個 12 元，共花多少元？",
			Options: []string{"50 元", "55 元", "60 元", "65 元"},
		},
	}
	inv := Collect(records)

	byID := map[string][]string{}
	for _, f := range inv.CurriculumFlags {
		byID[f.QuestionID] = append(byID[f.QuestionID], f.Detail)
	}
	if len(byID["neg-option"]) != 1 || !strings.Contains(byID["neg-option"][0], "負數") {
		t.Errorf("neg-option flags = %v", byID["neg-option"])
	}
	if len(byID["root"]) != 1 {
		t.Errorf("root flags = %v", byID["root"])
	}
	if len(byID["abs"]) != 1 {
		t.Errorf("abs flags = %v", byID["abs"])
	}
	if len(byID["clean"]) != 0 {
		t.Errorf("clean flags = %v", byID["clean"])
	}
}
