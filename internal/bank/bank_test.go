package bank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const flatFixture = `{
  "questions": [
    {
      "id": "main-001",
      "content": "小明買了 5 個蘋果，每個 12 元，共花多少元？",
      "options": ["50 元", "55 元", "60 元", "65 元"],
      "answer": 2,
      "grade": 5,
      "category": "購物應用",
      "difficulty": "easy",
      "explanation": "總價 = 單價 × 數量。"
    },
    {
      "id": "main-002",
      "content": "200 的 15% 是多少？",
      "options": ["25", "30", "35", "40"],
      "answer": 1
    }
  ]
}`

const gradeFixture = `{
  "grade": 5,
  "units": [
    {
      "name": "整數運算",
      "questions": [
        {
          "id": "g5-001",
          "content": "125 + 375 是多少？",
          "options": ["400", "450", "500", "550"],
          "answer": 2
        }
      ]
    },
    {
      "name": "分數入門",
      "questions": [
        {
          "id": "g5-002",
          "content": "1/2 + 1/4 是多少？",
          "options": ["1/4", "2/4", "3/4", "4/4"],
          "answer": 2
        }
      ]
    }
  ]
}`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSource_Flat(t *testing.T) {
	s, err := LoadSource(writeFixture(t, "questions.json", flatFixture))
	if err != nil {
		t.Fatal(err)
	}
	if s.Flat() == nil || s.GradeForm() != nil {
		t.Fatal("expected the flat form")
	}
	if s.Prefix != "main" {
		t.Errorf("prefix = %q, want main", s.Prefix)
	}
	recs := s.Records()
	if len(recs) != 2 {
		t.Fatalf("records = %d", len(recs))
	}
	if recs[0].ID != "main-001" || recs[0].Answer != 2 {
		t.Errorf("first record = %+v", recs[0])
	}
}

func TestLoadSource_GradePartitioned(t *testing.T) {
	s, err := LoadSource(writeFixture(t, "grade5.json", gradeFixture))
	if err != nil {
		t.Fatal(err)
	}
	if s.GradeForm() == nil {
		t.Fatal("expected the grade form")
	}
	if s.GradeForm().Grade != 5 || len(s.GradeForm().Units) != 2 {
		t.Errorf("grade form = %+v", s.GradeForm())
	}
	if len(s.Records()) != 2 {
		t.Errorf("records = %d", len(s.Records()))
	}
}

func TestLoadSource_RejectsMalformedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not-json.json", `{"questions": [`},
		{"neither.json", `{"items": []}`},
		{"bad-questions.json", `{"questions": {"id": "x"}}`},
		{"bad-answer.json", `{"questions": [{"id": "x", "content": "y", "options": ["a"], "answer": "two"}]}`},
		{"bad-units.json", `{"grade": 5, "units": [{"name": 7, "questions": []}]}`},
	}
	for _, tt := range tests {
		if _, err := LoadSource(writeFixture(t, tt.name, tt.content)); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}

func TestUnmarshal_MissingAnswerDefaultsToMinusOne(t *testing.T) {
	s, err := LoadSource(writeFixture(t, "questions.json",
		`{"questions": [{"id": "x", "content": "y", "options": ["a", "b", "c", "d"]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Records()[0].Answer; got != -1 {
		t.Errorf("answer = %d, want -1", got)
	}
}

func TestSourceFile_SaveRoundtrip(t *testing.T) {
	path := writeFixture(t, "questions.json", flatFixture)
	s, err := LoadSource(path)
	if err != nil {
		t.Fatal(err)
	}

	s.Records()[0].Explanation = "改寫後的詳解。"
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.Flat(), reloaded.Flat()); diff != "" {
		t.Errorf("roundtrip mismatch (-saved +reloaded):\n%s", diff)
	}
}

func TestSourceFile_SaveKeepsUnitStructure(t *testing.T) {
	path := writeFixture(t, "grade5.json", gradeFixture)
	s, err := LoadSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	reloaded, err := LoadSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.GradeForm(), reloaded.GradeForm()); diff != "" {
		t.Errorf("roundtrip mismatch (-saved +reloaded):\n%s", diff)
	}
}

func TestSourceFile_RemoveAt(t *testing.T) {
	s, err := LoadSource(writeFixture(t, "questions.json", flatFixture))
	if err != nil {
		t.Fatal(err)
	}
	if n := s.RemoveAt(map[int]bool{1: true}); n != 1 {
		t.Fatalf("removed = %d", n)
	}
	if len(s.Records()) != 1 || s.Records()[0].ID != "main-001" {
		t.Errorf("records after remove: %d", len(s.Records()))
	}

	g, err := LoadSource(writeFixture(t, "grade5.json", gradeFixture))
	if err != nil {
		t.Fatal(err)
	}
	g.RemoveAt(map[int]bool{0: true})
	if len(g.GradeForm().Units) != 2 {
		t.Error("unit structure should survive removal")
	}
	if len(g.Records()) != 1 || g.Records()[0].ID != "g5-002" {
		t.Errorf("records after remove: %d", len(g.Records()))
	}
}

func TestSourceFile_RemoveAtLeavesSameIDSiblings(t *testing.T) {
	twin := Question{ID: "dup", Content: "x", Options: []string{"a", "b", "c", "d"}, Answer: 0}
	s := NewFlatSource("questions.json", &File{Questions: []Question{twin, twin.Clone()}})

	if n := s.RemoveAt(map[int]bool{0: true}); n != 1 {
		t.Fatalf("removed = %d", n)
	}
	if len(s.Records()) != 1 || s.Records()[0].ID != "dup" {
		t.Errorf("sibling with the same ID must survive, records = %d", len(s.Records()))
	}
}

func TestBank_UnionAcrossSources(t *testing.T) {
	b, err := LoadBank([]string{
		writeFixture(t, "questions.json", flatFixture),
		writeFixture(t, "grade5.json", gradeFixture),
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 4 {
		t.Fatalf("len = %d", b.Len())
	}

	snap := b.Snapshot()
	snap[0].Explanation = "mutated"
	if b.Records()[0].Explanation == "mutated" {
		t.Error("snapshot should not alias the bank")
	}
}

func TestMerge_StampsGradeAndCategory(t *testing.T) {
	g, err := LoadSource(writeFixture(t, "grade5.json", gradeFixture))
	if err != nil {
		t.Fatal(err)
	}

	merged := Merge([]*SourceFile{g}, MergeOptions{Difficulty: "hard", Source: "段考題"})
	if len(merged.Questions) != 2 {
		t.Fatalf("merged = %d", len(merged.Questions))
	}
	q := merged.Questions[0]
	if q.Grade != 5 || q.Category != "整數運算" {
		t.Errorf("stamp missing: grade=%d category=%q", q.Grade, q.Category)
	}
	if q.Difficulty != "hard" || q.Source != "段考題" {
		t.Errorf("options not applied: %+v", q)
	}

	// The source file itself is untouched.
	if g.GradeForm().Units[0].Questions[0].Category != "" {
		t.Error("merge mutated its input")
	}
}

func TestMerge_FlatPassThrough(t *testing.T) {
	f, err := LoadSource(writeFixture(t, "questions.json", flatFixture))
	if err != nil {
		t.Fatal(err)
	}
	merged := Merge([]*SourceFile{f}, MergeOptions{})
	if diff := cmp.Diff(f.Flat().Questions, merged.Questions); diff != "" {
		t.Errorf("flat input should pass through (-in +out):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if !reg.Add("a") {
		t.Error("first add should succeed")
	}
	if reg.Add("a") {
		t.Error("second add should fail")
	}
	if !reg.Contains("a") || reg.Contains("b") {
		t.Error("contains misreports")
	}
	if reg.Len() != 1 {
		t.Errorf("len = %d", reg.Len())
	}
}

func TestPrefixFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"data/questions.json", "main"},
		{"data/questions-geometry.json", "geometry"},
		{"grade5.json", "grade5"},
	}
	for _, tt := range tests {
		if got := prefixFor(tt.path); got != tt.want {
			t.Errorf("prefixFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCorrectOption(t *testing.T) {
	q := Question{Options: []string{"a", "b", "c", "d"}, Answer: 2}
	if q.CorrectOption() != "c" {
		t.Errorf("got %q", q.CorrectOption())
	}
	q.Answer = -1
	if q.CorrectOption() != "" {
		t.Error("invalid answer should yield empty string")
	}
	q.Answer = 4
	if q.CorrectOption() != "" {
		t.Error("out-of-range answer should yield empty string")
	}
}
