package bank

import "encoding/json"

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// Question is a single bank record.
type Question struct {
	// ID is the identity key, unique across the union of all bank files.
	ID string `json:"id"`

	// Content is the problem statement shown to the learner.
	// Traditional Chinese word problems with embedded numeric literals.
	Content string `json:"content"`

	// Options holds exactly 4 answer choices. Values may carry a unit
	// suffix, e.g. "12 元" or "3 天".
	Options []string `json:"options"`

	// Answer is the index of the correct option. -1 when the field was
	// absent from the source file.
	Answer int `json:"answer"`

	// Grade is the pedagogical level (5 or 6). 0 when unset.
	Grade int `json:"grade,omitempty"`

	// Category groups records by topic, e.g. "工作問題" or "面積計算".
	Category string `json:"category,omitempty"`

	// Difficulty is advisory: "easy", "medium" or "hard".
	Difficulty string `json:"difficulty,omitempty"`

	// Explanation is the worked rationale shown after answering.
	Explanation string `json:"explanation,omitempty"`

	// Source records provenance, e.g. "段考題".
	Source string `json:"source,omitempty"`
}

// UnmarshalJSON defaults Answer to -1 so a missing answer field is
// distinguishable from a stored answer of 0.
func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	aux := alias{Answer: -1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*q = Question(aux)
	return nil
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	return c
}

// CorrectOption returns options[answer], or "" if the index is invalid.
func (q Question) CorrectOption() string {
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return ""
	}
	return q.Options[q.Answer]
}

// File is the flat bank form: {"questions": [...]}.
type File struct {
	Questions []Question `json:"questions"`
}

// Unit is one curriculum unit inside a grade-partitioned source file.
type Unit struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// GradeFile is the grade-partitioned source form:
// {"grade": 5, "units": [{"name": ..., "questions": [...]}]}.
type GradeFile struct {
	Grade int    `json:"grade"`
	Units []Unit `json:"units"`
}
