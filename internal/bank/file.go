package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceFile is one bank file loaded into memory, in either the flat or
// the grade-partitioned form. Mutations happen in place through the
// pointers returned by Records; Save writes the whole file back.
type SourceFile struct {
	Path string

	// Prefix seeds deterministic replacement IDs for duplicate records
	// found in this file, e.g. "geometry" -> "geometry-014".
	Prefix string

	flat  *File
	grade *GradeFile
}

// LoadSource reads and validates a bank file, detecting its form.
func LoadSource(path string) (*SourceFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var probe struct {
		Questions json.RawMessage `json:"questions"`
		Units     json.RawMessage `json:"units"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	s := &SourceFile{Path: path, Prefix: prefixFor(path)}
	switch {
	case probe.Questions != nil:
		if err := validateSchema("bank-flat", flatSchemaDef, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		var f File
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		s.flat = &f
	case probe.Units != nil:
		if err := validateSchema("bank-grade", gradeSchemaDef, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		var g GradeFile
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		s.grade = &g
	default:
		return nil, fmt.Errorf("%s: neither a questions file nor a units file", path)
	}
	return s, nil
}

// NewFlatSource wraps an in-memory flat file, for tests and merge output.
func NewFlatSource(path string, f *File) *SourceFile {
	return &SourceFile{Path: path, Prefix: prefixFor(path), flat: f}
}

// Flat returns the flat form, or nil for a grade-partitioned file.
func (s *SourceFile) Flat() *File { return s.flat }

// GradeForm returns the partitioned form, or nil for a flat file.
func (s *SourceFile) GradeForm() *GradeFile { return s.grade }

// Records returns pointers to every question in file order.
func (s *SourceFile) Records() []*Question {
	var out []*Question
	if s.flat != nil {
		for i := range s.flat.Questions {
			out = append(out, &s.flat.Questions[i])
		}
		return out
	}
	for ui := range s.grade.Units {
		qs := s.grade.Units[ui].Questions
		for i := range qs {
			out = append(out, &qs[i])
		}
	}
	return out
}

// RemoveAt drops the records at the given positions in Records order
// and reports how many were removed. Positional removal stays correct
// when several records share an ID. For partitioned files the unit
// structure is preserved.
func (s *SourceFile) RemoveAt(positions map[int]bool) int {
	removed := 0
	pos := 0
	filter := func(qs []Question) []Question {
		kept := qs[:0]
		for _, q := range qs {
			if positions[pos] {
				removed++
			} else {
				kept = append(kept, q)
			}
			pos++
		}
		return kept
	}
	if s.flat != nil {
		s.flat.Questions = filter(s.flat.Questions)
		return removed
	}
	for ui := range s.grade.Units {
		s.grade.Units[ui].Questions = filter(s.grade.Units[ui].Questions)
	}
	return removed
}

// Save writes the file back to its path. The write goes to a temp file
// in the same directory followed by a rename, so an interrupted run
// never leaves a truncated bank behind.
func (s *SourceFile) Save() error {
	var payload any
	if s.flat != nil {
		payload = s.flat
	} else {
		payload = s.grade
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.Path, err)
	}
	data = append(data, '\n')
	return writeAtomic(s.Path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".bank-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// Bank is the union of all loaded source files. The audit and repair
// stages are indifferent to file boundaries and operate on the
// concatenation; Save writes each file back separately.
type Bank struct {
	Sources []*SourceFile
}

// LoadBank loads every path into one Bank, in the given order.
func LoadBank(paths []string) (*Bank, error) {
	b := &Bank{}
	for _, p := range paths {
		s, err := LoadSource(p)
		if err != nil {
			return nil, err
		}
		b.Sources = append(b.Sources, s)
	}
	return b, nil
}

// Records returns pointers to every question across all sources, in
// source order.
func (b *Bank) Records() []*Question {
	var out []*Question
	for _, s := range b.Sources {
		out = append(out, s.Records()...)
	}
	return out
}

// Snapshot returns deep copies of every record, for read-only stages.
func (b *Bank) Snapshot() []Question {
	recs := b.Records()
	out := make([]Question, 0, len(recs))
	for _, q := range recs {
		out = append(out, q.Clone())
	}
	return out
}

// Len returns the total record count.
func (b *Bank) Len() int {
	n := 0
	for _, s := range b.Sources {
		n += len(s.Records())
	}
	return n
}

// Save writes every source file back.
func (b *Bank) Save() error {
	for _, s := range b.Sources {
		if err := s.Save(); err != nil {
			return err
		}
	}
	return nil
}

// prefixFor derives a replacement-ID prefix from a file name:
// "questions-geometry.json" -> "geometry", "questions.json" -> "main".
func prefixFor(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.TrimPrefix(base, "questions-")
	if base == "" || base == "questions" {
		return "main"
	}
	return base
}
