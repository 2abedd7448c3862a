package bank

// MergeOptions controls how partitioned sources are stamped when they
// are flattened into the main bank.
type MergeOptions struct {
	// Difficulty stamps every merged record; empty keeps the record's own.
	Difficulty string
	// Source stamps provenance, e.g. "段考題"; empty keeps the record's own.
	Source string
}

// Merge flattens grade-partitioned files into one flat file. Each
// question is stamped with the file's grade and its unit name as
// category. Flat inputs pass through unchanged apart from the
// difficulty/source stamps.
func Merge(sources []*SourceFile, opts MergeOptions) *File {
	out := &File{}
	for _, s := range sources {
		if g := s.GradeForm(); g != nil {
			for _, unit := range g.Units {
				for _, q := range unit.Questions {
					q = q.Clone()
					q.Grade = g.Grade
					q.Category = unit.Name
					stamp(&q, opts)
					out.Questions = append(out.Questions, q)
				}
			}
			continue
		}
		for _, q := range s.Flat().Questions {
			q = q.Clone()
			stamp(&q, opts)
			out.Questions = append(out.Questions, q)
		}
	}
	return out
}

func stamp(q *Question, opts MergeOptions) {
	if opts.Difficulty != "" {
		q.Difficulty = opts.Difficulty
	}
	if opts.Source != "" {
		q.Source = opts.Source
	}
}
