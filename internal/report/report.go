// Package report renders audit results in the JSON form operators
// review and diff between runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/liyuwen/bankctl/internal/audit"
)

// Report is the operator-facing audit summary.
type Report struct {
	Timestamp time.Time          `json:"timestamp"`
	Total     int                `json:"total"`
	Passed    int                `json:"passed"`
	Warnings  []audit.Issue      `json:"warnings"`
	Issues    []audit.Issue      `json:"issues"`
	ByKind    map[audit.Kind]int `json:"issueTypes"`
}

// Build wraps an audit report with a timestamp.
func Build(rep audit.Report, now time.Time) Report {
	return Report{
		Timestamp: now,
		Total:     rep.Total,
		Passed:    rep.Passed,
		Warnings:  rep.Warnings,
		Issues:    rep.Issues,
		ByKind:    rep.ByKind,
	}
}

// Encode writes the report as indented JSON.
func Encode(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, or to stdout when path is "-".
func WriteFile(path string, r Report) error {
	if path == "" || path == "-" {
		return Encode(os.Stdout, r)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, r)
}
