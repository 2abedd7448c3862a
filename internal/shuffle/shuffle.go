// Package shuffle re-randomizes option order while keeping the answer
// index pointed at the same option value. Safe at any pipeline stage:
// verification keys off the value of options[answer], not its position.
package shuffle

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/liyuwen/bankctl/internal/bank"
)

// ErrDuplicateOptions is returned when two options share the same text,
// which would make the re-pointing of the answer index ambiguous.
var ErrDuplicateOptions = errors.New("shuffle: duplicate option text")

// Options applies a Fisher-Yates permutation to the record's options
// and re-points the answer index at the correct value's new position.
func Options(q *bank.Question, rng *rand.Rand) error {
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return errors.New("shuffle: answer index out of range")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		key := strings.TrimSpace(opt)
		if seen[key] {
			return ErrDuplicateOptions
		}
		seen[key] = true
	}

	correct := q.Options[q.Answer]
	opts := append([]string(nil), q.Options...)
	for i := len(opts) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	for i, opt := range opts {
		if opt == correct {
			q.Options = opts
			q.Answer = i
			return nil
		}
	}
	// Unreachable: correct came from the permuted slice.
	return errors.New("shuffle: correct option lost")
}

// Bank shuffles every record, skipping those with duplicate options or
// invalid answers, and returns how many were shuffled.
func Bank(records []*bank.Question, rng *rand.Rand) int {
	n := 0
	for _, q := range records {
		if err := Options(q, rng); err == nil {
			n++
		}
	}
	return n
}

// Distribution counts how often each option position holds the correct
// answer. Operators use it to spot position bias after shuffling.
func Distribution(records []bank.Question) [bank.OptionCount]int {
	var dist [bank.OptionCount]int
	for _, q := range records {
		if q.Answer >= 0 && q.Answer < bank.OptionCount {
			dist[q.Answer]++
		}
	}
	return dist
}
