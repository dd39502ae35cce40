package models

import "fmt"

// BulkResult aggregates the per-item outcomes of a bulk operation.
// Succeeded+Failed always equals Attempted.
type BulkResult struct {
	Attempted   int
	Succeeded   int
	Failed      int
	FailedItems []string
}

func (r BulkResult) OK() bool { return r.Failed == 0 }

// Summary renders user-facing text, e.g. "Deleted 3 of 5 files; 2 failed".
func (r BulkResult) Summary(verb, noun string) string {
	if r.Failed == 0 {
		return fmt.Sprintf("%s %d %s", verb, r.Succeeded, plural(noun, r.Succeeded))
	}
	return fmt.Sprintf("%s %d of %d %s; %d failed", verb, r.Succeeded, r.Attempted, plural(noun, r.Attempted), r.Failed)
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
