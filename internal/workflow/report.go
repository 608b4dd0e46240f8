package workflow

import "time"

// WorkOutcome summarizes one work of a run.
type WorkOutcome struct {
	WorkID     string
	Status     string
	Total      int
	Matched    int
	Candidates int
	// ItemFailures counts transcriptions whose alignment failed and were
	// stored as unmatched.
	ItemFailures int
	CacheHit     bool
	Duration     time.Duration
	Err          error
}

// Unmatched returns the number of transcriptions without a candidate.
func (o WorkOutcome) Unmatched() int {
	return o.Total - o.Matched
}

// Report lists the outcome of every work in a run, in request order.
type Report struct {
	RunID    string
	Version  string
	Started  time.Time
	Finished time.Time
	Works    []WorkOutcome
}

// Failed counts works that ended with an error other than a held lock.
func (r *Report) Failed() int {
	n := 0
	for _, w := range r.Works {
		if w.Err != nil && w.Status != "skipped" {
			n++
		}
	}
	return n
}

// Degraded counts works that finished with some transcriptions left
// unaligned after item failures.
func (r *Report) Degraded() int {
	n := 0
	for _, w := range r.Works {
		if w.Status == "degraded" {
			n++
		}
	}
	return n
}

// Skipped counts works left alone because another process held their lock.
func (r *Report) Skipped() int {
	n := 0
	for _, w := range r.Works {
		if w.Status == "skipped" {
			n++
		}
	}
	return n
}
