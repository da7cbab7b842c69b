package entities

import "time"

// QueryOutcome records how one query of a cycle went. Err is nil on success,
// including when the query legitimately matched nothing.
type QueryOutcome struct {
	Query   Query
	Fetched int
	Err     error
}

type SaveResult struct {
	Inserted int
	Updated  int
	Ignored  int
	Failed   int
}

type RunReport struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []QueryOutcome
	Collected  int
	Saved      SaveResult
}

func (r RunReport) FailedQueries() int {
	failed := 0
	for _, outcome := range r.Outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}
