package runner

import (
	"time"
)

// Counts tallies listing outcomes.
type Counts struct {
	Discovered int `json:"discovered"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type RoleSummary struct {
	Role string `json:"role"`
	Counts
}

// Summary describes one run.
type Summary struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Roles      []*RoleSummary `json:"roles"`
	Total      Counts         `json:"total"`
	Failures   []Result       `json:"-"`
	PageErrors []error        `json:"-"`
}

func newSummary(runID string, start time.Time) *Summary {
	return &Summary{RunID: runID, StartedAt: start}
}

func (s *Summary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Role returns the counts for role, or nil when it was never scraped.
func (s *Summary) Role(role string) *RoleSummary {
	for _, rs := range s.Roles {
		if rs.Role == role {
			return rs
		}
	}
	return nil
}

func (s *Summary) role(role string) *RoleSummary {
	if rs := s.Role(role); rs != nil {
		return rs
	}
	rs := &RoleSummary{Role: role}
	s.Roles = append(s.Roles, rs)
	return rs
}

func (s *Summary) record(res Result) {
	rs := s.role(res.Role)
	switch res.Status {
	case StatusInserted:
		rs.Inserted++
	case StatusDuplicate:
		rs.Duplicates++
	case StatusSkipped:
		rs.Skipped++
	case StatusFailed:
		rs.Failed++
		s.Failures = append(s.Failures, res)
	}
}

func (s *Summary) finish(end time.Time) {
	s.FinishedAt = end
	s.Total = Counts{}
	for _, rs := range s.Roles {
		s.Total.Discovered += rs.Discovered
		s.Total.Inserted += rs.Inserted
		s.Total.Duplicates += rs.Duplicates
		s.Total.Skipped += rs.Skipped
		s.Total.Failed += rs.Failed
	}
}
