package doctors

import "fmt"

// Query is the live directory search: free text plus a specialization.
type Query struct {
	Search         string `json:"search"`
	Specialization string `json:"specialization"`
}

// DefaultQuery matches every doctor.
func DefaultQuery() Query {
	return Query{Search: "", Specialization: AllSpecializations}
}

// Clear resets both filters to their defaults.
func (q *Query) Clear() {
	*q = DefaultQuery()
}

// IsDefault reports whether no filter is applied.
func (q Query) IsDefault() bool {
	return q.normalized() == DefaultQuery()
}

// An empty specialization means "all". The search text is used verbatim,
// whitespace included.
func (q Query) normalized() Query {
	if q.Specialization == "" {
		q.Specialization = AllSpecializations
	}
	return q
}

// Result is a filtered view over the directory.
type Result struct {
	Query   Query    `json:"query"`
	Doctors []Doctor `json:"doctors"`
}

// Count is the number of matching doctors.
func (r Result) Count() int { return len(r.Doctors) }

// Empty reports the "no doctors found" state.
func (r Result) Empty() bool { return len(r.Doctors) == 0 }

// Summary renders the results label, e.g. "Showing 1 doctor".
func (r Result) Summary() string {
	if r.Count() == 1 {
		return "Showing 1 doctor"
	}
	return fmt.Sprintf("Showing %d doctors", r.Count())
}

// TalkMessage is the placeholder shown when a patient asks to talk to a doctor.
func TalkMessage(d Doctor) string {
	return fmt.Sprintf("Connecting you with %s... This feature will be available soon!", d.Name)
}
