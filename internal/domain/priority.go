package domain

import "fmt"

// Priority is the user-assigned urgency of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// priorityRank is the explicit sort rank: lower sorts first.
var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Rank returns the sort rank of p. Unknown values rank as Medium so a
// snapshot written by a newer build still orders sanely.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return priorityRank[PriorityMedium]
}

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// ParsePriority validates s against the known priorities.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("priority must be High, Medium or Low, got %q", s)
	}
	return p, nil
}

// Less is the list comparator: incomplete tasks before completed ones,
// then by priority rank. Equal pairs keep their relative order, so it
// must be applied with a stable sort.
func Less(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	return a.Priority.Rank() < b.Priority.Rank()
}
