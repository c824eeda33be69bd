package goals

// GoalID identifies a goal. IDs are assigned in increasing order starting at
// zero and are never reused after a goal is deleted.
type GoalID int

// Goal is a trackable unit of work.
type Goal struct {
	ID    GoalID
	Title string
	// Completed is carried for callers that track progress; the store never
	// changes it after creation.
	Completed bool
}
