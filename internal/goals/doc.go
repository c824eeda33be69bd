// Package goals holds the in-memory goal registry and the requirement
// relation between goals.
//
// A goal may require other goals. Requirements are kept in an index keyed by
// the parent goal id rather than on the Goal record itself, so a Goal only
// describes what it is while the Store tracks what it depends on. Deleting a
// goal is refused while it still requires at least one other goal.
//
// The Store is safe for use by multiple goroutines; every operation runs under
// a single store-wide lock.
package goals
