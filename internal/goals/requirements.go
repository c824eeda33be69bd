package goals

import "sort"

// requirementSet is the set of goal ids directly required by one parent.
type requirementSet map[GoalID]struct{}

func (s requirementSet) has(id GoalID) bool {
	_, ok := s[id]
	return ok
}

func (s requirementSet) sorted() []GoalID {
	if len(s) == 0 {
		return nil
	}
	out := make([]GoalID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// relation maps a parent goal id to the goals it requires.
type relation map[GoalID]requirementSet

func (r relation) edges() int {
	total := 0
	for _, set := range r {
		total += len(set)
	}
	return total
}

// reaches reports whether target is reachable from start by following
// requirement edges. start itself counts as reachable.
func (r relation) reaches(start, target GoalID) bool {
	visited := map[GoalID]bool{}
	stack := []GoalID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		for next := range r[id] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}

// dropIncoming removes id from every requirement set and returns the number
// of edges removed.
func (r relation) dropIncoming(id GoalID) int {
	removed := 0
	for _, set := range r {
		if set.has(id) {
			delete(set, id)
			removed++
		}
	}
	return removed
}
