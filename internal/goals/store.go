package goals

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Store owns every goal and the requirement relation between them.
type Store struct {
	mu       sync.Mutex
	nextID   GoalID
	goals    map[GoalID]Goal
	children relation

	cyclePolicy  CyclePolicy
	deletePolicy DeletePolicy
	logger       *zap.Logger
	metrics      *metrics
}

// New returns an empty store. Without options it allows cycles and leaves
// incoming requirements of deleted goals in place.
func New(opts ...Option) *Store {
	s := &Store{
		goals:        map[GoalID]Goal{},
		children:     relation{},
		cyclePolicy:  CycleAllow,
		deletePolicy: DeleteOrphan,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.metrics.size(0, 0)
	return s
}

// CreateGoal registers a new goal with the next unused id.
func (s *Store) CreateGoal(title string) Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := Goal{ID: s.nextID, Title: title}
	s.nextID++
	s.goals[goal.ID] = goal

	s.logger.Debug("goal created", zap.Int("goal_id", int(goal.ID)), zap.String("title", title))
	s.metrics.observe(opCreate, nil)
	s.metrics.size(len(s.goals), s.children.edges())
	return goal
}

// AddRequirement records that parent requires child. The parent is checked
// before the child. Adding an existing pair is a no-op.
func (s *Store) AddRequirement(parent, child GoalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.addRequirementLocked(parent, child)
	s.metrics.observe(opAddRequirement, err)
	if err != nil {
		return err
	}
	s.logger.Debug("requirement added", zap.Int("parent_id", int(parent)), zap.Int("child_id", int(child)))
	s.metrics.size(len(s.goals), s.children.edges())
	return nil
}

func (s *Store) addRequirementLocked(parent, child GoalID) error {
	if _, ok := s.goals[parent]; !ok {
		return notFound(parent)
	}
	if _, ok := s.goals[child]; !ok {
		return notFound(child)
	}
	set, ok := s.children[parent]
	if ok && set.has(child) {
		return nil
	}
	if s.cyclePolicy == CycleReject && s.children.reaches(child, parent) {
		return cycle(parent, child)
	}
	if !ok {
		set = requirementSet{}
		s.children[parent] = set
	}
	set[child] = struct{}{}
	return nil
}

// RemoveRequirement drops child from parent's requirements. It reports
// whether an edge was actually removed; unknown ids simply yield false.
func (s *Store) RemoveRequirement(parent, child GoalID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	if set, ok := s.children[parent]; ok && set.has(child) {
		delete(set, child)
		removed = true
	}
	s.metrics.observeRemoval(removed)
	if removed {
		s.logger.Debug("requirement removed", zap.Int("parent_id", int(parent)), zap.Int("child_id", int(child)))
		s.metrics.size(len(s.goals), s.children.edges())
	}
	return removed
}

// DeleteGoal removes a goal that requires nothing and returns its record.
//
// The children check runs first, so a goal with outstanding requirements
// reports ErrChildrenGoalsExist. The goal's requirement entry is then dropped
// before the registry lookup and stays dropped if the lookup fails.
func (s *Store) DeleteGoal(id GoalID) (Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, err := s.deleteGoalLocked(id)
	s.metrics.observe(opDelete, err)
	if err != nil {
		return Goal{}, err
	}
	s.metrics.size(len(s.goals), s.children.edges())
	return goal, nil
}

func (s *Store) deleteGoalLocked(id GoalID) (Goal, error) {
	if set, ok := s.children[id]; ok && len(set) > 0 {
		return Goal{}, childrenExist(id, len(set))
	}
	delete(s.children, id)

	goal, ok := s.goals[id]
	if !ok {
		return Goal{}, notFound(id)
	}
	delete(s.goals, id)

	fields := []zap.Field{zap.Int("goal_id", int(id))}
	if s.deletePolicy == DeleteCascade {
		fields = append(fields, zap.Int("incoming_removed", s.children.dropIncoming(id)))
	}
	s.logger.Debug("goal deleted", fields...)
	return goal, nil
}

// Goal returns the goal registered under id.
func (s *Store) Goal(id GoalID) (Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal, ok := s.goals[id]
	return goal, ok
}

// Goals returns every registered goal ordered by id.
func (s *Store) Goals() []Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Goal, 0, len(s.goals))
	for _, goal := range s.goals {
		out = append(out, goal)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Requirements returns the ids parent directly requires, sorted ascending.
func (s *Store) Requirements(parent GoalID) []GoalID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.children[parent].sorted()
}

// Len returns the number of registered goals.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.goals)
}
