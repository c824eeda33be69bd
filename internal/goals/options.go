package goals

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kingrea/goal-lattice/internal/config"
)

// CyclePolicy controls whether AddRequirement may close a cycle.
type CyclePolicy string

const (
	// CycleAllow accepts any edge between existing goals, including a goal
	// requiring itself.
	CycleAllow CyclePolicy = "allow"
	// CycleReject refuses an edge when the child already reaches the parent.
	CycleReject CyclePolicy = "reject"
)

// DeletePolicy controls what happens to edges pointing at a deleted goal.
type DeletePolicy string

const (
	// DeleteOrphan leaves other goals' requirements on the deleted id intact.
	DeleteOrphan DeletePolicy = "orphan"
	// DeleteCascade removes the deleted id from every requirement set.
	DeleteCascade DeletePolicy = "cascade"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger installs a logger for successful mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics registers the store's collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(s *Store) {
		s.metrics = newMetrics(reg)
	}
}

// WithCyclePolicy sets the cycle policy. Unknown values fall back to CycleAllow.
func WithCyclePolicy(policy CyclePolicy) Option {
	return func(s *Store) {
		switch policy {
		case CycleReject:
			s.cyclePolicy = CycleReject
		default:
			s.cyclePolicy = CycleAllow
		}
	}
}

// WithDeletePolicy sets the delete policy. Unknown values fall back to
// DeleteOrphan.
func WithDeletePolicy(policy DeletePolicy) Option {
	return func(s *Store) {
		switch policy {
		case DeleteCascade:
			s.deletePolicy = DeleteCascade
		default:
			s.deletePolicy = DeleteOrphan
		}
	}
}

// WithSettings applies the store section of the project configuration.
func WithSettings(settings config.StoreSettings) Option {
	return func(s *Store) {
		WithCyclePolicy(CyclePolicy(strings.ToLower(strings.TrimSpace(settings.CyclePolicy))))(s)
		WithDeletePolicy(DeletePolicy(strings.ToLower(strings.TrimSpace(settings.DeletePolicy))))(s)
	}
}
