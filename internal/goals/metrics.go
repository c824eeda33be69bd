package goals

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	opCreate            = "create_goal"
	opAddRequirement    = "add_requirement"
	opRemoveRequirement = "remove_requirement"
	opDelete            = "delete_goal"

	resultOK            = "ok"
	resultAbsent        = "absent"
	resultNotFound      = "not_found"
	resultChildrenExist = "children_exist"
	resultCycle         = "cycle"
)

type metrics struct {
	operations   *prometheus.CounterVec
	goals        prometheus.Gauge
	requirements prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	return &metrics{
		operations: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goals_operations_total",
			Help: "Goal store operations by operation and result",
		}, []string{"operation", "result"})),
		goals: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goals_registered",
			Help: "Goals currently present in the registry",
		})),
		requirements: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goals_requirements",
			Help: "Requirement edges currently registered",
		})),
	}
}

// register returns the collector already registered under the same
// descriptor when there is one, so several stores can share a registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultFor(err)).Inc()
}

func (m *metrics) observeRemoval(removed bool) {
	if m == nil {
		return
	}
	result := resultAbsent
	if removed {
		result = resultOK
	}
	m.operations.WithLabelValues(opRemoveRequirement, result).Inc()
}

func (m *metrics) size(goals, requirements int) {
	if m == nil {
		return
	}
	m.goals.Set(float64(goals))
	m.requirements.Set(float64(requirements))
}

func resultFor(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrGoalIDNotFound):
		return resultNotFound
	case errors.Is(err, ErrChildrenGoalsExist):
		return resultChildrenExist
	case errors.Is(err, ErrRequirementCycle):
		return resultCycle
	default:
		return "error"
	}
}
