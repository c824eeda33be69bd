package goals

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsTrackOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := New(WithMetrics(reg))
	m := store.metrics
	require.NotNil(t, m)

	a := store.CreateGoal("a")
	b := store.CreateGoal("b")
	require.NoError(t, store.AddRequirement(a.ID, b.ID))
	require.Error(t, store.AddRequirement(a.ID, 9))
	_, err := store.DeleteGoal(a.ID)
	require.Error(t, err)
	store.RemoveRequirement(b.ID, a.ID)
	store.RemoveRequirement(a.ID, b.ID)
	_, err = store.DeleteGoal(a.ID)
	require.NoError(t, err)
	_, err = store.DeleteGoal(a.ID)
	require.Error(t, err)

	counts := map[[2]string]float64{
		{opCreate, resultOK}:                2,
		{opAddRequirement, resultOK}:        1,
		{opAddRequirement, resultNotFound}:  1,
		{opDelete, resultChildrenExist}:     1,
		{opDelete, resultOK}:                1,
		{opDelete, resultNotFound}:          1,
		{opRemoveRequirement, resultAbsent}: 1,
		{opRemoveRequirement, resultOK}:     1,
	}
	for labels, want := range counts {
		got := testutil.ToFloat64(m.operations.WithLabelValues(labels[0], labels[1]))
		assert.Equal(t, want, got, "%s/%s", labels[0], labels[1])
	}
	assert.Equal(t, float64(1), testutil.ToFloat64(m.goals))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.requirements))
}

func TestMetricsCountCycleRejections(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := New(WithMetrics(reg), WithCyclePolicy(CycleReject))
	a := store.CreateGoal("a")
	require.Error(t, store.AddRequirement(a.ID, a.ID))

	got := testutil.ToFloat64(store.metrics.operations.WithLabelValues(opAddRequirement, resultCycle))
	assert.Equal(t, float64(1), got)
}

func TestMetricsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(WithMetrics(reg))
	second := New(WithMetrics(reg))

	first.CreateGoal("a")
	second.CreateGoal("b")

	assert.Same(t, first.metrics.operations, second.metrics.operations)
	assert.Equal(t, float64(2), testutil.ToFloat64(first.metrics.operations.WithLabelValues(opCreate, resultOK)))

	count, err := testutil.GatherAndCount(reg, "goals_operations_total", "goals_registered", "goals_requirements")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetricsDisabledByDefault(t *testing.T) {
	store := New()
	assert.Nil(t, store.metrics)
	store.CreateGoal("a")
	store.RemoveRequirement(0, 1)
}
